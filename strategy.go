package treecodec

import (
	"encoding/base64"
	"time"

	"github.com/unkn0wn-root/treecodec/internal/casing"
)

// TimeCodec selects the generic value shape a timestamp collapses to and
// reconstructs the timestamp from that shape.
type TimeCodec interface {
	EncodeTime(e *Encoder, t time.Time) error
	DecodeTime(d *Decoder) (time.Time, error)
}

// BytesCodec is the TimeCodec counterpart for binary blobs.
type BytesCodec interface {
	EncodeBytes(e *Encoder, b []byte) error
	DecodeBytes(d *Decoder) ([]byte, error)
}

// KeyCodec rewrites object keys in both directions. EncodeKey maps an
// in-memory field name to its stored form; DecodeKey maps a stored key back.
// The path holds every ancestor segment, and ctx is the caller's option bag,
// so custom codecs can remap context-sensitively.
type KeyCodec interface {
	EncodeKey(path Path, key string, ctx map[string]any) string
	DecodeKey(path Path, key string, ctx map[string]any) string
}

// TimeNative defers to the timestamp's own field structure:
// Object{"seconds": Int, "nanos": Int}. This is the default.
type TimeNative struct{}

func (TimeNative) EncodeTime(e *Encoder, t time.Time) error {
	obj := e.Object()
	obj.SetInt("seconds", t.Unix())
	obj.SetInt("nanos", int64(t.Nanosecond()))
	return nil
}

func (TimeNative) DecodeTime(d *Decoder) (time.Time, error) {
	obj, err := d.Object()
	if err != nil {
		return time.Time{}, err
	}
	sec, err := obj.Int("seconds")
	if err != nil {
		return time.Time{}, err
	}
	nanos, err := obj.Int("nanos")
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, nanos).UTC(), nil
}

// TimeUnixSeconds stores the timestamp as seconds since the Unix epoch in a
// Double node.
type TimeUnixSeconds struct{}

func (TimeUnixSeconds) EncodeTime(e *Encoder, t time.Time) error {
	e.Double(float64(t.UnixNano()) / 1e9)
	return nil
}

func (TimeUnixSeconds) DecodeTime(d *Decoder) (time.Time, error) {
	f, err := d.Double()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, int64(f*1e9)).UTC(), nil
}

// TimeUnixMillis is TimeUnixSeconds scaled by 1000 in both directions.
type TimeUnixMillis struct{}

func (TimeUnixMillis) EncodeTime(e *Encoder, t time.Time) error {
	e.Double(float64(t.UnixNano()) / 1e6)
	return nil
}

func (TimeUnixMillis) DecodeTime(d *Decoder) (time.Time, error) {
	f, err := d.Double()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, int64(f*1e6)).UTC(), nil
}

// TimeISO8601 stores the timestamp as an RFC 3339 string.
type TimeISO8601 struct{}

func (TimeISO8601) EncodeTime(e *Encoder, t time.Time) error {
	e.String(t.UTC().Format(time.RFC3339Nano))
	return nil
}

func (TimeISO8601) DecodeTime(d *Decoder) (time.Time, error) {
	s, err := d.String()
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, corrupted(d.Path(), "unparsable timestamp", err)
	}
	return t, nil
}

// TimeFormat stores the timestamp as a string in a caller-chosen layout.
type TimeFormat struct {
	Layout string
}

func (f TimeFormat) EncodeTime(e *Encoder, t time.Time) error {
	e.String(t.UTC().Format(f.Layout))
	return nil
}

func (f TimeFormat) DecodeTime(d *Decoder) (time.Time, error) {
	s, err := d.String()
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(f.Layout, s)
	if err != nil {
		return time.Time{}, corrupted(d.Path(), "unparsable timestamp", err)
	}
	return t, nil
}

// TimeFunc delegates to caller-supplied closures. A nil closure falls back to
// the native shape for that direction.
type TimeFunc struct {
	Encode func(e *Encoder, t time.Time) error
	Decode func(d *Decoder) (time.Time, error)
}

func (f TimeFunc) EncodeTime(e *Encoder, t time.Time) error {
	if f.Encode == nil {
		return TimeNative{}.EncodeTime(e, t)
	}
	return f.Encode(e, t)
}

func (f TimeFunc) DecodeTime(d *Decoder) (time.Time, error) {
	if f.Decode == nil {
		return TimeNative{}.DecodeTime(d)
	}
	return f.Decode(d)
}

// BytesBase64 stores blobs as standard-alphabet base64 strings. This is the
// default.
type BytesBase64 struct{}

func (BytesBase64) EncodeBytes(e *Encoder, b []byte) error {
	e.String(base64.StdEncoding.EncodeToString(b))
	return nil
}

func (BytesBase64) DecodeBytes(d *Decoder) ([]byte, error) {
	s, err := d.String()
	if err != nil {
		return nil, err
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, corrupted(d.Path(), "invalid base64", err)
	}
	return b, nil
}

// BytesNative defers to the blob's own structure: an Array of Int nodes, one
// per byte.
type BytesNative struct{}

func (BytesNative) EncodeBytes(e *Encoder, b []byte) error {
	arr := e.Array()
	for _, by := range b {
		arr.AddInt(int64(by))
	}
	return nil
}

func (BytesNative) DecodeBytes(d *Decoder) ([]byte, error) {
	arr, err := d.Array()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, arr.Len())
	for !arr.End() {
		b, err := arr.Uint8()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// BytesFunc delegates to caller-supplied closures, defaulting per direction
// to base64.
type BytesFunc struct {
	Encode func(e *Encoder, b []byte) error
	Decode func(d *Decoder) ([]byte, error)
}

func (f BytesFunc) EncodeBytes(e *Encoder, b []byte) error {
	if f.Encode == nil {
		return BytesBase64{}.EncodeBytes(e, b)
	}
	return f.Encode(e, b)
}

func (f BytesFunc) DecodeBytes(d *Decoder) ([]byte, error) {
	if f.Decode == nil {
		return BytesBase64{}.DecodeBytes(d)
	}
	return f.Decode(d)
}

// KeysIdentity stores keys unchanged. This is the default.
type KeysIdentity struct{}

func (KeysIdentity) EncodeKey(_ Path, key string, _ map[string]any) string { return key }
func (KeysIdentity) DecodeKey(_ Path, key string, _ map[string]any) string { return key }

// KeysSnakeCase stores camelCase field names as snake_case and converts them
// back on decode. Leading and trailing underscores survive both directions.
type KeysSnakeCase struct{}

func (KeysSnakeCase) EncodeKey(_ Path, key string, _ map[string]any) string {
	return casing.ToSnake(key)
}

func (KeysSnakeCase) DecodeKey(_ Path, key string, _ map[string]any) string {
	return casing.ToCamel(key)
}

// KeysFunc delegates to caller-supplied closures; a nil closure is identity
// for that direction.
type KeysFunc struct {
	Encode func(path Path, key string, ctx map[string]any) string
	Decode func(path Path, key string, ctx map[string]any) string
}

func (f KeysFunc) EncodeKey(path Path, key string, ctx map[string]any) string {
	if f.Encode == nil {
		return key
	}
	return f.Encode(path, key, ctx)
}

func (f KeysFunc) DecodeKey(path Path, key string, ctx map[string]any) string {
	if f.Decode == nil {
		return key
	}
	return f.Decode(path, key, ctx)
}
