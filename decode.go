package treecodec

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Decoder is one decode session: an immutable borrowed generic value (or
// absence) plus the path that locates it. It holds no other state; the full
// tree already exists when decoding begins.
type Decoder struct {
	cfg  *config
	path Path
	val  *Value // nil = absent
}

// Path reports the position this session reads from, for custom strategies.
func (d *Decoder) Path() Path { return d.path }

// Context exposes the caller-supplied option bag to custom strategies.
func (d *Decoder) Context() map[string]any { return d.cfg.ctx }

// Present reports whether any value (including explicit null) exists here.
func (d *Decoder) Present() bool { return d.val != nil }

// IsNull reports whether the value is an explicit null.
func (d *Decoder) IsNull() bool { return d.val.IsNull() }

// Value returns the borrowed generic value, nil when absent.
func (d *Decoder) Value() *Value { return d.val }

// require selects between the two absence-shaped failures: ValueNotFound when
// nothing usable is here (absent or explicit null read as non-optional), and
// TypeMismatch when a value exists but has the wrong kind.
func (d *Decoder) require(k Kind) (*Value, error) {
	if d.val == nil || d.val.kind == KindNull {
		return nil, &ValueNotFoundError{Expected: k.String(), Path: d.path}
	}
	if d.val.kind != k {
		return nil, &TypeMismatchError{Expected: k.String(), Found: d.val.kind.String(), Path: d.path}
	}
	return d.val, nil
}

func (d *Decoder) Bool() (bool, error) {
	v, err := d.require(KindBool)
	if err != nil {
		return false, err
	}
	return v.boolVal, nil
}

func (d *Decoder) Int() (int64, error) {
	v, err := d.require(KindInt)
	if err != nil {
		return 0, err
	}
	return v.intVal, nil
}

func (d *Decoder) Double() (float64, error) {
	v, err := d.require(KindDouble)
	if err != nil {
		return 0, err
	}
	return v.dblVal, nil
}

func (d *Decoder) String() (string, error) {
	v, err := d.require(KindString)
	if err != nil {
		return "", err
	}
	return v.strVal, nil
}

func (d *Decoder) Decimal() (DecimalValue, error) {
	v, err := d.require(KindDecimal)
	if err != nil {
		return DecimalValue{}, err
	}
	return v.decVal, nil
}

// narrowInt checks that the stored integer fits the requested width exactly.
func (d *Decoder) narrowInt(min, max int64, typ string) (int64, error) {
	i, err := d.Int()
	if err != nil {
		return 0, err
	}
	if i < min || i > max {
		return 0, corrupted(d.path, fmt.Sprintf("value %d does not fit in %s", i, typ), nil)
	}
	return i, nil
}

func (d *Decoder) Int8() (int8, error) {
	i, err := d.narrowInt(math.MinInt8, math.MaxInt8, "int8")
	return int8(i), err
}

func (d *Decoder) Int16() (int16, error) {
	i, err := d.narrowInt(math.MinInt16, math.MaxInt16, "int16")
	return int16(i), err
}

func (d *Decoder) Int32() (int32, error) {
	i, err := d.narrowInt(math.MinInt32, math.MaxInt32, "int32")
	return int32(i), err
}

func (d *Decoder) Uint8() (uint8, error) {
	i, err := d.narrowInt(0, math.MaxUint8, "uint8")
	return uint8(i), err
}

func (d *Decoder) Uint16() (uint16, error) {
	i, err := d.narrowInt(0, math.MaxUint16, "uint16")
	return uint16(i), err
}

func (d *Decoder) Uint32() (uint32, error) {
	i, err := d.narrowInt(0, math.MaxUint32, "uint32")
	return uint32(i), err
}

func (d *Decoder) Uint64() (uint64, error) {
	i, err := d.narrowInt(0, math.MaxInt64, "uint64")
	return uint64(i), err
}

// Float32 narrows the stored double, requiring a lossless round-trip.
func (d *Decoder) Float32() (float32, error) {
	f, err := d.Double()
	if err != nil {
		return 0, err
	}
	if !math.IsNaN(f) && float64(float32(f)) != f {
		return 0, corrupted(d.path, fmt.Sprintf("value %v cannot be represented exactly as float32", f), nil)
	}
	return float32(f), nil
}

// Time decodes a timestamp through the configured strategy.
func (d *Decoder) Time() (time.Time, error) { return d.cfg.time.DecodeTime(d) }

// Bytes decodes a binary blob through the configured strategy.
func (d *Decoder) Bytes() ([]byte, error) { return d.cfg.bytes.DecodeBytes(d) }

// Ref decodes an opaque resource identifier from its canonical string form.
func (d *Decoder) Ref() (Ref, error) {
	s, err := d.String()
	if err != nil {
		return Ref{}, err
	}
	r, ok := parseRef(s)
	if !ok {
		return Ref{}, corrupted(d.path, "empty resource identifier", nil)
	}
	return r, nil
}

// Decode hands the session to an unmarshaler, for nested records.
func (d *Decoder) Decode(into TreeUnmarshaler) error {
	return into.UnmarshalTree(d)
}

// Object requires the value to be a keyed container.
func (d *Decoder) Object() (*ObjectDecoder, error) {
	v, err := d.require(KindObject)
	if err != nil {
		return nil, err
	}
	return newObjectDecoder(d.cfg, d.path, v.objVal), nil
}

// Array requires the value to be an indexed container.
func (d *Decoder) Array() (*ArrayDecoder, error) {
	v, err := d.require(KindArray)
	if err != nil {
		return nil, err
	}
	return &ArrayDecoder{cfg: d.cfg, path: d.path, elems: v.arrVal}, nil
}

// ObjectDecoder reads fields from one keyed container by in-memory key name.
type ObjectDecoder struct {
	cfg    *config
	path   Path
	fields map[string]*Value
}

// newObjectDecoder applies the key strategy to the stored keys so lookups use
// in-memory names. When two stored keys collapse to the same name, the
// lexicographically later stored key wins; sorted iteration keeps that
// deterministic.
func newObjectDecoder(cfg *config, path Path, raw map[string]*Value) *ObjectDecoder {
	if _, identity := cfg.keys.(KeysIdentity); identity {
		return &ObjectDecoder{cfg: cfg, path: path, fields: raw}
	}
	names := make([]string, 0, len(raw))
	for k := range raw {
		names = append(names, k)
	}
	sort.Strings(names)
	fields := make(map[string]*Value, len(raw))
	for _, k := range names {
		fields[cfg.keys.DecodeKey(path, k, cfg.ctx)] = raw[k]
	}
	return &ObjectDecoder{cfg: cfg, path: path, fields: fields}
}

// Has reports whether the key exists, regardless of its value.
func (o *ObjectDecoder) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

// Keys returns the in-memory key names in sorted order.
func (o *ObjectDecoder) Keys() []string {
	out := make([]string, 0, len(o.fields))
	for k := range o.fields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Decoder returns the sub-session for key, failing with KeyNotFound when the
// object lacks the key entirely. A present key mapped to null or to nothing
// still succeeds here; the scalar reads on the result decide what that means.
func (o *ObjectDecoder) Decoder(key string) (*Decoder, error) {
	v, ok := o.fields[key]
	if !ok {
		return nil, &KeyNotFoundError{Key: key, Path: o.path}
	}
	return &Decoder{cfg: o.cfg, path: o.path.Child(NamedKey(key)), val: v}, nil
}

// opt returns the sub-session for key, or nil when the key is missing or its
// value is absent or explicit null.
func (o *ObjectDecoder) opt(key string) *Decoder {
	v, ok := o.fields[key]
	if !ok || v == nil || v.kind == KindNull {
		return nil
	}
	return &Decoder{cfg: o.cfg, path: o.path.Child(NamedKey(key)), val: v}
}

func (o *ObjectDecoder) Bool(key string) (bool, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return false, err
	}
	return d.Bool()
}

func (o *ObjectDecoder) Int(key string) (int64, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return 0, err
	}
	return d.Int()
}

func (o *ObjectDecoder) Int8(key string) (int8, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return 0, err
	}
	return d.Int8()
}

func (o *ObjectDecoder) Int16(key string) (int16, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return 0, err
	}
	return d.Int16()
}

func (o *ObjectDecoder) Int32(key string) (int32, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return 0, err
	}
	return d.Int32()
}

func (o *ObjectDecoder) Uint8(key string) (uint8, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return 0, err
	}
	return d.Uint8()
}

func (o *ObjectDecoder) Uint16(key string) (uint16, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return 0, err
	}
	return d.Uint16()
}

func (o *ObjectDecoder) Uint32(key string) (uint32, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return 0, err
	}
	return d.Uint32()
}

func (o *ObjectDecoder) Uint64(key string) (uint64, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return 0, err
	}
	return d.Uint64()
}

func (o *ObjectDecoder) Double(key string) (float64, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return 0, err
	}
	return d.Double()
}

func (o *ObjectDecoder) Float32(key string) (float32, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return 0, err
	}
	return d.Float32()
}

func (o *ObjectDecoder) String(key string) (string, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return "", err
	}
	return d.String()
}

func (o *ObjectDecoder) Decimal(key string) (DecimalValue, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return DecimalValue{}, err
	}
	return d.Decimal()
}

func (o *ObjectDecoder) Time(key string) (time.Time, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return time.Time{}, err
	}
	return d.Time()
}

func (o *ObjectDecoder) Bytes(key string) ([]byte, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return nil, err
	}
	return d.Bytes()
}

func (o *ObjectDecoder) Ref(key string) (Ref, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return Ref{}, err
	}
	return d.Ref()
}

// Decode reads a required nested record under key.
func (o *ObjectDecoder) Decode(key string, into TreeUnmarshaler) error {
	d, err := o.Decoder(key)
	if err != nil {
		return err
	}
	return into.UnmarshalTree(d)
}

// Object reads a required nested keyed container.
func (o *ObjectDecoder) Object(key string) (*ObjectDecoder, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return nil, err
	}
	return d.Object()
}

// Array reads a required nested indexed container.
func (o *ObjectDecoder) Array(key string) (*ArrayDecoder, error) {
	d, err := o.Decoder(key)
	if err != nil {
		return nil, err
	}
	return d.Array()
}

// OptBool reads an optional field: nil when the key is missing or null.
func (o *ObjectDecoder) OptBool(key string) (*bool, error) {
	d := o.opt(key)
	if d == nil {
		return nil, nil
	}
	v, err := d.Bool()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (o *ObjectDecoder) OptInt(key string) (*int64, error) {
	d := o.opt(key)
	if d == nil {
		return nil, nil
	}
	v, err := d.Int()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (o *ObjectDecoder) OptDouble(key string) (*float64, error) {
	d := o.opt(key)
	if d == nil {
		return nil, nil
	}
	v, err := d.Double()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (o *ObjectDecoder) OptString(key string) (*string, error) {
	d := o.opt(key)
	if d == nil {
		return nil, nil
	}
	v, err := d.String()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (o *ObjectDecoder) OptTime(key string) (*time.Time, error) {
	d := o.opt(key)
	if d == nil {
		return nil, nil
	}
	v, err := d.Time()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (o *ObjectDecoder) OptBytes(key string) ([]byte, error) {
	d := o.opt(key)
	if d == nil {
		return nil, nil
	}
	return d.Bytes()
}

// DecodeIfPresent reads an optional nested record, reporting whether it was
// present and non-null.
func (o *ObjectDecoder) DecodeIfPresent(key string, into TreeUnmarshaler) (bool, error) {
	d := o.opt(key)
	if d == nil {
		return false, nil
	}
	if err := into.UnmarshalTree(d); err != nil {
		return false, err
	}
	return true, nil
}

// Super returns the sub-session at the reserved supertype key. A missing key
// yields an absent session rather than an error, so optional supertype layers
// never force failure.
func (o *ObjectDecoder) Super() *Decoder {
	return &Decoder{cfg: o.cfg, path: o.path.Child(NamedKey(superKey)), val: o.fields[superKey]}
}

// ArrayDecoder reads elements of one indexed container in order. The cursor
// advances only on a successful read, so a failed element can be reexamined.
type ArrayDecoder struct {
	cfg   *config
	path  Path
	elems []*Value
	idx   int
}

// Len reports the container length.
func (a *ArrayDecoder) Len() int { return len(a.elems) }

// Index reports the cursor position.
func (a *ArrayDecoder) Index() int { return a.idx }

// End reports whether the cursor has consumed every element.
func (a *ArrayDecoder) End() bool { return a.idx >= len(a.elems) }

// element returns a session for the current element without advancing.
func (a *ArrayDecoder) element(expected string) (*Decoder, error) {
	if a.End() {
		return nil, &ValueNotFoundError{Expected: expected, Path: a.path.Child(IndexKey(a.idx))}
	}
	return &Decoder{cfg: a.cfg, path: a.path.Child(IndexKey(a.idx)), val: a.elems[a.idx]}, nil
}

// DecodeNull consumes the current element if it is absent or explicit null.
func (a *ArrayDecoder) DecodeNull() bool {
	if a.End() {
		return false
	}
	if e := a.elems[a.idx]; e == nil || e.kind == KindNull {
		a.idx++
		return true
	}
	return false
}

func (a *ArrayDecoder) Bool() (bool, error) {
	d, err := a.element(KindBool.String())
	if err != nil {
		return false, err
	}
	v, err := d.Bool()
	if err == nil {
		a.idx++
	}
	return v, err
}

func (a *ArrayDecoder) Int() (int64, error) {
	d, err := a.element(KindInt.String())
	if err != nil {
		return 0, err
	}
	v, err := d.Int()
	if err == nil {
		a.idx++
	}
	return v, err
}

func (a *ArrayDecoder) Uint8() (uint8, error) {
	d, err := a.element(KindInt.String())
	if err != nil {
		return 0, err
	}
	v, err := d.Uint8()
	if err == nil {
		a.idx++
	}
	return v, err
}

func (a *ArrayDecoder) Double() (float64, error) {
	d, err := a.element(KindDouble.String())
	if err != nil {
		return 0, err
	}
	v, err := d.Double()
	if err == nil {
		a.idx++
	}
	return v, err
}

func (a *ArrayDecoder) String() (string, error) {
	d, err := a.element(KindString.String())
	if err != nil {
		return "", err
	}
	v, err := d.String()
	if err == nil {
		a.idx++
	}
	return v, err
}

func (a *ArrayDecoder) Decimal() (DecimalValue, error) {
	d, err := a.element(KindDecimal.String())
	if err != nil {
		return DecimalValue{}, err
	}
	v, err := d.Decimal()
	if err == nil {
		a.idx++
	}
	return v, err
}

func (a *ArrayDecoder) Time() (time.Time, error) {
	d, err := a.element("timestamp")
	if err != nil {
		return time.Time{}, err
	}
	v, err := d.Time()
	if err == nil {
		a.idx++
	}
	return v, err
}

func (a *ArrayDecoder) Bytes() ([]byte, error) {
	d, err := a.element("bytes")
	if err != nil {
		return nil, err
	}
	v, err := d.Bytes()
	if err == nil {
		a.idx++
	}
	return v, err
}

func (a *ArrayDecoder) Ref() (Ref, error) {
	d, err := a.element(KindString.String())
	if err != nil {
		return Ref{}, err
	}
	v, err := d.Ref()
	if err == nil {
		a.idx++
	}
	return v, err
}

// Decode reads the next element into a nested record.
func (a *ArrayDecoder) Decode(into TreeUnmarshaler) error {
	d, err := a.element(KindObject.String())
	if err != nil {
		return err
	}
	if err := into.UnmarshalTree(d); err != nil {
		return err
	}
	a.idx++
	return nil
}

// Object reads the next element as a keyed container.
func (a *ArrayDecoder) Object() (*ObjectDecoder, error) {
	d, err := a.element(KindObject.String())
	if err != nil {
		return nil, err
	}
	v, err := d.Object()
	if err == nil {
		a.idx++
	}
	return v, err
}

// Array reads the next element as a nested indexed container.
func (a *ArrayDecoder) Array() (*ArrayDecoder, error) {
	d, err := a.element(KindArray.String())
	if err != nil {
		return nil, err
	}
	v, err := d.Array()
	if err == nil {
		a.idx++
	}
	return v, err
}
