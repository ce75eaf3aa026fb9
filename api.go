package treecodec

import "errors"

// TreeMarshaler is the encode half of the field-visitor contract: a record
// type visits its own fields against the session it is handed, typically by
// opening a keyed container and writing one slot per field.
type TreeMarshaler interface {
	MarshalTree(e *Encoder) error
}

// TreeUnmarshaler is the decode half: a record type reconstructs itself by
// pulling expected fields from the session. Implementations should read every
// field before assigning to the receiver, so a failed decode leaves the
// target untouched.
type TreeUnmarshaler interface {
	UnmarshalTree(d *Decoder) error
}

// Options tune both engines. The zero value is usable; nil strategies fall
// back to TimeNative, BytesBase64 and KeysIdentity. Options are snapshotted
// per call and must not be mutated while a call is in flight.
type Options struct {
	Time  TimeCodec
	Bytes BytesCodec
	Keys  KeyCodec

	// Context is an open bag of caller values passed through unmodified to
	// custom strategy callbacks.
	Context map[string]any

	Logger Logger // if nil, NopLogger is used
}

// Encode walks v's fields into a generic value tree. A nil v legitimately
// yields no value; a non-nil v that never writes anything is ErrEmptyTopLevel.
// Contract violations in v's MarshalTree panic with *ContractViolationError.
func Encode(v TreeMarshaler, opts *Options) (*Value, error) {
	if v == nil {
		return nil, nil
	}
	cfg := newConfig(opts)
	e := newEncoder(cfg, nil)
	if err := v.MarshalTree(e); err != nil {
		cfg.log.Debug("encode failed", Fields{"error": err.Error()})
		return nil, err
	}
	out := e.resolve()
	if out == nil {
		return nil, ErrEmptyTopLevel
	}
	return out, nil
}

// Decode reconstructs into from a generic value tree. The tree is borrowed
// read-only for the duration of the call; val may be nil for absence, which
// the target's optional handling decides how to treat.
func Decode(into TreeUnmarshaler, val *Value, opts *Options) error {
	if into == nil {
		return errors.New("treecodec: decode target is nil")
	}
	cfg := newConfig(opts)
	d := &Decoder{cfg: cfg, val: val}
	if err := into.UnmarshalTree(d); err != nil {
		cfg.log.Debug("decode failed", Fields{"error": err.Error()})
		return err
	}
	return nil
}
