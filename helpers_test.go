package treecodec

// marshalFunc and unmarshalFunc adapt closures to the field-visitor contract
// so tests can drive sessions directly.
type marshalFunc func(*Encoder) error

func (f marshalFunc) MarshalTree(e *Encoder) error { return f(e) }

type unmarshalFunc func(*Decoder) error

func (f unmarshalFunc) UnmarshalTree(d *Decoder) error { return f(d) }
