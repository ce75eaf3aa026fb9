package treecodec

import (
	"math"
	"time"
)

// slot is one position in a deferred container: a resolved value, a nested
// deferred container, or a sub-encoder session still mid-encode.
type slot interface {
	resolve() *Value
}

func (v *Value) resolve() *Value { return v }

// deferredObject is a mutable key-to-slot mapping awaiting resolution. It is
// exclusively owned by the encode call that created it.
type deferredObject struct {
	slots map[string]slot
}

func newDeferredObject() *deferredObject {
	return &deferredObject{slots: map[string]slot{}}
}

func (o *deferredObject) resolve() *Value {
	out := make(map[string]*Value, len(o.slots))
	for k, s := range o.slots {
		out[k] = resolveSlot(s)
	}
	return Object(out)
}

// deferredArray is the ordered counterpart of deferredObject.
type deferredArray struct {
	slots []slot
}

func (a *deferredArray) resolve() *Value {
	elems := make([]*Value, len(a.slots))
	for i, s := range a.slots {
		elems[i] = resolveSlot(s)
	}
	return Array(elems...)
}

// resolveSlot flattens one slot. A sub-encoder that never wrote anything
// resolves to an empty object, matching delegated-encode semantics.
func resolveSlot(s slot) *Value {
	v := s.resolve()
	if v == nil {
		return Object(nil)
	}
	return v
}

// Encoder is one encode session: it corresponds to exactly one position in
// the output tree and owns at most one of a scalar slot, a deferred object,
// or a deferred array. Establishing a second, different kind on a committed
// session is a contract violation and panics.
type Encoder struct {
	cfg  *config
	path Path

	scalar *Value
	obj    *deferredObject
	arr    *deferredArray
}

func newEncoder(cfg *config, path Path) *Encoder {
	return &Encoder{cfg: cfg, path: path}
}

// Path reports the position this session writes to, for custom strategies.
func (e *Encoder) Path() Path { return e.path }

// Context exposes the caller-supplied option bag to custom strategies.
func (e *Encoder) Context() map[string]any { return e.cfg.ctx }

func (e *Encoder) resolve() *Value {
	switch {
	case e.scalar != nil:
		return e.scalar
	case e.obj != nil:
		return e.obj.resolve()
	case e.arr != nil:
		return e.arr.resolve()
	}
	return nil
}

func (e *Encoder) committed() string {
	switch {
	case e.scalar != nil:
		return "a single value"
	case e.obj != nil:
		return "a keyed container"
	case e.arr != nil:
		return "an indexed container"
	}
	return ""
}

// Object commits the session to a keyed container, allocating it on first
// request. Repeated calls return a view over the same container.
func (e *Encoder) Object() *ObjectEncoder {
	if e.obj == nil {
		if c := e.committed(); c != "" {
			contractViolation(e.path, "keyed container requested on a session already holding "+c)
		}
		e.obj = newDeferredObject()
	}
	return &ObjectEncoder{enc: e, node: e.obj, path: e.path}
}

// Array commits the session to an indexed container, allocating it on first
// request. Repeated calls return a view over the same container.
func (e *Encoder) Array() *ArrayEncoder {
	if e.arr == nil {
		if c := e.committed(); c != "" {
			contractViolation(e.path, "indexed container requested on a session already holding "+c)
		}
		e.arr = &deferredArray{}
	}
	return &ArrayEncoder{enc: e, node: e.arr, path: e.path}
}

func (e *Encoder) setScalar(v *Value) {
	if c := e.committed(); c != "" {
		contractViolation(e.path, "single value written to a session already holding "+c)
	}
	e.scalar = v
}

// Null writes an explicit null as the session's single value.
func (e *Encoder) Null() { e.setScalar(Null()) }

func (e *Encoder) Bool(v bool)      { e.setScalar(Bool(v)) }
func (e *Encoder) Int(v int64)      { e.setScalar(Int(v)) }
func (e *Encoder) Double(v float64) { e.setScalar(Double(v)) }
func (e *Encoder) String(v string)  { e.setScalar(String(v)) }
func (e *Encoder) Ref(r Ref)        { e.setScalar(String(r.String())) }

// Uint funnels unsigned integers into the single signed integer kind,
// rejecting magnitudes the canonical width cannot hold.
func (e *Encoder) Uint(v uint64) error {
	if v > math.MaxInt64 {
		return corrupted(e.path, "unsigned value overflows the integer kind", nil)
	}
	e.Int(int64(v))
	return nil
}

// Decimal writes an arbitrary-precision decimal, passed through unchanged.
func (e *Encoder) Decimal(v DecimalValue) { e.setScalar(Decimal(v)) }

// Time encodes a timestamp through the configured strategy.
func (e *Encoder) Time(t time.Time) error { return e.cfg.time.EncodeTime(e, t) }

// Bytes encodes a binary blob through the configured strategy.
func (e *Encoder) Bytes(b []byte) error { return e.cfg.bytes.EncodeBytes(e, b) }

// Value installs a pre-built generic value as the session's single value.
// A nil value is written as an explicit null.
func (e *Encoder) Value(v *Value) {
	if v == nil {
		v = Null()
	}
	e.setScalar(v)
}

// Encode forwards the whole session to a marshaler, letting wrapper types
// delegate without an extra tree level.
func (e *Encoder) Encode(m TreeMarshaler) error {
	if m == nil {
		e.Null()
		return nil
	}
	return m.MarshalTree(e)
}

// superKey is the reserved segment used for supertype delegation.
const superKey = "super"

// ObjectEncoder writes fields of one deferred keyed container. Writing the
// same key twice overwrites: the latest value wins.
type ObjectEncoder struct {
	enc  *Encoder
	node *deferredObject
	path Path
}

func (o *ObjectEncoder) storageKey(key string) string {
	return o.enc.cfg.keys.EncodeKey(o.path, key, o.enc.cfg.ctx)
}

func (o *ObjectEncoder) set(key string, v *Value) {
	o.node.slots[o.storageKey(key)] = v
}

func (o *ObjectEncoder) SetNull(key string)            { o.set(key, Null()) }
func (o *ObjectEncoder) SetBool(key string, v bool)    { o.set(key, Bool(v)) }
func (o *ObjectEncoder) SetInt(key string, v int64)    { o.set(key, Int(v)) }
func (o *ObjectEncoder) SetDouble(key string, v float64) { o.set(key, Double(v)) }
func (o *ObjectEncoder) SetString(key string, v string)  { o.set(key, String(v)) }
func (o *ObjectEncoder) SetRef(key string, r Ref)        { o.set(key, String(r.String())) }

func (o *ObjectEncoder) SetUint(key string, v uint64) error {
	if v > math.MaxInt64 {
		return corrupted(o.path.Child(NamedKey(key)), "unsigned value overflows the integer kind", nil)
	}
	o.SetInt(key, int64(v))
	return nil
}

func (o *ObjectEncoder) SetDecimal(key string, v DecimalValue) { o.set(key, Decimal(v)) }

// SetValue installs a pre-built generic value. Nil is stored as explicit null.
func (o *ObjectEncoder) SetValue(key string, v *Value) {
	if v == nil {
		v = Null()
	}
	o.set(key, v)
}

func (o *ObjectEncoder) SetTime(key string, t time.Time) error {
	return o.enc.cfg.time.EncodeTime(o.Encoder(key), t)
}

func (o *ObjectEncoder) SetBytes(key string, b []byte) error {
	return o.enc.cfg.bytes.EncodeBytes(o.Encoder(key), b)
}

// Set encodes a nested record under key via a fresh sub-session.
func (o *ObjectEncoder) Set(key string, m TreeMarshaler) error {
	if m == nil {
		o.SetNull(key)
		return nil
	}
	return m.MarshalTree(o.Encoder(key))
}

// Object returns the nested keyed container for key, creating it on first
// request. Asking again for the same key returns the same node; asking for a
// key already committed to a different kind is a contract violation.
func (o *ObjectEncoder) Object(key string) *ObjectEncoder {
	sk := o.storageKey(key)
	child := o.path.Child(NamedKey(key))
	switch cur := o.node.slots[sk].(type) {
	case nil:
		n := newDeferredObject()
		o.node.slots[sk] = n
		return &ObjectEncoder{enc: o.enc, node: n, path: child}
	case *deferredObject:
		return &ObjectEncoder{enc: o.enc, node: cur, path: child}
	default:
		contractViolation(child, "keyed container requested for a key already committed to another kind")
		return nil
	}
}

// Array is the indexed-container counterpart of Object.
func (o *ObjectEncoder) Array(key string) *ArrayEncoder {
	sk := o.storageKey(key)
	child := o.path.Child(NamedKey(key))
	switch cur := o.node.slots[sk].(type) {
	case nil:
		n := &deferredArray{}
		o.node.slots[sk] = n
		return &ArrayEncoder{enc: o.enc, node: n, path: child}
	case *deferredArray:
		return &ArrayEncoder{enc: o.enc, node: cur, path: child}
	default:
		contractViolation(child, "indexed container requested for a key already committed to another kind")
		return nil
	}
}

// Encoder installs a fresh sub-session under key and returns it. The slot
// resolves to whatever the sub-session produces, or an empty object when it
// produces nothing.
func (o *ObjectEncoder) Encoder(key string) *Encoder {
	sub := newEncoder(o.enc.cfg, o.path.Child(NamedKey(key)))
	o.node.slots[o.storageKey(key)] = sub
	return sub
}

// Super returns a sub-session under the reserved supertype key, for layered
// record types that delegate part of their encoding upward.
func (o *ObjectEncoder) Super() *Encoder { return o.Encoder(superKey) }

// ArrayEncoder appends elements to one deferred indexed container.
type ArrayEncoder struct {
	enc  *Encoder
	node *deferredArray
	path Path
}

// Len reports how many elements have been written so far.
func (a *ArrayEncoder) Len() int { return len(a.node.slots) }

func (a *ArrayEncoder) add(s slot) { a.node.slots = append(a.node.slots, s) }

func (a *ArrayEncoder) AddNull()            { a.add(Null()) }
func (a *ArrayEncoder) AddBool(v bool)      { a.add(Bool(v)) }
func (a *ArrayEncoder) AddInt(v int64)      { a.add(Int(v)) }
func (a *ArrayEncoder) AddDouble(v float64) { a.add(Double(v)) }
func (a *ArrayEncoder) AddString(v string)  { a.add(String(v)) }
func (a *ArrayEncoder) AddRef(r Ref)        { a.add(String(r.String())) }

func (a *ArrayEncoder) AddUint(v uint64) error {
	if v > math.MaxInt64 {
		return corrupted(a.path.Child(IndexKey(a.Len())), "unsigned value overflows the integer kind", nil)
	}
	a.AddInt(int64(v))
	return nil
}

func (a *ArrayEncoder) AddDecimal(v DecimalValue) { a.add(Decimal(v)) }

// AddValue appends a pre-built generic value. Nil is stored as explicit null.
func (a *ArrayEncoder) AddValue(v *Value) {
	if v == nil {
		v = Null()
	}
	a.add(v)
}

func (a *ArrayEncoder) AddTime(t time.Time) error {
	return a.enc.cfg.time.EncodeTime(a.Encoder(), t)
}

func (a *ArrayEncoder) AddBytes(b []byte) error {
	return a.enc.cfg.bytes.EncodeBytes(a.Encoder(), b)
}

// Add encodes a nested record as the next element via a fresh sub-session.
func (a *ArrayEncoder) Add(m TreeMarshaler) error {
	if m == nil {
		a.AddNull()
		return nil
	}
	return m.MarshalTree(a.Encoder())
}

// Object appends and returns a nested keyed container.
func (a *ArrayEncoder) Object() *ObjectEncoder {
	n := newDeferredObject()
	child := a.path.Child(IndexKey(a.Len()))
	a.add(n)
	return &ObjectEncoder{enc: a.enc, node: n, path: child}
}

// Array appends and returns a nested indexed container.
func (a *ArrayEncoder) Array() *ArrayEncoder {
	n := &deferredArray{}
	child := a.path.Child(IndexKey(a.Len()))
	a.add(n)
	return &ArrayEncoder{enc: a.enc, node: n, path: child}
}

// Encoder appends a fresh sub-session as the next element and returns it.
func (a *ArrayEncoder) Encoder() *Encoder {
	sub := newEncoder(a.enc.cfg, a.path.Child(IndexKey(a.Len())))
	a.add(sub)
	return sub
}
