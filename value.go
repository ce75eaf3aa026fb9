package treecodec

import (
	"github.com/shopspring/decimal"
)

// DecimalValue is the arbitrary-precision decimal carried by the Decimal
// variant, passed through the codec unchanged.
type DecimalValue = decimal.Decimal

// Kind identifies the active variant of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDouble
	KindDecimal
	KindString
	KindArray
	KindObject
)

// String returns the variant name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is one node of the generic value tree. Exactly one variant is active;
// accessors for a non-active variant report absence instead of failing.
//
// Array elements and Object entries are *Value and may be nil: a nil element
// (or a present key mapped to nil) models "absent", which is distinct from an
// explicit Null node.
type Value struct {
	kind Kind

	boolVal bool
	intVal  int64
	dblVal  float64
	decVal  decimal.Decimal
	strVal  string

	arrVal []*Value
	objVal map[string]*Value
}

// Null creates a null node.
func Null() *Value { return &Value{kind: KindNull} }

// Bool creates a boolean node.
func Bool(v bool) *Value { return &Value{kind: KindBool, boolVal: v} }

// Int creates an integer node. All fixed-width integers collapse to int64.
func Int(v int64) *Value { return &Value{kind: KindInt, intVal: v} }

// Double creates a floating-point node. All float widths collapse to float64.
func Double(v float64) *Value { return &Value{kind: KindDouble, dblVal: v} }

// Decimal creates an arbitrary-precision decimal node.
func Decimal(v decimal.Decimal) *Value { return &Value{kind: KindDecimal, decVal: v} }

// String creates a string node.
func String(v string) *Value { return &Value{kind: KindString, strVal: v} }

// Array creates an ordered-sequence node. Elements may be nil (absent).
func Array(elems ...*Value) *Value {
	return &Value{kind: KindArray, arrVal: elems}
}

// Object creates a keyed node. A nil fields map is treated as empty.
func Object(fields map[string]*Value) *Value {
	if fields == nil {
		fields = map[string]*Value{}
	}
	return &Value{kind: KindObject, objVal: fields}
}

// Kind reports the active variant. A nil receiver reports KindNull.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether the node is an explicit null.
func (v *Value) IsNull() bool { return v != nil && v.kind == KindNull }

func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.kind != KindBool {
		return false, false
	}
	return v.boolVal, true
}

func (v *Value) AsInt() (int64, bool) {
	if v == nil || v.kind != KindInt {
		return 0, false
	}
	return v.intVal, true
}

func (v *Value) AsDouble() (float64, bool) {
	if v == nil || v.kind != KindDouble {
		return 0, false
	}
	return v.dblVal, true
}

func (v *Value) AsDecimal() (decimal.Decimal, bool) {
	if v == nil || v.kind != KindDecimal {
		return decimal.Decimal{}, false
	}
	return v.decVal, true
}

func (v *Value) AsString() (string, bool) {
	if v == nil || v.kind != KindString {
		return "", false
	}
	return v.strVal, true
}

func (v *Value) AsArray() ([]*Value, bool) {
	if v == nil || v.kind != KindArray {
		return nil, false
	}
	return v.arrVal, true
}

func (v *Value) AsObject() (map[string]*Value, bool) {
	if v == nil || v.kind != KindObject {
		return nil, false
	}
	return v.objVal, true
}

// Equal reports deep structural equality. Two nil nodes are equal; a nil node
// never equals a non-nil one, including explicit Null.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == nil && o == nil
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == o.boolVal
	case KindInt:
		return v.intVal == o.intVal
	case KindDouble:
		return v.dblVal == o.dblVal
	case KindDecimal:
		return v.decVal.Equal(o.decVal)
	case KindString:
		return v.strVal == o.strVal
	case KindArray:
		if len(v.arrVal) != len(o.arrVal) {
			return false
		}
		for i := range v.arrVal {
			if !v.arrVal[i].Equal(o.arrVal[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.objVal) != len(o.objVal) {
			return false
		}
		for k, ve := range v.objVal {
			oe, ok := o.objVal[k]
			if !ok || !ve.Equal(oe) {
				return false
			}
		}
		return true
	}
	return false
}
