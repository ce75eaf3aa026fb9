package bridge

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/unkn0wn-root/treecodec"
)

// ToStruct renders a tree as a protobuf Struct value. Struct carries all
// numbers as float64, so Int nodes that cannot round-trip exactly are
// rejected; Decimal nodes flatten to their canonical string.
func ToStruct(v *treecodec.Value) (*structpb.Value, error) {
	switch v.Kind() {
	case treecodec.KindNull:
		return structpb.NewNullValue(), nil
	case treecodec.KindBool:
		b, _ := v.AsBool()
		return structpb.NewBoolValue(b), nil
	case treecodec.KindInt:
		i, _ := v.AsInt()
		f := float64(i)
		if int64(f) != i {
			return nil, fmt.Errorf("bridge: integer %d not exactly representable in a struct number", i)
		}
		return structpb.NewNumberValue(f), nil
	case treecodec.KindDouble:
		f, _ := v.AsDouble()
		return structpb.NewNumberValue(f), nil
	case treecodec.KindDecimal:
		d, _ := v.AsDecimal()
		return structpb.NewStringValue(d.String()), nil
	case treecodec.KindString:
		s, _ := v.AsString()
		return structpb.NewStringValue(s), nil
	case treecodec.KindArray:
		elems, _ := v.AsArray()
		vals := make([]*structpb.Value, len(elems))
		for i, e := range elems {
			pv, err := ToStruct(e)
			if err != nil {
				return nil, err
			}
			vals[i] = pv
		}
		return structpb.NewListValue(&structpb.ListValue{Values: vals}), nil
	case treecodec.KindObject:
		fields, _ := v.AsObject()
		out := make(map[string]*structpb.Value, len(fields))
		for k, e := range fields {
			pv, err := ToStruct(e)
			if err != nil {
				return nil, err
			}
			out[k] = pv
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: out}), nil
	}
	// absent flattens to null like every other bridge
	return structpb.NewNullValue(), nil
}

// FromStruct lifts a protobuf Struct value into a tree. Whole numbers within
// the float64-exact range become Int nodes, as in the JSON bridge.
func FromStruct(pv *structpb.Value) *treecodec.Value {
	if pv == nil {
		return treecodec.Null()
	}
	switch k := pv.GetKind().(type) {
	case *structpb.Value_NullValue:
		return treecodec.Null()
	case *structpb.Value_BoolValue:
		return treecodec.Bool(k.BoolValue)
	case *structpb.Value_NumberValue:
		f := k.NumberValue
		if f == math.Trunc(f) && f >= -9007199254740991 && f <= 9007199254740991 {
			return treecodec.Int(int64(f))
		}
		return treecodec.Double(f)
	case *structpb.Value_StringValue:
		return treecodec.String(k.StringValue)
	case *structpb.Value_ListValue:
		vals := k.ListValue.GetValues()
		elems := make([]*treecodec.Value, len(vals))
		for i, e := range vals {
			elems[i] = FromStruct(e)
		}
		return treecodec.Array(elems...)
	case *structpb.Value_StructValue:
		in := k.StructValue.GetFields()
		fields := make(map[string]*treecodec.Value, len(in))
		for name, e := range in {
			fields[name] = FromStruct(e)
		}
		return treecodec.Object(fields)
	}
	return treecodec.Null()
}
