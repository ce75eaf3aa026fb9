// Package bridge converts the generic value tree to and from external
// representations: JSON, CBOR, msgpack and protobuf Struct. Absent array
// elements and object entries flatten to explicit nulls on the way out, since
// none of the target formats distinguish the two; Decimal nodes survive JSON
// losslessly (emitted as raw numbers) and flatten to their canonical decimal
// string everywhere else.
package bridge

import (
	"fmt"
	"math"

	"github.com/unkn0wn-root/treecodec"
)

// toGo lowers a tree to plain Go values for byte-oriented marshalers.
func toGo(v *treecodec.Value) any {
	switch v.Kind() {
	case treecodec.KindBool:
		b, _ := v.AsBool()
		return b
	case treecodec.KindInt:
		i, _ := v.AsInt()
		return i
	case treecodec.KindDouble:
		f, _ := v.AsDouble()
		return f
	case treecodec.KindDecimal:
		d, _ := v.AsDecimal()
		return d.String()
	case treecodec.KindString:
		s, _ := v.AsString()
		return s
	case treecodec.KindArray:
		elems, _ := v.AsArray()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = toGo(e)
		}
		return out
	case treecodec.KindObject:
		fields, _ := v.AsObject()
		out := make(map[string]any, len(fields))
		for k, e := range fields {
			out[k] = toGo(e)
		}
		return out
	default: // null or absent
		return nil
	}
}

// fromGo lifts unmarshaled plain Go values back into a tree. It accepts the
// union of types the CBOR and msgpack decoders produce.
func fromGo(x any) (*treecodec.Value, error) {
	switch v := x.(type) {
	case nil:
		return treecodec.Null(), nil
	case bool:
		return treecodec.Bool(v), nil
	case int64:
		return treecodec.Int(v), nil
	case int:
		return treecodec.Int(int64(v)), nil
	case int8:
		return treecodec.Int(int64(v)), nil
	case int16:
		return treecodec.Int(int64(v)), nil
	case int32:
		return treecodec.Int(int64(v)), nil
	case uint8:
		return treecodec.Int(int64(v)), nil
	case uint16:
		return treecodec.Int(int64(v)), nil
	case uint32:
		return treecodec.Int(int64(v)), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, fmt.Errorf("bridge: unsigned value %d overflows the integer kind", v)
		}
		return treecodec.Int(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("bridge: unsigned value %d overflows the integer kind", v)
		}
		return treecodec.Int(int64(v)), nil
	case float32:
		return treecodec.Double(float64(v)), nil
	case float64:
		return treecodec.Double(v), nil
	case string:
		return treecodec.String(v), nil
	case []byte:
		return treecodec.String(string(v)), nil
	case []any:
		elems := make([]*treecodec.Value, len(v))
		for i, e := range v {
			gv, err := fromGo(e)
			if err != nil {
				return nil, fmt.Errorf("bridge: element %d: %w", i, err)
			}
			elems[i] = gv
		}
		return treecodec.Array(elems...), nil
	case map[string]any:
		fields := make(map[string]*treecodec.Value, len(v))
		for k, e := range v {
			gv, err := fromGo(e)
			if err != nil {
				return nil, fmt.Errorf("bridge: key %q: %w", k, err)
			}
			fields[k] = gv
		}
		return treecodec.Object(fields), nil
	case map[any]any:
		fields := make(map[string]*treecodec.Value, len(v))
		for k, e := range v {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("bridge: non-string map key %v", k)
			}
			gv, err := fromGo(e)
			if err != nil {
				return nil, fmt.Errorf("bridge: key %q: %w", ks, err)
			}
			fields[ks] = gv
		}
		return treecodec.Object(fields), nil
	default:
		return nil, fmt.Errorf("bridge: unsupported value type %T", x)
	}
}
