package bridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/unkn0wn-root/treecodec"
)

// ToJSON renders a tree as JSON bytes. Int and Decimal nodes are emitted as
// raw numbers via json.Number so no precision is lost in transit.
func ToJSON(v *treecodec.Value) ([]byte, error) {
	return json.Marshal(toJSONValue(v))
}

func toJSONValue(v *treecodec.Value) any {
	switch v.Kind() {
	case treecodec.KindInt:
		i, _ := v.AsInt()
		return json.Number(strconv.FormatInt(i, 10))
	case treecodec.KindDecimal:
		d, _ := v.AsDecimal()
		return json.Number(d.String())
	case treecodec.KindArray:
		elems, _ := v.AsArray()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = toJSONValue(e)
		}
		return out
	case treecodec.KindObject:
		fields, _ := v.AsObject()
		out := make(map[string]any, len(fields))
		for k, e := range fields {
			out[k] = toJSONValue(e)
		}
		return out
	default:
		return toGo(v)
	}
}

// FromJSON parses JSON bytes into a tree. Whole numbers that fit int64 become
// Int nodes; other numbers become Double when they render losslessly as a
// float and Decimal otherwise.
func FromJSON(data []byte) (*treecodec.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("bridge: json parse: %w", err)
	}
	return fromJSONValue(raw)
}

func fromJSONValue(x any) (*treecodec.Value, error) {
	switch v := x.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return treecodec.Int(i), nil
		}
		f, err := strconv.ParseFloat(string(v), 64)
		if err == nil && strconv.FormatFloat(f, 'g', -1, 64) == string(v) {
			return treecodec.Double(f), nil
		}
		d, derr := decimal.NewFromString(string(v))
		if derr != nil {
			return nil, fmt.Errorf("bridge: bad number %q: %w", v, derr)
		}
		return treecodec.Decimal(d), nil
	case []any:
		elems := make([]*treecodec.Value, len(v))
		for i, e := range v {
			gv, err := fromJSONValue(e)
			if err != nil {
				return nil, fmt.Errorf("bridge: element %d: %w", i, err)
			}
			elems[i] = gv
		}
		return treecodec.Array(elems...), nil
	case map[string]any:
		fields := make(map[string]*treecodec.Value, len(v))
		for k, e := range v {
			gv, err := fromJSONValue(e)
			if err != nil {
				return nil, fmt.Errorf("bridge: key %q: %w", k, err)
			}
			fields[k] = gv
		}
		return treecodec.Object(fields), nil
	default:
		return fromGo(x)
	}
}
