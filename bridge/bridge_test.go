package bridge

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/unkn0wn-root/treecodec"
)

// sampleTree holds one node of every kind the byte formats can carry back.
func sampleTree() *treecodec.Value {
	return treecodec.Object(map[string]*treecodec.Value{
		"null":   treecodec.Null(),
		"bool":   treecodec.Bool(true),
		"int":    treecodec.Int(1 << 40),
		"double": treecodec.Double(0.5),
		"string": treecodec.String("hi"),
		"list":   treecodec.Array(treecodec.Int(1), treecodec.Null(), treecodec.String("x")),
		"nested": treecodec.Object(map[string]*treecodec.Value{"k": treecodec.Bool(false)}),
	})
}

func TestJSONRoundTrip(t *testing.T) {
	in := sampleTree()
	data, err := ToJSON(in)
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	out, err := FromJSON(data)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if !in.Equal(out) {
		t.Errorf("round trip mismatch:\n in=%s\nout=%s", data, mustJSON(t, out))
	}
}

func mustJSON(t *testing.T, v *treecodec.Value) string {
	t.Helper()
	b, err := ToJSON(v)
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	return string(b)
}

func TestJSONDecimalEmittedAsRawNumber(t *testing.T) {
	d, _ := decimal.NewFromString("123456789012345678901234567890.5")
	data, err := ToJSON(treecodec.Object(map[string]*treecodec.Value{"d": treecodec.Decimal(d)}))
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	if !strings.Contains(string(data), "123456789012345678901234567890.5") {
		t.Errorf("json = %s", data)
	}
	// and it comes back as a decimal, not a lossy double
	out, err := FromJSON(data)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	fields, _ := out.AsObject()
	got, ok := fields["d"].AsDecimal()
	if !ok || !got.Equal(d) {
		t.Errorf("d = %v", fields["d"])
	}
}

func TestJSONAbsentElementFlattensToNull(t *testing.T) {
	in := treecodec.Array(treecodec.Int(1), nil)
	data, err := ToJSON(in)
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	if string(data) != "[1,null]" {
		t.Errorf("json = %s", data)
	}
}

func TestJSONInvalidInput(t *testing.T) {
	if _, err := FromJSON([]byte("{")); err == nil {
		t.Fatal("want parse error")
	}
}

func TestCBORRoundTrip(t *testing.T) {
	in := sampleTree()
	data, err := ToCBOR(in)
	if err != nil {
		t.Fatalf("to cbor: %v", err)
	}
	out, err := FromCBOR(data)
	if err != nil {
		t.Fatalf("from cbor: %v", err)
	}
	if !in.Equal(out) {
		t.Errorf("round trip mismatch: %s vs %s", mustJSON(t, in), mustJSON(t, out))
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	in := sampleTree()
	data, err := ToMsgpack(in)
	if err != nil {
		t.Fatalf("to msgpack: %v", err)
	}
	out, err := FromMsgpack(data)
	if err != nil {
		t.Fatalf("from msgpack: %v", err)
	}
	if !in.Equal(out) {
		t.Errorf("round trip mismatch: %s vs %s", mustJSON(t, in), mustJSON(t, out))
	}
}

func TestStructRoundTrip(t *testing.T) {
	// Struct numbers are float64: keep the int within the exact range
	in := treecodec.Object(map[string]*treecodec.Value{
		"null":   treecodec.Null(),
		"bool":   treecodec.Bool(true),
		"int":    treecodec.Int(1 << 40),
		"double": treecodec.Double(0.5),
		"string": treecodec.String("hi"),
		"list":   treecodec.Array(treecodec.Int(1), treecodec.Null()),
	})
	pv, err := ToStruct(in)
	if err != nil {
		t.Fatalf("to struct: %v", err)
	}
	out := FromStruct(pv)
	if !in.Equal(out) {
		t.Errorf("round trip mismatch: %s vs %s", mustJSON(t, in), mustJSON(t, out))
	}
}

func TestStructRejectsInexactInt(t *testing.T) {
	if _, err := ToStruct(treecodec.Int((1 << 62) + 1)); err == nil {
		t.Fatal("want precision error")
	}
}
