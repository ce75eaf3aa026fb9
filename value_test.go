package treecodec

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccessorsReturnAbsentOnWrongVariant(t *testing.T) {
	v := Int(7)
	if _, ok := v.AsBool(); ok {
		t.Error("AsBool on int node should be absent")
	}
	if _, ok := v.AsString(); ok {
		t.Error("AsString on int node should be absent")
	}
	if _, ok := v.AsArray(); ok {
		t.Error("AsArray on int node should be absent")
	}
	if _, ok := v.AsObject(); ok {
		t.Error("AsObject on int node should be absent")
	}
	if i, ok := v.AsInt(); !ok || i != 7 {
		t.Errorf("AsInt = %d, %v", i, ok)
	}
}

func TestKindNames(t *testing.T) {
	names := map[Kind]string{
		KindNull:    "null",
		KindBool:    "bool",
		KindInt:     "int",
		KindDouble:  "double",
		KindDecimal: "decimal",
		KindString:  "string",
		KindArray:   "array",
		KindObject:  "object",
	}
	for k, want := range names {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestNilValueKind(t *testing.T) {
	var v *Value
	if v.Kind() != KindNull {
		t.Errorf("nil value kind = %v", v.Kind())
	}
	if v.IsNull() {
		t.Error("nil value is absent, not explicit null")
	}
}

func TestEqual(t *testing.T) {
	d1, _ := decimal.NewFromString("1.2300")
	d2, _ := decimal.NewFromString("1.23")
	obj := func() *Value {
		return Object(map[string]*Value{
			"a": Int(1),
			"b": Array(String("x"), nil, Null()),
			"c": Decimal(d1),
		})
	}
	if !obj().Equal(obj()) {
		t.Error("identical trees should be equal")
	}
	// decimal equality is numeric, not representational
	if !Decimal(d1).Equal(Decimal(d2)) {
		t.Error("1.2300 and 1.23 should compare equal")
	}
	if Null().Equal(nil) {
		t.Error("explicit null must not equal absence")
	}
	if Array(nil).Equal(Array(Null())) {
		t.Error("absent element must not equal null element")
	}
	if Int(1).Equal(Double(1)) {
		t.Error("int and double are distinct variants")
	}
}

func TestPathRendering(t *testing.T) {
	p := Path{}.Child(NamedKey("items")).Child(IndexKey(2)).Child(NamedKey("name"))
	if got := p.String(); got != "items[2].name" {
		t.Errorf("path = %q", got)
	}
	if got := (Path{}).String(); got != "<root>" {
		t.Errorf("empty path = %q", got)
	}
}

func TestPathChildDoesNotMutateParent(t *testing.T) {
	parent := Path{}.Child(NamedKey("a"))
	c1 := parent.Child(NamedKey("b"))
	c2 := parent.Child(NamedKey("c"))
	if c1.String() != "a.b" || c2.String() != "a.c" {
		t.Errorf("children = %q, %q", c1, c2)
	}
	if parent.String() != "a" {
		t.Errorf("parent mutated: %q", parent)
	}
}
