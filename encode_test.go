package treecodec

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestEncodeBaseScenario(t *testing.T) {
	v, err := Encode(marshalFunc(func(e *Encoder) error {
		obj := e.Object()
		obj.SetInt("id", 1)
		obj.SetString("name", "a")
		return nil
	}), nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	fields, ok := v.AsObject()
	if !ok {
		t.Fatalf("want object, got %v", v.Kind())
	}
	if id, ok := fields["id"].AsInt(); !ok || id != 1 {
		t.Errorf("id = %v", fields["id"])
	}
	if name, ok := fields["name"].AsString(); !ok || name != "a" {
		t.Errorf("name = %v", fields["name"])
	}
}

func TestEncodeNilYieldsNoValue(t *testing.T) {
	v, err := Encode(nil, nil)
	if err != nil || v != nil {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestEncodeEmptyTopLevel(t *testing.T) {
	_, err := Encode(marshalFunc(func(e *Encoder) error { return nil }), nil)
	if !errors.Is(err, ErrEmptyTopLevel) {
		t.Fatalf("err = %v", err)
	}
}

func TestEncodeExplicitTopLevelNull(t *testing.T) {
	v, err := Encode(marshalFunc(func(e *Encoder) error {
		e.Null()
		return nil
	}), nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !v.IsNull() {
		t.Errorf("want explicit null, got %v", v.Kind())
	}
}

func TestDuplicateKeyLatestWins(t *testing.T) {
	v, err := Encode(marshalFunc(func(e *Encoder) error {
		obj := e.Object()
		obj.SetInt("k", 1)
		obj.SetString("k", "x")
		return nil
	}), nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	fields, _ := v.AsObject()
	if s, ok := fields["k"].AsString(); !ok || s != "x" {
		t.Errorf("k = %v", fields["k"])
	}
}

func TestNestedContainerIdempotent(t *testing.T) {
	v, err := Encode(marshalFunc(func(e *Encoder) error {
		obj := e.Object()
		obj.Object("n").SetInt("a", 1)
		obj.Object("n").SetInt("b", 2)
		return nil
	}), nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	fields, _ := v.AsObject()
	nested, ok := fields["n"].AsObject()
	if !ok {
		t.Fatalf("n = %v", fields["n"])
	}
	if len(nested) != 2 {
		t.Errorf("nested = %v", nested)
	}
}

func TestSessionRepeatSameKindAllowed(t *testing.T) {
	v, err := Encode(marshalFunc(func(e *Encoder) error {
		e.Object().SetInt("a", 1)
		e.Object().SetInt("b", 2) // second keyed request reuses the container
		return nil
	}), nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	fields, _ := v.AsObject()
	if len(fields) != 2 {
		t.Errorf("fields = %v", fields)
	}
}

func expectViolation(t *testing.T, fn func(e *Encoder)) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected contract violation panic")
		}
		if _, ok := r.(*ContractViolationError); !ok {
			t.Fatalf("panic value = %v (%T)", r, r)
		}
	}()
	_, _ = Encode(marshalFunc(func(e *Encoder) error {
		fn(e)
		return nil
	}), nil)
}

func TestContainerKindExclusivity(t *testing.T) {
	expectViolation(t, func(e *Encoder) {
		e.Object()
		e.Array()
	})
	expectViolation(t, func(e *Encoder) {
		e.Int(1)
		e.Object()
	})
	expectViolation(t, func(e *Encoder) {
		e.Array()
		e.String("x")
	})
}

func TestScalarDoubleWriteViolation(t *testing.T) {
	expectViolation(t, func(e *Encoder) {
		e.Int(1)
		e.Int(2)
	})
}

func TestNestedKindSwitchViolation(t *testing.T) {
	expectViolation(t, func(e *Encoder) {
		obj := e.Object()
		obj.Object("n")
		obj.Array("n")
	})
}

func TestViolationCarriesPath(t *testing.T) {
	defer func() {
		r := recover()
		cv, ok := r.(*ContractViolationError)
		if !ok {
			t.Fatalf("panic value = %v", r)
		}
		if !strings.Contains(cv.Error(), "outer.n") {
			t.Errorf("violation message = %q", cv.Error())
		}
	}()
	_, _ = Encode(marshalFunc(func(e *Encoder) error {
		inner := e.Object().Object("outer")
		inner.Array("n")
		inner.Object("n")
		return nil
	}), nil)
}

func TestArrayEncoding(t *testing.T) {
	v, err := Encode(marshalFunc(func(e *Encoder) error {
		arr := e.Array()
		arr.AddInt(1)
		arr.AddNull()
		arr.AddString("x")
		arr.Object().SetBool("ok", true)
		return nil
	}), nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	elems, ok := v.AsArray()
	if !ok || len(elems) != 4 {
		t.Fatalf("elems = %v", elems)
	}
	if !elems[1].IsNull() {
		t.Errorf("elems[1] = %v", elems[1])
	}
	nested, _ := elems[3].AsObject()
	if b, ok := nested["ok"].AsBool(); !ok || !b {
		t.Errorf("nested = %v", nested)
	}
}

func TestSubSessionProducingNothingResolvesToEmptyObject(t *testing.T) {
	v, err := Encode(marshalFunc(func(e *Encoder) error {
		e.Object().Encoder("sub") // installed but never written
		return nil
	}), nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	fields, _ := v.AsObject()
	sub, ok := fields["sub"].AsObject()
	if !ok || len(sub) != 0 {
		t.Errorf("sub = %v", fields["sub"])
	}
}

func TestSuperDelegation(t *testing.T) {
	v, err := Encode(marshalFunc(func(e *Encoder) error {
		obj := e.Object()
		obj.SetInt("extra", 5)
		sup := obj.Super()
		sup.Object().SetString("kind", "base")
		return nil
	}), nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	fields, _ := v.AsObject()
	sup, ok := fields["super"].AsObject()
	if !ok {
		t.Fatalf("super = %v", fields["super"])
	}
	if k, _ := sup["kind"].AsString(); k != "base" {
		t.Errorf("kind = %q", k)
	}
}

func TestUintOverflow(t *testing.T) {
	_, err := Encode(marshalFunc(func(e *Encoder) error {
		return e.Object().SetUint("n", math.MaxUint64)
	}), nil)
	var ce *CorruptedError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v", err)
	}
	v, err := Encode(marshalFunc(func(e *Encoder) error {
		return e.Object().SetUint("n", math.MaxInt64)
	}), nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	fields, _ := v.AsObject()
	if n, _ := fields["n"].AsInt(); n != math.MaxInt64 {
		t.Errorf("n = %d", n)
	}
}

func TestDeepRecursiveStructure(t *testing.T) {
	v, err := Encode(marshalFunc(func(e *Encoder) error {
		arr := e.Object().Array("levels")
		for i := 0; i < 3; i++ {
			inner := arr.Object()
			inner.SetInt("depth", int64(i))
			inner.Array("children").AddString("leaf")
		}
		return nil
	}), nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	fields, _ := v.AsObject()
	levels, _ := fields["levels"].AsArray()
	if len(levels) != 3 {
		t.Fatalf("levels = %v", levels)
	}
	for i, lv := range levels {
		inner, _ := lv.AsObject()
		if d, _ := inner["depth"].AsInt(); d != int64(i) {
			t.Errorf("depth[%d] = %d", i, d)
		}
	}
}
