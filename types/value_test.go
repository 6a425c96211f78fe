package types

import "testing"

func TestEqualNumericCoercion(t *testing.T) {
	if !NewInt(1).Equal(NewFloat(1.0)) {
		t.Error("Int(1) should equal Float(1.0)")
	}
	if !NewFloat(2.0).Equal(NewInt(2)) {
		t.Error("Float(2.0) should equal Int(2)")
	}
	if NewInt(1).Equal(NewFloat(1.5)) {
		t.Error("Int(1) should not equal Float(1.5)")
	}
	if NewInt(1).Equal(NewStr("1")) {
		t.Error("Int(1) should not equal Str(\"1\")")
	}
	if NewBool(true).Equal(NewInt(1)) {
		t.Error("Bool(true) should not equal Int(1)")
	}
}

func TestEqualContainers(t *testing.T) {
	a := NewList([]Value{NewInt(1), NewStr("x")})
	b := NewList([]Value{NewInt(1), NewStr("x")})
	c := NewList([]Value{NewInt(1)})
	if !a.Equal(b) {
		t.Error("lists with equal elements should be equal")
	}
	if a.Equal(c) {
		t.Error("lists of different length should not be equal")
	}

	d1 := NewDict()
	d1.Set("a", NewInt(1))
	d2 := NewDict()
	d2.Set("a", NewFloat(1.0))
	if !d1.Equal(d2) {
		t.Error("dicts should compare values with numeric coercion")
	}
	d2.Set("b", NewInt(2))
	if d1.Equal(d2) {
		t.Error("dicts with different key sets should not be equal")
	}
}

func TestEqualFuncIdentity(t *testing.T) {
	f := NewNative("f", func(args []Value) Result { return Ok(Unit) })
	g := NewNative("f", func(args []Value) Result { return Ok(Unit) })
	if !f.Equal(f) {
		t.Error("a function should equal itself")
	}
	if f.Equal(g) {
		t.Error("distinct function values should never be equal")
	}
}

func TestEqualUnit(t *testing.T) {
	if !Unit.Equal(UnitValue{}) {
		t.Error("unit should equal unit")
	}
	if Unit.Equal(NewInt(0)) {
		t.Error("unit should not equal 0")
	}
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name    string
		val     Value
		want    bool
		wantOK  bool
	}{
		{"int zero", NewInt(0), false, true},
		{"int nonzero", NewInt(-3), true, true},
		{"float zero", NewFloat(0.0), false, true},
		{"float nonzero", NewFloat(0.5), true, true},
		{"bool", NewBool(true), true, true},
		{"str true", NewStr("true"), true, true},
		{"str false", NewStr("false"), false, true},
		{"str other", NewStr("yes"), false, false},
		{"str empty", NewStr(""), false, false},
		{"empty list", NewEmptyList(), false, true},
		{"nonempty list", NewList([]Value{NewInt(1)}), true, true},
		{"empty dict", NewDict(), false, true},
		{"func", NewNative("f", nil), false, false},
		{"unit", Unit, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.val.CoerceBool()
			if ok != tt.wantOK {
				t.Fatalf("coercible = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	d := NewDict()
	d.Set("b", NewInt(2))
	d.Set("a", NewInt(1))

	tests := []struct {
		val  Value
		want string
	}{
		{NewInt(42), "42"},
		{NewFloat(2.5), "2.5"},
		{NewFloat(3.0), "3"},
		{NewBool(false), "false"},
		{NewStr("hi"), "hi"},
		{NewList([]Value{NewInt(1), NewStr("x")}), "[1, x]"},
		{NewEmptyList(), "[]"},
		{d, "{a: 1, b: 2}"},
		{NewDict(), "{}"},
		{NewNative("f", nil), "<func>"},
		{Unit, ""},
	}

	for _, tt := range tests {
		if got := tt.val.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTypeNames(t *testing.T) {
	tests := []struct {
		val  Value
		want string
	}{
		{NewInt(1), "int"},
		{NewFloat(1.0), "float"},
		{NewBool(true), "bool"},
		{NewStr(""), "string"},
		{NewEmptyList(), "list"},
		{NewDict(), "dict"},
		{NewNative("f", nil), "func"},
		{Unit, "unit"},
	}
	for _, tt := range tests {
		if got := tt.val.Type().String(); got != tt.want {
			t.Errorf("Type().String() = %q, want %q", got, tt.want)
		}
	}
}

func TestListAliasing(t *testing.T) {
	a := NewList([]Value{NewInt(1), NewInt(2)})
	b := a
	b.Set(0, NewInt(9))
	if !a.Get(0).Equal(NewInt(9)) {
		t.Error("mutation through alias should be visible through original binding")
	}
}
