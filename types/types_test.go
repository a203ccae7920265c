package types

import (
	"testing"
)

func TestRegister_Interning(t *testing.T) {
	a := Register("testtype_intern", CategoryScalar, 1)
	b := Register("testtype_intern", CategoryScalar, 1)

	if a != b {
		t.Errorf("Expected same descriptor for identical names, got %p and %p", a, b)
	}
	if Get("testtype_intern") != a {
		t.Errorf("Get did not return the interned descriptor")
	}
}

func TestRegister_SecondRegistrationKeepsFirst(t *testing.T) {
	a := Register("testtype_keep", CategoryColor, 3)
	b := Register("testtype_keep", CategoryVector, 2)

	if b != a {
		t.Errorf("Second registration should return the original descriptor")
	}
	if b.Category() != CategoryColor || b.Size() != 3 {
		t.Errorf("Original descriptor was mutated: %v size %d", b.Category(), b.Size())
	}
}

func TestGet_Unknown(t *testing.T) {
	if Get("no_such_type") != nil {
		t.Errorf("Expected nil for unregistered name")
	}
}

func TestBuiltins(t *testing.T) {
	cases := []struct {
		td       *TypeDesc
		name     string
		category Category
		size     int
	}{
		{Float, "float", CategoryScalar, 1},
		{Color3, "color3", CategoryColor, 3},
		{Vector4, "vector4", CategoryVector, 4},
		{Matrix44, "matrix44", CategoryMatrix, 16},
		{BSDF, "BSDF", CategoryClosure, 1},
		{SurfaceShader, "surfaceshader", CategoryShader, 1},
		{Filename, "filename", CategoryFilename, 1},
	}

	for _, c := range cases {
		if c.td.Name() != c.name {
			t.Errorf("Expected name %q, got %q", c.name, c.td.Name())
		}
		if c.td.Category() != c.category {
			t.Errorf("%s: expected category %v, got %v", c.name, c.category, c.td.Category())
		}
		if c.td.Size() != c.size {
			t.Errorf("%s: expected size %d, got %d", c.name, c.size, c.td.Size())
		}
		if Get(c.name) != c.td {
			t.Errorf("%s: Get returned a different descriptor", c.name)
		}
	}
}

func TestAggregate(t *testing.T) {
	if Float.Aggregate() {
		t.Errorf("float should not be aggregate")
	}
	if !Color3.Aggregate() {
		t.Errorf("color3 should be aggregate")
	}
}
