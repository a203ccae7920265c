// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package value provides typed literal values for shader graph ports.
//
// A Value is a tagged union over the scalar, vector and color types a
// material document can spell. Accessors are type-dispatched and return
// an error when the dynamic kind does not match, mirroring the strict
// accessor model of the document layer.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/shadergraph/types"
)

// Kind identifies the dynamic type of a Value.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindVector
	KindColor
	KindString
	KindFilename
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindVector:
		return "vector"
	case KindColor:
		return "color"
	case KindString:
		return "string"
	case KindFilename:
		return "filename"
	default:
		return "unknown"
	}
}

// Value is an immutable typed literal.
type Value struct {
	kind Kind
	b    bool
	i    int
	f    float32
	vec  []float32 // vector and color components
	s    string    // string and filename payload
}

// Bool creates a boolean value.
func Bool(v bool) *Value { return &Value{kind: KindBool, b: v} }

// Int creates an integer value.
func Int(v int) *Value { return &Value{kind: KindInt, i: v} }

// Float creates a float value.
func Float(v float32) *Value { return &Value{kind: KindFloat, f: v} }

// Vector creates a vector value with the given components.
func Vector(components ...float32) *Value {
	return &Value{kind: KindVector, vec: append([]float32(nil), components...)}
}

// Color creates a color value with the given components.
func Color(components ...float32) *Value {
	return &Value{kind: KindColor, vec: append([]float32(nil), components...)}
}

// String creates a string value.
func String(v string) *Value { return &Value{kind: KindString, s: v} }

// Filename creates a filename value.
func Filename(v string) *Value { return &Value{kind: KindFilename, s: v} }

// Kind returns the dynamic kind.
func (v *Value) Kind() Kind { return v.kind }

// TypeError reports an accessor called against the wrong dynamic kind.
type TypeError struct {
	Want Kind
	Got  Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("value is %s, not %s", e.Got, e.Want)
}

// AsBool returns the boolean payload.
func (v *Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, &TypeError{Want: KindBool, Got: v.kind}
	}
	return v.b, nil
}

// AsInt returns the integer payload.
func (v *Value) AsInt() (int, error) {
	if v.kind != KindInt {
		return 0, &TypeError{Want: KindInt, Got: v.kind}
	}
	return v.i, nil
}

// AsFloat returns the float payload.
func (v *Value) AsFloat() (float32, error) {
	if v.kind != KindFloat {
		return 0, &TypeError{Want: KindFloat, Got: v.kind}
	}
	return v.f, nil
}

// AsVector returns the vector components. The returned slice is shared;
// callers must not modify it.
func (v *Value) AsVector() ([]float32, error) {
	if v.kind != KindVector {
		return nil, &TypeError{Want: KindVector, Got: v.kind}
	}
	return v.vec, nil
}

// AsColor returns the color components. The returned slice is shared;
// callers must not modify it.
func (v *Value) AsColor() ([]float32, error) {
	if v.kind != KindColor {
		return nil, &TypeError{Want: KindColor, Got: v.kind}
	}
	return v.vec, nil
}

// AsString returns the string payload.
func (v *Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", &TypeError{Want: KindString, Got: v.kind}
	}
	return v.s, nil
}

// AsFilename returns the filename payload.
func (v *Value) AsFilename() (string, error) {
	if v.kind != KindFilename {
		return "", &TypeError{Want: KindFilename, Got: v.kind}
	}
	return v.s, nil
}

// String formats the value the way a material document would spell it.
func (v *Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.Itoa(v.i)
	case KindFloat:
		return formatFloat(v.f)
	case KindVector, KindColor:
		parts := make([]string, len(v.vec))
		for i, c := range v.vec {
			parts[i] = formatFloat(c)
		}
		return strings.Join(parts, ", ")
	case KindString, KindFilename:
		return v.s
	}
	return ""
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// Parse converts a document value string into a Value of the given type.
// Vector and color components are comma-separated.
func Parse(t *types.TypeDesc, s string) (*Value, error) {
	if t == nil {
		return nil, fmt.Errorf("cannot parse %q: nil type", s)
	}
	switch t {
	case types.Boolean:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("parse boolean %q: %w", s, err)
		}
		return Bool(b), nil
	case types.Integer:
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("parse integer %q: %w", s, err)
		}
		return Int(i), nil
	case types.Float:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
		if err != nil {
			return nil, fmt.Errorf("parse float %q: %w", s, err)
		}
		return Float(float32(f)), nil
	case types.String:
		return String(s), nil
	case types.Filename:
		return Filename(s), nil
	}

	switch t.Category() {
	case types.CategoryVector, types.CategoryColor, types.CategoryMatrix:
		parts := strings.Split(s, ",")
		if len(parts) != t.Size() {
			return nil, fmt.Errorf("parse %s %q: expected %d components, got %d", t.Name(), s, t.Size(), len(parts))
		}
		components := make([]float32, len(parts))
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
			if err != nil {
				return nil, fmt.Errorf("parse %s %q: component %d: %w", t.Name(), s, i, err)
			}
			components[i] = float32(f)
		}
		if t.Category() == types.CategoryColor {
			return Color(components...), nil
		}
		return Vector(components...), nil
	}

	return nil, fmt.Errorf("parse %q: no literal form for type %s", s, t.Name())
}
