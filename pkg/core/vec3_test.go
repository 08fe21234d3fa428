package core

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func vecNear(a, b Vec3) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestVec3_Operators(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Divide", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"Divide by zero", a.Divide(0), NewVec3(0, 0, 0)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Clamp", NewVec3(-1, 0.5, 2).Clamp(0, 1), NewVec3(0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecNear(tt.result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}

	// Operands are values and must be untouched
	if a != NewVec3(1, 2, 3) || b != NewVec3(4, -5, 6) {
		t.Errorf("Operands were mutated: a=%v b=%v", a, b)
	}
}

func TestVec3_DotAndLength(t *testing.T) {
	v := NewVec3(3, 4, 12)
	if got := v.Dot(NewVec3(1, 1, 1)); got != 19 {
		t.Errorf("Expected dot 19, got %f", got)
	}
	if got := v.LengthSquared(); got != 169 {
		t.Errorf("Expected squared length 169, got %f", got)
	}
	if got := v.Length(); math.Abs(got-13) > tolerance {
		t.Errorf("Expected length 13, got %f", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(0, 3, 4).Normalize()
	if math.Abs(n.Length()-1) > tolerance {
		t.Errorf("Expected unit length, got %f", n.Length())
	}
	if !vecNear(n, NewVec3(0, 0.6, 0.8)) {
		t.Errorf("Expected (0,0.6,0.8), got %v", n)
	}

	zero := Vec3{}.Normalize()
	if !zero.IsZero() {
		t.Errorf("Expected zero vector to normalize to zero, got %v", zero)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, 2))
	if got := ray.At(1.5); !vecNear(got, NewVec3(1, 1, 4)) {
		t.Errorf("Expected (1,1,4), got %v", got)
	}
}
