package math3d

import (
	"math"
	"testing"
)

func TestComputeBarycentricVertexWeights(t *testing.T) {
	a, b, c := V2(0, 0), V2(10, 0), V2(0, 10)

	tests := []struct {
		name  string
		p     Vec2
		alpha float64
		beta  float64
		gamma float64
	}{
		{"at a", a, 1, 0, 0},
		{"at b", b, 0, 1, 0},
		{"at c", c, 0, 0, 1},
		{"centroid", V2(10.0/3, 10.0/3), 1.0 / 3, 1.0 / 3, 1.0 / 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bc := ComputeBarycentric(tc.p, a, b, c)
			if !almostEqual(bc.Alpha, tc.alpha) || !almostEqual(bc.Beta, tc.beta) || !almostEqual(bc.Gamma, tc.gamma) {
				t.Errorf("weights = (%v, %v, %v), want (%v, %v, %v)",
					bc.Alpha, bc.Beta, bc.Gamma, tc.alpha, tc.beta, tc.gamma)
			}
			if !bc.IsValid() {
				t.Error("point inside the triangle should be valid")
			}
		})
	}
}

func TestComputeBarycentricWeightsSumToOne(t *testing.T) {
	a, b, c := V2(-3, 1), V2(7, 2), V2(1, 9)
	bc := ComputeBarycentric(V2(2, 4), a, b, c)
	if sum := bc.Alpha + bc.Beta + bc.Gamma; !almostEqual(sum, 1) {
		t.Errorf("weight sum = %v, want 1", sum)
	}
}

func TestComputeBarycentricOutsideIsInvalid(t *testing.T) {
	a, b, c := V2(0, 0), V2(10, 0), V2(0, 10)
	if bc := ComputeBarycentric(V2(-1, -1), a, b, c); bc.IsValid() {
		t.Errorf("point outside the triangle reported valid weights %+v", bc)
	}
}

func TestComputeBarycentricDegenerateIsInvalid(t *testing.T) {
	// All three vertices collinear: zero area, no point can be inside.
	a, b, c := V2(0, 0), V2(5, 5), V2(10, 10)
	if bc := ComputeBarycentric(V2(5, 5), a, b, c); bc.IsValid() {
		t.Errorf("degenerate triangle reported valid weights %+v", bc)
	}
}

func TestCreateEularRotateXYZMatchesComposition(t *testing.T) {
	r := V3(0.2, 0.4, 0.6)
	want := CreateEularRotateZ(r.Z).Mul(CreateEularRotateY(r.Y)).Mul(CreateEularRotateX(r.X))
	if got := CreateEularRotateXYZ(r); !mat4AlmostEqual(got, want) {
		t.Error("CreateEularRotateXYZ should compose Rz*Ry*Rx")
	}
}

func TestCreateTranslateAndScale(t *testing.T) {
	p := CreateTranslate(V3(1, 2, 3)).MulVec3(Zero3())
	if !vec3AlmostEqual(p, V3(1, 2, 3)) {
		t.Errorf("translated origin = %v, want (1, 2, 3)", p)
	}
	s := CreateScale(V3(2, 2, 2)).MulVec3(V3(1, -1, 3))
	if !vec3AlmostEqual(s, V3(2, -2, 6)) {
		t.Errorf("scaled point = %v, want (2, -2, 6)", s)
	}
}

func TestPerspectiveMapsNearAndFarPlanes(t *testing.T) {
	near, far := 0.1, 100.0
	m := Perspective(60, 1, near, far)

	nearPoint := m.MulVec4(V4(0, 0, -near, 1)).PerspectiveDivide()
	farPoint := m.MulVec4(V4(0, 0, -far, 1)).PerspectiveDivide()
	if !almostEqual(nearPoint.Z, -1) {
		t.Errorf("near plane maps to z = %v, want -1", nearPoint.Z)
	}
	if math.Abs(farPoint.Z-1) > 1e-6 {
		t.Errorf("far plane maps to z = %v, want 1", farPoint.Z)
	}
}
