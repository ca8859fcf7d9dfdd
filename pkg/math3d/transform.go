package math3d

// CreateTranslate produces the canonical right-handed translation matrix.
func CreateTranslate(v Vec3) Mat4 { return Translate(v) }

// CreateScale produces the canonical right-handed scale matrix.
func CreateScale(v Vec3) Mat4 { return Scale(v) }

// CreateEularRotateX produces the canonical right-handed rotation about X.
func CreateEularRotateX(angle float64) Mat4 { return RotateX(angle) }

// CreateEularRotateY produces the canonical right-handed rotation about Y.
func CreateEularRotateY(angle float64) Mat4 { return RotateY(angle) }

// CreateEularRotateZ produces the canonical right-handed rotation about Z.
func CreateEularRotateZ(angle float64) Mat4 { return RotateZ(angle) }

// CreateEularRotateXYZ composes Rz(r.Z)*Ry(r.Y)*Rx(r.X), the order an
// instance's Euler orientation is applied in.
func CreateEularRotateXYZ(r Vec3) Mat4 { return RotateEulerXYZ(r) }

// Lerp returns the linear interpolation a + (b-a)*t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Barycentric computes the barycentric weights (alpha, beta, gamma) of 2D
// point p with respect to triangle (a, b, c) via edge-function ratios.
// IsValid reports whether all three weights are non-negative, i.e. p lies
// inside (or on the boundary of) the triangle. On a degenerate, zero-area
// triangle every weight is -1 so IsValid reports false for every point;
// callers must still keep any resulting write inside the triangle's own
// bounding box.
type Barycentric struct {
	Alpha, Beta, Gamma float64
}

// IsValid reports whether every weight is non-negative.
func (b Barycentric) IsValid() bool {
	return b.Alpha >= 0 && b.Beta >= 0 && b.Gamma >= 0
}

// ComputeBarycentric returns the barycentric weights of p in triangle a,b,c.
func ComputeBarycentric(p, a, b, c Vec2) Barycentric {
	area := edgeFunction(a, b, c)
	if area == 0 {
		return Barycentric{Alpha: -1, Beta: -1, Gamma: -1}
	}
	invArea := 1.0 / area
	alpha := edgeFunction(b, c, p) * invArea
	beta := edgeFunction(c, a, p) * invArea
	gamma := edgeFunction(a, b, p) * invArea
	return Barycentric{alpha, beta, gamma}
}

// edgeFunction returns twice the signed area of triangle (a, b, c), i.e. the
// 2D cross product (b-a) x (c-a).
func edgeFunction(a, b, c Vec2) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}
