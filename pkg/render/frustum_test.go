package render

import (
	"math"
	"testing"

	"github.com/kestrelcg/raster3d/pkg/math3d"
)

func TestPlaneDistanceToPointSign(t *testing.T) {
	p := Plane{Normal: math3d.V3(0, 0, 1), D: 0}
	if d := p.DistanceToPoint(math3d.V3(0, 0, 5)); d <= 0 {
		t.Errorf("distance = %v, want positive (in front of plane)", d)
	}
	if d := p.DistanceToPoint(math3d.V3(0, 0, -5)); d >= 0 {
		t.Errorf("distance = %v, want negative (behind plane)", d)
	}
}

func TestPlaneNormalizeUnitizesNormal(t *testing.T) {
	p := Plane{Normal: math3d.V3(0, 0, 3), D: 6}
	p.Normalize()
	if got := p.Normal.Len(); math.Abs(got-1) > 1e-9 {
		t.Errorf("normal length = %v, want 1", got)
	}
	if math.Abs(p.D-2) > 1e-9 {
		t.Errorf("D = %v, want 2", p.D)
	}
}

func TestPlaneNormalizeZeroLengthIsNoop(t *testing.T) {
	p := Plane{Normal: math3d.V3(0, 0, 0), D: 4}
	p.Normalize()
	if p.D != 4 {
		t.Errorf("D = %v, want unchanged 4", p.D)
	}
}

func TestAABBCenterAndSize(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -2, -3), math3d.V3(3, 4, 5))
	center := box.Center()
	if center != math3d.V3(1, 1, 1) {
		t.Errorf("Center() = %v, want (1,1,1)", center)
	}
	size := box.Size()
	if size != math3d.V3(4, 6, 8) {
		t.Errorf("Size() = %v, want (4,6,8)", size)
	}
	half := box.HalfSize()
	if half != math3d.V3(2, 3, 4) {
		t.Errorf("HalfSize() = %v, want (2,3,4)", half)
	}
}

func TestAABBContainsPoint(t *testing.T) {
	box := NewAABB(math3d.V3(0, 0, 0), math3d.V3(10, 10, 10))
	if !box.ContainsPoint(math3d.V3(5, 5, 5)) {
		t.Error("center point should be contained")
	}
	if !box.ContainsPoint(math3d.V3(0, 0, 0)) {
		t.Error("AABB.ContainsPoint includes its boundary, unlike Frustum.Contains")
	}
	if box.ContainsPoint(math3d.V3(11, 5, 5)) {
		t.Error("point outside X range should not be contained")
	}
}

func TestAABBTransformIdentity(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	out := box.Transform(math3d.Identity())
	if out.Min != box.Min || out.Max != box.Max {
		t.Errorf("identity transform changed bounds: got %v..%v", out.Min, out.Max)
	}
}

func TestAABBTransformTranslation(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	out := box.Transform(math3d.Translate(math3d.V3(5, 0, 0)))
	want := NewAABB(math3d.V3(4, -1, -1), math3d.V3(6, 1, 1))
	if out.Min != want.Min || out.Max != want.Max {
		t.Errorf("translated AABB = %v..%v, want %v..%v", out.Min, out.Max, want.Min, want.Max)
	}
}

func TestNewFrustumFromMatrixPlanesAreNormalized(t *testing.T) {
	view := math3d.LookAt(math3d.V3(0, 0, 5), math3d.V3(0, 0, 0), math3d.V3(0, 1, 0))
	proj := math3d.Perspective(60, 1.0, 0.1, 100)
	f := NewFrustumFromMatrix(proj.Mul(view))

	for i, plane := range f.Planes {
		if got := plane.Normal.Len(); math.Abs(got-1) > 1e-6 {
			t.Errorf("plane %d normal length = %v, want 1", i, got)
		}
	}
}

func TestMeshFrustumContainsPointAtOrigin(t *testing.T) {
	view := math3d.LookAt(math3d.V3(0, 0, 5), math3d.V3(0, 0, 0), math3d.V3(0, 1, 0))
	proj := math3d.Perspective(60, 1.0, 0.1, 100)
	f := NewFrustumFromMatrix(proj.Mul(view))

	if !f.ContainsPoint(math3d.V3(0, 0, 0)) {
		t.Error("world origin, centered in view, should be inside the frustum")
	}
	if f.ContainsPoint(math3d.V3(0, 0, 1000)) {
		t.Error("point far behind the camera should not be inside the frustum")
	}
}

func TestMeshFrustumIntersectAABB(t *testing.T) {
	view := math3d.LookAt(math3d.V3(0, 0, 5), math3d.V3(0, 0, 0), math3d.V3(0, 1, 0))
	proj := math3d.Perspective(60, 1.0, 0.1, 100)
	f := NewFrustumFromMatrix(proj.Mul(view))

	near := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	if !f.IntersectAABB(near) {
		t.Error("box straddling the origin should intersect the frustum")
	}

	far := NewAABB(math3d.V3(500, 500, 500), math3d.V3(600, 600, 600))
	if f.IntersectAABB(far) {
		t.Error("box far outside every plane should not intersect the frustum")
	}
}

func TestMeshFrustumContainsAABBRequiresFullContainment(t *testing.T) {
	view := math3d.LookAt(math3d.V3(0, 0, 5), math3d.V3(0, 0, 0), math3d.V3(0, 1, 0))
	proj := math3d.Perspective(60, 1.0, 0.1, 100)
	f := NewFrustumFromMatrix(proj.Mul(view))

	tiny := NewAABB(math3d.V3(-0.1, -0.1, -0.1), math3d.V3(0.1, 0.1, 0.1))
	if !f.ContainsAABB(tiny) {
		t.Error("a small box at the origin should be fully contained")
	}

	straddling := NewAABB(math3d.V3(-1000, -0.1, -0.1), math3d.V3(1000, 0.1, 0.1))
	if f.ContainsAABB(straddling) {
		t.Error("a box straddling the frustum boundary should not be fully contained")
	}
}

func TestMeshFrustumIntersectsSphere(t *testing.T) {
	view := math3d.LookAt(math3d.V3(0, 0, 5), math3d.V3(0, 0, 0), math3d.V3(0, 1, 0))
	proj := math3d.Perspective(60, 1.0, 0.1, 100)
	f := NewFrustumFromMatrix(proj.Mul(view))

	if !f.IntersectsSphere(math3d.V3(0, 0, 0), 1) {
		t.Error("sphere at the origin should intersect the frustum")
	}
	if f.IntersectsSphere(math3d.V3(0, 0, -1000), 1) {
		t.Error("tiny sphere far behind the far plane should not intersect")
	}
}

func TestFrustumContainsCenterlinePoint(t *testing.T) {
	f := Frustum{Near: 1, Far: 100, Aspect: 1, Fovy: math.Pi / 4, Projection: ProjectionScanline}
	if !f.Contains(math3d.V3(0, 0, -10)) {
		t.Error("a point on the view axis, between near and far, should be contained")
	}
}

func TestFrustumContainsRejectsBehindNear(t *testing.T) {
	f := Frustum{Near: 1, Far: 100, Aspect: 1, Fovy: math.Pi / 4, Projection: ProjectionScanline}
	if f.Contains(math3d.V3(0, 0, -0.5)) {
		t.Error("a point closer than the near plane should not be contained")
	}
}

func TestFrustumContainsRejectsBeyondFar(t *testing.T) {
	f := Frustum{Near: 1, Far: 100, Aspect: 1, Fovy: math.Pi / 4, Projection: ProjectionScanline}
	if f.Contains(math3d.V3(0, 0, -200)) {
		t.Error("a point beyond the far plane should not be contained")
	}
}

func TestFrustumContainsRejectsOutsideSideways(t *testing.T) {
	f := Frustum{Near: 1, Far: 100, Aspect: 1, Fovy: math.Pi / 4, Projection: ProjectionScanline}
	if f.Contains(math3d.V3(1000, 0, -10)) {
		t.Error("a point far to the side of the view axis should not be contained")
	}
}

func TestFrustumContainsExcludesBoundary(t *testing.T) {
	f := Frustum{Near: 1, Far: 100, Aspect: 1, Fovy: math.Pi / 4, Projection: ProjectionScanline}
	if f.Contains(math3d.V3(0, 0, -1)) {
		t.Error("a point exactly on the near plane should be excluded (strict inequality)")
	}
	if f.Contains(math3d.V3(0, 0, -100)) {
		t.Error("a point exactly on the far plane should be excluded (strict inequality)")
	}
}
