package render

import (
	"math"

	"github.com/kestrelcg/raster3d/pkg/math3d"
)

// Plane represents a plane in 3D space using the equation: Ax + By + Cz + D = 0
// where (A, B, C) is the normal and D is the distance from origin.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize normalizes the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	len := p.Normal.Len()
	if len == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / len)
	p.D /= len
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// MeshFrustum represents the 6 planes of a view frustum.
// Planes are ordered: Left, Right, Bottom, Top, Near, Far.
// Each plane's normal points inward (toward the center of the frustum).
type MeshFrustum struct {
	Planes [6]Plane
}

// FrustumPlane indices for clarity.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts frustum planes from a view-projection matrix
// via the Gribb/Hartmann method: each clip-space bound -w <= c <= w becomes a
// plane built from the fourth matrix row plus/minus the row for c. Mat4 is
// row-major with clip = M*v, so row i lives at m[i*4 .. i*4+3]. The resulting
// plane normals point inward.
func NewFrustumFromMatrix(m math3d.Mat4) MeshFrustum {
	var f MeshFrustum

	// Left: row3 + row0, right: row3 - row0.
	f.Planes[FrustumLeft] = Plane{
		Normal: math3d.V3(m[12]+m[0], m[13]+m[1], m[14]+m[2]),
		D:      m[15] + m[3],
	}
	f.Planes[FrustumRight] = Plane{
		Normal: math3d.V3(m[12]-m[0], m[13]-m[1], m[14]-m[2]),
		D:      m[15] - m[3],
	}

	// Bottom: row3 + row1, top: row3 - row1.
	f.Planes[FrustumBottom] = Plane{
		Normal: math3d.V3(m[12]+m[4], m[13]+m[5], m[14]+m[6]),
		D:      m[15] + m[7],
	}
	f.Planes[FrustumTop] = Plane{
		Normal: math3d.V3(m[12]-m[4], m[13]-m[5], m[14]-m[6]),
		D:      m[15] - m[7],
	}

	// Near: row3 + row2, far: row3 - row2.
	f.Planes[FrustumNear] = Plane{
		Normal: math3d.V3(m[12]+m[8], m[13]+m[9], m[14]+m[10]),
		D:      m[15] + m[11],
	}
	f.Planes[FrustumFar] = Plane{
		Normal: math3d.V3(m[12]-m[8], m[13]-m[9], m[14]-m[10]),
		D:      m[15] - m[11],
	}

	for i := range f.Planes {
		f.Planes[i].Normalize()
	}

	return f
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// HalfSize returns half the dimensions (extents from center).
func (b AABB) HalfSize() math3d.Vec3 {
	return b.Size().Scale(0.5)
}

// Extents is an alias for HalfSize.
func (b AABB) Extents() math3d.Vec3 {
	return b.HalfSize()
}

// Transform returns an AABB that bounds the original AABB after transformation.
// This computes a new AABB that contains all 8 transformed corners.
func (b AABB) Transform(m math3d.Mat4) AABB {
	// Get all 8 corners
	corners := [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}

	// Transform all corners and find new bounds
	transformed := m.MulVec3(corners[0])
	newMin := transformed
	newMax := transformed

	for i := 1; i < 8; i++ {
		transformed = m.MulVec3(corners[i])
		newMin = newMin.Min(transformed)
		newMax = newMax.Max(transformed)
	}

	return AABB{Min: newMin, Max: newMax}
}

// ContainsPoint returns true if the point is inside the AABB.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// IntersectAABB tests if the AABB intersects or is inside the frustum.
// Returns true if any part of the AABB is visible.
// Uses the "positive vertex" optimization for faster rejection.
func (f MeshFrustum) IntersectAABB(box AABB) bool {
	for i := range f.Planes {
		plane := f.Planes[i]

		// Find the "positive vertex" - the corner of the AABB furthest in the direction of the plane normal.
		// This is the corner that would be outside if the entire box is outside.
		pVertex := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			selectComponent(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			selectComponent(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)

		// If the positive vertex is outside this plane, the entire box is outside the frustum
		if plane.DistanceToPoint(pVertex) < 0 {
			return false
		}
	}

	// The box is at least partially inside all planes
	return true
}

// ContainsAABB tests if the AABB is completely inside the frustum.
// Returns true only if all 8 corners are inside all 6 planes.
func (f MeshFrustum) ContainsAABB(box AABB) bool {
	for i := range f.Planes {
		plane := f.Planes[i]

		// Find the "negative vertex" - the corner closest to the plane in the normal direction.
		nVertex := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Min.X, box.Max.X),
			selectComponent(plane.Normal.Y >= 0, box.Min.Y, box.Max.Y),
			selectComponent(plane.Normal.Z >= 0, box.Min.Z, box.Max.Z),
		)

		// If the negative vertex is outside, the box is not fully contained
		if plane.DistanceToPoint(nVertex) < 0 {
			return false
		}
	}

	return true
}

// ContainsPoint tests if a point is inside the frustum.
func (f MeshFrustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere tests if a sphere intersects the frustum.
// center is the sphere center, radius is the sphere radius.
func (f MeshFrustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

// selectComponent is a conditional selection helper.
func selectComponent(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// TransformAABB transforms an AABB by a matrix and returns the new bounds.
// This is a convenience function wrapping AABB.Transform.
func TransformAABB(box AABB, m math3d.Mat4) AABB {
	return box.Transform(m)
}

// ProjectionKind selects which of the two projection matrix variants a
// Frustum builds. It must match the renderer's Backend — the two rasterizer
// back-ends require different z-handling downstream — so the two are changed
// together between draws; mixing them within a draw would desynchronize the
// rhw convention.
type ProjectionKind int

const (
	// ProjectionScanline builds the "z-store via w" matrix consumed by the
	// scanline back-end's rhw pipeline (the renderer's linear-z stash).
	ProjectionScanline ProjectionKind = iota
	// ProjectionBarycentric builds the classic OpenGL-style matrix consumed
	// by the barycentric-AABB back-end.
	ProjectionBarycentric
)

// Frustum holds a camera's perspective parameters: it builds the selected
// projection matrix and answers the point-in-frustum predicate used for the
// coarse pre-rasterize discard. Unlike MeshFrustum (extracted from an
// arbitrary view-projection matrix for AABB culling), Frustum always
// describes the six planes through the view-space origin implied by fovy,
// aspect, near and far.
type Frustum struct {
	Near, Far  float64
	Aspect     float64
	Fovy       float64 // vertical field of view, radians
	Projection ProjectionKind
}

// Matrix builds the projection matrix for the frustum's selected kind.
func (f Frustum) Matrix() math3d.Mat4 {
	if f.Projection == ProjectionBarycentric {
		return f.barycentricMatrix()
	}
	return f.scanlineMatrix()
}

// scanlineMatrix builds the "Scanline projection": z-store is via w, with
// a = 1/(near*tan(fovy)). This yields w = -z_view/near so v.w encodes
// linear view-space depth; the renderer overwrites the projected z with
// -v.w*near immediately afterward (the "linear-z stash").
func (f Frustum) scanlineMatrix() math3d.Mat4 {
	a := 1.0 / (f.Near * math.Tan(f.Fovy))
	return math3d.Mat4{
		a, 0, 0, 0,
		0, f.Aspect * a, 0, 0,
		0, 0, 1, 0,
		0, 0, -1 / f.Near, 0,
	}
}

// barycentricMatrix builds the classic OpenGL-style perspective matrix.
func (f Frustum) barycentricMatrix() math3d.Mat4 {
	halfW := f.Near * math.Tan(f.Fovy)
	halfH := halfW / f.Aspect
	near, far := f.Near, f.Far

	return math3d.Mat4{
		near / halfW, 0, 0, 0,
		0, near / halfH, 0, 0,
		0, 0, (far + near) / (near - far), 2 * far * near / (near - far),
		0, 0, -1, 0,
	}
}

// Contains reports whether a view-space point p lies in the open region
// bounded by the six frustum planes. A point exactly on any plane is NOT
// contained — every test below is a strict inequality.
func (f Frustum) Contains(p math3d.Vec3) bool {
	phi := f.Fovy
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
	halfW := f.Near * math.Tan(f.Fovy)
	halfH := halfW / f.Aspect

	left := math3d.V3(cosPhi, 0, -sinPhi)
	right := math3d.V3(-cosPhi, 0, -sinPhi)
	top := math3d.V3(0, -f.Near, -halfH)
	bottom := math3d.V3(0, f.Near, -halfH)

	switch {
	case left.Dot(p) <= 0:
		return false
	case right.Dot(p) <= 0:
		return false
	case top.Dot(p) <= 0:
		return false
	case bottom.Dot(p) <= 0:
		return false
	case p.Z >= -f.Near:
		return false
	case p.Z <= -f.Far:
		return false
	}
	return true
}
