package render

import "github.com/kestrelcg/raster3d/pkg/math3d"

// FrontFace selects which winding order is considered front-facing.
type FrontFace int

const (
	FrontCW FrontFace = iota
	FrontCCW
)

// FaceCull selects which winding is dropped.
type FaceCull int

const (
	CullNone FaceCull = iota
	CullFront
	CullBack
)

// ShouldCull reports whether the triangle (p0, p1, p2) should be dropped
// under the given front-face and cull-mode settings. The face normal is
// n = cross(p1-p0, p2-p1) (of the two formulas observed for this check,
// this is the one the rest of the pipeline and its tests assume).
func ShouldCull(p0, p1, p2, viewDir math3d.Vec3, front FrontFace, cull FaceCull) bool {
	if cull == CullNone {
		return false
	}

	n := p1.Sub(p0).Cross(p2.Sub(p1))

	var isFront bool
	if front == FrontCW {
		isFront = n.Dot(viewDir) > 0
	} else {
		isFront = n.Dot(viewDir) <= 0
	}

	if cull == CullFront {
		return isFront
	}
	return !isFront
}
