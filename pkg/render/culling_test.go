package render

import (
	"testing"

	"github.com/kestrelcg/raster3d/pkg/math3d"
)

func TestShouldCullCullNoneAlwaysKeeps(t *testing.T) {
	p0, p1, p2 := math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)
	viewDir := math3d.V3(0, 0, -1)
	if ShouldCull(p0, p1, p2, viewDir, FrontCCW, CullNone) {
		t.Error("CullNone must never cull")
	}
}

func TestShouldCullVertexSwapFlipsFacing(t *testing.T) {
	viewDir := math3d.V3(0, 0, -1)
	p0, p1, p2 := math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)

	front := ShouldCull(p0, p1, p2, viewDir, FrontCCW, CullBack)
	reversed := ShouldCull(p0, p2, p1, viewDir, FrontCCW, CullBack)

	if front == reversed {
		t.Errorf("swapping two vertices should flip which winding is treated as front: front=%v reversed=%v", front, reversed)
	}
}

func TestShouldCullFrontBackAreComplementary(t *testing.T) {
	viewDir := math3d.V3(0, 0, -1)
	p0, p1, p2 := math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)

	cullBack := ShouldCull(p0, p1, p2, viewDir, FrontCW, CullBack)
	cullFront := ShouldCull(p0, p1, p2, viewDir, FrontCW, CullFront)

	if cullBack == cullFront {
		t.Error("CullFront and CullBack should disagree on a non-degenerate triangle")
	}
}
