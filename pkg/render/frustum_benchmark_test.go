package render

import (
	"math"
	"testing"

	"github.com/kestrelcg/raster3d/pkg/math3d"
)

func BenchmarkNewFrustumFromMatrix(b *testing.B) {
	view := math3d.LookAt(math3d.V3(0, 0, 5), math3d.V3(0, 0, 0), math3d.V3(0, 1, 0))
	proj := math3d.Perspective(60, 1.333, 0.1, 100)
	vp := proj.Mul(view)

	for b.Loop() {
		_ = NewFrustumFromMatrix(vp)
	}
}

func BenchmarkMeshFrustumIntersectAABB(b *testing.B) {
	view := math3d.LookAt(math3d.V3(0, 0, 5), math3d.V3(0, 0, 0), math3d.V3(0, 1, 0))
	proj := math3d.Perspective(60, 1.333, 0.1, 100)
	f := NewFrustumFromMatrix(proj.Mul(view))
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

	for b.Loop() {
		_ = f.IntersectAABB(box)
	}
}

func BenchmarkFrustumContains(b *testing.B) {
	f := Frustum{Near: 0.1, Far: 100, Aspect: 1.333, Fovy: math.Pi / 4, Projection: ProjectionScanline}
	p := math3d.V3(0, 0, -10)

	for b.Loop() {
		_ = f.Contains(p)
	}
}
