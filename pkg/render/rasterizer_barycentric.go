package render

import (
	"math"

	"github.com/kestrelcg/raster3d/pkg/math3d"
)

// rasterizeBarycentric rasterizes one post-viewport triangle via the
// integer-AABB, per-pixel-barycentric back-end. Unlike its source (which
// carried no depth test at all), this performs the same keep-if-closer
// depth test as the scanline back-end so the two back-ends are
// interchangeable and composable in a single frame.
func (r *Renderer) rasterizeBarycentric(v0, v1, v2 Vertex, textures *TextureRegistry) {
	p0 := math3d.V2(v0.Position.X, v0.Position.Y)
	p1 := math3d.V2(v1.Position.X, v1.Position.Y)
	p2 := math3d.V2(v2.Position.X, v2.Position.Y)

	minX := int(math.Floor(min3(p0.X, p1.X, p2.X)))
	maxX := int(math.Ceil(max3(p0.X, p1.X, p2.X)))
	minY := int(math.Floor(min3(p0.Y, p1.Y, p2.Y)))
	maxY := int(math.Ceil(max3(p0.Y, p1.Y, p2.Y)))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > r.Color.Width-1 {
		maxX = r.Color.Width - 1
	}
	if maxY > r.Color.Height-1 {
		maxY = r.Color.Height - 1
	}

	z0, z1, z2 := v0.Position.Z, v1.Position.Z, v2.Position.Z

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			bc := math3d.ComputeBarycentric(math3d.V2(float64(x)+0.5, float64(y)+0.5), p0, p1, p2)
			if !bc.IsValid() {
				continue
			}

			invZ := bc.Alpha/z0 + bc.Beta/z1 + bc.Gamma/z2
			z := 1.0 / invZ

			if !r.Depth.Test(x, y, z) {
				continue
			}

			weighted := weightedAttrs(v0.Attributes, bc.Alpha/z0)
			weighted = addAttributes(weighted, weightedAttrs(v1.Attributes, bc.Beta/z1))
			weighted = addAttributes(weighted, weightedAttrs(v2.Attributes, bc.Gamma/z2))
			attrs := weightedAttrs(weighted, z)

			c := r.shader.Fragment(attrs, r.uniforms, textures)
			r.Color.Set(x, y, Color{R: c.X, G: c.Y, B: c.Z, A: c.W})
			r.Depth.Set(x, y, z)
		}
	}
}

func weightedAttrs(a Attributes, scale float64) Attributes {
	return AttributesForEach(a, func(v float64) float64 { return v * scale })
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
