package render

import "math"

// rasterizeScanline rasterizes one post-viewport triangle via the
// trapezoid/scanline back-end. Every vertex carries a positive linear
// view-space depth in Position.Z; vertexRHWInit converts that into rhw =
// 1/z and premultiplies every attribute by it so that interpolation across
// both trapezoid edges and individual scanlines happens in
// perspective-correct (rhw) space.
func (r *Renderer) rasterizeScanline(v0, v1, v2 Vertex, textures *TextureRegistry) {
	v0 = vertexRHWInit(v0)
	v1 = vertexRHWInit(v1)
	v2 = vertexRHWInit(v2)

	for _, trap := range TrapezoidsFromTriangle(v0, v1, v2) {
		top := int(math.Ceil(trap.Top))
		bottom := int(math.Ceil(trap.Bottom))
		if top < 0 {
			top = 0
		}
		if bottom > r.Color.Height {
			bottom = r.Color.Height
		}
		for y := top; y < bottom; y++ {
			r.drawScanline(NewScanline(trap, y), textures)
		}
	}
}

func vertexRHWInit(v Vertex) Vertex {
	rhw := 1.0 / v.Position.Z
	v.Position.Z = rhw
	v.Attributes = AttributesForEach(v.Attributes, func(a float64) float64 { return a * rhw })
	return v
}

func (r *Renderer) drawScanline(sl Scanline, textures *TextureRegistry) {
	v := sl.Vertex
	for i := 0; i < sl.Width; i++ {
		x := int(v.Position.X)
		if x >= 0 && x < r.Color.Width {
			rhw := v.Position.Z
			z := 1.0 / rhw
			if r.Depth.Test(x, sl.Y, z) {
				attrs := AttributesForEach(v.Attributes, func(a float64) float64 { return a / rhw })
				c := r.shader.Fragment(attrs, r.uniforms, textures)
				r.Color.Set(x, sl.Y, Color{R: c.X, G: c.Y, B: c.Z, A: c.W})
				r.Depth.Set(x, sl.Y, z)
			}
		}
		v.Position = v.Position.Add(sl.Step.Position)
		v.Attributes = addAttributes(v.Attributes, sl.Step.Attributes)
	}
}
