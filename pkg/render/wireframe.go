package render

import (
	"math"

	"github.com/kestrelcg/raster3d/pkg/math3d"
)

// drawWireframe renders a post-viewport triangle as three Bresenham edges
// instead of a filled span, used when Renderer.Wireframe is set.
func (r *Renderer) drawWireframe(v0, v1, v2 Vertex, textures *TextureRegistry) {
	r.wireEdge(v0, v1, textures)
	r.wireEdge(v1, v2, textures)
	r.wireEdge(v2, v0, textures)
}

// DrawLine submits a single world-space line segment through the same
// vertex-shade -> model -> view -> frustum-discard -> near-clip -> project
// -> viewport stages DrawTriangles runs per triangle, then rasterizes it
// with Bresenham instead of a triangle fill. Unlike drawWireframe (the
// three edges of an already-pipelined triangle), this is a standalone
// entry point for line geometry that was never part of a triangle at all.
func (r *Renderer) DrawLine(model math3d.Mat4, v0, v1 Vertex, textures *TextureRegistry) {
	v0 = r.shader.Vertex(v0, r.uniforms, textures)
	v1 = r.shader.Vertex(v1, r.uniforms, textures)

	v0.Position = model.MulVec4(v0.Position)
	v1.Position = model.MulVec4(v1.Position)

	view := r.Camera.ViewMatrix()
	v0.Position = view.MulVec4(v0.Position)
	v1.Position = view.MulVec4(v1.Position)

	near := r.Camera.Frustum.Near
	frustum := Frustum{Near: near, Far: r.Camera.Frustum.Far, Aspect: r.Camera.Frustum.Aspect, Fovy: r.Camera.Frustum.Fovy, Projection: r.Camera.Frustum.Projection}
	if !frustum.Contains(v0.Position.Vec3()) && !frustum.Contains(v1.Position.Vec3()) {
		r.Stats.FrustumDiscarded++
		return
	}

	in0, in1 := insideNear(v0, near), insideNear(v1, near)
	switch {
	case !in0 && !in1:
		r.Stats.FrustumDiscarded++
		return
	case !in0:
		v0 = intersectNear(v1, v0, near)
	case !in1:
		v1 = intersectNear(v0, v1, near)
	}

	proj := r.Camera.ProjectionMatrix()
	kind := r.Camera.Frustum.Projection
	v0.Position = proj.MulVec4(v0.Position)
	v1.Position = proj.MulVec4(v1.Position)

	v0.Position.Z = linearDepth(kind, v0.Position.W, near)
	v1.Position.Z = linearDepth(kind, v1.Position.W, near)

	v0.Position.X, v0.Position.Y = v0.Position.X/v0.Position.W, v0.Position.Y/v0.Position.W
	v1.Position.X, v1.Position.Y = v1.Position.X/v1.Position.W, v1.Position.Y/v1.Position.W
	v0.Position.W, v1.Position.W = 1, 1

	r.viewport(&v0)
	r.viewport(&v1)

	r.Stats.Drawn++
	r.wireEdge(v0, v1, textures)
}

func (r *Renderer) wireEdge(a, b Vertex, textures *TextureRegistry) {
	// Same rhw scheme as the scanline fill: interpolate 1/z and the
	// rhw-premultiplied attributes linearly along the pixels, divide back at
	// each fragment.
	a = vertexRHWInit(a)
	b = vertexRHWInit(b)

	x0, y0 := int(math.Round(a.Position.X)), int(math.Round(a.Position.Y))
	x1, y1 := int(math.Round(b.Position.X)), int(math.Round(b.Position.Y))

	pts := Bresenham(x0, y0, x1, y1, 0, 0, r.Color.Width-1, r.Color.Height-1)
	if len(pts) == 0 {
		return
	}

	last := len(pts) - 1
	for i, p := range pts {
		t := 0.0
		if last > 0 {
			t = float64(i) / float64(last)
		}
		rhw := math3d.Lerp(a.Position.Z, b.Position.Z, t)
		z := 1.0 / rhw
		if !r.Depth.Test(p.X, p.Y, z) {
			continue
		}
		attrs := lerpAttributes(a.Attributes, b.Attributes, t)
		attrs = AttributesForEach(attrs, func(v float64) float64 { return v / rhw })
		c := r.shader.Fragment(attrs, r.uniforms, textures)
		r.Color.Set(p.X, p.Y, Color{R: c.X, G: c.Y, B: c.Z, A: c.W})
		r.Depth.Set(p.X, p.Y, z)
	}
}
