package render

import (
	"fmt"

	"github.com/kestrelcg/raster3d/pkg/math3d"
)

// Viewport maps NDC (-1..1) screen-space coordinates into a pixel region of
// the color/depth attachments.
type Viewport struct {
	X, Y, W, H int
}

// RasterBackend selects which of the two interchangeable rasterizer
// back-ends a Renderer drives triangles through.
type RasterBackend int

const (
	BackendScanline RasterBackend = iota
	BackendBarycentric
)

// CullingStats accumulates the fate of every triangle submitted to the most
// recent DrawTriangles call — how many were backface-culled, discarded by
// the coarse frustum test, split by near-plane clipping, or actually
// rasterized.
type CullingStats struct {
	Submitted        int
	BackfaceCulled   int
	FrustumDiscarded int
	NearClipped      int
	Drawn            int
}

// Renderer is the pipeline façade: it owns the framebuffers, camera,
// shader, uniforms, and per-draw pipeline state, and orchestrates the
// vertex-shade -> model -> cull -> view -> frustum-discard -> near-split ->
// project -> divide -> viewport -> rasterize sequence for every triangle.
type Renderer struct {
	Color  *ColorAttachment
	Depth  *DepthAttachment
	Camera *Camera

	Viewport  Viewport
	Backend   RasterBackend
	FrontFace FrontFace
	Cull      FaceCull
	Wireframe bool

	shader   Shader
	uniforms *Uniforms

	Stats CullingStats

	clipDepth int // re-entrancy guard: near-split must not itself be near-split
}

// NewRenderer builds a renderer with a fresh, cleared set of attachments.
func NewRenderer(width, height int, camera *Camera, backend RasterBackend) *Renderer {
	return &Renderer{
		Color:     NewColorAttachment(width, height),
		Depth:     NewDepthAttachment(width, height),
		Camera:    camera,
		Viewport:  Viewport{X: 0, Y: 0, W: width, H: height},
		Backend:   backend,
		FrontFace: FrontCCW,
		Cull:      CullNone,
		shader:    DefaultShader(),
		uniforms:  NewUniforms(),
	}
}

// Shader returns the mutable shader slot.
func (r *Renderer) Shader() *Shader { return &r.shader }

// Uniforms returns the mutable uniform bag.
func (r *Renderer) Uniforms() *Uniforms { return r.uniforms }

// SetCamera replaces the active camera.
func (r *Renderer) SetCamera(c *Camera) { r.Camera = c }

// SetFrontFace sets which winding order is treated as front-facing.
func (r *Renderer) SetFrontFace(f FrontFace) { r.FrontFace = f }

// SetFaceCull sets which winding is dropped.
func (r *Renderer) SetFaceCull(c FaceCull) { r.Cull = c }

// EnableWireframe, DisableWireframe and ToggleWireframe control whether
// triangles render as three line segments via the line rasterizer instead
// of being filled.
func (r *Renderer) EnableWireframe()  { r.Wireframe = true }
func (r *Renderer) DisableWireframe() { r.Wireframe = false }
func (r *Renderer) ToggleWireframe()  { r.Wireframe = !r.Wireframe }

// Clear writes the clamped 8-bit quantization of c to every color pixel.
func (r *Renderer) Clear(c math3d.Vec4) {
	r.Color.Clear(Color{R: c.X, G: c.Y, B: c.Z, A: c.W})
}

// ClearDepth resets the depth attachment to its cleared sentinel.
func (r *Renderer) ClearDepth() {
	r.Depth.Clear()
}

// RenderedImage returns the packed RGB byte buffer ready for blit.
func (r *Renderer) RenderedImage() []byte {
	return r.Color.Bytes()
}

// ErrOutOfBounds is returned when a vertex slice's length is not a
// multiple of three.
var ErrOutOfBounds = fmt.Errorf("render: vertex count must be a multiple of 3")

// DrawTriangles submits a vertex stream to the pipeline: every consecutive
// triple is one triangle.
func (r *Renderer) DrawTriangles(model math3d.Mat4, vertices []Vertex, textures *TextureRegistry) error {
	if len(vertices)%3 != 0 {
		return ErrOutOfBounds
	}
	r.Stats = CullingStats{}
	for i := 0; i < len(vertices); i += 3 {
		r.Stats.Submitted++
		r.submitTriangle(model, vertices[i], vertices[i+1], vertices[i+2], textures)
	}
	return nil
}

// submitTriangle runs one triangle through vertex-shade, model transform,
// culling, view transform, and the frustum discard, then hands off to
// pipelineFromViewSpace.
func (r *Renderer) submitTriangle(model math3d.Mat4, v0, v1, v2 Vertex, textures *TextureRegistry) {
	v0 = r.shader.Vertex(v0, r.uniforms, textures)
	v1 = r.shader.Vertex(v1, r.uniforms, textures)
	v2 = r.shader.Vertex(v2, r.uniforms, textures)

	v0.Position = model.MulVec4(v0.Position)
	v1.Position = model.MulVec4(v1.Position)
	v2.Position = model.MulVec4(v2.Position)

	viewDir := r.Camera.ViewDir()
	if ShouldCull(v0.Position.Vec3(), v1.Position.Vec3(), v2.Position.Vec3(), viewDir, r.FrontFace, r.Cull) {
		r.Stats.BackfaceCulled++
		return
	}

	view := r.Camera.ViewMatrix()
	v0.Position = view.MulVec4(v0.Position)
	v1.Position = view.MulVec4(v1.Position)
	v2.Position = view.MulVec4(v2.Position)

	r.pipelineFromViewSpace(v0, v1, v2, textures)
}

// pipelineFromViewSpace continues the pipeline once the triangle's
// vertices sit in view space: frustum discard, near-plane split,
// projection, perspective divide, viewport mapping, and rasterize.
func (r *Renderer) pipelineFromViewSpace(v0, v1, v2 Vertex, textures *TextureRegistry) {
	near, far := r.Camera.Frustum.Near, r.Camera.Frustum.Far
	frustum := Frustum{Near: near, Far: far, Aspect: r.Camera.Frustum.Aspect, Fovy: r.Camera.Frustum.Fovy, Projection: r.Camera.Frustum.Projection}

	in0 := frustum.Contains(v0.Position.Vec3())
	in1 := frustum.Contains(v1.Position.Vec3())
	in2 := frustum.Contains(v2.Position.Vec3())
	if !in0 && !in1 && !in2 {
		r.Stats.FrustumDiscarded++
		return
	}

	tooClose := func(v Vertex) bool { return v.Position.Z > -near }
	if tooClose(v0) || tooClose(v1) || tooClose(v2) {
		if r.clipDepth > 0 {
			panic("render: near-plane clip re-entered on an already-clipped triangle")
		}
		clipped := ClipNearPlane(near, v0, v1, v2)
		if len(clipped) == 0 {
			r.Stats.FrustumDiscarded++
			return
		}
		r.Stats.NearClipped++
		r.clipDepth++
		for i := 0; i < len(clipped); i += 3 {
			r.pipelineFromViewSpace(clipped[i], clipped[i+1], clipped[i+2], textures)
		}
		r.clipDepth--
		return
	}

	proj := r.Camera.ProjectionMatrix()
	v0.Position = proj.MulVec4(v0.Position)
	v1.Position = proj.MulVec4(v1.Position)
	v2.Position = proj.MulVec4(v2.Position)

	kind := r.Camera.Frustum.Projection
	v0.Position.Z = linearDepth(kind, v0.Position.W, near)
	v1.Position.Z = linearDepth(kind, v1.Position.W, near)
	v2.Position.Z = linearDepth(kind, v2.Position.W, near)

	v0.Position.X, v0.Position.Y = v0.Position.X/v0.Position.W, v0.Position.Y/v0.Position.W
	v1.Position.X, v1.Position.Y = v1.Position.X/v1.Position.W, v1.Position.Y/v1.Position.W
	v2.Position.X, v2.Position.Y = v2.Position.X/v2.Position.W, v2.Position.Y/v2.Position.W
	v0.Position.W, v1.Position.W, v2.Position.W = 1, 1, 1

	r.viewport(&v0)
	r.viewport(&v1)
	r.viewport(&v2)

	r.Stats.Drawn++
	if r.Wireframe {
		r.drawWireframe(v0, v1, v2, textures)
		return
	}

	switch r.Backend {
	case BackendBarycentric:
		r.rasterizeBarycentric(v0, v1, v2, textures)
	default:
		r.rasterizeScanline(v0, v1, v2, textures)
	}
}

// linearDepth recovers the positive linear view-space depth from a
// post-projection w component, which carries a different scale factor
// depending on which projection variant produced it.
func linearDepth(kind ProjectionKind, w, near float64) float64 {
	if kind == ProjectionBarycentric {
		return w
	}
	return w * near
}

// viewport maps v's NDC x/y into the viewport's pixel rectangle: x runs from
// 0 to W-1, and y is flipped so NDC y=+1 lands on row 1 and y=-1 on row H.
func (r *Renderer) viewport(v *Vertex) {
	vp := r.Viewport
	v.Position.X = (v.Position.X+1)*0.5*float64(vp.W-1) + float64(vp.X)
	v.Position.Y = float64(vp.H) - (v.Position.Y+1)*0.5*float64(vp.H-1) + float64(vp.Y)
}
