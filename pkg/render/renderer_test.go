package render

import (
	"math"
	"testing"

	"github.com/kestrelcg/raster3d/pkg/math3d"
)

func coloredVertex(pos math3d.Vec3, c math3d.Vec4) Vertex {
	var attrs Attributes
	attrs.Vec4s[AttrColor] = c
	return NewVertex(pos, attrs)
}

func newTestRenderer() *Renderer {
	camera := NewCamera(0.1, 100, 1.0, math.Pi/4, ProjectionScanline)
	r := NewRenderer(64, 64, camera, BackendScanline)
	r.Cull = CullNone
	*r.Shader() = VertexColorShader()
	return r
}

func TestClearReadbackBytes(t *testing.T) {
	r := NewRenderer(4, 4, NewCamera(0.1, 100, 1.0, math.Pi/4, ProjectionScanline), BackendScanline)
	r.Clear(math3d.V4(1, 0, 0, 1))

	img := r.RenderedImage()
	if len(img) != 4*4*3 {
		t.Fatalf("len(RenderedImage()) = %d, want %d", len(img), 4*4*3)
	}
	for i := 0; i < len(img); i += 3 {
		if img[i] != 255 || img[i+1] != 0 || img[i+2] != 0 {
			t.Fatalf("pixel %d = (%d,%d,%d), want (255,0,0)", i/3, img[i], img[i+1], img[i+2])
		}
	}
}

func TestDrawTrianglesNearPlaneSplit(t *testing.T) {
	camera := NewCamera(1, 100, 1.0, math.Pi/4, ProjectionScanline)
	r := NewRenderer(64, 64, camera, BackendScanline)
	*r.Shader() = VertexColorShader()

	// One vertex closer than the near plane: the clipper cuts the corner
	// off and fan-triangulates the surviving quad into two triangles.
	red := math3d.V4(1, 0, 0, 1)
	vertices := []Vertex{
		coloredVertex(math3d.V3(0, 0, -0.5), red),
		coloredVertex(math3d.V3(-1, 0, -2), red),
		coloredVertex(math3d.V3(1, 0.5, -2), red),
	}
	if err := r.DrawTriangles(math3d.Identity(), vertices, nil); err != nil {
		t.Fatalf("DrawTriangles: %v", err)
	}
	if r.Stats.NearClipped != 1 {
		t.Errorf("NearClipped = %d, want 1", r.Stats.NearClipped)
	}
	if r.Stats.Drawn != 2 {
		t.Errorf("Drawn = %d, want 2 (quad split into two triangles)", r.Stats.Drawn)
	}
}

func newBarycentricTestRenderer() *Renderer {
	camera := NewCamera(0.1, 100, 1.0, math.Pi/4, ProjectionBarycentric)
	r := NewRenderer(64, 64, camera, BackendBarycentric)
	r.Cull = CullNone
	*r.Shader() = VertexColorShader()
	return r
}

func TestBarycentricBackendDrawsTriangle(t *testing.T) {
	r := newBarycentricTestRenderer()
	red := math3d.V4(1, 0, 0, 1)
	vertices := []Vertex{
		coloredVertex(math3d.V3(-0.5, -0.5, -5), red),
		coloredVertex(math3d.V3(0.5, -0.5, -5), red),
		coloredVertex(math3d.V3(0, 0.5, -5), red),
	}
	if err := r.DrawTriangles(math3d.Identity(), vertices, nil); err != nil {
		t.Fatalf("DrawTriangles: %v", err)
	}
	if r.Stats.Drawn != 1 {
		t.Fatalf("Drawn = %d, want 1", r.Stats.Drawn)
	}
	c := r.Color.At(32, 32)
	if c.R < 0.5 || c.G > 0.1 || c.B > 0.1 {
		t.Errorf("center pixel = %+v, want mostly red", c)
	}
}

func TestBarycentricBackendDepthTestIsOrderIndependent(t *testing.T) {
	// Both back-ends share the keep-if-closer depth semantics; this pins
	// the barycentric side down the same way the scanline test does.
	red := math3d.V4(1, 0, 0, 1)
	blue := math3d.V4(0, 0, 1, 1)

	near := []Vertex{
		coloredVertex(math3d.V3(-0.5, -0.5, -3), red),
		coloredVertex(math3d.V3(0.5, -0.5, -3), red),
		coloredVertex(math3d.V3(0, 0.5, -3), red),
	}
	far := []Vertex{
		coloredVertex(math3d.V3(-0.5, -0.5, -10), blue),
		coloredVertex(math3d.V3(0.5, -0.5, -10), blue),
		coloredVertex(math3d.V3(0, 0.5, -10), blue),
	}

	for _, order := range []struct {
		name          string
		first, second []Vertex
	}{
		{"far then near", far, near},
		{"near then far", near, far},
	} {
		t.Run(order.name, func(t *testing.T) {
			r := newBarycentricTestRenderer()
			if err := r.DrawTriangles(math3d.Identity(), order.first, nil); err != nil {
				t.Fatalf("first draw: %v", err)
			}
			if err := r.DrawTriangles(math3d.Identity(), order.second, nil); err != nil {
				t.Fatalf("second draw: %v", err)
			}
			c := r.Color.At(32, 32)
			if c.R < 0.5 || c.B > 0.1 {
				t.Errorf("center = %+v, want the nearer (red) triangle to win", c)
			}
		})
	}
}

func TestDrawTrianglesOffscreenTriangleIsDiscarded(t *testing.T) {
	r := newTestRenderer()
	red := math3d.V4(1, 0, 0, 1)
	vertices := []Vertex{
		coloredVertex(math3d.V3(999, 0, -5), red),
		coloredVertex(math3d.V3(1000, 0, -5), red),
		coloredVertex(math3d.V3(999.5, 1, -5), red),
	}
	if err := r.DrawTriangles(math3d.Identity(), vertices, nil); err != nil {
		t.Fatalf("DrawTriangles: %v", err)
	}
	if r.Stats.Drawn != 0 {
		t.Errorf("Drawn = %d, want 0", r.Stats.Drawn)
	}
	if r.Stats.FrustumDiscarded != 1 {
		t.Errorf("FrustumDiscarded = %d, want 1", r.Stats.FrustumDiscarded)
	}
}

func TestDrawTrianglesRejectsNonMultipleOfThree(t *testing.T) {
	r := newTestRenderer()
	vertices := []Vertex{
		coloredVertex(math3d.V3(0, 0, -5), math3d.V4(1, 1, 1, 1)),
		coloredVertex(math3d.V3(1, 0, -5), math3d.V4(1, 1, 1, 1)),
	}
	if err := r.DrawTriangles(math3d.Identity(), vertices, nil); err != ErrOutOfBounds {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}
}

func TestDrawTrianglesOnscreenTriangleIsDrawn(t *testing.T) {
	r := newTestRenderer()
	red := math3d.V4(1, 0, 0, 1)
	vertices := []Vertex{
		coloredVertex(math3d.V3(-0.5, -0.5, -5), red),
		coloredVertex(math3d.V3(0.5, -0.5, -5), red),
		coloredVertex(math3d.V3(0, 0.5, -5), red),
	}
	if err := r.DrawTriangles(math3d.Identity(), vertices, nil); err != nil {
		t.Fatalf("DrawTriangles: %v", err)
	}
	if r.Stats.Drawn != 1 {
		t.Fatalf("Drawn = %d, want 1", r.Stats.Drawn)
	}

	c := r.Color.At(32, 32)
	if c.R < 0.5 || c.G > 0.1 || c.B > 0.1 {
		t.Errorf("center pixel = %+v, want mostly red", c)
	}
}

func TestDrawTrianglesDepthTestIsOrderIndependent(t *testing.T) {
	red := math3d.V4(1, 0, 0, 1)
	blue := math3d.V4(0, 0, 1, 1)

	near := []Vertex{
		coloredVertex(math3d.V3(-0.5, -0.5, -3), red),
		coloredVertex(math3d.V3(0.5, -0.5, -3), red),
		coloredVertex(math3d.V3(0, 0.5, -3), red),
	}
	far := []Vertex{
		coloredVertex(math3d.V3(-0.5, -0.5, -10), blue),
		coloredVertex(math3d.V3(0.5, -0.5, -10), blue),
		coloredVertex(math3d.V3(0, 0.5, -10), blue),
	}

	farThenNear := newTestRenderer()
	farThenNear.Clear(math3d.V4(0, 0, 0, 1))
	farThenNear.ClearDepth()
	if err := farThenNear.DrawTriangles(math3d.Identity(), far, nil); err != nil {
		t.Fatalf("draw far: %v", err)
	}
	if err := farThenNear.DrawTriangles(math3d.Identity(), near, nil); err != nil {
		t.Fatalf("draw near: %v", err)
	}

	nearThenFar := newTestRenderer()
	nearThenFar.Clear(math3d.V4(0, 0, 0, 1))
	nearThenFar.ClearDepth()
	if err := nearThenFar.DrawTriangles(math3d.Identity(), near, nil); err != nil {
		t.Fatalf("draw near: %v", err)
	}
	if err := nearThenFar.DrawTriangles(math3d.Identity(), far, nil); err != nil {
		t.Fatalf("draw far: %v", err)
	}

	a := farThenNear.Color.At(32, 32)
	b := nearThenFar.Color.At(32, 32)
	if a.R < 0.5 || a.B > 0.1 {
		t.Errorf("far-then-near center = %+v, want the nearer (red) triangle to win", a)
	}
	if b.R < 0.5 || b.B > 0.1 {
		t.Errorf("near-then-far center = %+v, want the nearer (red) triangle to win", b)
	}
}

func TestDrawTrianglesWireframeSkipsFill(t *testing.T) {
	r := newTestRenderer()
	r.EnableWireframe()
	red := math3d.V4(1, 0, 0, 1)
	vertices := []Vertex{
		coloredVertex(math3d.V3(-0.5, -0.5, -5), red),
		coloredVertex(math3d.V3(0.5, -0.5, -5), red),
		coloredVertex(math3d.V3(0, 0.5, -5), red),
	}
	if err := r.DrawTriangles(math3d.Identity(), vertices, nil); err != nil {
		t.Fatalf("DrawTriangles: %v", err)
	}
	if r.Stats.Drawn != 1 {
		t.Errorf("Drawn = %d, want 1", r.Stats.Drawn)
	}
	// The triangle's centroid is never touched by a wireframe pass, since
	// only the three edges are rasterized.
	c := r.Color.At(32, 32)
	if c.R > 0.1 {
		t.Errorf("centroid pixel = %+v, want background (wireframe does not fill)", c)
	}
}

func TestDrawLineDrawsAcrossCenter(t *testing.T) {
	r := newTestRenderer()
	green := math3d.V4(0, 1, 0, 1)
	a := coloredVertex(math3d.V3(-0.5, 0, -5), green)
	b := coloredVertex(math3d.V3(0.5, 0, -5), green)

	r.DrawLine(math3d.Identity(), a, b, nil)
	if r.Stats.Drawn != 1 {
		t.Fatalf("Drawn = %d, want 1", r.Stats.Drawn)
	}

	// NDC y=0 maps to row 64 - 0.5*63 = 32.5, which wireEdge rounds to 33.
	c := r.Color.At(32, 33)
	if c.G < 0.5 {
		t.Errorf("pixel at the segment's midpoint = %+v, want mostly green", c)
	}
}

func TestDrawLineEntirelyOffscreenIsDiscarded(t *testing.T) {
	r := newTestRenderer()
	white := math3d.V4(1, 1, 1, 1)
	a := coloredVertex(math3d.V3(999, 0, -5), white)
	b := coloredVertex(math3d.V3(1000, 0, -5), white)

	r.DrawLine(math3d.Identity(), a, b, nil)
	if r.Stats.Drawn != 0 {
		t.Errorf("Drawn = %d, want 0", r.Stats.Drawn)
	}
	if r.Stats.FrustumDiscarded != 1 {
		t.Errorf("FrustumDiscarded = %d, want 1", r.Stats.FrustumDiscarded)
	}
}
