package render

import "github.com/kestrelcg/raster3d/pkg/math3d"

// AttrCap is the fixed per-type slot capacity of Attributes.
const AttrCap = 4

// Attributes is a fixed-capacity record of interpolated per-vertex data:
// AttrCap slots for each of the four supported value shapes, indexed by an
// integer "location." The zero value is all-zero and is copied by value
// through the whole pipeline.
type Attributes struct {
	Scalars [AttrCap]float64
	Vec2s   [AttrCap]math3d.Vec2
	Vec3s   [AttrCap]math3d.Vec3
	Vec4s   [AttrCap]math3d.Vec4
}

// AttributesForEach applies f to every scalar component of every slot
// (componentwise on the vector slots) and returns the result.
func AttributesForEach(a Attributes, f func(float64) float64) Attributes {
	var out Attributes
	for i := range AttrCap {
		out.Scalars[i] = f(a.Scalars[i])
		out.Vec2s[i] = math3d.V2(f(a.Vec2s[i].X), f(a.Vec2s[i].Y))
		out.Vec3s[i] = math3d.V3(f(a.Vec3s[i].X), f(a.Vec3s[i].Y), f(a.Vec3s[i].Z))
		out.Vec4s[i] = math3d.V4(f(a.Vec4s[i].X), f(a.Vec4s[i].Y), f(a.Vec4s[i].Z), f(a.Vec4s[i].W))
	}
	return out
}

// InterpAttributes applies the ternary f(a_i, b_i, t) componentwise across
// every slot of a and b, producing a new Attributes. Used both for linear
// blend (f = lerp) and for per-x step construction (f = (x,y,t) -> (y-x)*t).
func InterpAttributes(a, b Attributes, f func(x, y, t float64) float64, t float64) Attributes {
	var out Attributes
	for i := range AttrCap {
		out.Scalars[i] = f(a.Scalars[i], b.Scalars[i], t)
		out.Vec2s[i] = math3d.V2(
			f(a.Vec2s[i].X, b.Vec2s[i].X, t),
			f(a.Vec2s[i].Y, b.Vec2s[i].Y, t),
		)
		out.Vec3s[i] = math3d.V3(
			f(a.Vec3s[i].X, b.Vec3s[i].X, t),
			f(a.Vec3s[i].Y, b.Vec3s[i].Y, t),
			f(a.Vec3s[i].Z, b.Vec3s[i].Z, t),
		)
		out.Vec4s[i] = math3d.V4(
			f(a.Vec4s[i].X, b.Vec4s[i].X, t),
			f(a.Vec4s[i].Y, b.Vec4s[i].Y, t),
			f(a.Vec4s[i].Z, b.Vec4s[i].Z, t),
			f(a.Vec4s[i].W, b.Vec4s[i].W, t),
		)
	}
	return out
}

// addAttributes adds b into a componentwise, slot by slot. Used by the
// scanline back-end to advance a scanline's running vertex by its step.
func addAttributes(a, b Attributes) Attributes {
	return InterpAttributes(a, b, func(x, y, _ float64) float64 { return x + y }, 0)
}

// lerpAttributes linearly blends a and b by t across every slot.
func lerpAttributes(a, b Attributes, t float64) Attributes {
	return InterpAttributes(a, b, func(x, y, t float64) float64 { return x + (y-x)*t }, t)
}

// Vertex is a homogeneous position plus its interpolated attributes,
// copied by value through the pipeline.
type Vertex struct {
	Position   math3d.Vec4
	Attributes Attributes
}

// NewVertex builds a Vertex from a Vec3 position, setting w=1.
func NewVertex(pos math3d.Vec3, attrs Attributes) Vertex {
	return Vertex{Position: math3d.V4FromV3(pos, 1), Attributes: attrs}
}

// Uniforms holds the seven independent typed maps keyed by integer
// location. The fragment stage receives a read-only view; shaders must not
// write to it.
type Uniforms struct {
	Ints     map[int]int
	Floats   map[int]float64
	Vec2s    map[int]math3d.Vec2
	Vec3s    map[int]math3d.Vec3
	Vec4s    map[int]math3d.Vec4
	Mats     map[int]math3d.Mat4
	Textures map[int]int // location -> texture id
}

// NewUniforms builds an empty Uniforms bag.
func NewUniforms() *Uniforms {
	return &Uniforms{
		Ints:     make(map[int]int),
		Floats:   make(map[int]float64),
		Vec2s:    make(map[int]math3d.Vec2),
		Vec3s:    make(map[int]math3d.Vec3),
		Vec4s:    make(map[int]math3d.Vec4),
		Mats:     make(map[int]math3d.Mat4),
		Textures: make(map[int]int),
	}
}

// VertexShaderFunc rewrites a vertex given the uniform bag and texture
// registry. If it intends the standard pipeline semantics it must leave
// position.w == 1.
type VertexShaderFunc func(v Vertex, u *Uniforms, textures *TextureRegistry) Vertex

// FragmentShaderFunc computes the color of a fragment from its
// perspective-correct attributes. Shaders may not fail; infinite or NaN
// results are the shader's own responsibility.
type FragmentShaderFunc func(attrs Attributes, u *Uniforms, textures *TextureRegistry) math3d.Vec4

// Shader bundles the two programmable pipeline stages.
type Shader struct {
	Vertex   VertexShaderFunc
	Fragment FragmentShaderFunc
}

// DefaultShader returns the identity-vertex, opaque-black-fragment shader.
func DefaultShader() Shader {
	return Shader{
		Vertex:   func(v Vertex, _ *Uniforms, _ *TextureRegistry) Vertex { return v },
		Fragment: func(_ Attributes, _ *Uniforms, _ *TextureRegistry) math3d.Vec4 { return math3d.V4(0, 0, 0, 1) },
	}
}
