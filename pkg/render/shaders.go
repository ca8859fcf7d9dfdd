package render

import "github.com/kestrelcg/raster3d/pkg/math3d"

// Preset uniform and attribute locations used by the shaders below. Demo
// hosts are free to ignore these and define their own conventions; they
// exist so cmd/meshview doesn't need to hand-roll a shader for the common
// cases of "flat color" and "textured, unlit."
const (
	AttrUV     = 0 // Vec2 slot: texture coordinate
	AttrNormal = 0 // Vec3 slot: world/view-space normal
	AttrColor  = 0 // Vec4 slot: per-vertex color

	UniformModelView = 0 // Mat4: combined model*view, for normal transforms
	UniformTexture   = 0 // Textures: the texture id to sample
	UniformLightDir  = 0 // Vec3: unit direction the light travels, toward the scene
)

// UnlitTextureShader samples UniformTexture at the interpolated AttrUV
// slot and passes the position through unchanged. Texels missing from the
// registry render opaque white rather than skipping the draw.
func UnlitTextureShader() Shader {
	return Shader{
		Vertex: func(v Vertex, _ *Uniforms, _ *TextureRegistry) Vertex { return v },
		Fragment: func(attrs Attributes, u *Uniforms, textures *TextureRegistry) math3d.Vec4 {
			texID, ok := u.Textures[UniformTexture]
			if !ok {
				return math3d.V4(1, 1, 1, 1)
			}
			uv := attrs.Vec2s[AttrUV]
			c, ok := textures.Sample(texID, uv.X, uv.Y)
			if !ok {
				return math3d.V4(1, 1, 1, 1)
			}
			return math3d.V4(c.R, c.G, c.B, c.A)
		},
	}
}

// VertexColorShader passes the AttrColor slot straight through to the
// fragment stage, unmodified.
func VertexColorShader() Shader {
	return Shader{
		Vertex: func(v Vertex, _ *Uniforms, _ *TextureRegistry) Vertex { return v },
		Fragment: func(attrs Attributes, _ *Uniforms, _ *TextureRegistry) math3d.Vec4 {
			return attrs.Vec4s[AttrColor]
		},
	}
}

// LambertShader shades a base color by the Lambertian term max(0, n.dot(-lightDir))
// using AttrNormal and UniformLightDir, a minimal "textured + lit" preset. The
// base color is the UniformTexture texel at AttrUV when a texture is bound
// (opaque white if the lookup fails), and AttrColor otherwise.
func LambertShader() Shader {
	return Shader{
		Vertex: func(v Vertex, _ *Uniforms, _ *TextureRegistry) Vertex { return v },
		Fragment: func(attrs Attributes, u *Uniforms, textures *TextureRegistry) math3d.Vec4 {
			n := attrs.Vec3s[AttrNormal].Normalize()
			lightDir := u.Vec3s[UniformLightDir].Normalize()
			intensity := n.Dot(lightDir.Negate())
			if intensity < 0 {
				intensity = 0
			}

			base := math3d.V4(1, 1, 1, 1)
			if texID, ok := u.Textures[UniformTexture]; ok {
				uv := attrs.Vec2s[AttrUV]
				if c, ok := textures.Sample(texID, uv.X, uv.Y); ok {
					base = math3d.V4(c.R, c.G, c.B, c.A)
				}
			} else {
				base = attrs.Vec4s[AttrColor]
			}

			return math3d.V4(base.X*intensity, base.Y*intensity, base.Z*intensity, base.W)
		},
	}
}

// NormalColorShader maps AttrNormal into an RGB color (n*0.5+0.5), a
// debug preset for visualizing interpolated normals directly.
func NormalColorShader() Shader {
	return Shader{
		Vertex: func(v Vertex, _ *Uniforms, _ *TextureRegistry) Vertex { return v },
		Fragment: func(attrs Attributes, _ *Uniforms, _ *TextureRegistry) math3d.Vec4 {
			n := attrs.Vec3s[AttrNormal].Normalize()
			return math3d.V4(n.X*0.5+0.5, n.Y*0.5+0.5, n.Z*0.5+0.5, 1)
		},
	}
}
