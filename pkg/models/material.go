package models

// Material holds the subset of an OBJ/MTL or GLTF material the rasterizer's
// shader presets can consume: a base color, a couple of PBR-ish scalars
// carried through for demo hosts that want them, and the texture registry
// name a mesh's faces should sample.
type Material struct {
	Name       string
	BaseColor  [4]float64 // RGBA, [0,1]
	Metallic   float64
	Roughness  float64
	HasTexture bool
	TextureRef string // name to resolve against a render.TextureRegistry
}

// DefaultMaterial returns a neutral white, fully rough, non-metallic
// material — the fallback a loader assigns to faces it cannot otherwise
// resolve a material for.
func DefaultMaterial(name string) Material {
	return Material{
		Name:      name,
		BaseColor: [4]float64{1, 1, 1, 1},
		Metallic:  0,
		Roughness: 1,
	}
}

// MaterialCount returns the number of materials the mesh carries.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// GetFaceMaterial returns the material index of face i, or -1 if the face
// carries no material assignment.
func (m *Mesh) GetFaceMaterial(i int) int {
	return m.Faces[i].Material
}

// GetMaterial returns a pointer to the material at idx, or nil when idx is
// out of range (including the no-material sentinel -1).
func (m *Mesh) GetMaterial(idx int) *Material {
	if idx < 0 || idx >= len(m.Materials) {
		return nil
	}
	return &m.Materials[idx]
}
