package render

import (
	"fmt"
	"image"
)

// Texture holds a decoded image plus the identity the registry assigned it.
type Texture struct {
	Width, Height int
	Pixels        []Color // row-major
	Name          string
	ID            int
}

// At returns the raw stored pixel at (x, y), no bounds checking.
func (t *Texture) At(x, y int) Color {
	return t.Pixels[y*t.Width+x]
}

// TextureRegistry is a name/id-addressable store of decoded textures. IDs
// are assigned monotonically by Register/Load and never reused.
type TextureRegistry struct {
	byID   map[int]*Texture
	byName map[string]int
	nextID int
}

// NewTextureRegistry creates an empty registry.
func NewTextureRegistry() *TextureRegistry {
	return &TextureRegistry{
		byID:   make(map[int]*Texture),
		byName: make(map[string]int),
	}
}

// Register assigns the next monotonic id to tex under name and returns it.
func (r *TextureRegistry) Register(name string, tex *Texture) int {
	id := r.nextID
	r.nextID++
	tex.Name = name
	tex.ID = id
	r.byID[id] = tex
	r.byName[name] = id
	return id
}

// Load decodes the image file at path, registers it under name, and
// returns its assigned id.
func (r *TextureRegistry) Load(path, name string) (int, error) {
	tex, err := decodeTextureFile(path)
	if err != nil {
		return 0, fmt.Errorf("load texture %q: %w", path, err)
	}
	return r.Register(name, tex), nil
}

// RegisterImage converts an already-decoded image.Image (e.g. a texture
// embedded in a GLTF buffer view rather than sitting in its own file) into
// a Texture and registers it under name.
func (r *TextureRegistry) RegisterImage(name string, img image.Image) int {
	return r.Register(name, textureFromImage(img))
}

// ID looks up a texture's id by the name it was registered under.
func (r *TextureRegistry) ID(name string) (int, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Texture returns the texture with the given id, or (nil, false) when no
// such id has been registered (TextureNotFound — the fragment shader
// decides whether to treat this as opaque white or skip sampling).
func (r *TextureRegistry) Texture(id int) (*Texture, bool) {
	tex, ok := r.byID[id]
	return tex, ok
}

// Sample performs nearest-neighbor lookup at (u, v). Coordinates are not
// wrapped: a u or v outside [0,1] samples the nearest edge texel.
func (r *TextureRegistry) Sample(id int, u, v float64) (Color, bool) {
	tex, ok := r.byID[id]
	if !ok {
		return Color{}, false
	}
	x := int(u * float64(tex.Width-1))
	y := int(v * float64(tex.Height-1))
	if x < 0 {
		x = 0
	} else if x >= tex.Width {
		x = tex.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= tex.Height {
		y = tex.Height - 1
	}
	return tex.At(x, y), true
}
