package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/kestrelcg/raster3d/pkg/math3d"
)

// LoadGLB loads a GLTF or binary GLTF (.glb) file into a Mesh: every
// triangle primitive of every mesh in the document, with faces tagged by
// material index. Missing normals are reconstructed by smooth averaging.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf %q: %w", path, err)
	}

	mesh := NewMesh(filepath.Base(path))
	mesh.Materials = decodeGLTFMaterials(doc)

	for _, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			if err := appendGLTFPrimitive(doc, mesh, prim); err != nil {
				return nil, fmt.Errorf("mesh %q: %w", gm.Name, err)
			}
		}
	}
	if len(mesh.Vertices) == 0 {
		return nil, fmt.Errorf("gltf %q: no triangle geometry", path)
	}

	if !meshHasNormals(mesh) {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// LoadGLBWithTexture loads a GLB/GLTF file and additionally decodes the
// document's first usable image (embedded buffer view or a relative-URI
// file next to the document) so the caller can register it as the mesh's
// diffuse texture. The image is nil when the document carries none.
func LoadGLBWithTexture(path string) (*Mesh, image.Image, error) {
	mesh, err := LoadGLB(path)
	if err != nil {
		return nil, nil, err
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf %q: %w", path, err)
	}
	return mesh, firstGLTFImage(doc, filepath.Dir(path)), nil
}

// decodeGLTFMaterials maps the document's PBR metallic-roughness materials
// into this package's Material records, index-aligned with doc.Materials so
// a primitive's material index can be carried onto faces unchanged.
func decodeGLTFMaterials(doc *gltf.Document) []Material {
	if len(doc.Materials) == 0 {
		return nil
	}
	out := make([]Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		mat := DefaultMaterial(gm.Name)
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			mat.BaseColor = [4]float64{cf[0], cf[1], cf[2], cf[3]}
			mat.Metallic = pbr.MetallicFactorOrDefault()
			mat.Roughness = pbr.RoughnessFactorOrDefault()
			if pbr.BaseColorTexture != nil {
				mat.HasTexture = true
				mat.TextureRef = gltfImageName(doc, pbr.BaseColorTexture.Index)
			}
		}
		out[i] = mat
	}
	return out
}

// gltfImageName resolves a texture index to a stable registry name: the
// image's own name when it has one, else a synthetic per-source name.
func gltfImageName(doc *gltf.Document, texIndex int) string {
	if texIndex < 0 || texIndex >= len(doc.Textures) {
		return ""
	}
	src := doc.Textures[texIndex].Source
	if src == nil || *src < 0 || *src >= len(doc.Images) {
		return ""
	}
	if name := doc.Images[*src].Name; name != "" {
		return name
	}
	return fmt.Sprintf("gltf:image:%d", *src)
}

// appendGLTFPrimitive decodes one triangle primitive's positions, normals,
// UVs and indices into mesh. Non-triangle primitives (points, lines) are
// skipped: the rasterizer consumes triangle streams only.
func appendGLTFPrimitive(doc *gltf.Document, mesh *Mesh, prim *gltf.Primitive) error {
	// Mode 0 is what an omitted mode field unmarshals to; the format's
	// default mode is triangles.
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		return nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}

	positions, err := gltfVec3s(doc, posIdx)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals []math3d.Vec3
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = gltfVec3s(doc, idx); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}

	var uvs []math3d.Vec2
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = gltfVec2s(doc, idx); err != nil {
			return fmt.Errorf("uvs: %w", err)
		}
	}

	base := len(mesh.Vertices)
	for i, pos := range positions {
		v := MeshVertex{Position: pos}
		if i < len(normals) {
			v.Normal = normals[i]
		}
		if i < len(uvs) {
			// GLTF UVs put V=0 at the top of the image, matching the
			// registry sampler's row order, so no flip is needed.
			v.UV = uvs[i]
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	matIdx := -1
	if prim.Material != nil && *prim.Material < len(mesh.Materials) {
		matIdx = *prim.Material
	}

	var indices []int
	if prim.Indices != nil {
		if indices, err = gltfIndices(doc, *prim.Indices); err != nil {
			return fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]int, len(positions))
		for i := range indices {
			indices[i] = i
		}
	}
	for i := 0; i+2 < len(indices); i += 3 {
		mesh.Faces = append(mesh.Faces, Face{
			V:        [3]int{base + indices[i], base + indices[i+1], base + indices[i+2]},
			Material: matIdx,
		})
	}
	return nil
}

// firstGLTFImage decodes the first image the document carries: a buffer-view
// slice for GLB-embedded images, or a file next to the document for
// relative-URI references. Returns nil when nothing decodes.
func firstGLTFImage(doc *gltf.Document, dir string) image.Image {
	for _, gi := range doc.Images {
		var data []byte
		switch {
		case gi.BufferView != nil:
			bv := doc.BufferViews[*gi.BufferView]
			buf := doc.Buffers[bv.Buffer]
			if buf.Data == nil {
				continue
			}
			data = buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
		case gi.URI != "":
			b, err := os.ReadFile(filepath.Join(dir, gi.URI))
			if err != nil {
				continue
			}
			data = b
		default:
			continue
		}
		if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			return img
		}
	}
	return nil
}

// meshHasNormals reports whether any loaded vertex carries a usable normal.
func meshHasNormals(m *Mesh) bool {
	for _, v := range m.Vertices {
		if v.Normal.LenSq() > 1e-6 {
			return true
		}
	}
	return false
}

// accessorBytes resolves an accessor down to the raw backing bytes of its
// buffer view plus the element stride. Only GLB-embedded buffers are
// supported; external .bin sidecars are out of scope for this loader.
func accessorBytes(doc *gltf.Document, acc *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if acc.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	bv := doc.BufferViews[*acc.BufferView]
	buf := doc.Buffers[bv.Buffer]
	if buf.Data == nil {
		return nil, 0, fmt.Errorf("buffer %d has no embedded data", bv.Buffer)
	}
	stride := bv.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := bv.ByteOffset + acc.ByteOffset
	need := start + (acc.Count-1)*stride + elemSize
	if need > len(buf.Data) {
		return nil, 0, fmt.Errorf("accessor spans past its buffer (%d > %d)", need, len(buf.Data))
	}
	return buf.Data[start:], stride, nil
}

func gltfVec3s(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	acc := doc.Accessors[accessorIdx]
	if acc.Type != gltf.AccessorVec3 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("accessor %d: want float VEC3, got %v/%v", accessorIdx, acc.Type, acc.ComponentType)
	}
	data, stride, err := accessorBytes(doc, acc, 12)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3, acc.Count)
	for i := range out {
		off := i * stride
		out[i] = math3d.V3(
			float64(leFloat32(data[off:])),
			float64(leFloat32(data[off+4:])),
			float64(leFloat32(data[off+8:])),
		)
	}
	return out, nil
}

func gltfVec2s(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	acc := doc.Accessors[accessorIdx]
	if acc.Type != gltf.AccessorVec2 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("accessor %d: want float VEC2, got %v/%v", accessorIdx, acc.Type, acc.ComponentType)
	}
	data, stride, err := accessorBytes(doc, acc, 8)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec2, acc.Count)
	for i := range out {
		off := i * stride
		out[i] = math3d.V2(float64(leFloat32(data[off:])), float64(leFloat32(data[off+4:])))
	}
	return out, nil
}

func gltfIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	acc := doc.Accessors[accessorIdx]
	if acc.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("accessor %d: want SCALAR indices, got %v", accessorIdx, acc.Type)
	}

	var elemSize int
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		elemSize = 1
	case gltf.ComponentUshort:
		elemSize = 2
	case gltf.ComponentUint:
		elemSize = 4
	default:
		return nil, fmt.Errorf("accessor %d: unsupported index component %v", accessorIdx, acc.ComponentType)
	}

	data, stride, err := accessorBytes(doc, acc, elemSize)
	if err != nil {
		return nil, err
	}
	out := make([]int, acc.Count)
	for i := range out {
		off := i * stride
		switch elemSize {
		case 1:
			out[i] = int(data[off])
		case 2:
			out[i] = int(uint16(data[off]) | uint16(data[off+1])<<8)
		default:
			out[i] = int(uint32(data[off]) | uint32(data[off+1])<<8 |
				uint32(data[off+2])<<16 | uint32(data[off+3])<<24)
		}
	}
	return out, nil
}

// leFloat32 reads a little-endian float32, the only float layout GLTF
// buffers use.
func leFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
