// Package models provides mesh/material representation and the OBJ/MTL and
// GLTF/GLB asset loaders that feed the rasterizer's vertex stream.
package models

import (
	"github.com/kestrelcg/raster3d/pkg/math3d"
	"github.com/kestrelcg/raster3d/pkg/render"
)

// Mesh represents a 3D mesh with vertices and faces, grouped by material.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face represents a triangle face with vertex indices and the index of the
// Material it belongs to (-1 if the face has no material assignment).
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Vertices:  make([]MeshVertex, 0),
		Faces:     make([]Face, 0),
		BoundsMin: math3d.V3(0, 0, 0),
		BoundsMax: math3d.V3(0, 0, 0),
	}
}

// ToVertices flattens the mesh into a render.Vertex stream suitable for
// Renderer.DrawTriangles, one triangle (3 vertices) per Face, writing the
// position into Vertex.Position, the UV into attribute slot Vec2s[uvLoc] and
// the normal into slot Vec3s[normalLoc].
func (m *Mesh) ToVertices(uvLoc, normalLoc int) []render.Vertex {
	verts := make([]render.Vertex, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		for _, idx := range f.V {
			mv := m.Vertices[idx]
			var attrs render.Attributes
			attrs.Vec2s[uvLoc] = mv.UV
			attrs.Vec3s[normalLoc] = mv.Normal
			verts = append(verts, render.NewVertex(mv.Position, attrs))
		}
	}
	return verts
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateNormals assigns each face's plane normal to all three of its
// vertices — faceted shading. Vertices shared between faces keep the normal
// of whichever face was processed last; use CalculateSmoothNormals for
// averaged normals.
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()

		m.Vertices[f.V[0]].Normal = normal
		m.Vertices[f.V[1]].Normal = normal
		m.Vertices[f.V[2]].Normal = normal
	}
}

// CalculateSmoothNormals computes averaged normals for smooth shading.
func (m *Mesh) CalculateSmoothNormals() {
	// Reset all normals
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	// Accumulate face normals per vertex
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		normal := edge1.Cross(edge2) // Don't normalize yet

		m.Vertices[f.V[0]].Normal = m.Vertices[f.V[0]].Normal.Add(normal)
		m.Vertices[f.V[1]].Normal = m.Vertices[f.V[1]].Normal.Add(normal)
		m.Vertices[f.V[2]].Normal = m.Vertices[f.V[2]].Normal.Add(normal)
	}

	// Normalize all accumulated normals
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		// Normals go through the upper 3x3 and are renormalized; this is exact
		// for rotations and uniform scale, not for non-uniform scale.
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
}

// GetVertex returns the position, normal, and UV for vertex i.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := m.Vertices[i]
	return v.Position, v.Normal, v.UV
}

// GetFace returns the vertex indices for face i.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// AABB returns the mesh's bounding box as a render.AABB, for use with
// render.MeshFrustum culling.
func (m *Mesh) AABB() render.AABB {
	return render.AABB{Min: m.BoundsMin, Max: m.BoundsMax}
}

// IsVisible reports whether the mesh's world-space bounding box (after
// applying model) intersects the given frustum. Coarse pre-filter before
// submitting the mesh's triangles to Renderer.DrawTriangles.
func (m *Mesh) IsVisible(model math3d.Mat4, frustum render.MeshFrustum) bool {
	box := render.TransformAABB(m.AABB(), model)
	return frustum.IntersectAABB(box)
}
