package models

import "testing"

func TestDefaultMaterialIsOpaqueWhiteAndRough(t *testing.T) {
	m := DefaultMaterial("fallback")
	if m.BaseColor != [4]float64{1, 1, 1, 1} {
		t.Errorf("BaseColor = %v, want opaque white", m.BaseColor)
	}
	if m.Metallic != 0 || m.Roughness != 1 {
		t.Errorf("Metallic/Roughness = %v/%v, want 0/1", m.Metallic, m.Roughness)
	}
	if m.HasTexture {
		t.Error("HasTexture = true, want false")
	}
}

func TestGetFaceMaterialAndLookup(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Materials = []Material{
		{Name: "red", BaseColor: [4]float64{1, 0, 0, 1}},
		{Name: "green", BaseColor: [4]float64{0, 1, 0, 1}},
	}
	mesh.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{3, 4, 5}, Material: 1},
		{V: [3]int{6, 7, 8}, Material: -1},
	}

	if got := mesh.GetFaceMaterial(1); got != 1 {
		t.Errorf("GetFaceMaterial(1) = %d, want 1", got)
	}
	if got := mesh.GetFaceMaterial(2); got != -1 {
		t.Errorf("GetFaceMaterial(2) = %d, want -1", got)
	}

	if mat := mesh.GetMaterial(0); mat == nil || mat.Name != "red" {
		t.Errorf("GetMaterial(0) = %+v, want the red material", mat)
	}
	if mat := mesh.GetMaterial(-1); mat != nil {
		t.Error("GetMaterial(-1) should return nil for the no-material sentinel")
	}
	if mat := mesh.GetMaterial(99); mat != nil {
		t.Error("GetMaterial(99) should return nil out of range")
	}
}

func TestMeshCloneCopiesMaterialsIndependently(t *testing.T) {
	mesh := NewMesh("original")
	mesh.Materials = []Material{{Name: "mat1"}, {Name: "mat2"}}
	mesh.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{3, 4, 5}, Material: 1},
	}

	clone := mesh.Clone()
	if clone.MaterialCount() != 2 {
		t.Fatalf("MaterialCount() = %d, want 2", clone.MaterialCount())
	}

	clone.Materials[0].Name = "modified"
	if mesh.Materials[0].Name == "modified" {
		t.Error("mutating the clone's material leaked into the original")
	}
	if clone.GetFaceMaterial(0) != 0 || clone.GetFaceMaterial(1) != 1 {
		t.Error("clone lost its face material indices")
	}
}
