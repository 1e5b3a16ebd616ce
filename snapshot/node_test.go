package snapshot

import "testing"

func TestNodeType_IsValid(t *testing.T) {
	tests := []struct {
		name string
		t    NodeType
		want bool
	}{
		{"scene is valid", NodeScene, true},
		{"skeleton is valid", NodeSkeleton, true},
		{"bone is valid", NodeBone, true},
		{"mesh is valid", NodeMesh, true},
		{"material is valid", NodeMaterial, true},
		{"texture is valid", NodeTexture, true},
		{"empty is invalid", NodeType(""), false},
		{"camera is invalid", NodeType("camera"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.t.IsValid(); got != tt.want {
				t.Errorf("NodeType.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllNodeTypes(t *testing.T) {
	all := AllNodeTypes()
	if len(all) != 6 {
		t.Fatalf("AllNodeTypes() returned %d types, want 6", len(all))
	}
	if all[0] != NodeScene {
		t.Errorf("AllNodeTypes() first = %v, want NodeScene", all[0])
	}
	for _, nt := range all {
		if !nt.IsValid() {
			t.Errorf("AllNodeTypes() contains invalid type %q", nt)
		}
	}
}

func TestMaterialType_IsValid(t *testing.T) {
	tests := []struct {
		name string
		t    MaterialType
		want bool
	}{
		{"surface is valid", MaterialSurface, true},
		{"flat is valid", MaterialFlat, true},
		{"hair is valid", MaterialHair, true},
		{"empty is invalid", MaterialType(""), false},
		{"volume is invalid", MaterialType("volume"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.t.IsValid(); got != tt.want {
				t.Errorf("MaterialType.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNode_Types(t *testing.T) {
	snap, _ := Build(heroDesc(), ScopeAll)

	tests := []struct {
		path string
		want NodeType
	}{
		{"/", NodeScene},
		{"/skeletons/Hero_BODY", NodeSkeleton},
		{"/skeletons/Hero_BODY/Hips", NodeBone},
		{"/meshes/Body", NodeMesh},
		{"/materials/Skin", NodeMaterial},
		{"/textures/SkinTex", NodeTexture},
	}
	for _, tt := range tests {
		n := snap.Lookup(tt.path)
		if n == nil {
			t.Errorf("Lookup(%q) = nil", tt.path)
			continue
		}
		if n.Type() != tt.want {
			t.Errorf("Lookup(%q).Type() = %v, want %v", tt.path, n.Type(), tt.want)
		}
	}
}

func TestNode_Attrs(t *testing.T) {
	snap, _ := Build(heroDesc(), ScopeAll)

	scene := snap.Root().Attrs()
	if scene["mesh_count"] != 2 || scene["skeleton_count"] != 1 {
		t.Errorf("scene Attrs() = %v", scene)
	}

	mesh := snap.Mesh("Body").Attrs()
	if mesh["poly_count"] != 1200 || mesh["uv_channels"] != 1 {
		t.Errorf("mesh Attrs() = %v", mesh)
	}

	tex := snap.Texture("SkinTex").Attrs()
	if tex["format"] != "png" || tex["on_disk"] != true {
		t.Errorf("texture Attrs() = %v", tex)
	}

	// Attrs is a copy; mutating it must not leak back.
	mesh["poly_count"] = 0
	if snap.Mesh("Body").Attrs()["poly_count"] != 1200 {
		t.Error("Attrs() exposed internal state")
	}
}
