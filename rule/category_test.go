package rule

import "testing"

func TestCategory_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		want     bool
	}{
		{"scene is valid", CategoryScene, true},
		{"skeleton is valid", CategorySkeleton, true},
		{"mesh is valid", CategoryMesh, true},
		{"material is valid", CategoryMaterial, true},
		{"texture is valid", CategoryTexture, true},
		{"naming is valid", CategoryNaming, true},
		{"empty is invalid", Category(""), false},
		{"unknown is invalid", Category("lighting"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.category.IsValid(); got != tt.want {
				t.Errorf("Category.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategory_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		want     string
	}{
		{"scene display name", CategoryScene, "Scene Structure"},
		{"skeleton display name", CategorySkeleton, "Skeleton"},
		{"mesh display name", CategoryMesh, "Mesh"},
		{"material display name", CategoryMaterial, "Material"},
		{"texture display name", CategoryTexture, "Texture"},
		{"naming display name", CategoryNaming, "Naming"},
		{"unknown falls back to raw value", Category("lighting"), "lighting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.category.DisplayName(); got != tt.want {
				t.Errorf("Category.DisplayName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{"parse scene", "scene", CategoryScene, false},
		{"parse skeleton", "skeleton", CategorySkeleton, false},
		{"parse naming", "naming", CategoryNaming, false},
		{"parse empty", "", "", true},
		{"parse unknown", "lighting", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCategory() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseCategory() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllCategories(t *testing.T) {
	all := AllCategories()
	if len(all) != 6 {
		t.Fatalf("AllCategories() returned %d categories, want 6", len(all))
	}
	if all[0] != CategoryScene {
		t.Errorf("AllCategories() first category = %v, want %v", all[0], CategoryScene)
	}
	seen := make(map[Category]bool)
	for _, c := range all {
		if !c.IsValid() {
			t.Errorf("AllCategories() contains invalid category %q", c)
		}
		if seen[c] {
			t.Errorf("AllCategories() contains duplicate category %q", c)
		}
		seen[c] = true
	}
}
