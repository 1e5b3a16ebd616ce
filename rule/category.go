package rule

import "fmt"

// Category groups rules by the aspect of the asset they inspect.
type Category string

const (
	// CategoryScene covers scene-level structure.
	// Examples: skeleton present, mesh present, capture anomalies
	CategoryScene Category = "scene"

	// CategorySkeleton covers armature and bone checks.
	// Examples: Hips bone present, bone rotation modes, IK chains
	CategorySkeleton Category = "skeleton"

	// CategoryMesh covers mesh geometry and shape keys.
	// Examples: polygon budget, UV channels, blendshapes
	CategoryMesh Category = "mesh"

	// CategoryMaterial covers material graphs and slot bindings.
	// Examples: supported material types, slot resolution
	CategoryMaterial Category = "material"

	// CategoryTexture covers image textures.
	// Examples: file formats, resolution ceilings, color spaces
	CategoryTexture Category = "texture"

	// CategoryNaming covers object and bone naming conventions.
	// Examples: BODY/FACE suffix tags, duplicate names
	CategoryNaming Category = "naming"
)

// IsValid returns true if the category is one of the known groups.
func (c Category) IsValid() bool {
	switch c {
	case CategoryScene, CategorySkeleton, CategoryMesh,
		CategoryMaterial, CategoryTexture, CategoryNaming:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryScene:
		return "Scene Structure"
	case CategorySkeleton:
		return "Skeleton"
	case CategoryMesh:
		return "Mesh"
	case CategoryMaterial:
		return "Material"
	case CategoryTexture:
		return "Texture"
	case CategoryNaming:
		return "Naming"
	default:
		return string(c)
	}
}

// ParseCategory parses a string into a Category value.
// Returns an error if the string is not a valid category.
func ParseCategory(s string) (Category, error) {
	category := Category(s)
	if !category.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return category, nil
}

// AllCategories returns every category in report presentation order.
func AllCategories() []Category {
	return []Category{
		CategoryScene,
		CategorySkeleton,
		CategoryMesh,
		CategoryMaterial,
		CategoryTexture,
		CategoryNaming,
	}
}
