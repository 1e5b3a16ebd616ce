package catalog

import (
	"fmt"

	"github.com/charcheck/sdk/rule"
	"github.com/charcheck/sdk/snapshot"
)

// materialSpecs holds material-graph checks: slot bindings, supported
// shading models and texture references.
func materialSpecs(cfg Config) []rule.Spec {
	return []rule.Spec{
		{
			ID:          RuleSlotsResolve,
			DisplayName: "Material slots resolve",
			Category:    rule.CategoryMaterial,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeMesh},
			Requires:    []string{RuleMeshPresent},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				mesh := node.(*snapshot.Mesh)
				var diags []rule.Diagnostic
				for i, slot := range mesh.MaterialSlots {
					switch {
					case slot == "":
						diags = append(diags, rule.Diagnostic{
							RuleID:      RuleSlotsResolve,
							Severity:    rule.SeverityError,
							Category:    rule.CategoryMaterial,
							NodePath:    mesh.Path(),
							Message:     fmt.Sprintf("Empty material slot! Slot %d of mesh %q has no material assigned.", i, mesh.Name()),
							Remediation: "Assign a material to the slot or remove the slot.",
						})
					case rctx.Snapshot.Material(slot) == nil:
						diags = append(diags, rule.Diagnostic{
							RuleID:      RuleSlotsResolve,
							Severity:    rule.SeverityError,
							Category:    rule.CategoryMaterial,
							NodePath:    mesh.Path(),
							Message:     fmt.Sprintf("Unresolved material slot! Slot %d of mesh %q references material %q, which does not exist.", i, mesh.Name(), slot),
							Remediation: "Re-link the slot to an existing material.",
						})
					}
				}
				return diags, nil
			},
		},
		{
			ID:          RuleTypeSupported,
			DisplayName: "Material type supported",
			Category:    rule.CategoryMaterial,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeMaterial},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				mat := node.(*snapshot.Material)
				if mat.MaterialType.IsValid() {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:   RuleTypeSupported,
					Severity: rule.SeverityError,
					Category: rule.CategoryMaterial,
					NodePath: mat.Path(),
					Message: fmt.Sprintf("Unsupported material type %q on material %q. Supported types: %s, %s, %s.",
						mat.MaterialType, mat.Name(),
						snapshot.MaterialSurface, snapshot.MaterialFlat, snapshot.MaterialHair),
					Remediation: "Rebuild the material on one of the supported shading models.",
				}}, nil
			},
		},
		{
			ID:          RuleTexturesResolve,
			DisplayName: "Material textures resolve",
			Category:    rule.CategoryMaterial,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeMaterial},
			Requires:    []string{RuleTypeSupported},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				mat := node.(*snapshot.Material)
				var diags []rule.Diagnostic
				for _, ref := range mat.TextureRefs {
					if rctx.Snapshot.Texture(ref) != nil {
						continue
					}
					diags = append(diags, rule.Diagnostic{
						RuleID:      RuleTexturesResolve,
						Severity:    rule.SeverityError,
						Category:    rule.CategoryMaterial,
						NodePath:    mat.Path(),
						Message:     fmt.Sprintf("Unresolved texture reference! Material %q samples texture %q, which was not found in the scene.", mat.Name(), ref),
						Remediation: "Re-link the image node to an existing texture or remove it.",
					})
				}
				return diags, nil
			},
		},
		{
			ID:          RuleUVRequired,
			DisplayName: "Textured materials need UVs",
			Category:    rule.CategoryMaterial,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeMesh},
			Requires:    []string{RuleUVChannels},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				mesh := node.(*snapshot.Mesh)
				if mesh.UVChannels > 0 {
					return nil, nil
				}
				for _, slot := range mesh.MaterialSlots {
					mat := rctx.Snapshot.Material(slot)
					if mat == nil || len(mat.TextureRefs) == 0 {
						continue
					}
					return []rule.Diagnostic{{
						RuleID:      RuleUVRequired,
						Severity:    rule.SeverityError,
						Category:    rule.CategoryMaterial,
						NodePath:    mesh.Path(),
						Message:     fmt.Sprintf("Textured material without UVs! Mesh %q uses material %q, which samples textures, but the mesh has no UV channels.", mesh.Name(), mat.Name()),
						Remediation: "Unwrap the mesh so its textured materials can be applied.",
					}}, nil
				}
				return nil, nil
			},
		},
	}
}
