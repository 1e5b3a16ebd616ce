package catalog

import (
	"fmt"
	"strings"

	"github.com/charcheck/sdk/rule"
	"github.com/charcheck/sdk/snapshot"
)

// meshSpecs holds geometry, budget and blendshape checks. The two budget
// rules sum over the whole scene and therefore attach to the scene root.
func meshSpecs(cfg Config) []rule.Spec {
	return []rule.Spec{
		{
			ID:          RulePolyBudget,
			DisplayName: "Polygon budget",
			Category:    rule.CategoryMesh,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeScene},
			Requires:    []string{RuleMeshPresent},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				total := 0
				for _, m := range rctx.Snapshot.Meshes() {
					total += m.PolyCount
				}
				if total <= cfg.PolyCountLimit {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:   RulePolyBudget,
					Severity: rule.SeverityError,
					Category: rule.CategoryMesh,
					NodePath: node.Path(),
					Message: fmt.Sprintf("Poly count limit exceeded! The character uses %d polygons, above the allowed %d. Note that subdivision counts towards the poly count.",
						total, cfg.PolyCountLimit),
					Remediation: "Reduce mesh density or subdivision levels until the total polygon count fits the budget.",
				}}, nil
			},
		},
		{
			ID:          RuleHairBudget,
			DisplayName: "Hair strand budget",
			Category:    rule.CategoryMesh,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeScene},
			Requires:    []string{RuleMeshPresent},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				total := 0
				for _, m := range rctx.Snapshot.Meshes() {
					total += m.HairStrands
				}
				if total <= cfg.HairStrandLimit {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:   RuleHairBudget,
					Severity: rule.SeverityError,
					Category: rule.CategoryMesh,
					NodePath: node.Path(),
					Message: fmt.Sprintf("Hair strand limit exceeded! The character uses %d hair strands, above the allowed %d. Rendered particle children count towards the total.",
						total, cfg.HairStrandLimit),
					Remediation: "Reduce particle counts or rendered children until the strand total fits the budget.",
				}}, nil
			},
		},
		{
			ID:          RuleUVChannels,
			DisplayName: "UV map present",
			Category:    rule.CategoryMesh,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeMesh},
			Requires:    []string{RuleMeshPresent},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				mesh := node.(*snapshot.Mesh)
				if mesh.UVChannels > 0 {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:      RuleUVChannels,
					Severity:    rule.SeverityError,
					Category:    rule.CategoryMesh,
					NodePath:    mesh.Path(),
					Message:     fmt.Sprintf("Missing UV map! Mesh %q has no UV channels, so textures cannot be applied.", mesh.Name()),
					Remediation: "Unwrap the mesh to create at least one UV layer.",
				}}, nil
			},
		},
		{
			ID:          RuleFaceBlendshapes,
			DisplayName: "Face mesh blendshapes",
			Category:    rule.CategoryMesh,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeMesh},
			Requires:    []string{RuleMeshPresent},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				mesh := node.(*snapshot.Mesh)
				if !strings.HasSuffix(mesh.Name(), cfg.FaceSuffix) || len(mesh.Blendshapes) > 0 {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:      RuleFaceBlendshapes,
					Severity:    rule.SeverityError,
					Category:    rule.CategoryMesh,
					NodePath:    mesh.Path(),
					Message:     "No valid blendshapes! There are no blendshapes to apply facial animation data to.",
					Remediation: fmt.Sprintf("Add correctly named blendshapes to %q or remove its face tag.", mesh.Name()),
				}}, nil
			},
		},
		{
			ID:          RuleRenderVisibility,
			DisplayName: "Render visibility",
			Category:    rule.CategoryMesh,
			Severity:    rule.SeverityWarning,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeMesh},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				mesh := node.(*snapshot.Mesh)
				if !mesh.HiddenFromRender {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:      RuleRenderVisibility,
					Severity:    rule.SeverityWarning,
					Category:    rule.CategoryMesh,
					NodePath:    mesh.Path(),
					Message:     fmt.Sprintf("Disabled objects in the render! Mesh %q is disabled in the renderer, which may leave parts of the character unrendered.", mesh.Name()),
					Remediation: "Enable the mesh in renders, or delete it if it is not part of the character.",
				}}, nil
			},
		},
		{
			ID:          RuleMutedBlendshapes,
			DisplayName: "Muted blendshapes",
			Category:    rule.CategoryMesh,
			Severity:    rule.SeverityWarning,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeMesh},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				mesh := node.(*snapshot.Mesh)
				var muted []string
				for _, bs := range mesh.Blendshapes {
					if bs.Muted {
						muted = append(muted, bs.Name)
					}
				}
				if len(muted) == 0 {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:   RuleMutedBlendshapes,
					Severity: rule.SeverityWarning,
					Category: rule.CategoryMesh,
					NodePath: mesh.Path(),
					Message: fmt.Sprintf("Muted blendshapes detected! Muted blendshapes receive animation data but do not display it. Muted: %s.",
						strings.Join(muted, ", ")),
					Remediation: "Unmute the blendshapes or remove them.",
				}}, nil
			},
		},
		{
			ID:          RuleGazeBlendshapes,
			DisplayName: "Eye control blendshapes",
			Category:    rule.CategoryMesh,
			Severity:    rule.SeverityWarning,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeMesh},
			Requires:    []string{RuleFaceBlendshapes},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				mesh := node.(*snapshot.Mesh)
				if !strings.HasSuffix(mesh.Name(), cfg.FaceSuffix) {
					return nil, nil
				}
				sk := rctx.Snapshot.MainSkeleton()
				if sk == nil || !hasAnyBone(sk, cfg.EyeBones) {
					return nil, nil
				}
				var missing []string
				for _, name := range cfg.GazeBlendshapes {
					if mesh.Blendshape(name) == nil {
						missing = append(missing, name)
					}
				}
				if len(missing) == 0 {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:   RuleGazeBlendshapes,
					Severity: rule.SeverityWarning,
					Category: rule.CategoryMesh,
					NodePath: mesh.Path(),
					Message: fmt.Sprintf("Eye control blendshapes missing! Eye bones are assigned but the face mesh lacks gaze blendshapes, so the gaze may not function. Missing: %s.",
						strings.Join(missing, ", ")),
					Remediation: "Add the gaze blendshapes or unassign the eye bones.",
				}}, nil
			},
		},
	}
}

// hasAnyBone reports whether the skeleton contains at least one of the
// named bones.
func hasAnyBone(sk *snapshot.Skeleton, names []string) bool {
	for _, name := range names {
		if sk.Bone(name) != nil {
			return true
		}
	}
	return false
}
