package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charcheck/sdk/rule"
	"github.com/charcheck/sdk/snapshot"
)

// objectNamePattern matches names that survive export and file-path use
// unchanged.
var objectNamePattern = regexp.MustCompile(`^[A-Za-z0-9_. -]+$`)

// namingSpecs holds the naming-convention checks: the BODY/FACE tags the
// platform keys object roles off, and general object-name hygiene.
func namingSpecs(cfg Config) []rule.Spec {
	return []rule.Spec{
		{
			ID:          RuleBodySuffix,
			DisplayName: "Main armature BODY tag",
			Category:    rule.CategoryNaming,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeScene},
			Requires:    []string{RuleSkeletonPresent},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				sk := rctx.Snapshot.MainSkeleton()
				if sk == nil || strings.HasSuffix(sk.Name(), cfg.BodySuffix) {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:   RuleBodySuffix,
					Severity: rule.SeverityError,
					Category: rule.CategoryNaming,
					NodePath: sk.Path(),
					Message: fmt.Sprintf("Wrong skeleton/armature name! The main skeleton/armature name does not end with the tag %q.",
						cfg.BodySuffix),
					Remediation: fmt.Sprintf("Rename the armature so it ends with %q, for example \"Hero_%s\".",
						cfg.BodySuffix, cfg.BodySuffix),
				}}, nil
			},
		},
		{
			ID:          RuleSingleBody,
			DisplayName: "Single BODY armature",
			Category:    rule.CategoryNaming,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeScene},
			Requires:    []string{RuleSkeletonPresent},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				var tagged []*snapshot.Skeleton
				for _, sk := range rctx.Snapshot.Skeletons() {
					if strings.HasSuffix(sk.Name(), cfg.BodySuffix) {
						tagged = append(tagged, sk)
					}
				}
				if len(tagged) <= 1 {
					return nil, nil
				}
				var diags []rule.Diagnostic
				for _, sk := range tagged[1:] {
					diags = append(diags, rule.Diagnostic{
						RuleID:   RuleSingleBody,
						Severity: rule.SeverityError,
						Category: rule.CategoryNaming,
						NodePath: sk.Path(),
						Message: fmt.Sprintf("Multiple main skeletons! More than one armature carries the tag %q.",
							cfg.BodySuffix),
						Remediation: "Keep the tag on the main armature only and rename the others.",
					})
				}
				return diags, nil
			},
		},
		{
			ID:          RuleFaceSuffix,
			DisplayName: "Face mesh FACE tag",
			Category:    rule.CategoryNaming,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeScene},
			Requires:    []string{RuleMeshPresent},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				// Facial animation is optional; the tag is only required
				// once some mesh carries blendshapes.
				hasShapes := false
				for _, m := range rctx.Snapshot.Meshes() {
					if len(m.Blendshapes) > 0 {
						hasShapes = true
						break
					}
				}
				if !hasShapes || findFaceMesh(rctx.Snapshot, cfg) != nil {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:   RuleFaceSuffix,
					Severity: rule.SeverityError,
					Category: rule.CategoryNaming,
					NodePath: node.Path(),
					Message: fmt.Sprintf("Wrong face mesh name! Blendshapes were found but no mesh name ends with the tag %q.",
						cfg.FaceSuffix),
					Remediation: fmt.Sprintf("Rename the mesh driving facial animation so it ends with %q.",
						cfg.FaceSuffix),
				}}, nil
			},
		},
		{
			ID:          RuleSingleFace,
			DisplayName: "Single FACE mesh",
			Category:    rule.CategoryNaming,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeScene},
			Requires:    []string{RuleMeshPresent},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				var tagged []*snapshot.Mesh
				for _, m := range rctx.Snapshot.Meshes() {
					if strings.HasSuffix(m.Name(), cfg.FaceSuffix) {
						tagged = append(tagged, m)
					}
				}
				if len(tagged) <= 1 {
					return nil, nil
				}
				var diags []rule.Diagnostic
				for _, m := range tagged[1:] {
					diags = append(diags, rule.Diagnostic{
						RuleID:   RuleSingleFace,
						Severity: rule.SeverityError,
						Category: rule.CategoryNaming,
						NodePath: m.Path(),
						Message: fmt.Sprintf("Multiple main face meshes! More than one mesh carries the tag %q.",
							cfg.FaceSuffix),
						Remediation: "Keep the tag on the main face mesh only and rename the others.",
					})
				}
				return diags, nil
			},
		},
		{
			ID:          RuleObjectNames,
			DisplayName: "Object name hygiene",
			Category:    rule.CategoryNaming,
			Severity:    rule.SeverityError,
			AppliesTo: []snapshot.NodeType{
				snapshot.NodeSkeleton, snapshot.NodeMesh,
				snapshot.NodeMaterial, snapshot.NodeTexture,
			},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				if objectNamePattern.MatchString(node.Name()) {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:   RuleObjectNames,
					Severity: rule.SeverityError,
					Category: rule.CategoryNaming,
					NodePath: node.Path(),
					Message: fmt.Sprintf("Unsupported characters in object name %q. Names may contain letters, digits, spaces, dots, dashes and underscores.",
						node.Name()),
					Remediation: "Rename the object using only supported characters.",
				}}, nil
			},
		},
	}
}

// findFaceMesh returns the mesh tagged as the main face mesh, or nil.
func findFaceMesh(snap *snapshot.Snapshot, cfg Config) *snapshot.Mesh {
	for _, m := range snap.Meshes() {
		if strings.HasSuffix(m.Name(), cfg.FaceSuffix) {
			return m
		}
	}
	return nil
}
