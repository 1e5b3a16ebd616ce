package catalog

import (
	"github.com/charcheck/sdk/rule"
	"github.com/charcheck/sdk/snapshot"
)

// sceneSpecs holds the structural presence checks every other category
// hangs off. They apply to the scene root, so when one fails every
// dependent rule in the scene skips.
func sceneSpecs(cfg Config) []rule.Spec {
	return []rule.Spec{
		{
			ID:          RuleSkeletonPresent,
			DisplayName: "Skeleton present",
			Category:    rule.CategoryScene,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeScene},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				if len(rctx.Snapshot.Skeletons()) > 0 {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:      RuleSkeletonPresent,
					Severity:    rule.SeverityError,
					Category:    rule.CategoryScene,
					NodePath:    node.Path(),
					Message:     "No skeleton/armature found! The character needs an armature to drive body animation.",
					Remediation: "Add an armature object and assign it as the main pose armature.",
				}}, nil
			},
		},
		{
			ID:          RuleMeshPresent,
			DisplayName: "Mesh present",
			Category:    rule.CategoryScene,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeScene},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				if len(rctx.Snapshot.Meshes()) > 0 {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:      RuleMeshPresent,
					Severity:    rule.SeverityError,
					Category:    rule.CategoryScene,
					NodePath:    node.Path(),
					Message:     "No mesh found! The character needs at least one mesh object.",
					Remediation: "Add the character's mesh objects to the scene.",
				}}, nil
			},
		},
	}
}
