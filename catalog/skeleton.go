package catalog

import (
	"fmt"
	"strings"

	"github.com/charcheck/sdk/rule"
	"github.com/charcheck/sdk/snapshot"
)

// skeletonSpecs holds the armature and bone checks. Rules that only make
// sense for the character's main armature ignore secondary skeletons (prop
// rigs and the like).
func skeletonSpecs(cfg Config) []rule.Spec {
	return []rule.Spec{
		{
			ID:          RuleHipsBone,
			DisplayName: "Hips bone present",
			Category:    rule.CategorySkeleton,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeSkeleton},
			Requires:    []string{RuleSkeletonPresent},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				sk := node.(*snapshot.Skeleton)
				if sk != rctx.Snapshot.MainSkeleton() {
					return nil, nil
				}
				if sk.Bone(cfg.HipsBone) != nil {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:   RuleHipsBone,
					Severity: rule.SeverityError,
					Category: rule.CategorySkeleton,
					NodePath: sk.Path(),
					Message:  fmt.Sprintf("%s bone not found!", cfg.HipsBone),
					Remediation: fmt.Sprintf("Add a bone named %q as the root pose bone of the main armature.",
						cfg.HipsBone),
				}}, nil
			},
		},
		{
			ID:          RulePosePosition,
			DisplayName: "Armature in pose position",
			Category:    rule.CategorySkeleton,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeSkeleton},
			Requires:    []string{RuleSkeletonPresent},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				sk := node.(*snapshot.Skeleton)
				if sk != rctx.Snapshot.MainSkeleton() || sk.InPosePosition {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:      RulePosePosition,
					Severity:    rule.SeverityError,
					Category:    rule.CategorySkeleton,
					NodePath:    sk.Path(),
					Message:     "Armature is not in Pose Position! Having the armature in Rest Position will prevent the character from being animated.",
					Remediation: "Switch the armature to Pose Position mode.",
				}}, nil
			},
		},
		{
			ID:          RuleHipsRelations,
			DisplayName: "Hips bone relations",
			Category:    rule.CategorySkeleton,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeBone},
			Requires:    []string{RuleHipsBone},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				bone := node.(*snapshot.Bone)
				if bone.Name() != cfg.HipsBone || bone.Skeleton() != rctx.Snapshot.MainSkeleton() {
					return nil, nil
				}
				if !bone.Connected && bone.LocalLocation {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:      RuleHipsRelations,
					Severity:    rule.SeverityError,
					Category:    rule.CategorySkeleton,
					NodePath:    bone.Path(),
					Message:     "Wrong Hips bone relations settings! The Hips bone must be disconnected from its parent bone and have local location enabled to allow translating the character.",
					Remediation: "Under the bone's Relations settings, disable Connected and enable Local Location.",
				}}, nil
			},
		},
		{
			ID:          RuleRotationMode,
			DisplayName: "Bone rotation mode",
			Category:    rule.CategorySkeleton,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeBone},
			Requires:    []string{RuleSkeletonPresent},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				bone := node.(*snapshot.Bone)
				if bone.Skeleton() != rctx.Snapshot.MainSkeleton() {
					return nil, nil
				}
				if bone.RotationMode == "" || bone.RotationMode == cfg.BoneRotationMode {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:   RuleRotationMode,
					Severity: rule.SeverityError,
					Category: rule.CategorySkeleton,
					NodePath: bone.Path(),
					Message: fmt.Sprintf("Wrong bone rotation mode! Rotation mode for all main pose armature bones must be %s, bone %q uses %s.",
						cfg.BoneRotationMode, bone.Name(), bone.RotationMode),
					Remediation: fmt.Sprintf("Set the bone's rotation mode to %s.", cfg.BoneRotationMode),
				}}, nil
			},
		},
		{
			ID:          RuleStandardBones,
			DisplayName: "Standard humanoid bones",
			Category:    rule.CategorySkeleton,
			Severity:    rule.SeverityWarning,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeSkeleton},
			Requires:    []string{RuleHipsBone},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				sk := node.(*snapshot.Skeleton)
				if sk != rctx.Snapshot.MainSkeleton() {
					return nil, nil
				}
				var missing []string
				for _, name := range cfg.RequiredBones {
					if sk.Bone(name) == nil {
						missing = append(missing, name)
					}
				}
				if len(missing) == 0 {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:   RuleStandardBones,
					Severity: rule.SeverityWarning,
					Category: rule.CategorySkeleton,
					NodePath: sk.Path(),
					Message: fmt.Sprintf("Pose bones missing! Missing bones may negatively impact animation quality. Missing bones: %s.",
						strings.Join(missing, ", ")),
					Remediation: "Make sure missing bones are left out intentionally.",
				}}, nil
			},
		},
		{
			ID:          RuleIKChains,
			DisplayName: "IK bone chains",
			Category:    rule.CategorySkeleton,
			Severity:    rule.SeverityWarning,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeSkeleton},
			Requires:    []string{RuleHipsBone},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				sk := node.(*snapshot.Skeleton)
				if sk != rctx.Snapshot.MainSkeleton() {
					return nil, nil
				}
				var missing []string
				for _, chain := range cfg.IKChains {
					root, end := chain[0], chain[1]
					if !chainNavigable(sk, root, end) {
						missing = append(missing, fmt.Sprintf("%s <- %s", root, end))
					}
				}
				if len(missing) == 0 {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:   RuleIKChains,
					Severity: rule.SeverityWarning,
					Category: rule.CategorySkeleton,
					NodePath: sk.Path(),
					Message: fmt.Sprintf("Unable to establish all IK bone chains! IK features may not be applied for some limbs. Missing chains: %s.",
						strings.Join(missing, ", ")),
					Remediation: "Check that each limb's end bone descends from its root bone through the parent hierarchy.",
				}}, nil
			},
		},
	}
}

// chainNavigable reports whether the end bone reaches the root bone by
// walking parents. Both bones must exist.
func chainNavigable(sk *snapshot.Skeleton, rootName, endName string) bool {
	root := sk.Bone(rootName)
	end := sk.Bone(endName)
	if root == nil || end == nil {
		return false
	}
	steps := 0
	for cur := end.Parent(); cur != nil; cur = cur.Parent() {
		if cur == root {
			return true
		}
		// Parent cycles are reported as capture anomalies; bail out
		// instead of spinning on damaged input.
		if steps++; steps > len(sk.Bones()) {
			return false
		}
	}
	return false
}
