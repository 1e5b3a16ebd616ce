package catalog

import (
	"fmt"
	"reflect"

	"github.com/google/cel-go/cel"

	"github.com/charcheck/sdk/rule"
	"github.com/charcheck/sdk/snapshot"
)

// newExprEnv builds the CEL environment expression rules compile against.
// Expressions see two variables:
//
//	node: the inspected node's attribute map (see snapshot.Node.Attrs)
//	scene: the scene root's attribute map (object counts)
//
// and must evaluate to a boolean: true passes, false raises the rule's
// diagnostic.
func newExprEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("node", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("scene", cel.MapType(cel.StringType, cel.DynType)),
	)
}

// compileExprRule turns one expression rule declaration into a Rule.
// Compilation errors, a non-boolean result type, or invalid metadata all
// fail here, at load time, so a bad expression never reaches a validation
// run.
func compileExprRule(env *cel.Env, cfg ExprRuleConfig) (rule.Rule, error) {
	ast, iss := env.Compile(cfg.Expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("custom rule %s: compile expression: %w", cfg.ID, iss.Err())
	}
	if !reflect.DeepEqual(ast.OutputType(), cel.BoolType) {
		return nil, fmt.Errorf("custom rule %s: expression must produce a boolean, got %s",
			cfg.ID, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("custom rule %s: build program: %w", cfg.ID, err)
	}

	category := rule.CategoryScene
	if cfg.Category != "" {
		if category, err = rule.ParseCategory(cfg.Category); err != nil {
			return nil, fmt.Errorf("custom rule %s: %w", cfg.ID, err)
		}
	}
	severity := rule.SeverityWarning
	if cfg.Severity != "" {
		if severity, err = rule.ParseSeverity(cfg.Severity); err != nil {
			return nil, fmt.Errorf("custom rule %s: %w", cfg.ID, err)
		}
	}
	var applies []snapshot.NodeType
	for _, s := range cfg.AppliesTo {
		t := snapshot.NodeType(s)
		if !t.IsValid() {
			return nil, fmt.Errorf("custom rule %s: invalid node type %q", cfg.ID, s)
		}
		applies = append(applies, t)
	}
	if len(applies) == 0 {
		applies = []snapshot.NodeType{snapshot.NodeScene}
	}
	displayName := cfg.DisplayName
	if displayName == "" {
		displayName = cfg.ID
	}
	message := cfg.Message
	if message == "" {
		message = fmt.Sprintf("Custom check %q failed.", cfg.ID)
	}

	return rule.New(rule.Spec{
		ID:          cfg.ID,
		DisplayName: displayName,
		Category:    category,
		Severity:    severity,
		AppliesTo:   applies,
		Requires:    append([]string(nil), cfg.Requires...),
		Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
			out, _, err := prg.Eval(map[string]any{
				"node":  node.Attrs(),
				"scene": rctx.Snapshot.Root().Attrs(),
			})
			if err != nil {
				return nil, fmt.Errorf("evaluate expression: %w", err)
			}
			passed, ok := out.Value().(bool)
			if !ok {
				return nil, fmt.Errorf("expression produced %T, want bool", out.Value())
			}
			if passed {
				return nil, nil
			}
			return []rule.Diagnostic{{
				RuleID:      cfg.ID,
				Severity:    severity,
				Category:    category,
				NodePath:    node.Path(),
				Message:     message,
				Remediation: cfg.Remediation,
			}}, nil
		},
	})
}
