package catalog

import (
	"fmt"

	"github.com/charcheck/sdk/rule"
	"github.com/charcheck/sdk/snapshot"
)

// Specs returns every built-in rule declaration for the given
// configuration, in catalog order. Severity overrides, disabled rules and
// custom rules are applied by Rules.
func Specs(cfg Config) []rule.Spec {
	var specs []rule.Spec
	specs = append(specs, sceneSpecs(cfg)...)
	specs = append(specs, namingSpecs(cfg)...)
	specs = append(specs, skeletonSpecs(cfg)...)
	specs = append(specs, meshSpecs(cfg)...)
	specs = append(specs, materialSpecs(cfg)...)
	specs = append(specs, textureSpecs(cfg)...)
	return specs
}

// Rules builds the configured rule set: the built-in catalog minus
// disabled rules, with severity overrides applied, followed by the
// configured expression rules.
//
// Disabling a rule also removes it from other rules' dependency lists, so
// dependents keep running instead of failing registration.
func Rules(cfg Config) ([]rule.Rule, error) {
	disabled := make(map[string]bool, len(cfg.DisabledRules))
	for _, id := range cfg.DisabledRules {
		disabled[id] = true
	}

	var rules []rule.Rule
	for _, spec := range Specs(cfg) {
		if disabled[spec.ID] {
			continue
		}
		if sev, ok := cfg.SeverityOverrides[spec.ID]; ok {
			parsed, err := rule.ParseSeverity(sev)
			if err != nil {
				return nil, fmt.Errorf("catalog: severity override for %s: %w", spec.ID, err)
			}
			spec = overrideSeverity(spec, parsed)
		}
		spec.Requires = pruneDisabled(spec.Requires, disabled)
		r, err := rule.New(spec)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		rules = append(rules, r)
	}

	if len(cfg.CustomRules) > 0 {
		env, err := newExprEnv()
		if err != nil {
			return nil, fmt.Errorf("catalog: build expression environment: %w", err)
		}
		for _, cr := range cfg.CustomRules {
			cr.Requires = pruneDisabled(cr.Requires, disabled)
			r, err := compileExprRule(env, cr)
			if err != nil {
				return nil, fmt.Errorf("catalog: %w", err)
			}
			rules = append(rules, r)
		}
	}
	return rules, nil
}

// NewRegistry assembles the configured rules into a registry ready for the
// engine.
func NewRegistry(cfg Config) (*rule.Registry, error) {
	rules, err := Rules(cfg)
	if err != nil {
		return nil, err
	}
	reg := rule.NewRegistry()
	if err := reg.RegisterAll(rules...); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return reg, nil
}

// overrideSeverity rewrites a spec's severity, including the severity its
// check stamps onto diagnostics.
func overrideSeverity(spec rule.Spec, severity rule.Severity) rule.Spec {
	inner := spec.Check
	spec.Severity = severity
	spec.Check = func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
		diags, err := inner(node, rctx)
		for i := range diags {
			diags[i].Severity = severity
		}
		return diags, err
	}
	return spec
}

// pruneDisabled drops disabled identifiers from a dependency list.
func pruneDisabled(deps []string, disabled map[string]bool) []string {
	if len(deps) == 0 {
		return nil
	}
	out := deps[:0:0]
	for _, d := range deps {
		if !disabled[d] {
			out = append(out, d)
		}
	}
	return out
}
