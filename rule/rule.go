package rule

import (
	"fmt"

	"github.com/charcheck/sdk/snapshot"
)

// Outcome is the recorded result of evaluating one rule against one node.
// The engine maintains the outcome table; dependent rules read it through
// the Context.
type Outcome string

const (
	// OutcomePassed means the rule evaluated the node and raised no
	// error-severity diagnostic.
	OutcomePassed Outcome = "passed"

	// OutcomeFailed means the rule raised at least one error-severity
	// diagnostic on the node.
	OutcomeFailed Outcome = "failed"

	// OutcomeSkipped means the rule was not evaluated on the node because
	// a declared dependency failed there first.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeNone means the rule has not been evaluated on the node.
	OutcomeNone Outcome = ""
)

// OutcomeLookup reads recorded rule outcomes. The engine owns the table;
// rules receive a read-only view through the Context.
type OutcomeLookup interface {
	// Outcome returns the recorded outcome for a rule on a node, or
	// OutcomeNone if the pair has not been recorded.
	Outcome(ruleID, nodePath string) Outcome
}

// Context is the read-only view a rule receives during evaluation. It gives
// access to the whole snapshot so a rule can check cross-node relationships,
// and to the outcome table for its declared dependencies.
type Context struct {
	// Snapshot is the scene being validated.
	Snapshot *snapshot.Snapshot

	// Outcomes exposes the engine's dependency-result table. Nil when the
	// rule declares no dependencies.
	Outcomes OutcomeLookup
}

// DependencyOutcome looks up a dependency's recorded outcome on a node.
// Returns OutcomeNone when no outcome table is attached.
func (c *Context) DependencyOutcome(ruleID, nodePath string) Outcome {
	if c.Outcomes == nil {
		return OutcomeNone
	}
	return c.Outcomes.Outcome(ruleID, nodePath)
}

// Rule is one self-contained validation check.
//
// Implementations must be pure: same snapshot in, same diagnostics out, and
// no mutation of the snapshot, the context, or the rule itself. The engine
// may evaluate a rule against many nodes in one run.
type Rule interface {
	// ID is the stable rule identifier ("mesh.uv-channels").
	ID() string

	// DisplayName is the human-readable rule name.
	DisplayName() string

	// Category groups the rule for reporting.
	Category() Category

	// Severity is the severity class of the diagnostics the rule emits.
	Severity() Severity

	// AppliesTo reports whether the rule inspects nodes of the given type.
	AppliesTo(t snapshot.NodeType) bool

	// Requires lists the rule identifiers that must have run first. The
	// engine skips this rule on nodes where a required rule failed.
	Requires() []string

	// Evaluate inspects one node and returns zero or more diagnostics.
	// A non-nil error is treated as a rule execution fault: the engine
	// converts it into an info diagnostic and continues with other rules.
	Evaluate(node snapshot.Node, rctx *Context) ([]Diagnostic, error)
}

// CheckFunc is the predicate body of a declarative rule.
type CheckFunc func(node snapshot.Node, rctx *Context) ([]Diagnostic, error)

// Spec declares a rule without writing a full Rule implementation. New
// validates it and wraps it into a Rule.
type Spec struct {
	// ID is the stable rule identifier.
	ID string

	// DisplayName is the human-readable rule name.
	DisplayName string

	// Category groups the rule for reporting.
	Category Category

	// Severity is the severity class of the rule's diagnostics.
	Severity Severity

	// AppliesTo lists the node types the rule inspects.
	AppliesTo []snapshot.NodeType

	// Requires lists rule identifiers that must run first.
	Requires []string

	// Check is the predicate body.
	Check CheckFunc
}

// New validates a Spec and returns the declared rule.
func New(spec Spec) (Rule, error) {
	if spec.ID == "" {
		return nil, fmt.Errorf("rule ID is required")
	}
	if spec.DisplayName == "" {
		return nil, fmt.Errorf("rule %s: display name is required", spec.ID)
	}
	if !spec.Category.IsValid() {
		return nil, fmt.Errorf("rule %s: invalid category %q", spec.ID, spec.Category)
	}
	if !spec.Severity.IsValid() {
		return nil, fmt.Errorf("rule %s: invalid severity %q", spec.ID, spec.Severity)
	}
	if len(spec.AppliesTo) == 0 {
		return nil, fmt.Errorf("rule %s: at least one applicable node type is required", spec.ID)
	}
	for _, t := range spec.AppliesTo {
		if !t.IsValid() {
			return nil, fmt.Errorf("rule %s: invalid node type %q", spec.ID, t)
		}
	}
	if spec.Check == nil {
		return nil, fmt.Errorf("rule %s: check function is required", spec.ID)
	}
	applies := make(map[snapshot.NodeType]bool, len(spec.AppliesTo))
	for _, t := range spec.AppliesTo {
		applies[t] = true
	}
	return &declaredRule{
		spec:    spec,
		applies: applies,
	}, nil
}

// MustNew is New for rule catalogs assembled at startup; it panics on an
// invalid spec, which is a programmer error.
func MustNew(spec Spec) Rule {
	r, err := New(spec)
	if err != nil {
		panic(err)
	}
	return r
}

// declaredRule is the Rule implementation behind Spec.
type declaredRule struct {
	spec    Spec
	applies map[snapshot.NodeType]bool
}

func (r *declaredRule) ID() string          { return r.spec.ID }
func (r *declaredRule) DisplayName() string { return r.spec.DisplayName }
func (r *declaredRule) Category() Category  { return r.spec.Category }
func (r *declaredRule) Severity() Severity  { return r.spec.Severity }

func (r *declaredRule) AppliesTo(t snapshot.NodeType) bool {
	return r.applies[t]
}

func (r *declaredRule) Requires() []string {
	return append([]string(nil), r.spec.Requires...)
}

func (r *declaredRule) Evaluate(node snapshot.Node, rctx *Context) ([]Diagnostic, error) {
	return r.spec.Check(node, rctx)
}

// Fail builds the common single-diagnostic result for a rule that found a
// problem on a node.
func Fail(r Rule, node snapshot.Node, message, remediation string) []Diagnostic {
	return []Diagnostic{{
		RuleID:      r.ID(),
		Severity:    r.Severity(),
		Category:    r.Category(),
		NodePath:    node.Path(),
		Message:     message,
		Remediation: remediation,
	}}
}
