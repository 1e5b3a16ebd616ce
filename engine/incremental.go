package engine

import (
	"context"
	"fmt"

	"github.com/charcheck/sdk/report"
	"github.com/charcheck/sdk/snapshot"
)

// RunIncremental re-validates only the changed subtree and merges the fresh
// results with the previous report.
//
// The engine re-captures the whole scene, re-runs every rule whose
// applicable node types occur inside the changed scope plus all rules that
// transitively depend on those, and keeps every prior diagnostic and skip
// the re-run could not have replaced. Diagnostics the previous report holds
// for nodes inside the scope are replaced wholesale, so entries for nodes
// that no longer exist disappear.
//
// A nil previous report or a whole-scene scope degenerates to a full run.
func (e *Engine) RunIncremental(ctx context.Context, previous *report.Report, changed snapshot.Scope) (*report.Report, error) {
	if previous == nil || changed.IsAll() {
		return e.Run(ctx, snapshot.ScopeAll)
	}

	if err := e.begin(); err != nil {
		return nil, err
	}
	defer e.finish()

	ctx, endRun := e.otel.startRun(ctx, "incremental", changed)

	// Peek at the scene to learn which node types occur in the changed
	// scope. The adapter is read-only, so the extra capture costs traversal
	// time but nothing else; the run body captures again through the same
	// path.
	snap, _, err := e.adapter.Capture(ctx, snapshot.ScopeAll)
	if err != nil {
		// Same degraded behavior as a full run: the capture problem
		// becomes the report.
		rep, runErr := e.run(ctx, changed, nil, nil)
		endRun(rep, runErr)
		return rep, runErr
	}

	affected := e.affectedRules(snap, changed)
	carry := carryForward(previous, changed, affected, snap)

	rep, err := e.run(ctx, changed, affected, carry)
	endRun(rep, err)
	return rep, err
}

// affectedRules selects the rules to re-run: those applying to a node type
// present inside the changed scope, closed over transitive dependents.
// Rules depending on a re-run rule must re-run too, or their skip state
// would go stale.
func (e *Engine) affectedRules(snap *snapshot.Snapshot, scope snapshot.Scope) map[string]bool {
	var seeds []string
	for _, rl := range e.registry.Rules() {
		for _, t := range snapshot.AllNodeTypes() {
			if rl.AppliesTo(t) && len(snap.NodesOfType(t, scope)) > 0 {
				seeds = append(seeds, rl.ID())
				break
			}
		}
	}
	return e.registry.TransitiveDependents(seeds...)
}

// carryForward collects the previous report's entries that the incremental
// run keeps: everything except entries a re-run rule produced for a node
// inside the changed scope, and entries for scoped nodes that no longer
// exist.
func carryForward(previous *report.Report, changed snapshot.Scope, affected map[string]bool, snap *snapshot.Snapshot) *carryOver {
	carry := &carryOver{}
	for _, d := range previous.Diagnostics() {
		if replaced(d.RuleID, d.NodePath, changed, affected, snap) {
			continue
		}
		carry.diagnostics = append(carry.diagnostics, d)
	}
	for _, s := range previous.Skips() {
		if replaced(s.RuleID, s.NodePath, changed, affected, snap) {
			continue
		}
		carry.skips = append(carry.skips, s)
	}
	return carry
}

// replaced reports whether an entry from the previous report is superseded
// by the incremental run: its node lies in the changed scope and either its
// rule re-ran or the node disappeared from the re-captured scene. Capture
// diagnostics for scoped nodes are re-derived too.
func replaced(ruleID, nodePath string, changed snapshot.Scope, affected map[string]bool, snap *snapshot.Snapshot) bool {
	if !changed.Contains(nodePath) {
		return false
	}
	if ruleID == CaptureRuleID || affected[ruleID] {
		return true
	}
	return !snap.Contains(nodePath)
}

// Revalidate is the convenience entry point hosts use after an edit: it
// widens the changed node paths to their owning top-level subtrees and runs
// incrementally against the previous report.
func (e *Engine) Revalidate(ctx context.Context, previous *report.Report, changedPaths ...string) (*report.Report, error) {
	if len(changedPaths) == 0 {
		return e.RunIncremental(ctx, previous, snapshot.ScopeAll)
	}
	for _, p := range changedPaths {
		if p == "" || p[0] != '/' {
			return nil, fmt.Errorf("engine: invalid changed path %q", p)
		}
	}
	return e.RunIncremental(ctx, previous, snapshot.Scope(changedPaths))
}
