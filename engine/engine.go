package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charcheck/sdk/report"
	"github.com/charcheck/sdk/rule"
	"github.com/charcheck/sdk/snapshot"
)

// CaptureRuleID is the pseudo rule identifier attached to diagnostics the
// engine synthesizes from adapter failures and capture anomalies. It is
// reserved; registering a rule with this identifier is a configuration
// mistake.
const CaptureRuleID = "scene.capture"

// ErrRunInProgress indicates Run was called while another run had not yet
// returned to the idle state.
var ErrRunInProgress = errors.New("validation run already in progress")

// State is the engine's run state.
type State string

const (
	// StateIdle means no run is in progress.
	StateIdle State = "idle"

	// StateCapturing means the adapter is building the snapshot.
	StateCapturing State = "capturing"

	// StateEvaluating means rules are executing against the snapshot.
	StateEvaluating State = "evaluating"

	// StateAggregated means diagnostics are being combined into a report.
	StateAggregated State = "aggregated"
)

// Engine runs validation. Create one with New and reuse it across runs; a
// single engine runs one validation at a time.
type Engine struct {
	adapter  snapshot.Adapter
	registry *rule.Registry
	logger   *slog.Logger
	otel     *otelHooks

	mu        sync.Mutex
	state     State
	cancelled atomic.Bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an engine over an adapter and a rule registry.
func New(adapter snapshot.Adapter, registry *rule.Registry, opts ...Option) (*Engine, error) {
	if adapter == nil {
		return nil, fmt.Errorf("engine: adapter is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("engine: registry is required")
	}
	if registry.Has(CaptureRuleID) {
		return nil, fmt.Errorf("engine: rule identifier %q is reserved", CaptureRuleID)
	}
	e := &Engine{
		adapter:  adapter,
		registry: registry,
		state:    StateIdle,
		otel:     &otelHooks{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e, nil
}

// State returns the current run state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Cancel requests cooperative cancellation of the run in progress. The run
// stops at the next rule boundary and returns a report marked incomplete.
// Calling Cancel with no run in progress has no effect on later runs.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateIdle {
		e.cancelled.Store(true)
	}
}

// Run performs a full validation over the scoped scene and returns the
// report. The report is the only artifact: capture failures and rule faults
// are contained and surface inside it. Run returns an error only for
// engine misuse (concurrent runs) or an unresolvable rule graph.
func (e *Engine) Run(ctx context.Context, scope snapshot.Scope) (*report.Report, error) {
	if err := e.begin(); err != nil {
		return nil, err
	}
	defer e.finish()

	ctx, endRun := e.otel.startRun(ctx, "full", scope)
	rep, err := e.run(ctx, scope, nil, nil)
	endRun(rep, err)
	return rep, err
}

// begin transitions Idle -> Capturing, rejecting overlapping runs.
func (e *Engine) begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateIdle {
		return fmt.Errorf("engine: %w", ErrRunInProgress)
	}
	e.state = StateCapturing
	e.cancelled.Store(false)
	return nil
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

func (e *Engine) finish() {
	e.setState(StateIdle)
	e.cancelled.Store(false)
}

// run is the shared body of Run and RunIncremental. For incremental runs,
// restrict names the only rules allowed to execute and carry holds prior
// diagnostics and skips to merge with the fresh results.
//
// The capture is always whole-scene: rules read cross-node state (material
// bindings, the main skeleton) through the snapshot, so a truncated capture
// would make them misfire. The scope narrows which nodes rules evaluate on
// and which anomalies the report includes, never what the snapshot holds.
func (e *Engine) run(ctx context.Context, scope snapshot.Scope, restrict map[string]bool, carry *carryOver) (*report.Report, error) {
	started := time.Now()

	snap, anomalies, err := e.adapter.Capture(ctx, snapshot.ScopeAll)
	if err != nil {
		// Degraded run: the scene could not be read at all, so the
		// report is a single blocking structural error.
		e.setState(StateAggregated)
		e.logger.Error("scene capture failed", "error", err)
		diag := rule.Diagnostic{
			RuleID:   CaptureRuleID,
			Severity: rule.SeverityError,
			Category: rule.CategoryScene,
			NodePath: "/",
			Message:  fmt.Sprintf("Scene capture failed: %v", err),
			Remediation: "Resolve the scene read problem and run validation " +
				"again; no rules were evaluated.",
		}
		return report.New([]rule.Diagnostic{diag}, nil, false), nil
	}

	ordered, err := e.registry.ResolveOrder()
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e.setState(StateEvaluating)

	diags := anomalyDiagnostics(scopedAnomalies(anomalies, scope))
	var skips []report.Skip
	outcomes := newOutcomeTable()
	// Anomalies count as capture failures for dependency purposes so rules
	// downstream of the damaged node skip instead of misfiring.
	for _, d := range diags {
		outcomes.record(CaptureRuleID, d.NodePath, rule.OutcomeFailed)
	}

	incomplete := false
	rulesRun := 0
	for _, rl := range ordered {
		if e.cancelled.Load() || ctx.Err() != nil {
			incomplete = true
			e.logger.Info("validation cancelled",
				"rules_run", rulesRun, "rules_total", len(ordered))
			break
		}
		if restrict != nil && !restrict[rl.ID()] {
			continue
		}
		d, s := e.evaluateRule(ctx, rl, snap, scope, outcomes)
		diags = append(diags, d...)
		skips = append(skips, s...)
		rulesRun++
	}

	if carry != nil {
		diags = append(diags, carry.diagnostics...)
		skips = append(skips, carry.skips...)
	}

	e.setState(StateAggregated)
	rep := report.New(diags, skips, incomplete)
	summary := rep.Summarize()
	e.logger.Info("validation aggregated",
		"report_id", rep.ID(),
		"errors", summary.Errors,
		"warnings", summary.Warnings,
		"infos", summary.Infos,
		"skips", len(rep.Skips()),
		"incomplete", rep.Incomplete(),
		"duration", time.Since(started))
	return rep, nil
}

// evaluateRule runs one rule over every applicable node in scope, honoring
// dependency skips and containing faults.
func (e *Engine) evaluateRule(ctx context.Context, rl rule.Rule, snap *snapshot.Snapshot, scope snapshot.Scope, outcomes *outcomeTable) ([]rule.Diagnostic, []report.Skip) {
	var diags []rule.Diagnostic
	var skips []report.Skip

	rctx := &rule.Context{Snapshot: snap, Outcomes: outcomes}
	deps := rl.Requires()

	for _, nodeType := range snapshot.AllNodeTypes() {
		if !rl.AppliesTo(nodeType) {
			continue
		}
		for _, node := range snap.NodesOfType(nodeType, scope) {
			if dep, failed := outcomes.dependencyFailed(deps, node.Path()); failed {
				outcomes.record(rl.ID(), node.Path(), rule.OutcomeSkipped)
				skips = append(skips, report.Skip{
					RuleID:   rl.ID(),
					NodePath: node.Path(),
					Reason:   report.SkipReasonDependencyFailed,
				})
				e.logger.Debug("rule skipped",
					"rule", rl.ID(), "node", node.Path(), "failed_dependency", dep)
				continue
			}

			nodeDiags, err := e.safeEvaluate(rl, node, rctx)
			if err != nil {
				// One rule's fault never aborts the run.
				e.logger.Warn("rule execution fault",
					"rule", rl.ID(), "node", node.Path(), "error", err)
				e.otel.recordFault(ctx, rl.ID())
				diags = append(diags, rule.Diagnostic{
					RuleID:   rl.ID(),
					Severity: rule.SeverityInfo,
					Category: rl.Category(),
					NodePath: node.Path(),
					Message: fmt.Sprintf("Rule %q failed to execute: %v; its checks were not applied to this node.",
						rl.ID(), err),
				})
				outcomes.record(rl.ID(), node.Path(), rule.OutcomePassed)
				continue
			}

			outcome := rule.OutcomePassed
			for _, d := range nodeDiags {
				if d.Severity == rule.SeverityError {
					outcome = rule.OutcomeFailed
					break
				}
			}
			outcomes.record(rl.ID(), node.Path(), outcome)
			diags = append(diags, nodeDiags...)
			e.otel.recordRule(ctx, rl.ID(), string(outcome), len(nodeDiags))
		}
	}
	return diags, skips
}

// safeEvaluate calls the rule and converts panics into errors.
func (e *Engine) safeEvaluate(rl rule.Rule, node snapshot.Node, rctx *rule.Context) (diags []rule.Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			diags = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return rl.Evaluate(node, rctx)
}

// scopedAnomalies keeps the anomalies raised inside the validated scope.
func scopedAnomalies(anomalies []snapshot.Anomaly, scope snapshot.Scope) []snapshot.Anomaly {
	if scope.IsAll() {
		return anomalies
	}
	var out []snapshot.Anomaly
	for _, a := range anomalies {
		if scope.Contains(a.NodePath) {
			out = append(out, a)
		}
	}
	return out
}

// anomalyDiagnostics converts capture anomalies into blocking structural
// diagnostics, attributed to the reserved capture rule.
func anomalyDiagnostics(anomalies []snapshot.Anomaly) []rule.Diagnostic {
	var out []rule.Diagnostic
	for _, a := range anomalies {
		out = append(out, rule.Diagnostic{
			RuleID:      CaptureRuleID,
			Severity:    rule.SeverityError,
			Category:    rule.CategoryScene,
			NodePath:    a.NodePath,
			Message:     a.Message,
			Remediation: a.Remediation,
		})
	}
	return out
}

// carryOver holds prior-report entries an incremental run keeps untouched.
type carryOver struct {
	diagnostics []rule.Diagnostic
	skips       []report.Skip
}

// outcomeTable records per-rule, per-node outcomes for the dependency-skip
// decision. It is owned by one run; rules only see it through the read-only
// rule.OutcomeLookup interface.
type outcomeTable struct {
	byRule map[string]map[string]rule.Outcome
}

func newOutcomeTable() *outcomeTable {
	return &outcomeTable{byRule: make(map[string]map[string]rule.Outcome)}
}

// Outcome implements rule.OutcomeLookup.
func (t *outcomeTable) Outcome(ruleID, nodePath string) rule.Outcome {
	return t.byRule[ruleID][nodePath]
}

func (t *outcomeTable) record(ruleID, nodePath string, o rule.Outcome) {
	m := t.byRule[ruleID]
	if m == nil {
		m = make(map[string]rule.Outcome)
		t.byRule[ruleID] = m
	}
	m[nodePath] = o
}

// dependencyFailed reports whether the node's capture failed or any listed
// dependency failed on the node itself or on an ancestor (a bone skips when
// its skeleton failed, and everything skips when the scene root failed).
// The capture pseudo-rule is an implicit dependency of every rule, so nodes
// flagged by a capture anomaly skip instead of misfiring. Returns the
// failing dependency for logging.
func (t *outcomeTable) dependencyFailed(deps []string, nodePath string) (string, bool) {
	if failedAt(t.byRule[CaptureRuleID], nodePath) {
		return CaptureRuleID, true
	}
	for _, dep := range deps {
		if failedAt(t.byRule[dep], nodePath) {
			return dep, true
		}
	}
	return "", false
}

// failedAt reports whether one rule's outcomes hold a failure on the node
// or one of its ancestors.
func failedAt(outcomes map[string]rule.Outcome, nodePath string) bool {
	for failedPath, outcome := range outcomes {
		if outcome == rule.OutcomeFailed && isSelfOrAncestor(failedPath, nodePath) {
			return true
		}
	}
	return false
}

// isSelfOrAncestor reports whether candidate is path itself or one of its
// ancestors. The scene root "/" is an ancestor of every path.
func isSelfOrAncestor(candidate, path string) bool {
	if candidate == path || candidate == "/" {
		return true
	}
	return strings.HasPrefix(path, candidate+"/")
}
