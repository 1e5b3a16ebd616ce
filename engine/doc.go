// Package engine orchestrates validation runs: it captures a snapshot
// through an adapter, executes the registered rules in dependency order,
// and aggregates their diagnostics into a report.
//
// A run moves through four states: Idle, Capturing, Evaluating and
// Aggregated, returning to Idle when the report is built. The engine is the
// only owner of mutable run state; rules see nothing but the read-only
// snapshot and the outcome table for their declared dependencies.
//
// Failure containment is strict. A scene that cannot be captured yields a
// report with a single structural error rather than a Go error. A rule that
// returns an error or panics is converted into an info diagnostic naming
// the rule, and the run continues. Only registration-time problems (an
// unresolvable rule graph) surface as errors from Run.
//
// Runs are cancellable between rules: Cancel, or cancelling the run
// context, stops the run at the next rule boundary and yields a report
// marked incomplete. Incomplete reports always read as upload-blocking.
package engine
