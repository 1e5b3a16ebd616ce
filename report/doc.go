// Package report defines the validation report: the single artifact a
// validation run produces and the only thing the host UI renders.
//
// A Report is an ordered, immutable collection of diagnostics plus the skip
// records for rules that were not evaluated because a dependency failed.
// Severity counts are always derived from the contained diagnostics, never
// set independently, so a report can not disagree with itself.
//
// Reports from earlier runs are never mutated; re-validation produces a new
// Report that supersedes the previous one. Export renders a report to JSON,
// CSV or plain text through its public read accessors.
package report
