package report

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/charcheck/sdk/rule"
)

// SkipReasonDependencyFailed is the reason recorded when a rule was not
// evaluated on a node because a declared dependency raised an error there.
const SkipReasonDependencyFailed = "dependency-failed"

// Skip records a rule that was deliberately not evaluated on a node. Skips
// are kept apart from diagnostics so severity counts never include them.
type Skip struct {
	// RuleID identifies the skipped rule.
	RuleID string `json:"rule_id" yaml:"rule_id"`

	// NodePath addresses the node the rule was skipped on.
	NodePath string `json:"node_path" yaml:"node_path"`

	// Reason explains the skip, normally SkipReasonDependencyFailed.
	Reason string `json:"reason" yaml:"reason"`
}

// Summary holds the per-severity diagnostic counts of a report.
type Summary struct {
	Errors   int `json:"errors" yaml:"errors"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Infos    int `json:"infos" yaml:"infos"`
}

// Total returns the total diagnostic count.
func (s Summary) Total() int { return s.Errors + s.Warnings + s.Infos }

// Report is the result of one validation run. It is immutable once built;
// accessors return copies or read-only views.
type Report struct {
	id          string
	createdAt   time.Time
	incomplete  bool
	diagnostics []rule.Diagnostic
	skips       []Skip
}

// New builds a report from a run's diagnostics and skip records. The
// diagnostics are sorted into presentation order (category, then severity
// descending, then node path, then rule ID) so identical inputs always
// produce identical reports.
//
// incomplete marks a run that was cancelled before every rule executed;
// incomplete reports never read as clear to upload.
func New(diagnostics []rule.Diagnostic, skips []Skip, incomplete bool) *Report {
	r := &Report{
		id:          uuid.New().String(),
		createdAt:   time.Now(),
		incomplete:  incomplete,
		diagnostics: append([]rule.Diagnostic(nil), diagnostics...),
		skips:       append([]Skip(nil), skips...),
	}
	sortDiagnostics(r.diagnostics)
	sort.SliceStable(r.skips, func(i, j int) bool {
		if r.skips[i].RuleID != r.skips[j].RuleID {
			return r.skips[i].RuleID < r.skips[j].RuleID
		}
		return r.skips[i].NodePath < r.skips[j].NodePath
	})
	return r
}

// ID is the unique identifier of this validation run.
func (r *Report) ID() string { return r.id }

// CreatedAt is the aggregation timestamp.
func (r *Report) CreatedAt() time.Time { return r.createdAt }

// Incomplete reports whether the run was cancelled before completion.
func (r *Report) Incomplete() bool { return r.incomplete }

// Diagnostics returns all diagnostics in presentation order.
func (r *Report) Diagnostics() []rule.Diagnostic {
	return append([]rule.Diagnostic(nil), r.diagnostics...)
}

// Skips returns all skip records.
func (r *Report) Skips() []Skip {
	return append([]Skip(nil), r.skips...)
}

// Summarize derives the per-severity counts from the contained diagnostics.
func (r *Report) Summarize() Summary {
	var s Summary
	for _, d := range r.diagnostics {
		switch d.Severity {
		case rule.SeverityError:
			s.Errors++
		case rule.SeverityWarning:
			s.Warnings++
		case rule.SeverityInfo:
			s.Infos++
		}
	}
	return s
}

// UploadBlocking reports whether the asset must not be uploaded: true when
// the run produced at least one error, and always true for incomplete
// reports, since an interrupted run proves nothing about the rest of the
// asset.
func (r *Report) UploadBlocking() bool {
	if r.incomplete {
		return true
	}
	return r.Summarize().Errors > 0
}

// FilterSeverity returns the diagnostics with the given severity, in
// presentation order.
func (r *Report) FilterSeverity(s rule.Severity) []rule.Diagnostic {
	var out []rule.Diagnostic
	for _, d := range r.diagnostics {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// FilterCategory returns the diagnostics in the given category, in
// presentation order.
func (r *Report) FilterCategory(c rule.Category) []rule.Diagnostic {
	var out []rule.Diagnostic
	for _, d := range r.diagnostics {
		if d.Category == c {
			out = append(out, d)
		}
	}
	return out
}

// FilterNode returns the diagnostics targeting the given node path.
func (r *Report) FilterNode(path string) []rule.Diagnostic {
	var out []rule.Diagnostic
	for _, d := range r.diagnostics {
		if d.NodePath == path {
			out = append(out, d)
		}
	}
	return out
}

// Grouped returns the diagnostics grouped by category in presentation
// order. Categories without diagnostics are omitted.
func (r *Report) Grouped() []CategoryGroup {
	var groups []CategoryGroup
	for _, c := range rule.AllCategories() {
		diags := r.FilterCategory(c)
		if len(diags) == 0 {
			continue
		}
		groups = append(groups, CategoryGroup{Category: c, Diagnostics: diags})
	}
	return groups
}

// CategoryGroup is one category's slice of a report, for grouped rendering.
type CategoryGroup struct {
	Category    rule.Category
	Diagnostics []rule.Diagnostic
}

// Equivalent reports whether two reports carry the same validation content:
// the same diagnostics, skips and completeness. Run identity and timestamps
// are ignored, so a no-op incremental re-validation can be compared against
// the full report it was derived from.
func (r *Report) Equivalent(other *Report) bool {
	if other == nil {
		return false
	}
	if r.incomplete != other.incomplete {
		return false
	}
	if len(r.diagnostics) != len(other.diagnostics) || len(r.skips) != len(other.skips) {
		return false
	}
	for i := range r.diagnostics {
		if r.diagnostics[i] != other.diagnostics[i] {
			return false
		}
	}
	for i := range r.skips {
		if r.skips[i] != other.skips[i] {
			return false
		}
	}
	return true
}

// sortDiagnostics orders diagnostics for presentation: category order as in
// rule.AllCategories, severity descending within a category, then node
// path, then rule ID.
func sortDiagnostics(diags []rule.Diagnostic) {
	catRank := make(map[rule.Category]int, 6)
	for i, c := range rule.AllCategories() {
		catRank[c] = i
	}
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if catRank[a.Category] != catRank[b.Category] {
			return catRank[a.Category] < catRank[b.Category]
		}
		if a.Severity != b.Severity {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.NodePath != b.NodePath {
			return a.NodePath < b.NodePath
		}
		return a.RuleID < b.RuleID
	})
}
