package rule

import "fmt"

// Severity classifies how a diagnostic affects the upload.
type Severity string

const (
	// SeverityError marks a condition that blocks upload entirely.
	// Examples: missing skeleton, mesh without UV channels
	SeverityError Severity = "error"

	// SeverityWarning marks a condition that degrades result quality but
	// does not block upload.
	// Examples: missing optional bones, muted blendshapes
	SeverityWarning Severity = "warning"

	// SeverityInfo marks an informational notice with no direct impact.
	// Examples: rule execution faults, advisory notes
	SeverityInfo Severity = "info"
)

// severityRanks orders severities for comparison and sorting. Higher ranks
// are more severe.
var severityRanks = map[Severity]int{
	SeverityError:   3,
	SeverityWarning: 2,
	SeverityInfo:    1,
}

// IsValid returns true if the severity is one of the known levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// Rank returns the numeric rank of the severity, higher meaning more
// severe. Returns 0 for invalid severities.
func (s Severity) Rank() int {
	return severityRanks[s]
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity parses a string into a Severity value.
// Returns an error if the string is not a valid severity level.
func ParseSeverity(s string) (Severity, error) {
	severity := Severity(s)
	if !severity.IsValid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return severity, nil
}

// CompareSeverity compares two severities by rank.
// Returns:
//   - negative if s1 < s2
//   - zero if s1 == s2
//   - positive if s1 > s2
func CompareSeverity(s1, s2 Severity) int {
	return s1.Rank() - s2.Rank()
}

// AllSeverities returns all valid severities from most to least severe.
func AllSeverities() []Severity {
	return []Severity{SeverityError, SeverityWarning, SeverityInfo}
}
