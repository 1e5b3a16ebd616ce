package rule

import "fmt"

// Diagnostic is one validation result: a rule found something worth telling
// the artist about a specific node. Diagnostics are value objects; once
// created they are never modified.
type Diagnostic struct {
	// RuleID identifies the rule that produced the diagnostic.
	RuleID string `json:"rule_id" yaml:"rule_id"`

	// Severity classifies the impact of the condition.
	Severity Severity `json:"severity" yaml:"severity"`

	// Category is the rule category, carried on the diagnostic so reports
	// can group without a registry lookup.
	Category Category `json:"category" yaml:"category"`

	// NodePath addresses the affected node inside the snapshot the
	// diagnostic was produced from.
	NodePath string `json:"node_path" yaml:"node_path"`

	// Message is the human-readable description of the condition.
	Message string `json:"message" yaml:"message"`

	// Remediation suggests how to fix the condition, when known.
	Remediation string `json:"remediation,omitempty" yaml:"remediation,omitempty"`
}

// Validate checks that the diagnostic carries the required fields.
func (d Diagnostic) Validate() error {
	if d.RuleID == "" {
		return fmt.Errorf("rule ID is required")
	}
	if !d.Severity.IsValid() {
		return fmt.Errorf("invalid severity: %s", d.Severity)
	}
	if !d.Category.IsValid() {
		return fmt.Errorf("invalid category: %s", d.Category)
	}
	if d.NodePath == "" {
		return fmt.Errorf("node path is required")
	}
	if d.Message == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}

// String formats the diagnostic for logs and plain-text reports.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s %s: %s", d.Severity, d.RuleID, d.NodePath, d.Message)
}
