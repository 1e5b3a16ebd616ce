package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// ExportFormat represents the format for exporting reports.
type ExportFormat string

const (
	// FormatJSON exports the report as indented JSON.
	FormatJSON ExportFormat = "json"

	// FormatCSV exports the diagnostics as comma-separated values.
	FormatCSV ExportFormat = "csv"

	// FormatText exports a plain-text summary for logs and clipboards.
	FormatText ExportFormat = "text"
)

// IsValid returns true if the export format is valid.
func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatCSV, FormatText:
		return true
	default:
		return false
	}
}

// String returns the string representation of the export format.
func (f ExportFormat) String() string { return string(f) }

// FileExtension returns the file extension for the export format.
func (f ExportFormat) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	case FormatText:
		return ".txt"
	default:
		return ""
	}
}

// MimeType returns the MIME type for the export format.
func (f ExportFormat) MimeType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatText:
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

// exportEnvelope is the serialized shape of a report.
type exportEnvelope struct {
	ID          string            `json:"id"`
	CreatedAt   time.Time         `json:"created_at"`
	Incomplete  bool              `json:"incomplete"`
	Summary     Summary           `json:"summary"`
	Blocking    bool              `json:"upload_blocking"`
	Diagnostics []diagnosticEntry `json:"diagnostics"`
	Skips       []Skip            `json:"skips,omitempty"`
}

type diagnosticEntry struct {
	RuleID      string `json:"rule_id"`
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	NodePath    string `json:"node_path"`
	Message     string `json:"message"`
	Remediation string `json:"remediation,omitempty"`
}

// Export writes the report to w in the given format.
func (r *Report) Export(w io.Writer, format ExportFormat) error {
	switch format {
	case FormatJSON:
		return r.exportJSON(w)
	case FormatCSV:
		return r.exportCSV(w)
	case FormatText:
		return r.exportText(w)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

func (r *Report) exportJSON(w io.Writer) error {
	env := exportEnvelope{
		ID:         r.ID(),
		CreatedAt:  r.CreatedAt(),
		Incomplete: r.Incomplete(),
		Summary:    r.Summarize(),
		Blocking:   r.UploadBlocking(),
		Skips:      r.Skips(),
	}
	for _, d := range r.Diagnostics() {
		env.Diagnostics = append(env.Diagnostics, diagnosticEntry{
			RuleID:      d.RuleID,
			Severity:    d.Severity.String(),
			Category:    d.Category.String(),
			NodePath:    d.NodePath,
			Message:     d.Message,
			Remediation: d.Remediation,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

func (r *Report) exportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rule_id", "severity", "category", "node_path", "message", "remediation"}); err != nil {
		return err
	}
	for _, d := range r.Diagnostics() {
		record := []string{
			d.RuleID,
			d.Severity.String(),
			d.Category.String(),
			d.NodePath,
			d.Message,
			d.Remediation,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r *Report) exportText(w io.Writer) error {
	s := r.Summarize()
	status := "PASSED"
	switch {
	case r.Incomplete():
		status = "INCOMPLETE"
	case s.Errors > 0:
		status = "FAILED"
	case s.Warnings > 0:
		status = "PASSED WITH WARNINGS"
	}
	if _, err := fmt.Fprintf(w, "Validation %s: %d errors, %d warnings, %d notices\n",
		status, s.Errors, s.Warnings, s.Infos); err != nil {
		return err
	}
	for _, group := range r.Grouped() {
		if _, err := fmt.Fprintf(w, "\n%s\n", group.Category.DisplayName()); err != nil {
			return err
		}
		for _, d := range group.Diagnostics {
			if _, err := fmt.Fprintf(w, "  %s\n", d.String()); err != nil {
				return err
			}
			if d.Remediation != "" {
				if _, err := fmt.Fprintf(w, "    fix: %s\n", d.Remediation); err != nil {
					return err
				}
			}
		}
	}
	for _, sk := range r.Skips() {
		if _, err := fmt.Fprintf(w, "\nskipped %s on %s (%s)", sk.RuleID, sk.NodePath, sk.Reason); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
