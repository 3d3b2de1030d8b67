package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kavach-labs/kavach/internal/model"
)

// Renderer writes call records to files and the console
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the record as indented JSON
func (r *Renderer) RenderJSON(record *model.CallRecord, path string) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable triage report
func (r *Renderer) RenderMarkdown(record *model.CallRecord, path string) error {
	var b strings.Builder

	b.WriteString("# Call Triage Report\n\n")
	fmt.Fprintf(&b, "- **Threat Level**: %s\n", record.Verdict.Level)
	fmt.Fprintf(&b, "- **Threat Score**: %d/100\n", record.Verdict.Score)
	fmt.Fprintf(&b, "- **Caller Type**: %s\n", record.Verdict.CallerType)
	fmt.Fprintf(&b, "- **Alert Sent**: %v\n", record.AlertSent)
	fmt.Fprintf(&b, "- **Analyzed**: %s\n", record.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))
	if record.Language != "" {
		fmt.Fprintf(&b, "- **Language**: %s\n", record.Language)
	}

	if record.Verdict.Summary != "" {
		b.WriteString("\n## Summary\n\n")
		b.WriteString(record.Verdict.Summary + "\n")
	}
	if record.Verdict.Recommendation != "" {
		b.WriteString("\n## Recommendation\n\n")
		b.WriteString(record.Verdict.Recommendation + "\n")
	}

	b.WriteString("\n## Matched Indicators\n\n")
	matched := false
	for _, c := range model.Categories {
		if hits := record.Analysis.Indicators(c); len(hits) > 0 {
			fmt.Fprintf(&b, "- %s: %s\n", c, strings.Join(hits, ", "))
			matched = true
		}
	}
	if !matched {
		b.WriteString("None.\n")
	}
	if record.Analysis.HighSeverityCount > 0 {
		fmt.Fprintf(&b, "\nHigh-severity phrases matched: %d\n", record.Analysis.HighSeverityCount)
	}

	if record.ActionLog != "" {
		b.WriteString("\n## Actions\n\n```\n" + record.ActionLog + "\n```\n")
	}

	if r.includeFooter {
		b.WriteString("\n---\n\nGenerated by kavach. Keyword analysis is deterministic; " +
			"verify alerts before acting on them.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a short result line to stdout
func (r *Renderer) RenderSummary(record *model.CallRecord) {
	fmt.Printf("\n%s  score=%d/100  alert_sent=%v\n",
		record.Verdict.Level, record.Verdict.Score, record.AlertSent)
	if record.Verdict.Recommendation != "" {
		fmt.Printf("%s\n", record.Verdict.Recommendation)
	}
}
