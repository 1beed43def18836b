// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-classifier/internal/db"
	"github.com/jonathan/resume-classifier/internal/pipeline"
	"github.com/jonathan/resume-classifier/internal/taxonomy"
	"github.com/jonathan/resume-classifier/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Check is one line of a validation report.
type Check struct {
	Name   string
	Detail string
	Err    error
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintProgress outputs one pipeline progress event.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintProgress(event pipeline.ProgressEvent) {
	fmt.Fprintf(p.out, "  ▸ %-15s %s\n", event.Step, event.Message)
}

// PrintPrediction outputs a human-readable summary of a result record.
func (p *Printer) PrintPrediction(result *types.ResumeResult) {
	if result == nil {
		return
	}
	if result.Failed() {
		p.printBox("PREDICTION FAILED", result.Error)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Category:   %s\n", result.Category))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f%%\n", result.Confidence))
	sb.WriteString(fmt.Sprintf("Skills:     %d", len(result.Skills)))
	if len(result.Skills) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(listItems(result.Skills))
	}

	p.printBox("PREDICTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs category-tagged skill matches.
func (p *Printer) PrintSkills(byCategory map[taxonomy.Category][]string) {
	var sb strings.Builder
	total := 0
	for _, category := range taxonomy.Categories() {
		found := byCategory[category]
		total += len(found)
		if len(found) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s (%d):\n", category, len(found)))
		sb.WriteString(listItems(found))
		sb.WriteString("\n")
	}
	if total == 0 {
		sb.WriteString("No skills found")
	}

	p.printBox("EXTRACTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs a pass/fail line per check and reports whether
// every check passed.
func (p *Printer) PrintValidation(checks []Check) bool {
	var sb strings.Builder
	ok := true
	for i, c := range checks {
		if c.Err != nil {
			ok = false
			sb.WriteString(fmt.Sprintf("✗ %s\n", c.Name))
			sb.WriteString(fmt.Sprintf("  %s\n", c.Err))
		} else {
			sb.WriteString(fmt.Sprintf("✓ %s\n", c.Name))
			if c.Detail != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", c.Detail))
			}
		}
		if i < len(checks)-1 {
			sb.WriteString("\n")
		}
	}

	title := "✅ CONFIGURATION VALID"
	if !ok {
		title = "❌ CONFIGURATION INVALID"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
	return ok
}

// PrintHistory outputs recent predictions, newest first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintHistory(rows []db.Prediction) {
	if len(rows) == 0 {
		fmt.Fprintln(p.out, "No predictions recorded")
		return
	}

	fmt.Fprintf(p.out, "%-20s  %-24s  %7s  %s\n", "TIME", "CATEGORY", "CONF", "SOURCE")
	for _, row := range rows {
		category := row.Category
		confidence := fmt.Sprintf("%.2f", row.Confidence)
		if row.Error != "" {
			category = "error: " + row.Error
			confidence = "-"
		}
		fmt.Fprintf(p.out, "%-20s  %-24s  %7s  %s\n",
			row.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(category, 24),
			confidence,
			row.Source,
		)
	}
}

func listItems(items []string) string {
	var sb strings.Builder
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	return sb.String()
}
