// Package ingestion reads résumé documents from disk: a bounded read, UTF-8
// repair, and text extraction for HTML documents.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRun      = regexp.MustCompile(`[ \t]+`)
	blankLineRuns = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes text extracted from markup while preserving its line
// structure. Plain-text résumés are never passed through it: the classifier
// sees their bytes as read.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankLineRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	return spaceRun.ReplaceAllString(line, " ")
}

// RepairUTF8 drops invalid UTF-8 sequences without substitution, including a
// rune cut in half by a bounded read.
func RepairUTF8(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}
