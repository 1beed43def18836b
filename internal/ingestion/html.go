package ingestion

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Format is the detected document format.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatText
	}
}

// noiseSelectors are removed before the visible text is collected.
const noiseSelectors = "head, script, style, noscript, template, svg"

// HTMLToText returns the visible text of an HTML document, one block per line.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &ParseError{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find(noiseSelectors).Remove()

	// Block elements end a line so that adjacent sections do not run together.
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr, section, article").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return visibleLines(doc.Text()), nil
	}
	return visibleLines(body.Text()), nil
}

// visibleLines cleans text and drops the blank lines left by markup.
func visibleLines(text string) string {
	lines := strings.Split(CleanText(text), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// ParseError represents a failure to extract text from a document
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
