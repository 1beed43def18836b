// Package normalize implements the text cleaning transform applied to résumé
// text before classification. The classifier artifact was fitted on text
// produced by exactly this transform; any change to it must be matched by
// retraining, and the golden fixtures in testdata pin its output.
package normalize

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/jonathan/resume-classifier/internal/nlp"
)

// MinLemmaLength is the shortest lemma, in bytes, kept by the cleaner.
const MinLemmaLength = 3

// whitespace is the ASCII whitespace class used by the training-time cleaner,
// which counts \v and the \x1c-\x1f separators as whitespace.
const whitespace = `\t\n\v\f\r \x1c-\x1f`

var (
	contactPattern    = regexp.MustCompile(`\b(?:\d{10}|[\w\.-]+@[\w\.-]+\.\w+)\b`)
	disallowedPattern = regexp.MustCompile(`[^a-zA-Z` + whitespace + `.,#+]`)
	whitespacePattern = regexp.MustCompile(`[` + whitespace + `]+`)
)

// Cleaner turns raw résumé text into the space-joined lemma stream consumed by
// the classifier.
type Cleaner struct {
	analyzer nlp.Analyzer
	logger   *log.Logger
}

// NewCleaner creates a Cleaner. A nil logger discards cleaning errors.
func NewCleaner(analyzer nlp.Analyzer, logger *log.Logger) *Cleaner {
	return &Cleaner{analyzer: analyzer, logger: logger}
}

// Clean returns the cleaned text, or "" when cleaning fails. An empty result
// must be treated as a failure, not as a document without content.
func (c *Cleaner) Clean(raw string) (cleaned string) {
	defer func() {
		if r := recover(); r != nil {
			c.logf("[ERROR] Cleaning error: %v", r)
			cleaned = ""
		}
	}()

	text := Prepare(raw)

	doc, err := c.analyzer.Analyze(text)
	if err != nil {
		c.logf("[ERROR] Cleaning error: %v", err)
		return ""
	}

	lemmas := make([]string, 0, len(doc.Tokens))
	for _, tok := range doc.Tokens {
		if tok.IsStop || tok.IsPunct {
			continue
		}
		lemma := strings.ToLower(tok.Lemma)
		if len(lemma) < MinLemmaLength {
			continue
		}
		lemmas = append(lemmas, lemma)
	}
	return strings.Join(lemmas, " ")
}

// Prepare runs the regular-expression steps of the transform: drop non-ASCII
// bytes, blank out contact details and disallowed characters, collapse
// whitespace, trim and lowercase.
func Prepare(raw string) string {
	text := stripNonASCII(raw)
	text = contactPattern.ReplaceAllString(text, " ")
	text = disallowedPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}

func stripNonASCII(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] < 0x80 {
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

func (c *Cleaner) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Output(2, fmt.Sprintf(format, args...)) //nolint:errcheck
	}
}
