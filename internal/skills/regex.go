package skills

import (
	"regexp"
	"strings"
)

// noMatchPattern is an empty character class.
const noMatchPattern = `[^\x00-\x{10FFFF}]`

// RegexMatcher matches terms with a single case-insensitive alternation,
// longest terms first.
type RegexMatcher struct {
	pattern *regexp.Regexp // nil when there are no terms
}

// NewRegexMatcher compiles the alternation for terms. With no terms the
// matcher matches nothing.
func NewRegexMatcher(terms []string) (*RegexMatcher, error) {
	sorted := sortByLengthDesc(terms)
	if len(sorted) == 0 {
		return &RegexMatcher{}, nil
	}

	pattern, err := regexp.Compile(BuildPattern(sorted))
	if err != nil {
		return nil, &MatcherError{Message: "failed to compile skill pattern", Cause: err}
	}
	return &RegexMatcher{pattern: pattern}, nil
}

// BuildPattern returns the alternation for terms in the order given. Every
// literal is escaped and wrapped in \b on each side that starts or ends with
// a word character. Empty terms are skipped; with none left the pattern
// matches nothing.
func BuildPattern(terms []string) string {
	alternatives := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		var sb strings.Builder
		if isWordByte(t[0]) {
			sb.WriteString(`\b`)
		}
		sb.WriteString(regexp.QuoteMeta(t))
		if isWordByte(t[len(t)-1]) {
			sb.WriteString(`\b`)
		}
		alternatives = append(alternatives, sb.String())
	}
	if len(alternatives) == 0 {
		return noMatchPattern
	}
	return `(?i)(?:` + strings.Join(alternatives, "|") + `)`
}

// FindAll returns every match in lower, in text order.
func (m *RegexMatcher) FindAll(lower string) []string {
	if m.pattern == nil {
		return nil
	}
	return m.pattern.FindAllString(lower, -1)
}

// String returns the compiled pattern, or "" for an empty matcher.
func (m *RegexMatcher) String() string {
	if m.pattern == nil {
		return ""
	}
	return m.pattern.String()
}
