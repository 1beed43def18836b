// Package skills extracts taxonomy skills from raw résumé text.
package skills

import (
	"fmt"
	"sort"
)

// MatcherKind selects the multi-term matcher implementation.
type MatcherKind string

// Matcher implementations. Both report the same matches.
const (
	MatcherRegex MatcherKind = "regex"
	MatcherTrie  MatcherKind = "trie"
)

// Matcher finds taxonomy terms in lowercased text. Scanning left to right, it
// reports at each position the longest term that sits on word boundaries, then
// resumes after it. A boundary is only required on a side where the term
// starts or ends with a word character, so "c++" and ".net" match.
type Matcher interface {
	FindAll(lower string) []string
}

// NewMatcher builds a matcher of the given kind over terms.
func NewMatcher(kind MatcherKind, terms []string) (Matcher, error) {
	switch kind {
	case MatcherRegex, "":
		return NewRegexMatcher(terms)
	case MatcherTrie:
		return NewTrieMatcher(terms), nil
	default:
		return nil, &MatcherError{Message: fmt.Sprintf("unknown matcher kind %q", kind)}
	}
}

// sortByLengthDesc orders terms longest first, ties ascending, with empty and
// duplicate terms removed.
func sortByLengthDesc(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// isWordByte matches the ASCII word class used by regexp's \b.
func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
