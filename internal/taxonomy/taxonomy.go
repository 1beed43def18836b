// Package taxonomy holds the catalog of recognized skills, partitioned into
// technologies, tools and certifications.
package taxonomy

import (
	"sort"
	"strings"
)

// Category names one partition of the taxonomy.
type Category string

// Taxonomy categories, in the order they are matched.
const (
	Technologies   Category = "technologies"
	Tools          Category = "tools"
	Certifications Category = "certifications"
)

// Categories returns every category in match order.
func Categories() []Category {
	return []Category{Technologies, Tools, Certifications}
}

// Set is an immutable skill taxonomy. Entries are lowercase, trimmed and
// non-empty. A Set is safe for concurrent use once built.
type Set struct {
	terms map[Category][]string
	all   map[string]struct{}
}

// New builds a Set from raw category lists. Entries are trimmed and
// lowercased; empty and duplicate entries are dropped.
func New(technologies, tools, certifications []string) *Set {
	s := &Set{
		terms: make(map[Category][]string, 3),
		all:   make(map[string]struct{}),
	}
	s.terms[Technologies] = s.normalize(technologies)
	s.terms[Tools] = s.normalize(tools)
	s.terms[Certifications] = s.normalize(certifications)
	return s
}

// Empty returns a Set with three empty categories.
func Empty() *Set {
	return New(nil, nil, nil)
}

func (s *Set) normalize(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		term := NormalizeTerm(entry)
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		s.all[term] = struct{}{}
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

// NormalizeTerm lowercases and trims a taxonomy entry or a candidate match.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Terms returns a copy of the entries of one category, sorted ascending.
func (s *Set) Terms(category Category) []string {
	terms := s.terms[category]
	out := make([]string, len(terms))
	copy(out, terms)
	return out
}

// Contains reports whether term (already normalized) belongs to any category.
func (s *Set) Contains(term string) bool {
	_, ok := s.all[term]
	return ok
}

// All returns the union of the three categories, sorted ascending.
func (s *Set) All() []string {
	out := make([]string, 0, len(s.all))
	for term := range s.all {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

// Len returns the size of the union of all categories.
func (s *Set) Len() int {
	return len(s.all)
}

// CategoryOf returns every category containing term.
func (s *Set) CategoryOf(term string) []Category {
	var cats []Category
	for _, category := range Categories() {
		terms := s.terms[category]
		idx := sort.SearchStrings(terms, term)
		if idx < len(terms) && terms[idx] == term {
			cats = append(cats, category)
		}
	}
	return cats
}
