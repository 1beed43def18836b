package skills

import (
	"log"
	"sort"
	"strings"

	"github.com/jonathan/resume-classifier/internal/nlp"
	"github.com/jonathan/resume-classifier/internal/taxonomy"
)

// Extractor finds taxonomy skills in raw résumé text. It combines a lexical
// pass (one matcher per category over the lowercased text) with a recall pass
// over the analyzer's noun chunks and SKILL entities, which only adds exact
// taxonomy members. An Extractor is immutable and safe for concurrent use.
type Extractor struct {
	taxonomy *taxonomy.Set
	analyzer nlp.Analyzer
	matchers map[taxonomy.Category]Matcher
	logger   *log.Logger
}

// NewExtractor builds one matcher per category. A nil analyzer disables the
// recall pass; a nil logger discards warnings.
func NewExtractor(set *taxonomy.Set, analyzer nlp.Analyzer, kind MatcherKind, logger *log.Logger) (*Extractor, error) {
	matchers := make(map[taxonomy.Category]Matcher, len(taxonomy.Categories()))
	for _, category := range taxonomy.Categories() {
		m, err := NewMatcher(kind, set.Terms(category))
		if err != nil {
			return nil, err
		}
		matchers[category] = m
	}
	return &Extractor{
		taxonomy: set,
		analyzer: analyzer,
		matchers: matchers,
		logger:   logger,
	}, nil
}

// Extract returns the skills found in raw, deduplicated and sorted ascending.
func (e *Extractor) Extract(raw string) []string {
	found := make(map[string]struct{})

	lower := strings.ToLower(raw)
	for _, category := range taxonomy.Categories() {
		for _, match := range e.matchers[category].FindAll(lower) {
			found[match] = struct{}{}
		}
	}
	for _, term := range e.recall(raw) {
		found[term] = struct{}{}
	}

	return sortedKeys(found)
}

// ExtractByCategory returns the skills found in raw grouped by category. A
// term present in several categories is reported under each of them.
func (e *Extractor) ExtractByCategory(raw string) map[taxonomy.Category][]string {
	found := make(map[taxonomy.Category]map[string]struct{}, len(taxonomy.Categories()))
	add := func(category taxonomy.Category, term string) {
		if found[category] == nil {
			found[category] = make(map[string]struct{})
		}
		found[category][term] = struct{}{}
	}

	lower := strings.ToLower(raw)
	for _, category := range taxonomy.Categories() {
		for _, match := range e.matchers[category].FindAll(lower) {
			add(category, match)
		}
	}
	for _, term := range e.recall(raw) {
		for _, category := range e.taxonomy.CategoryOf(term) {
			add(category, term)
		}
	}

	out := make(map[taxonomy.Category][]string, len(taxonomy.Categories()))
	for _, category := range taxonomy.Categories() {
		out[category] = sortedKeys(found[category])
	}
	return out
}

// recall returns noun chunks and SKILL entities that are taxonomy members.
func (e *Extractor) recall(raw string) []string {
	if e.analyzer == nil || e.taxonomy.Len() == 0 {
		return nil
	}

	doc, err := e.analyzer.Analyze(raw)
	if err != nil {
		if e.logger != nil {
			e.logger.Printf("[WARN] Skipping chunk and entity matching: %v", err)
		}
		return nil
	}

	var terms []string
	for _, chunk := range doc.NounChunks {
		text := taxonomy.NormalizeTerm(chunk.Text)
		if e.taxonomy.Contains(text) {
			terms = append(terms, text)
		}
	}
	for _, ent := range doc.Entities {
		if ent.Label != nlp.SkillLabel {
			continue
		}
		text := strings.ToLower(ent.Text)
		if e.taxonomy.Contains(text) {
			terms = append(terms, text)
		}
	}
	return terms
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
