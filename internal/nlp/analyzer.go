// Package nlp provides the linguistic analysis used by the cleaner and the
// skill extractor: tokenization, stopword and punctuation flags, lemmas,
// noun chunks and rule-based named entities.
package nlp

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxLength bounds the input size accepted by Analyze, in bytes.
const DefaultMaxLength = 1_000_000

// SkillLabel is the entity label assigned to taxonomy phrases.
const SkillLabel = "SKILL"

// ErrTextTooLong is returned when the input exceeds the analyzer's max length.
var ErrTextTooLong = errors.New("text exceeds analyzer max length")

// Token is one unit of analyzed text.
type Token struct {
	Text            string // as it appears in the input
	Lower           string
	Lemma           string // lowercase base form
	IsStop          bool
	IsPunct         bool
	Start           int // byte offset of the first byte
	End             int // byte offset past the last byte
	LineBreakBefore bool
}

// Span is a contiguous run of tokens [Start, End) with its surface text.
type Span struct {
	Text  string
	Label string
	Start int
	End   int
}

// Doc is the result of analyzing one string.
type Doc struct {
	Tokens     []Token
	NounChunks []Span
	Entities   []Span
}

// Analyzer turns text into a Doc. Implementations must be safe for
// concurrent use.
type Analyzer interface {
	Analyze(text string) (*Doc, error)
}

// English is a rule-based English analyzer.
type English struct {
	stopwords  map[string]struct{}
	lemmatizer *Lemmatizer
	ruler      *EntityRuler
	maxLength  int
}

// Option configures an English analyzer.
type Option func(*English)

// WithEntityRuler attaches a ruler that tags entities during analysis.
func WithEntityRuler(ruler *EntityRuler) Option {
	return func(e *English) {
		e.ruler = ruler
	}
}

// WithStopwords replaces the default stopword list.
func WithStopwords(words []string) Option {
	return func(e *English) {
		e.stopwords = toSet(words)
	}
}

// WithMaxLength sets the largest input, in bytes, Analyze accepts.
func WithMaxLength(n int) Option {
	return func(e *English) {
		e.maxLength = n
	}
}

// NewEnglish creates an analyzer with the default stopwords and lemmatizer.
func NewEnglish(opts ...Option) *English {
	e := &English{
		stopwords:  toSet(DefaultStopwords),
		lemmatizer: NewLemmatizer(),
		maxLength:  DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsStop reports whether the lowercase word is a stopword.
func (e *English) IsStop(lower string) bool {
	_, ok := e.stopwords[lower]
	return ok
}

// Analyze tokenizes text and annotates every token, then derives noun
// chunks and, when a ruler is attached, entities.
func (e *English) Analyze(text string) (*Doc, error) {
	if e.maxLength > 0 && len(text) > e.maxLength {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrTextTooLong, len(text), e.maxLength)
	}

	tokens := Tokenize(text)
	for i := range tokens {
		tok := &tokens[i]
		tok.Lower = strings.ToLower(tok.Text)
		tok.IsPunct = isPunct(tok.Text)
		tok.IsStop = e.IsStop(tok.Lower)
		tok.Lemma = e.lemmatizer.Lemmatize(tok.Lower)
	}

	doc := &Doc{
		Tokens:     tokens,
		NounChunks: NounChunks(text, tokens),
	}
	if e.ruler != nil {
		doc.Entities = e.ruler.Match(text, tokens)
	}
	return doc, nil
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// spanText returns the input between two tokens with whitespace runs
// collapsed to single spaces.
func spanText(text string, tokens []Token, start, end int) string {
	return strings.Join(strings.Fields(text[tokens[start].Start:tokens[end-1].End]), " ")
}
