package nlp

import "strings"

// EntityRuler tags known phrases as entities using greedy longest match over
// token sequences. Phrases are tokenized with Tokenize, so "ci/cd" and
// "ci / cd" both match the phrase "ci/cd".
type EntityRuler struct {
	label   string
	phrases map[string]struct{} // lowercased token texts joined by one space
	maxLen  int
}

// NewEntityRuler creates a ruler that labels every phrase occurrence with label.
// Empty phrases are ignored.
func NewEntityRuler(label string, phrases []string) *EntityRuler {
	r := &EntityRuler{
		label:   label,
		phrases: make(map[string]struct{}, len(phrases)),
		maxLen:  1,
	}
	for _, p := range phrases {
		toks := Tokenize(p)
		if len(toks) == 0 {
			continue
		}
		r.phrases[phraseKey(toks)] = struct{}{}
		if len(toks) > r.maxLen {
			r.maxLen = len(toks)
		}
	}
	return r
}

// Len returns the number of distinct phrases.
func (r *EntityRuler) Len() int {
	return len(r.phrases)
}

// Match returns the entities found in tokens, left to right, without overlap.
func (r *EntityRuler) Match(text string, tokens []Token) []Span {
	if len(r.phrases) == 0 {
		return nil
	}

	var spans []Span
	i := 0
	for i < len(tokens) {
		longest := r.maxLen
		if remaining := len(tokens) - i; longest > remaining {
			longest = remaining
		}

		matched := 0
		for n := longest; n >= 1; n-- {
			if _, ok := r.phrases[phraseKey(tokens[i:i+n])]; ok {
				matched = n
				break
			}
		}

		if matched == 0 {
			i++
			continue
		}
		spans = append(spans, Span{
			Text:  spanText(text, tokens, i, i+matched),
			Label: r.label,
			Start: i,
			End:   i + matched,
		})
		i += matched
	}
	return spans
}

func phraseKey(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = strings.ToLower(t.Text)
	}
	return strings.Join(parts, " ")
}
