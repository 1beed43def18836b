package nlp

import "unicode"

// NounChunks returns the maximal runs of content tokens. A run ends at a
// stopword, a punctuation token, a token without letters, or a line break.
// Tokens must already carry IsStop and IsPunct flags.
func NounChunks(text string, tokens []Token) []Span {
	var chunks []Span

	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			chunks = append(chunks, Span{
				Text:  spanText(text, tokens, start, end),
				Start: start,
				End:   end,
			})
		}
		start = -1
	}

	for i, tok := range tokens {
		if tok.IsStop || tok.IsPunct || !hasLetter(tok.Text) {
			flush(i)
			continue
		}
		if tok.LineBreakBefore {
			flush(i)
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(tokens))

	return chunks
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
