package nlp

import (
	"unicode"
	"unicode/utf8"
)

// Tokenize splits text on whitespace, then peels punctuation off each chunk.
// Leading and trailing punctuation become single-rune tokens; separators
// inside a chunk (",", "/", ":", brackets, quotes) split it. Dots, "#", "+",
// "-", "_", "'", "&" and "@" stay inside words so that "c#", "c++",
// "node.js" and "ci-cd" survive as one token. A leading "." directly followed
// by a letter is kept (".net").
func Tokenize(text string) []Token {
	var tokens []Token
	lineBreak := false

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			if r == '\n' {
				lineBreak = true
			}
			i += size
			continue
		}

		start := i
		for i < len(text) {
			r, size = utf8.DecodeRuneInString(text[i:])
			if unicode.IsSpace(r) {
				break
			}
			i += size
		}

		before := len(tokens)
		tokens = splitChunk(tokens, text, start, i)
		if lineBreak && len(tokens) > before {
			tokens[before].LineBreakBefore = true
		}
		lineBreak = false
	}

	return tokens
}

func splitChunk(tokens []Token, text string, start, end int) []Token {
	// prefixes
	for start < end {
		r, size := utf8.DecodeRuneInString(text[start:end])
		if isWordRune(r) {
			break
		}
		if r == '.' && start+size < end {
			next, _ := utf8.DecodeRuneInString(text[start+size : end])
			if unicode.IsLetter(next) {
				break
			}
		}
		tokens = append(tokens, Token{Text: text[start : start+size], Start: start, End: start + size})
		start += size
	}

	// suffixes, collected back to front
	var suffixes []Token
	for end > start {
		r, size := utf8.DecodeLastRuneInString(text[start:end])
		if isWordRune(r) || r == '#' || r == '+' {
			break
		}
		suffixes = append(suffixes, Token{Text: text[end-size : end], Start: end - size, End: end})
		end -= size
	}

	// infixes
	pieceStart := start
	for i := start; i < end; {
		r, size := utf8.DecodeRuneInString(text[i:end])
		if isInfixSeparator(r) {
			if i > pieceStart {
				tokens = append(tokens, Token{Text: text[pieceStart:i], Start: pieceStart, End: i})
			}
			tokens = append(tokens, Token{Text: text[i : i+size], Start: i, End: i + size})
			pieceStart = i + size
		}
		i += size
	}
	if end > pieceStart {
		tokens = append(tokens, Token{Text: text[pieceStart:end], Start: pieceStart, End: end})
	}

	for j := len(suffixes) - 1; j >= 0; j-- {
		tokens = append(tokens, suffixes[j])
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isInfixSeparator(r rune) bool {
	if isWordRune(r) {
		return false
	}
	switch r {
	case '.', '#', '+', '-', '_', '\'', '&', '@':
		return false
	}
	return true
}

// isPunct reports whether s has no letters or digits.
func isPunct(s string) bool {
	for _, r := range s {
		if isWordRune(r) {
			return false
		}
	}
	return true
}
