package classify

import (
	"math"
	"regexp"
	"strings"
)

// tokenPattern selects tokens of two or more word characters.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Norm names the row normalization applied after weighting.
type Norm string

// Supported norms.
const (
	NormL2   Norm = "l2"
	NormL1   Norm = "l1"
	NormNone Norm = "none"
)

// Vectorizer is a fitted TF-IDF transform over word n-grams.
type Vectorizer struct {
	vocabulary  map[string]int
	idf         []float64
	minN, maxN  int
	lowercase   bool
	stopwords   map[string]struct{}
	sublinearTF bool
	norm        Norm
}

// Features returns the size of the feature space.
func (v *Vectorizer) Features() int {
	return len(v.idf)
}

// Transform maps text to a sparse feature vector (index to weight).
// Out-of-vocabulary n-grams are ignored.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	if v.lowercase {
		text = strings.ToLower(text)
	}

	counts := make(map[int]float64)
	for _, gram := range v.ngrams(v.tokens(text)) {
		if idx, ok := v.vocabulary[gram]; ok {
			counts[idx]++
		}
	}

	for idx, tf := range counts {
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		counts[idx] = tf * v.idf[idx]
	}

	normalize(counts, v.norm)
	return counts
}

func (v *Vectorizer) tokens(text string) []string {
	raw := tokenPattern.FindAllString(text, -1)
	if len(v.stopwords) == 0 {
		return raw
	}
	tokens := raw[:0]
	for _, t := range raw {
		if _, stop := v.stopwords[t]; !stop {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func (v *Vectorizer) ngrams(tokens []string) []string {
	if v.minN == 1 && v.maxN == 1 {
		return tokens
	}

	var grams []string
	for n := v.minN; n <= v.maxN && n <= len(tokens); n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

func normalize(vec map[int]float64, norm Norm) {
	var total float64
	switch norm {
	case NormL2, "":
		for _, w := range vec {
			total += w * w
		}
		total = math.Sqrt(total)
	case NormL1:
		for _, w := range vec {
			total += math.Abs(w)
		}
	default:
		return
	}
	if total == 0 {
		return
	}
	for idx := range vec {
		vec[idx] /= total
	}
}
