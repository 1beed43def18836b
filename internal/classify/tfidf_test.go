package classify

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestArtifact(t *testing.T, name string) *Artifact {
	t.Helper()
	artifact, err := LoadArtifact(filepath.Join("testdata", name))
	require.NoError(t, err)
	return artifact
}

func l2(vec map[int]float64) float64 {
	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	return math.Sqrt(sum)
}

func TestVectorizer_TransformUnigrams(t *testing.T) {
	v := loadTestArtifact(t, "binary_model.json").NewVectorizer()

	vec := v.Transform("Python java develop")

	require.Len(t, vec, 2)
	assert.InDelta(t, 1/math.Sqrt2, vec[0], 1e-9)
	assert.InDelta(t, 1/math.Sqrt2, vec[1], 1e-9)
}

func TestVectorizer_TransformNgramsStopwordsSublinear(t *testing.T) {
	v := loadTestArtifact(t, "multiclass_model.json").NewVectorizer()

	vec := v.Transform("machine learning and python with python")

	// python (x2), machine, learning, "machine learning"; "learning python"
	// and "python python" are out of vocabulary
	require.Len(t, vec, 4)
	assert.InDelta(t, 1.0, l2(vec), 1e-9)

	python := (1 + math.Log(2)) * 1.2
	machineLearning := 2.0
	assert.InDelta(t, python/machineLearning, vec[0]/vec[1], 1e-9)
	assert.InDelta(t, vec[6], vec[7], 1e-9)
}

func TestVectorizer_TokenPattern(t *testing.T) {
	v := &Vectorizer{
		vocabulary: map[string]int{"c": 0, "go": 1, "sql": 2},
		idf:        []float64{1, 1, 1},
		minN:       1,
		maxN:       1,
		lowercase:  true,
		norm:       NormNone,
	}

	vec := v.Transform("c++ c# go, SQL")

	assert.Equal(t, map[int]float64{1: 1, 2: 1}, vec)
}

func TestVectorizer_NgramsLongerThanText(t *testing.T) {
	v := &Vectorizer{minN: 1, maxN: 3}
	assert.Equal(t, []string{"alpha", "beta", "alpha beta"}, v.ngrams([]string{"alpha", "beta"}))

	v = &Vectorizer{minN: 2, maxN: 2}
	assert.Empty(t, v.ngrams([]string{"alpha"}))
}

func TestVectorizer_EmptyText(t *testing.T) {
	v := loadTestArtifact(t, "binary_model.json").NewVectorizer()
	assert.Empty(t, v.Transform(""))
}

func TestNormalize_L1(t *testing.T) {
	vec := map[int]float64{0: 1, 1: -3}
	normalize(vec, NormL1)
	assert.InDelta(t, 0.25, vec[0], 1e-9)
	assert.InDelta(t, -0.75, vec[1], 1e-9)
}
