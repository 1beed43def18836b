package classify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogisticRegression_Binary(t *testing.T) {
	m := &LogisticRegression{coef: [][]float64{{2, -2}}, intercept: []float64{0}}
	assert.Equal(t, 2, m.Classes())

	x := map[int]float64{0: 1}
	assert.Equal(t, 1, m.Predict(x))
	probs := m.PredictProba(x)
	assert.InDelta(t, 1/(1+math.Exp(-2)), probs[1], 1e-12)
	assert.InDelta(t, 1.0, probs[0]+probs[1], 1e-12)

	x = map[int]float64{1: 1}
	assert.Equal(t, 0, m.Predict(x))
}

func TestLogisticRegression_BinaryZeroDecision(t *testing.T) {
	m := &LogisticRegression{coef: [][]float64{{1}}, intercept: []float64{0}}
	assert.Equal(t, 0, m.Predict(map[int]float64{}))
	assert.Equal(t, []float64{0.5, 0.5}, m.PredictProba(map[int]float64{}))
}

func TestLogisticRegression_Multinomial(t *testing.T) {
	m := &LogisticRegression{
		coef:       [][]float64{{1, 0}, {0, 1}, {0, 0}},
		intercept:  []float64{0, 0, 0},
		multiClass: Multinomial,
	}
	x := map[int]float64{1: 2}

	assert.Equal(t, 1, m.Predict(x))
	probs := m.PredictProba(x)
	assert.InDelta(t, 1.0, probs[0]+probs[1]+probs[2], 1e-12)

	e2 := math.Exp(2)
	assert.InDelta(t, e2/(e2+2), probs[1], 1e-12)
}

func TestLogisticRegression_OneVsRest(t *testing.T) {
	m := &LogisticRegression{
		coef:       [][]float64{{1}, {-1}},
		intercept:  []float64{0, 0},
		multiClass: OneVsRest,
	}
	probs := m.PredictProba(map[int]float64{0: 1})

	p0, p1 := sigmoid(1), sigmoid(-1)
	assert.InDelta(t, p0/(p0+p1), probs[0], 1e-12)
	assert.InDelta(t, 1.0, probs[0]+probs[1], 1e-12)
}

func TestArgmax_TiesGoToFirst(t *testing.T) {
	assert.Equal(t, 0, argmax([]float64{1, 1, 0}))
	assert.Equal(t, 2, argmax([]float64{-3, -2, -1}))
}

func TestSoftmax_LargeScores(t *testing.T) {
	probs := softmax([]float64{1000, 1000})
	assert.InDelta(t, 0.5, probs[0], 1e-12)
	assert.False(t, math.IsNaN(probs[1]))
}
