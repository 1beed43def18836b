package classify

import "math"

// MultiClass names how multiclass probabilities are derived from the
// per-class decision values.
type MultiClass string

// Supported multiclass schemes.
const (
	Multinomial MultiClass = "multinomial"
	OneVsRest   MultiClass = "ovr"
)

// LogisticRegression is a fitted linear model. A single coefficient row
// denotes a binary model whose positive class is index 1.
type LogisticRegression struct {
	coef       [][]float64
	intercept  []float64
	multiClass MultiClass
}

// Classes returns the number of classes the model predicts.
func (m *LogisticRegression) Classes() int {
	if len(m.coef) == 1 {
		return 2
	}
	return len(m.coef)
}

// Decision returns one score per coefficient row for a sparse feature vector.
func (m *LogisticRegression) Decision(x map[int]float64) []float64 {
	scores := make([]float64, len(m.coef))
	for k, row := range m.coef {
		score := m.intercept[k]
		for idx, w := range x {
			score += row[idx] * w
		}
		scores[k] = score
	}
	return scores
}

// Predict returns the index of the highest-scoring class; ties go to the
// lower index.
func (m *LogisticRegression) Predict(x map[int]float64) int {
	scores := m.Decision(x)
	if len(scores) == 1 {
		if scores[0] > 0 {
			return 1
		}
		return 0
	}
	return argmax(scores)
}

// PredictProba returns the class probability distribution for x.
func (m *LogisticRegression) PredictProba(x map[int]float64) []float64 {
	scores := m.Decision(x)
	if len(scores) == 1 {
		p := sigmoid(scores[0])
		return []float64{1 - p, p}
	}
	if m.multiClass == OneVsRest {
		return ovr(scores)
	}
	return softmax(scores)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func softmax(scores []float64) []float64 {
	maxScore := scores[argmax(scores)]
	probs := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		probs[i] = math.Exp(s - maxScore)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func ovr(scores []float64) []float64 {
	probs := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		probs[i] = sigmoid(s)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
