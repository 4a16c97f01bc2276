package model

import (
	"errors"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"irislearn/pkg/optim"
)

// LogisticRegression is a multinomial (softmax) classifier trained with
// full-batch gradient descent and L2 regularization. Inputs are expected
// to be on comparable scales; the demo runs it behind a StandardScaler.
type LogisticRegression struct {
	Lr          float64
	Epochs      int
	L2          float64
	RandomState int64

	weights []float64 // k*p, row per class
	bias    []float64 // k
	classes []int
	p       int
}

// LogisticOption configures a LogisticRegression.
type LogisticOption func(*LogisticRegression)

func WithLearningRate(lr float64) LogisticOption {
	return func(m *LogisticRegression) { m.Lr = lr }
}
func WithEpochs(n int) LogisticOption { return func(m *LogisticRegression) { m.Epochs = n } }
func WithL2(l float64) LogisticOption { return func(m *LogisticRegression) { m.L2 = l } }
func WithSeed(s int64) LogisticOption { return func(m *LogisticRegression) { m.RandomState = s } }

// NewLogisticRegression returns a model with defaults that converge on
// small standardized datasets without tuning.
func NewLogisticRegression(opts ...LogisticOption) *LogisticRegression {
	m := &LogisticRegression{
		Lr:     0.1,
		Epochs: 300,
		L2:     1e-3,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Fit trains by full-batch gradient descent on the categorical
// cross-entropy, stepping the flattened weight matrix through optim.SGD.
func (m *LogisticRegression) Fit(X mat.Matrix, y []int) error {
	n, p := X.Dims()
	if n == 0 {
		return errors.New("logistic: empty X")
	}
	if len(y) != n {
		return errors.New("logistic: X and y length mismatch")
	}

	m.classes = m.classes[:0]
	classIdx := map[int]int{}
	for _, lab := range y {
		if _, ok := classIdx[lab]; !ok {
			classIdx[lab] = len(m.classes)
			m.classes = append(m.classes, lab)
		}
	}
	k := len(m.classes)
	if k < 2 {
		return errors.New("logistic: need at least two classes")
	}

	m.p = p
	rnd := rand.New(rand.NewSource(m.RandomState))
	m.weights = make([]float64, k*p)
	for i := range m.weights {
		m.weights[i] = rnd.NormFloat64() * 0.01 // break symmetry
	}
	m.bias = make([]float64, k)

	opt := optim.NewSGD(m.Lr)
	grads := make([]float64, k*p)
	gradB := make([]float64, k)
	probs := make([]float64, k)
	row := make([]float64, p)

	for ep := 0; ep < m.Epochs; ep++ {
		for i := range grads {
			grads[i] = 0
		}
		for i := range gradB {
			gradB[i] = 0
		}
		for i := 0; i < n; i++ {
			for j := 0; j < p; j++ {
				row[j] = X.At(i, j)
			}
			m.scores(row, probs)
			softmaxInPlace(probs)
			ti := classIdx[y[i]]
			for c := 0; c < k; c++ {
				d := probs[c]
				if c == ti {
					d -= 1
				}
				d /= float64(n)
				for j := 0; j < p; j++ {
					grads[c*p+j] += d * row[j]
				}
				gradB[c] += d
			}
		}
		if m.L2 > 0 {
			for i, w := range m.weights {
				grads[i] += m.L2 * w
			}
		}
		opt.Step(m.weights, grads)
		opt.Step(m.bias, gradB)
	}
	return nil
}

// scores writes the per-class linear scores for one row into out.
func (m *LogisticRegression) scores(row []float64, out []float64) {
	k := len(m.bias)
	for c := 0; c < k; c++ {
		s := m.bias[c]
		w := m.weights[c*m.p : (c+1)*m.p]
		for j, v := range row {
			s += w[j] * v
		}
		out[c] = s
	}
}

// softmaxInPlace converts scores to probabilities, shifted by the max
// score to stay finite.
func softmaxInPlace(scores []float64) {
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	sum := 0.0
	for i, s := range scores {
		e := math.Exp(s - maxScore)
		scores[i] = e
		sum += e
	}
	for i := range scores {
		scores[i] /= sum
	}
}

// Predict returns the class with the highest score per row.
func (m *LogisticRegression) Predict(X mat.Matrix) ([]int, error) {
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	n, k := proba.Dims()
	out := make([]int, n)
	for i := 0; i < n; i++ {
		best := 0
		for c := 1; c < k; c++ {
			if proba.At(i, c) > proba.At(i, best) {
				best = c
			}
		}
		out[i] = m.classes[best]
	}
	return out, nil
}

// PredictProba returns an (n x k) matrix of class probabilities, columns
// ordered like Classes.
func (m *LogisticRegression) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	if m.weights == nil {
		return nil, errors.New("logistic: not fitted")
	}
	n, p := X.Dims()
	if p != m.p {
		return nil, errors.New("logistic: feature count mismatch")
	}
	k := len(m.bias)
	out := mat.NewDense(n, k, nil)
	row := make([]float64, p)
	probs := make([]float64, k)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			row[j] = X.At(i, j)
		}
		m.scores(row, probs)
		softmaxInPlace(probs)
		out.SetRow(i, probs)
	}
	return out, nil
}

// Classes returns the labels in the column order used by PredictProba.
func (m *LogisticRegression) Classes() []int {
	out := make([]int, len(m.classes))
	copy(out, m.classes)
	return out
}
