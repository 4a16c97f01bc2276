// Package optim holds the first-order optimizers used by the trainable
// linear models.
package optim

// SGD performs plain gradient descent steps at a fixed learning rate.
type SGD struct {
	LearningRate float64
}

// NewSGD returns a stepper with the given learning rate.
func NewSGD(lr float64) *SGD { return &SGD{LearningRate: lr} }

// Step updates weights in place: w -= lr * g.
func (o *SGD) Step(weights, grads []float64) {
	for i := range weights {
		weights[i] -= o.LearningRate * grads[i]
	}
}
