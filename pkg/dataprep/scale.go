package dataprep

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Transformer is a fit-on-train, transform-anywhere preprocessing step.
type Transformer interface {
	Fit(X *mat.Dense) error
	Transform(X *mat.Dense) (*mat.Dense, error)
}

// StandardScaler standardizes each column to zero mean and unit variance.
// Constant columns pass through unshifted in scale (std treated as 1).
type StandardScaler struct {
	mean []float64
	std  []float64
}

// NewStandardScaler returns an unfitted scaler.
func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit learns per-column mean and population standard deviation.
func (s *StandardScaler) Fit(X *mat.Dense) error {
	r, c := X.Dims()
	if r == 0 {
		return errors.New("dataprep: cannot fit scaler on empty matrix")
	}
	s.mean = make([]float64, c)
	s.std = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		m, v := stat.MeanVariance(col, nil)
		s.mean[j] = m
		// population variance, matching the usual scaler convention
		v *= float64(r-1) / float64(r)
		if v <= 0 {
			s.std[j] = 1
		} else {
			s.std[j] = math.Sqrt(v)
		}
	}
	return nil
}

// Transform returns a standardized copy of X.
func (s *StandardScaler) Transform(X *mat.Dense) (*mat.Dense, error) {
	if s.mean == nil {
		return nil, errors.New("dataprep: scaler not fitted")
	}
	r, c := X.Dims()
	if c != len(s.mean) {
		return nil, fmt.Errorf("dataprep: scaler fitted on %d columns, got %d", len(s.mean), c)
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, (X.At(i, j)-s.mean[j])/s.std[j])
		}
	}
	return out, nil
}
