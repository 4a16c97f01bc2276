// Package dataprep holds the preprocessing steps pipelines run between
// column extraction and the estimator.
package dataprep

import (
	"errors"
	"fmt"
)

// LabelEncoder maps category strings to dense integer codes, assigned in
// first-appearance order so the same input always yields the same coding.
type LabelEncoder struct {
	codes  map[string]int
	labels []string
}

// NewLabelEncoder returns an empty encoder.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{codes: map[string]int{}}
}

// FitTransform learns the coding from values and returns their codes.
func (e *LabelEncoder) FitTransform(values []string) []int {
	out := make([]int, len(values))
	for i, v := range values {
		code, ok := e.codes[v]
		if !ok {
			code = len(e.labels)
			e.codes[v] = code
			e.labels = append(e.labels, v)
		}
		out[i] = code
	}
	return out
}

// Transform encodes values using the learned coding only.
func (e *LabelEncoder) Transform(values []string) ([]int, error) {
	if len(e.labels) == 0 {
		return nil, errors.New("dataprep: label encoder not fitted")
	}
	out := make([]int, len(values))
	for i, v := range values {
		code, ok := e.codes[v]
		if !ok {
			return nil, fmt.Errorf("dataprep: unseen label %q", v)
		}
		out[i] = code
	}
	return out, nil
}

// Decode maps codes back to their labels.
func (e *LabelEncoder) Decode(codes []int) ([]string, error) {
	out := make([]string, len(codes))
	for i, c := range codes {
		if c < 0 || c >= len(e.labels) {
			return nil, fmt.Errorf("dataprep: code %d out of range", c)
		}
		out[i] = e.labels[c]
	}
	return out, nil
}

// Classes returns the learned labels in code order.
func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.labels))
	copy(out, e.labels)
	return out
}
