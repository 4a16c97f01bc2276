// Package model implements the two classifiers the demo compares and the
// interfaces the pipeline layer programs against.
package model

import "gonum.org/v1/gonum/mat"

// Classifier is a trainable multiclass estimator. Fit overwrites any
// previously trained state in place.
type Classifier interface {
	Fit(X mat.Matrix, y []int) error
	Predict(X mat.Matrix) ([]int, error)
}

// FeatureImporter is implemented by estimators that can attribute their
// predictive power to input features. Valid only after Fit; weights are
// non-negative and sum to 1.
type FeatureImporter interface {
	FeatureImportances() ([]float64, error)
}
