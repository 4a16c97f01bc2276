// Package pipeline pairs a column-extraction spec with a preprocessing
// chain and a classifier, so models train straight off a frame.
package pipeline

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"irislearn/pkg/dataprep"
	"irislearn/pkg/frame"
	"irislearn/pkg/model"
)

// Spec names which frame columns feed the estimator and which single
// column is the training target.
type Spec struct {
	Features []string
	Target   string
}

// Importance is one feature's share of the estimator's predictive power.
type Importance struct {
	Name   string
	Weight float64
}

// Pipeline runs extraction, the transformer chain and the estimator as one
// unit. Fit mutates it in place; refitting overwrites trained state.
type Pipeline struct {
	Name      string
	Spec      Spec
	Steps     []dataprep.Transformer
	Estimator model.Classifier

	encoder *dataprep.LabelEncoder
	fitted  bool
}

// New validates and builds a pipeline.
func New(name string, spec Spec, est model.Classifier, steps ...dataprep.Transformer) (*Pipeline, error) {
	if len(spec.Features) == 0 {
		return nil, errors.New("pipeline: spec names no feature columns")
	}
	if spec.Target == "" {
		return nil, errors.New("pipeline: spec names no target column")
	}
	if est == nil {
		return nil, errors.New("pipeline: nil estimator")
	}
	return &Pipeline{Name: name, Spec: spec, Steps: steps, Estimator: est}, nil
}

// Features extracts the spec's feature columns as a matrix with one row
// per frame row.
func (p *Pipeline) Features(f *frame.Frame) (*mat.Dense, error) {
	return f.Matrix(p.Spec.Features)
}

// Target label-encodes the spec's target column. The coding is assigned in
// first-appearance order, so it is stable for a fixed frame.
func (p *Pipeline) Target(f *frame.Frame) ([]int, error) {
	labels, err := f.Strings(p.Spec.Target)
	if err != nil {
		return nil, err
	}
	if p.encoder == nil {
		p.encoder = dataprep.NewLabelEncoder()
		return p.encoder.FitTransform(labels), nil
	}
	return p.encoder.Transform(labels)
}

// Fit extracts features and target from the frame, fits each transformer
// in order on the running matrix, then fits the estimator.
func (p *Pipeline) Fit(f *frame.Frame) error {
	X, err := p.Features(f)
	if err != nil {
		return fmt.Errorf("pipeline %s: %w", p.Name, err)
	}
	y, err := p.Target(f)
	if err != nil {
		return fmt.Errorf("pipeline %s: %w", p.Name, err)
	}
	for _, step := range p.Steps {
		if err := step.Fit(X); err != nil {
			return fmt.Errorf("pipeline %s: %w", p.Name, err)
		}
		if X, err = step.Transform(X); err != nil {
			return fmt.Errorf("pipeline %s: %w", p.Name, err)
		}
	}
	if err := p.Estimator.Fit(X, y); err != nil {
		return fmt.Errorf("pipeline %s: %w", p.Name, err)
	}
	p.fitted = true
	return nil
}

// Predict runs the fitted transformer chain and estimator over the frame
// and decodes the predicted codes back to label strings.
func (p *Pipeline) Predict(f *frame.Frame) ([]string, error) {
	codes, err := p.PredictCodes(f)
	if err != nil {
		return nil, err
	}
	return p.encoder.Decode(codes)
}

// PredictCodes is Predict without the decoding step; cross-validation
// scores against integer codes directly.
func (p *Pipeline) PredictCodes(f *frame.Frame) ([]int, error) {
	if !p.fitted {
		return nil, fmt.Errorf("pipeline %s: not fitted", p.Name)
	}
	X, err := p.Features(f)
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", p.Name, err)
	}
	for _, step := range p.Steps {
		if X, err = step.Transform(X); err != nil {
			return nil, fmt.Errorf("pipeline %s: %w", p.Name, err)
		}
	}
	codes, err := p.Estimator.Predict(X)
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", p.Name, err)
	}
	return codes, nil
}

// FeatureImportances returns name/weight pairs in spec feature order.
// Fails before Fit and for estimators that expose no importances.
func (p *Pipeline) FeatureImportances() ([]Importance, error) {
	if !p.fitted {
		return nil, fmt.Errorf("pipeline %s: not fitted", p.Name)
	}
	imp, ok := p.Estimator.(model.FeatureImporter)
	if !ok {
		return nil, fmt.Errorf("pipeline %s: estimator exposes no feature importances", p.Name)
	}
	weights, err := imp.FeatureImportances()
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", p.Name, err)
	}
	if len(weights) != len(p.Spec.Features) {
		return nil, fmt.Errorf("pipeline %s: %d weights for %d features", p.Name, len(weights), len(p.Spec.Features))
	}
	out := make([]Importance, len(weights))
	for i, name := range p.Spec.Features {
		out[i] = Importance{Name: name, Weight: weights[i]}
	}
	return out, nil
}

// Classes returns the decoded label set once a target has been encoded.
func (p *Pipeline) Classes() []string {
	if p.encoder == nil {
		return nil
	}
	return p.encoder.Classes()
}
