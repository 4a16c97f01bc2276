package crossval

import (
	"fmt"

	"irislearn/pkg/frame"
	"irislearn/pkg/model"
	"irislearn/pkg/pipeline"
)

// CrossValidate fits the pipeline once per fold on the complement rows and
// scores accuracy on the held-out rows. Returns exactly kf.K scores in fold
// order. Any fold failure aborts the whole run.
func CrossValidate(p *pipeline.Pipeline, f *frame.Frame, kf KFold) ([]float64, error) {
	y, err := p.Target(f)
	if err != nil {
		return nil, err
	}
	folds, err := kf.Split(f.NumRows(), y)
	if err != nil {
		return nil, err
	}

	inTest := make([]bool, f.NumRows())
	scores := make([]float64, 0, len(folds))
	for fi, test := range folds {
		for i := range inTest {
			inTest[i] = false
		}
		for _, r := range test {
			inTest[r] = true
		}
		train := make([]int, 0, f.NumRows()-len(test))
		for i := 0; i < f.NumRows(); i++ {
			if !inTest[i] {
				train = append(train, i)
			}
		}

		trainFrame, err := f.Select(train)
		if err != nil {
			return nil, fmt.Errorf("crossval: fold %d: %w", fi, err)
		}
		testFrame, err := f.Select(test)
		if err != nil {
			return nil, fmt.Errorf("crossval: fold %d: %w", fi, err)
		}
		if err := p.Fit(trainFrame); err != nil {
			return nil, fmt.Errorf("crossval: fold %d: %w", fi, err)
		}
		pred, err := p.PredictCodes(testFrame)
		if err != nil {
			return nil, fmt.Errorf("crossval: fold %d: %w", fi, err)
		}
		truth := make([]int, len(test))
		for i, r := range test {
			truth[i] = y[r]
		}
		scores = append(scores, model.Accuracy(truth, pred))
	}
	return scores, nil
}
