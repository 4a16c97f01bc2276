package pipeline

import (
	"math"
	"testing"

	"irislearn/pkg/dataprep"
	"irislearn/pkg/dataset"
	"irislearn/pkg/frame"
	"irislearn/pkg/model"
)

func irisFrame(t *testing.T) (*dataset.Raw, *frame.Frame) {
	t.Helper()
	raw, err := dataset.Load()
	if err != nil {
		t.Fatalf("dataset.Load failed: %v", err)
	}
	f, err := frame.Assemble(raw.Features, raw.FeatureNames, raw.Target, raw.TargetNames, "species")
	if err != nil {
		t.Fatalf("frame.Assemble failed: %v", err)
	}
	return raw, f
}

func forestPipeline(t *testing.T, raw *dataset.Raw, trees int) *Pipeline {
	t.Helper()
	p, err := New("random-forest",
		Spec{Features: raw.FeatureNames, Target: "species"},
		model.NewRandomForest(
			model.WithNEstimators(trees),
			model.WithForestRandomState(42),
		),
	)
	if err != nil {
		t.Fatalf("pipeline.New failed: %v", err)
	}
	return p
}

func TestExtraction(t *testing.T) {
	raw, f := irisFrame(t)
	p := forestPipeline(t, raw, 10)

	X, err := p.Features(f)
	if err != nil {
		t.Fatalf("Features failed: %v", err)
	}
	r, c := X.Dims()
	if r != f.NumRows() || c != len(raw.FeatureNames) {
		t.Errorf("feature dims: got (%d,%d), want (%d,%d)", r, c, f.NumRows(), len(raw.FeatureNames))
	}

	y, err := p.Target(f)
	if err != nil {
		t.Fatalf("Target failed: %v", err)
	}
	if len(y) != f.NumRows() {
		t.Fatalf("target length: got %d, want %d", len(y), f.NumRows())
	}
	counts := map[int]int{}
	for _, code := range y {
		counts[code]++
	}
	if len(counts) != 3 {
		t.Errorf("distinct codes: got %d, want 3", len(counts))
	}
	for code, c := range counts {
		if c != 50 {
			t.Errorf("code %d count: got %d, want 50", code, c)
		}
	}
}

func TestFitPredictDecodesLabels(t *testing.T) {
	raw, f := irisFrame(t)
	p := forestPipeline(t, raw, 25)
	if err := p.Fit(f); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	preds, err := p.Predict(f)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if len(preds) != f.NumRows() {
		t.Fatalf("prediction count: got %d, want %d", len(preds), f.NumRows())
	}
	valid := map[string]bool{"setosa": true, "versicolor": true, "virginica": true}
	for i, p := range preds {
		if !valid[p] {
			t.Fatalf("row %d: predicted unknown label %q", i, p)
		}
	}
}

func TestImportancesOrderAndSum(t *testing.T) {
	raw, f := irisFrame(t)
	p := forestPipeline(t, raw, 200)
	if err := p.Fit(f); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	imps, err := p.FeatureImportances()
	if err != nil {
		t.Fatalf("FeatureImportances failed: %v", err)
	}
	if len(imps) != 4 {
		t.Fatalf("got %d importances, want 4", len(imps))
	}
	sum := 0.0
	for i, imp := range imps {
		if imp.Name != raw.FeatureNames[i] {
			t.Errorf("importance %d: name %q, want %q", i, imp.Name, raw.FeatureNames[i])
		}
		if imp.Weight < 0 || imp.Weight > 1 {
			t.Errorf("importance %q weight %v outside [0,1]", imp.Name, imp.Weight)
		}
		sum += imp.Weight
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("weights sum to %v, want 1", sum)
	}
	// petal measurements dominate sepal ones on this dataset
	petal := imps[2].Weight + imps[3].Weight
	if petal < 0.5 {
		t.Errorf("petal importance share %v unexpectedly low", petal)
	}
}

func TestImportancesBeforeFit(t *testing.T) {
	raw, _ := irisFrame(t)
	p := forestPipeline(t, raw, 10)
	if _, err := p.FeatureImportances(); err == nil {
		t.Error("expected error before fit")
	}
	if _, err := p.Predict(nil); err == nil {
		t.Error("expected error predicting before fit")
	}
}

func TestImportancesNonEnsemble(t *testing.T) {
	raw, f := irisFrame(t)
	p, err := New("logistic-regression",
		Spec{Features: raw.FeatureNames, Target: "species"},
		model.NewLogisticRegression(model.WithSeed(42)),
		dataprep.NewStandardScaler(),
	)
	if err != nil {
		t.Fatalf("pipeline.New failed: %v", err)
	}
	if err := p.Fit(f); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if _, err := p.FeatureImportances(); err == nil {
		t.Error("expected error for estimator without importances")
	}
}

func TestNewValidation(t *testing.T) {
	est := model.NewRandomForest()
	if _, err := New("p", Spec{Target: "y"}, est); err == nil {
		t.Error("expected error for empty feature list")
	}
	if _, err := New("p", Spec{Features: []string{"a"}}, est); err == nil {
		t.Error("expected error for empty target")
	}
	if _, err := New("p", Spec{Features: []string{"a"}, Target: "y"}, nil); err == nil {
		t.Error("expected error for nil estimator")
	}
}
