package crossval

import (
	"testing"

	"irislearn/pkg/dataprep"
	"irislearn/pkg/dataset"
	"irislearn/pkg/frame"
	"irislearn/pkg/model"
	"irislearn/pkg/pipeline"
)

func TestKFoldSplitCoversAllRows(t *testing.T) {
	kf := KFold{K: 5, Shuffle: true, Seed: 1}
	folds, err := kf.Split(153, nil)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(folds) != 5 {
		t.Fatalf("got %d folds, want 5", len(folds))
	}
	seen := map[int]int{}
	for _, fold := range folds {
		for _, r := range fold {
			seen[r]++
		}
	}
	if len(seen) != 153 {
		t.Errorf("folds cover %d rows, want 153", len(seen))
	}
	for r, c := range seen {
		if c != 1 {
			t.Errorf("row %d appears %d times", r, c)
		}
	}
	for _, fold := range folds {
		if len(fold) < 30 || len(fold) > 31 {
			t.Errorf("fold size %d not near-equal for 153/5", len(fold))
		}
	}
}

func TestKFoldDeterministic(t *testing.T) {
	kf := KFold{K: 3, Shuffle: true, Seed: 9}
	a, err := kf.Split(30, nil)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	b, err := kf.Split(30, nil)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			t.Fatalf("fold %d sizes differ", i)
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("fold %d differs at %d with same seed", i, j)
			}
		}
	}
}

func TestKFoldStratified(t *testing.T) {
	// 3 classes x 10 rows, 5 folds: each fold should hold 2 of each class
	y := make([]int, 30)
	for i := range y {
		y[i] = i / 10
	}
	kf := KFold{K: 5, Shuffle: true, Stratify: true, Seed: 4}
	folds, err := kf.Split(30, y)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	for fi, fold := range folds {
		counts := map[int]int{}
		for _, r := range fold {
			counts[y[r]]++
		}
		for cls := 0; cls < 3; cls++ {
			if counts[cls] != 2 {
				t.Errorf("fold %d class %d count: got %d, want 2", fi, cls, counts[cls])
			}
		}
	}
}

func TestKFoldErrors(t *testing.T) {
	if _, err := (KFold{K: 1}).Split(10, nil); err == nil {
		t.Error("expected error for fold count below 2")
	}
	if _, err := (KFold{K: 5}).Split(3, nil); err == nil {
		t.Error("expected error when rows cannot fill folds")
	}
	if _, err := (KFold{K: 2, Stratify: true}).Split(10, []int{0, 1}); err == nil {
		t.Error("expected error on label length mismatch")
	}
}

func irisPipelines(t *testing.T) (*frame.Frame, *pipeline.Pipeline, *pipeline.Pipeline) {
	t.Helper()
	raw, err := dataset.Load()
	if err != nil {
		t.Fatalf("dataset.Load failed: %v", err)
	}
	f, err := frame.Assemble(raw.Features, raw.FeatureNames, raw.Target, raw.TargetNames, "species")
	if err != nil {
		t.Fatalf("frame.Assemble failed: %v", err)
	}
	spec := pipeline.Spec{Features: raw.FeatureNames, Target: "species"}
	forest, err := pipeline.New("random-forest", spec,
		model.NewRandomForest(model.WithNEstimators(25), model.WithForestRandomState(42)))
	if err != nil {
		t.Fatalf("pipeline.New failed: %v", err)
	}
	logreg, err := pipeline.New("logistic-regression", spec,
		model.NewLogisticRegression(model.WithSeed(42)),
		dataprep.NewStandardScaler())
	if err != nil {
		t.Fatalf("pipeline.New failed: %v", err)
	}
	return f, forest, logreg
}

func TestCrossValidateForest(t *testing.T) {
	f, forest, _ := irisPipelines(t)
	scores, err := CrossValidate(forest, f, KFold{K: 5, Shuffle: true, Seed: 42})
	if err != nil {
		t.Fatalf("CrossValidate failed: %v", err)
	}
	if len(scores) != 5 {
		t.Fatalf("got %d scores, want 5", len(scores))
	}
	mean := 0.0
	for i, s := range scores {
		if s < 0 || s > 1 {
			t.Errorf("fold %d score %v outside [0,1]", i, s)
		}
		mean += s
	}
	mean /= float64(len(scores))
	if mean < 0.8 {
		t.Errorf("mean accuracy %v below 0.8", mean)
	}
}

func TestCrossValidateLogistic(t *testing.T) {
	f, _, logreg := irisPipelines(t)
	scores, err := CrossValidate(logreg, f, KFold{K: 5, Shuffle: true, Stratify: true, Seed: 42})
	if err != nil {
		t.Fatalf("CrossValidate failed: %v", err)
	}
	if len(scores) != 5 {
		t.Fatalf("got %d scores, want 5", len(scores))
	}
	mean := 0.0
	for i, s := range scores {
		if s < 0 || s > 1 {
			t.Errorf("fold %d score %v outside [0,1]", i, s)
		}
		mean += s
	}
	mean /= float64(len(scores))
	if mean < 0.8 {
		t.Errorf("mean accuracy %v below 0.8", mean)
	}
}

func TestCrossValidateBadFolds(t *testing.T) {
	f, forest, _ := irisPipelines(t)
	if _, err := CrossValidate(forest, f, KFold{K: 1}); err == nil {
		t.Error("expected error for invalid fold count")
	}
}
