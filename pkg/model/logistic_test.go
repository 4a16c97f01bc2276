package model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestLogisticFitPredict(t *testing.T) {
	X, y := threeBlobs()
	lr := NewLogisticRegression(WithSeed(11), WithEpochs(600))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	got, err := lr.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if acc := Accuracy(y, got); acc < 0.9 {
		t.Errorf("training accuracy %v below 0.9", acc)
	}
}

func TestLogisticProbabilities(t *testing.T) {
	X, y := threeBlobs()
	lr := NewLogisticRegression(WithSeed(11))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	proba, err := lr.PredictProba(X)
	if err != nil {
		t.Fatalf("PredictProba failed: %v", err)
	}
	n, k := proba.Dims()
	if k != 3 {
		t.Fatalf("got %d class columns, want 3", k)
	}
	for i := 0; i < n; i++ {
		sum := 0.0
		for c := 0; c < k; c++ {
			p := proba.At(i, c)
			if p < 0 || p > 1 {
				t.Fatalf("row %d class %d probability %v outside [0,1]", i, c, p)
			}
			sum += p
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("row %d probabilities sum to %v", i, sum)
		}
	}
}

func TestLogisticDeterministic(t *testing.T) {
	X, y := threeBlobs()
	a := NewLogisticRegression(WithSeed(5))
	b := NewLogisticRegression(WithSeed(5))
	if err := a.Fit(X, y); err != nil {
		t.Fatalf("Fit a failed: %v", err)
	}
	if err := b.Fit(X, y); err != nil {
		t.Fatalf("Fit b failed: %v", err)
	}
	pa, err := a.Predict(X)
	if err != nil {
		t.Fatalf("Predict a failed: %v", err)
	}
	pb, err := b.Predict(X)
	if err != nil {
		t.Fatalf("Predict b failed: %v", err)
	}
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("row %d: same seed produced different predictions", i)
		}
	}
}

func TestLogisticErrors(t *testing.T) {
	lr := NewLogisticRegression()
	if _, err := lr.Predict(mat.NewDense(1, 2, nil)); err == nil {
		t.Error("expected error predicting before fit")
	}
	X, y := threeBlobs()
	if err := lr.Fit(X, y[:5]); err == nil {
		t.Error("expected error on X/y length mismatch")
	}
	uniform := make([]int, len(y))
	if err := lr.Fit(X, uniform); err == nil {
		t.Error("expected error with a single class")
	}
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if _, err := lr.Predict(mat.NewDense(2, 5, nil)); err == nil {
		t.Error("expected error on feature count mismatch")
	}
}

func TestMetrics(t *testing.T) {
	yTrue := []int{0, 0, 1, 1, 2, 2}
	yPred := []int{0, 1, 1, 1, 2, 0}
	if got := Accuracy(yTrue, yPred); math.Abs(got-4.0/6.0) > 1e-9 {
		t.Errorf("accuracy: got %v, want %v", got, 4.0/6.0)
	}
	if got := Accuracy(yTrue, yTrue); got != 1 {
		t.Errorf("perfect accuracy: got %v, want 1", got)
	}
	if got := Accuracy(nil, nil); got != 0 {
		t.Errorf("empty accuracy: got %v, want 0", got)
	}
	prec, rec, f1 := MacroPrecisionRecallF1(yTrue, yTrue)
	if prec != 1 || rec != 1 || f1 != 1 {
		t.Errorf("perfect macro scores: got %v %v %v", prec, rec, f1)
	}
}
