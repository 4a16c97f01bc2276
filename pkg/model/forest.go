package model

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"
)

// RandomForest is a bagging ensemble of decision trees with majority-vote
// prediction and mean-decrease-in-impurity feature importances.
type RandomForest struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int // 0 => round(sqrt(p)) per the usual classification default
	Bootstrap       bool
	RandomState     int64

	trees     []*DecisionTree
	nFeatures int
}

// ForestOption configures a RandomForest.
type ForestOption func(*RandomForest)

func WithNEstimators(n int) ForestOption { return func(rf *RandomForest) { rf.NEstimators = n } }
func WithBootstrap(b bool) ForestOption  { return func(rf *RandomForest) { rf.Bootstrap = b } }
func WithForestMaxDepth(d int) ForestOption {
	return func(rf *RandomForest) { rf.MaxDepth = d }
}
func WithForestMaxFeatures(k int) ForestOption {
	return func(rf *RandomForest) { rf.MaxFeatures = k }
}
func WithForestRandomState(seed int64) ForestOption {
	return func(rf *RandomForest) { rf.RandomState = seed }
}

// NewRandomForest initializes the forest with sensible defaults.
func NewRandomForest(opts ...ForestOption) *RandomForest {
	rf := &RandomForest{
		NEstimators:     100,
		MinSamplesSplit: 2,
		Bootstrap:       true,
		RandomState:     time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit trains NEstimators trees, one goroutine per tree. Each tree gets its
// own seeded RNG and an index-based bootstrap sample of the rows.
func (rf *RandomForest) Fit(X mat.Matrix, y []int) error {
	n, p := X.Dims()
	if n == 0 {
		return errors.New("forest: empty X")
	}
	if len(y) != n {
		return errors.New("forest: X and y length mismatch")
	}
	if rf.NEstimators <= 0 {
		return fmt.Errorf("forest: need at least one estimator, have %d", rf.NEstimators)
	}

	maxFeatures := rf.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Round(math.Sqrt(float64(p))))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	rf.nFeatures = p
	rf.trees = make([]*DecisionTree, rf.NEstimators)
	errCh := make(chan error, rf.NEstimators)
	var wg sync.WaitGroup

	for i := 0; i < rf.NEstimators; i++ {
		wg.Add(1)
		go func(ti int) {
			defer wg.Done()
			treeRand := rand.New(rand.NewSource(rf.RandomState + int64(ti)))
			idx := make([]int, n)
			for j := range idx {
				if rf.Bootstrap {
					idx[j] = treeRand.Intn(n)
				} else {
					idx[j] = j
				}
			}
			tree := NewDecisionTree(
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMaxFeatures(maxFeatures),
				WithRandomState(rf.RandomState+int64(ti)),
			)
			if err := tree.fitIndices(X, y, idx); err != nil {
				errCh <- err
				return
			}
			rf.trees[ti] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			rf.trees = nil
			return err
		}
	}
	return nil
}

// Predict returns the majority vote across trees for each row.
func (rf *RandomForest) Predict(X mat.Matrix) ([]int, error) {
	if rf.trees == nil {
		return nil, errors.New("forest: not fitted")
	}
	n, _ := X.Dims()

	all := make([][]int, len(rf.trees))
	errCh := make(chan error, len(rf.trees))
	var wg sync.WaitGroup
	for i, tree := range rf.trees {
		wg.Add(1)
		go func(ti int, t *DecisionTree) {
			defer wg.Done()
			preds, err := t.Predict(X)
			if err != nil {
				errCh <- err
				return
			}
			all[ti] = preds
		}(i, tree)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	out := make([]int, n)
	for i := 0; i < n; i++ {
		votes := map[int]int{}
		for _, preds := range all {
			votes[preds[i]]++
		}
		bestLabel, bestCount := 0, -1
		for label, count := range votes {
			if count > bestCount || (count == bestCount && label < bestLabel) {
				bestLabel, bestCount = label, count
			}
		}
		out[i] = bestLabel
	}
	return out, nil
}

// FeatureImportances averages the per-tree normalized impurity decreases.
// The result is non-negative and sums to 1.
func (rf *RandomForest) FeatureImportances() ([]float64, error) {
	if rf.trees == nil {
		return nil, errors.New("forest: not fitted")
	}
	out := make([]float64, rf.nFeatures)
	contributing := 0
	for _, tree := range rf.trees {
		imps, err := tree.FeatureImportances()
		if err != nil {
			return nil, err
		}
		total := 0.0
		for _, v := range imps {
			total += v
		}
		if total == 0 {
			continue // single-leaf tree, nothing to attribute
		}
		for j, v := range imps {
			out[j] += v
		}
		contributing++
	}
	if contributing == 0 {
		return nil, errors.New("forest: no tree produced a split")
	}
	for j := range out {
		out[j] /= float64(contributing)
	}
	return out, nil
}
