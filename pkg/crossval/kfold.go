// Package crossval implements k-fold splitting and pipeline scoring.
package crossval

import (
	"fmt"
	"math/rand"
)

// KFold partitions row indices into K disjoint folds. With Shuffle the
// rows are permuted first; with Stratify each class is spread round-robin
// so per-fold class proportions match the whole table.
type KFold struct {
	K        int
	Shuffle  bool
	Stratify bool
	Seed     int64
}

// Split returns K folds of held-out test indices covering 0..n-1 exactly
// once. y is only consulted when stratifying and may be nil otherwise.
func (kf KFold) Split(n int, y []int) ([][]int, error) {
	if kf.K < 2 {
		return nil, fmt.Errorf("crossval: fold count must be at least 2, got %d", kf.K)
	}
	if n < kf.K {
		return nil, fmt.Errorf("crossval: %d rows cannot fill %d folds", n, kf.K)
	}
	if kf.Stratify && len(y) != n {
		return nil, fmt.Errorf("crossval: stratified split needs %d labels, got %d", n, len(y))
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if kf.Shuffle {
		rnd := rand.New(rand.NewSource(kf.Seed))
		rnd.Shuffle(n, func(a, b int) { order[a], order[b] = order[b], order[a] })
	}

	folds := make([][]int, kf.K)
	if !kf.Stratify {
		for i, row := range order {
			folds[i%kf.K] = append(folds[i%kf.K], row)
		}
		return folds, nil
	}

	// deal each class's rows round-robin across folds
	byClass := map[int][]int{}
	var classOrder []int
	for _, row := range order {
		cls := y[row]
		if _, ok := byClass[cls]; !ok {
			classOrder = append(classOrder, cls)
		}
		byClass[cls] = append(byClass[cls], row)
	}
	next := 0
	for _, cls := range classOrder {
		for _, row := range byClass[cls] {
			folds[next%kf.K] = append(folds[next%kf.K], row)
			next++
		}
	}
	return folds, nil
}
