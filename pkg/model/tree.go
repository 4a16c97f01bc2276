package model

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"
)

// DecisionTree is a CART-style classifier: binary numeric threshold splits
// chosen by gini impurity. It records the impurity decrease each feature
// contributes so forests can aggregate feature importances.
type DecisionTree struct {
	MaxDepth        int   // 0 => unlimited
	MinSamplesSplit int   // minimum samples to attempt a split
	MinSamplesLeaf  int   // minimum samples in each child
	MaxFeatures     int   // 0 => all features, >0 => sampled per split
	RandomState     int64 // seed for feature subsampling

	root        *treeNode
	classes     []int
	importances []float64 // unnormalized impurity decrease per feature
}

type treeNode struct {
	leaf      bool
	feature   int
	threshold float64 // x <= threshold goes left
	left      *treeNode
	right     *treeNode

	n         int
	predIndex int // index into classes
}

// TreeOption configures a DecisionTree.
type TreeOption func(*DecisionTree)

func WithMaxDepth(d int) TreeOption        { return func(t *DecisionTree) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) TreeOption { return func(t *DecisionTree) { t.MinSamplesSplit = n } }
func WithMinSamplesLeaf(n int) TreeOption  { return func(t *DecisionTree) { t.MinSamplesLeaf = n } }
func WithMaxFeatures(k int) TreeOption     { return func(t *DecisionTree) { t.MaxFeatures = k } }
func WithRandomState(seed int64) TreeOption {
	return func(t *DecisionTree) { t.RandomState = seed }
}

// NewDecisionTree returns a tree with the usual defaults.
func NewDecisionTree(opts ...TreeOption) *DecisionTree {
	t := &DecisionTree{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		RandomState:     time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Fit trains the tree on all rows of X.
func (t *DecisionTree) Fit(X mat.Matrix, y []int) error {
	n, _ := X.Dims()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return t.fitIndices(X, y, idx)
}

// fitIndices trains on a row subset, possibly with repeats (bootstrap).
func (t *DecisionTree) fitIndices(X mat.Matrix, y []int, idx []int) error {
	n, p := X.Dims()
	if n == 0 || len(idx) == 0 {
		return errors.New("tree: empty training set")
	}
	if len(y) != n {
		return errors.New("tree: X and y length mismatch")
	}

	t.classes = t.classes[:0]
	seen := map[int]int{}
	for _, lab := range y {
		if _, ok := seen[lab]; !ok {
			seen[lab] = len(t.classes)
			t.classes = append(t.classes, lab)
		}
	}

	t.importances = make([]float64, p)
	rnd := rand.New(rand.NewSource(t.RandomState))
	t.root = t.buildNode(X, y, seen, idx, 0, p, len(idx), rnd)
	return nil
}

func (t *DecisionTree) buildNode(X mat.Matrix, y []int, classIdx map[int]int, idx []int, depth, p, nTotal int, rnd *rand.Rand) *treeNode {
	node := &treeNode{n: len(idx)}
	counts := make([]int, len(t.classes))
	for _, i := range idx {
		counts[classIdx[y[i]]]++
	}
	node.predIndex = argmax(counts)

	if isPure(counts) || len(idx) < t.MinSamplesSplit ||
		(t.MaxDepth > 0 && depth >= t.MaxDepth) {
		node.leaf = true
		return node
	}

	features := make([]int, p)
	for j := range features {
		features[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rnd.Shuffle(p, func(a, b int) { features[a], features[b] = features[b], features[a] })
		features = features[:t.MaxFeatures]
	}

	parent := gini(counts)
	best := split{feature: -1}
	for _, f := range features {
		if s := t.bestSplit(X, y, classIdx, idx, f, parent); s.gain > best.gain {
			best = s
		}
	}
	if best.feature < 0 || best.gain <= 0 {
		node.leaf = true
		return node
	}

	// mean-decrease-in-impurity bookkeeping, weighted by node size
	t.importances[best.feature] += best.gain * float64(len(idx)) / float64(nTotal)

	node.feature = best.feature
	node.threshold = best.threshold
	node.left = t.buildNode(X, y, classIdx, best.left, depth+1, p, nTotal, rnd)
	node.right = t.buildNode(X, y, classIdx, best.right, depth+1, p, nTotal, rnd)
	return node
}

type split struct {
	gain      float64
	feature   int
	threshold float64
	left      []int
	right     []int
}

type valueIndex struct {
	v float64
	i int
}

// bestSplit scans midpoints between consecutive distinct values of one
// feature and returns the split with the largest impurity decrease.
func (t *DecisionTree) bestSplit(X mat.Matrix, y []int, classIdx map[int]int, idx []int, f int, parent float64) split {
	best := split{feature: -1}
	vals := make([]valueIndex, len(idx))
	for k, i := range idx {
		vals[k] = valueIndex{X.At(i, f), i}
	}
	sort.Slice(vals, func(a, b int) bool { return vals[a].v < vals[b].v })

	k := len(t.classes)
	leftCounts := make([]int, k)
	rightCounts := make([]int, k)
	for _, vi := range vals {
		rightCounts[classIdx[y[vi.i]]]++
	}

	n := len(vals)
	for s := 1; s < n; s++ {
		ci := classIdx[y[vals[s-1].i]]
		leftCounts[ci]++
		rightCounts[ci]--
		if vals[s].v == vals[s-1].v {
			continue
		}
		if s < t.MinSamplesLeaf || n-s < t.MinSamplesLeaf {
			continue
		}
		weighted := float64(s)/float64(n)*gini(leftCounts) +
			float64(n-s)/float64(n)*gini(rightCounts)
		gain := parent - weighted
		if gain > best.gain {
			best = split{
				gain:      gain,
				feature:   f,
				threshold: (vals[s-1].v + vals[s].v) / 2,
			}
			best.left = make([]int, 0, s)
			best.right = make([]int, 0, n-s)
			for _, vi := range vals[:s] {
				best.left = append(best.left, vi.i)
			}
			for _, vi := range vals[s:] {
				best.right = append(best.right, vi.i)
			}
		}
	}
	return best
}

// Predict returns the majority label of the leaf each row lands in.
func (t *DecisionTree) Predict(X mat.Matrix) ([]int, error) {
	if t.root == nil {
		return nil, errors.New("tree: not fitted")
	}
	n, _ := X.Dims()
	out := make([]int, n)
	for i := 0; i < n; i++ {
		node := t.root
		for !node.leaf {
			if X.At(i, node.feature) <= node.threshold {
				node = node.left
			} else {
				node = node.right
			}
		}
		out[i] = t.classes[node.predIndex]
	}
	return out, nil
}

// FeatureImportances returns per-feature impurity decrease normalized to
// sum to 1 (all zeros when the tree is a single leaf).
func (t *DecisionTree) FeatureImportances() ([]float64, error) {
	if t.root == nil {
		return nil, errors.New("tree: not fitted")
	}
	out := make([]float64, len(t.importances))
	copy(out, t.importances)
	total := 0.0
	for _, v := range out {
		total += v
	}
	if total > 0 {
		for i := range out {
			out[i] /= total
		}
	}
	return out, nil
}

func gini(counts []int) float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	if n == 0 {
		return 0
	}
	res := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		res -= p * p
	}
	return res
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func argmax(counts []int) int {
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return best
}
