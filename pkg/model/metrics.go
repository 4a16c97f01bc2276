package model

// Accuracy is the fraction of exact label matches, in [0,1].
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue))
}

// MacroPrecisionRecallF1 averages one-vs-rest precision, recall and F1
// over the classes present in yTrue.
func MacroPrecisionRecallF1(yTrue, yPred []int) (prec, rec, f1 float64) {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0, 0, 0
	}
	classes := map[int]struct{}{}
	for _, v := range yTrue {
		classes[v] = struct{}{}
	}
	for cls := range classes {
		tp, fp, fn := 0, 0, 0
		for i := range yTrue {
			switch {
			case yPred[i] == cls && yTrue[i] == cls:
				tp++
			case yPred[i] == cls && yTrue[i] != cls:
				fp++
			case yPred[i] != cls && yTrue[i] == cls:
				fn++
			}
		}
		var p, r float64
		if tp+fp > 0 {
			p = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			r = float64(tp) / float64(tp+fn)
		}
		prec += p
		rec += r
		if p+r > 0 {
			f1 += 2 * p * r / (p + r)
		}
	}
	k := float64(len(classes))
	return prec / k, rec / k, f1 / k
}
