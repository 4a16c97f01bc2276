package frame

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics for one numeric series, in the
// count/mean/std/min/quartiles/max layout.
type Summary struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Describe computes a Summary per named float column.
func (f *Frame) Describe(names []string) ([]Summary, error) {
	out := make([]Summary, 0, len(names))
	for _, name := range names {
		vals, err := f.Floats(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Summarize(name, vals))
	}
	return out, nil
}

// Summarize computes descriptive statistics over a series. Quantiles use
// linear interpolation between order statistics, matching the usual
// spreadsheet/frame convention. The sample standard deviation is reported.
func Summarize(name string, vals []float64) Summary {
	s := Summary{Name: name, Count: len(vals)}
	if len(vals) == 0 {
		return s
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(vals, nil)
	if len(vals) > 1 {
		s.Std = stat.StdDev(vals, nil)
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q25 = quantile(sorted, 0.25)
	s.Q50 = quantile(sorted, 0.50)
	s.Q75 = quantile(sorted, 0.75)
	return s
}

// quantile interpolates linearly on a sorted slice. gonum's stat.Quantile
// offers other interpolation kinds; this one keeps parity with the usual
// describe() output.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := q * float64(n-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	w := rank - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
