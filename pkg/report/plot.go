package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"irislearn/pkg/pipeline"
)

// SaveScoreBars renders per-fold accuracy as grouped bars, one group per
// fold, one bar color per pipeline, and writes a PNG to path.
func SaveScoreBars(path string, names []string, scores map[string][]float64) error {
	p := plot.New()
	p.Title.Text = "cross-validation accuracy by fold"
	p.Y.Label.Text = "accuracy"
	p.Y.Max = 1.05

	width := vg.Points(18)
	offset := -width * vg.Length(len(names)-1) / 2
	nFolds := 0
	for i, name := range names {
		vals, ok := scores[name]
		if !ok {
			return fmt.Errorf("report: no scores for %q", name)
		}
		if len(vals) > nFolds {
			nFolds = len(vals)
		}
		bars, err := plotter.NewBarChart(plotter.Values(vals), width)
		if err != nil {
			return err
		}
		bars.Color = plotutil.Color(i)
		bars.Offset = offset + width*vg.Length(i)
		p.Add(bars)
		p.Legend.Add(name, bars)
	}
	labels := make([]string, nFolds)
	for i := range labels {
		labels[i] = fmt.Sprintf("fold %d", i+1)
	}
	p.NominalX(labels...)
	p.Legend.Top = true
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// SaveImportanceBars renders feature importances as a bar chart.
func SaveImportanceBars(path string, imps []pipeline.Importance) error {
	p := plot.New()
	p.Title.Text = "random forest feature importances"
	p.Y.Label.Text = "importance"

	vals := make(plotter.Values, len(imps))
	names := make([]string, len(imps))
	for i, imp := range imps {
		vals[i] = imp.Weight
		names[i] = imp.Name
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(30))
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(names...)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
