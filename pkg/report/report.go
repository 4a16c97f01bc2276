// Package report renders the demo's display artifacts: table previews,
// fold-score summaries and feature-importance listings.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"irislearn/pkg/frame"
	"irislearn/pkg/pipeline"
)

// Head writes the first n rows of the frame.
func Head(w io.Writer, f *frame.Frame, n int) error {
	head, err := f.Head(n)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, head.String())
	return err
}

// ScoreSummary writes a describe-style table over named score series:
// count, mean, std, min, quartiles, max. Series render in the order given.
func ScoreSummary(w io.Writer, names []string, scores map[string][]float64) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax")
	for _, name := range names {
		vals, ok := scores[name]
		if !ok {
			return fmt.Errorf("report: no scores for %q", name)
		}
		s := frame.Summarize(name, vals)
		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			s.Name, s.Count, s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max)
	}
	return tw.Flush()
}

// Importances writes the feature-to-weight mapping in the given order.
func Importances(w io.Writer, imps []pipeline.Importance) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, imp := range imps {
		fmt.Fprintf(tw, "%s\t%.4f\n", imp.Name, imp.Weight)
	}
	return tw.Flush()
}
