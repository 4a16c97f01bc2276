// Package frame implements the small column-ordered table the pipelines
// consume: float feature columns plus one string label column.
package frame

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"
)

// Kind tags a column's scalar type.
type Kind int

const (
	Float Kind = iota
	String
)

// Column is a named, typed value sequence. Exactly one of Floats and
// Strings is populated, according to Kind.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
}

func (c *Column) len() int {
	if c.Kind == Float {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// Frame is an ordered set of equal-length columns. Once assembled it is
// treated as read-only; operations that narrow it return fresh frames.
type Frame struct {
	cols []Column
}

// New builds a frame from columns, validating equal lengths.
func New(cols ...Column) (*Frame, error) {
	if len(cols) == 0 {
		return nil, errors.New("frame: no columns")
	}
	n := cols[0].len()
	for _, c := range cols {
		if c.len() != n {
			return nil, fmt.Errorf("frame: column %q has %d rows, want %d", c.Name, c.len(), n)
		}
	}
	f := &Frame{cols: make([]Column, len(cols))}
	copy(f.cols, cols)
	return f, nil
}

// Assemble resolves integer label codes against labelNames and joins the
// result onto the feature matrix as a trailing string column. Pure: the
// inputs are copied, and identical inputs produce identical frames.
func Assemble(X [][]float64, featureNames []string, codes []int, labelNames []string, target string) (*Frame, error) {
	if len(X) == 0 {
		return nil, errors.New("frame: empty feature matrix")
	}
	if len(codes) != len(X) {
		return nil, fmt.Errorf("frame: %d rows but %d label codes", len(X), len(codes))
	}
	cols := make([]Column, 0, len(featureNames)+1)
	for j, name := range featureNames {
		vals := make([]float64, len(X))
		for i, row := range X {
			if len(row) != len(featureNames) {
				return nil, fmt.Errorf("frame: row %d has %d values, want %d", i, len(row), len(featureNames))
			}
			vals[i] = row[j]
		}
		cols = append(cols, Column{Name: name, Kind: Float, Floats: vals})
	}
	labels := make([]string, len(codes))
	for i, code := range codes {
		if code < 0 || code >= len(labelNames) {
			return nil, fmt.Errorf("frame: row %d label code %d out of range", i, code)
		}
		labels[i] = labelNames[code]
	}
	cols = append(cols, Column{Name: target, Kind: String, Strings: labels})
	return New(cols...)
}

// NumRows returns the row count.
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].len()
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

func (f *Frame) column(name string) (*Column, error) {
	for i := range f.cols {
		if f.cols[i].Name == name {
			return &f.cols[i], nil
		}
	}
	return nil, fmt.Errorf("frame: no column %q", name)
}

// Floats returns the values of a float column.
func (f *Frame) Floats(name string) ([]float64, error) {
	c, err := f.column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != Float {
		return nil, fmt.Errorf("frame: column %q is not numeric", name)
	}
	return c.Floats, nil
}

// Strings returns the values of a string column.
func (f *Frame) Strings(name string) ([]string, error) {
	c, err := f.column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != String {
		return nil, fmt.Errorf("frame: column %q is not a string column", name)
	}
	return c.Strings, nil
}

// Select returns a new frame holding the given rows, in the given order.
func (f *Frame) Select(rows []int) (*Frame, error) {
	n := f.NumRows()
	cols := make([]Column, len(f.cols))
	for ci, c := range f.cols {
		out := Column{Name: c.Name, Kind: c.Kind}
		if c.Kind == Float {
			out.Floats = make([]float64, len(rows))
		} else {
			out.Strings = make([]string, len(rows))
		}
		for i, r := range rows {
			if r < 0 || r >= n {
				return nil, fmt.Errorf("frame: row index %d out of range [0,%d)", r, n)
			}
			if c.Kind == Float {
				out.Floats[i] = c.Floats[r]
			} else {
				out.Strings[i] = c.Strings[r]
			}
		}
		cols[ci] = out
	}
	return New(cols...)
}

// Head returns the first n rows (all rows when n exceeds the frame).
func (f *Frame) Head(n int) (*Frame, error) {
	if n > f.NumRows() {
		n = f.NumRows()
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return f.Select(rows)
}

// Matrix extracts the named float columns as a dense row-major matrix with
// one row per frame row and one column per requested name.
func (f *Frame) Matrix(names []string) (*mat.Dense, error) {
	if len(names) == 0 {
		return nil, errors.New("frame: no columns requested")
	}
	n := f.NumRows()
	m := mat.NewDense(n, len(names), nil)
	for j, name := range names {
		vals, err := f.Floats(name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			m.Set(i, j, vals[i])
		}
	}
	return m, nil
}

// String renders the frame as an aligned text table.
func (f *Frame) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(f.Columns(), "\t"))
	for i := 0; i < f.NumRows(); i++ {
		fields := make([]string, len(f.cols))
		for ci, c := range f.cols {
			if c.Kind == Float {
				fields[ci] = fmt.Sprintf("%.1f", c.Floats[i])
			} else {
				fields[ci] = c.Strings[i]
			}
		}
		fmt.Fprintln(w, strings.Join(fields, "\t"))
	}
	w.Flush()
	return sb.String()
}
