// Package dataset bundles the iris measurements used by the demo pipelines.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

//go:embed iris.csv
var irisCSV []byte

// Raw is the dataset as loaded: a dense feature matrix plus integer label
// codes and the lookup tables for column and class names.
type Raw struct {
	Features     [][]float64
	FeatureNames []string
	Target       []int
	TargetNames  []string
}

// NumRows returns the number of observations.
func (r *Raw) NumRows() int { return len(r.Features) }

// Load parses the bundled iris table. The file ships inside the binary, so
// a parse failure means the build itself is broken and is returned as-is.
func Load() (*Raw, error) {
	reader := csv.NewReader(bytes.NewReader(irisCSV))
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("dataset: header needs features and a label column, got %d columns", len(header))
	}
	nFeatures := len(header) - 1

	raw := &Raw{
		FeatureNames: make([]string, nFeatures),
		TargetNames:  []string{"setosa", "versicolor", "virginica"},
	}
	copy(raw.FeatureNames, header[:nFeatures])

	for i := 0; ; i++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read row %d: %w", i+1, err)
		}
		if len(rec) != nFeatures+1 {
			return nil, fmt.Errorf("dataset: row %d has %d columns, want %d", i+1, len(rec), nFeatures+1)
		}
		row := make([]float64, nFeatures)
		for j := 0; j < nFeatures; j++ {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("dataset: row %d column %q: %w", i+1, raw.FeatureNames[j], err)
			}
			row[j] = v
		}
		code, err := strconv.Atoi(rec[nFeatures])
		if err != nil {
			return nil, fmt.Errorf("dataset: row %d label: %w", i+1, err)
		}
		if code < 0 || code >= len(raw.TargetNames) {
			return nil, fmt.Errorf("dataset: row %d label code %d out of range", i+1, code)
		}
		raw.Features = append(raw.Features, row)
		raw.Target = append(raw.Target, code)
	}
	return raw, nil
}
