// Package dataset holds named feature columns with a target and provides the
// synthetic generators used to build them.
package dataset

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoData            = errors.New("no observations")
	ErrColLenMismatch    = errors.New("feature column has a different length than the target")
	ErrLabelCountMismatch = errors.New("number of labels does not match number of feature columns")
	ErrUnknownLabel      = errors.New("unknown feature label")
	ErrInvalidSplit      = errors.New("train size must be between 1 and one less than the dataset length")
)

// Dataset stores an ordered set of named feature columns along with the
// target column. All columns have the same number of rows.
type Dataset struct {
	labels []string
	cols   [][]float64
	y      []float64
}

// New validates and copies the provided columns into a Dataset. The label
// order fixes the column order of the feature matrix.
func New(labels []string, cols [][]float64, y []float64) (*Dataset, error) {
	if len(y) == 0 {
		return nil, ErrNoData
	}
	if len(labels) != len(cols) {
		return nil, fmt.Errorf("got %d labels for %d columns, %w", len(labels), len(cols), ErrLabelCountMismatch)
	}
	for i, col := range cols {
		if len(col) != len(y) {
			return nil, fmt.Errorf("column %q has %d rows and target has %d, %w", labels[i], len(col), len(y), ErrColLenMismatch)
		}
	}

	d := &Dataset{
		labels: make([]string, len(labels)),
		cols:   make([][]float64, len(cols)),
		y:      make([]float64, len(y)),
	}
	copy(d.labels, labels)
	copy(d.y, y)
	for i, col := range cols {
		d.cols[i] = make([]float64, len(col))
		copy(d.cols[i], col)
	}
	return d, nil
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.y)
}

// Labels returns the feature labels in column order.
func (d *Dataset) Labels() []string {
	dst := make([]string, len(d.labels))
	copy(dst, d.labels)
	return dst
}

// Column returns the values of a single feature column.
func (d *Dataset) Column(label string) ([]float64, error) {
	idx := slices.Index(d.labels, label)
	if idx < 0 {
		return nil, fmt.Errorf("%s, %w", label, ErrUnknownLabel)
	}
	col := make([]float64, len(d.cols[idx]))
	copy(col, d.cols[idx])
	return col, nil
}

// Target returns the target column values.
func (d *Dataset) Target() []float64 {
	dst := make([]float64, len(d.y))
	copy(dst, d.y)
	return dst
}

// Select returns a new Dataset restricted to the requested feature labels in
// the given order. The target is carried over unchanged.
func (d *Dataset) Select(labels ...string) (*Dataset, error) {
	cols := make([][]float64, 0, len(labels))
	for _, label := range labels {
		idx := slices.Index(d.labels, label)
		if idx < 0 {
			return nil, fmt.Errorf("%s, %w", label, ErrUnknownLabel)
		}
		cols = append(cols, d.cols[idx])
	}
	return New(labels, cols, d.y)
}

// Split partitions the dataset into a training set with the first numTrain
// rows and a test set with the remainder. The two sets are disjoint and
// together cover every observation.
func (d *Dataset) Split(numTrain int) (*Dataset, *Dataset, error) {
	if numTrain <= 0 || numTrain >= d.Len() {
		return nil, nil, fmt.Errorf("train size %d of %d observations, %w", numTrain, d.Len(), ErrInvalidSplit)
	}

	trainCols := make([][]float64, len(d.cols))
	testCols := make([][]float64, len(d.cols))
	for i, col := range d.cols {
		trainCols[i] = col[:numTrain]
		testCols[i] = col[numTrain:]
	}

	train, err := New(d.labels, trainCols, d.y[:numTrain])
	if err != nil {
		return nil, nil, err
	}
	test, err := New(d.labels, testCols, d.y[numTrain:])
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// FeatureMatrix returns the features as a row-major observation matrix with
// one column per feature label.
func (d *Dataset) FeatureMatrix() mat.Matrix {
	m := d.Len()
	n := len(d.cols)
	obs := make([]float64, m*n)
	for j, col := range d.cols {
		for i := 0; i < m; i++ {
			obs[n*i+j] = col[i]
		}
	}
	return mat.NewDense(m, n, obs)
}

// TargetMatrix returns the target as a single column matrix.
func (d *Dataset) TargetMatrix() mat.Matrix {
	y := make([]float64, len(d.y))
	copy(y, d.y)
	return mat.NewDense(len(y), 1, y)
}

// Copy returns a deep copy of the dataset.
func (d *Dataset) Copy() *Dataset {
	dst, _ := New(d.labels, d.cols, d.y)
	return dst
}
