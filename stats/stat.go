// Package stats provides collinearity diagnostics for the predictor chain.
package stats

import (
	"errors"
	"math"

	"github.com/gostatslab/regresslab/models"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrMinimumFeatures    = errors.New("need at least 2 features to compute VIF")
	ErrFeatureLenMismatch = errors.New("some feature length is not consistent")
	ErrFeatureLen         = errors.New("must have at least 2 points per feature")
)

// CorrelationMatrix computes the pairwise Pearson correlation of the feature
// columns. The result is symmetric with a unit diagonal.
func CorrelationMatrix(cols [][]float64) (*mat.SymDense, error) {
	if len(cols) < 2 {
		return nil, ErrMinimumFeatures
	}
	m := len(cols[0])
	if m < 2 {
		return nil, ErrFeatureLen
	}
	for _, col := range cols {
		if len(col) != m {
			return nil, ErrFeatureLenMismatch
		}
	}

	n := len(cols)
	corr := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		corr.SetSym(i, i, 1.0)
		for j := i + 1; j < n; j++ {
			corr.SetSym(i, j, stat.Correlation(cols[i], cols[j], nil))
		}
	}
	return corr, nil
}

// VarianceInflationFactor computes the VIF of every feature by regressing it
// on all the remaining features with OLS. A VIF well above 1 flags a feature
// as nearly linearly dependent on the rest.
func VarianceInflationFactor(labels []string, cols [][]float64) (map[string]float64, error) {
	if len(cols) < 2 {
		return nil, ErrMinimumFeatures
	}
	if len(labels) != len(cols) {
		return nil, ErrFeatureLenMismatch
	}
	m := len(cols[0])
	if m < 2 {
		return nil, ErrFeatureLen
	}
	for _, col := range cols {
		if len(col) != m {
			return nil, ErrFeatureLenMismatch
		}
	}

	n := len(cols)
	vif := make(map[string]float64)
	for i, label := range labels {
		x := mat.NewDense(m, n-1, nil)
		c := 0
		for j, other := range cols {
			if j == i {
				continue
			}
			x.SetCol(c, other)
			c++
		}
		y := mat.NewDense(m, 1, nil)
		y.SetCol(0, cols[i])

		ols, err := models.NewOLSRegression(nil)
		if err != nil {
			return nil, err
		}
		if err := ols.Fit(x, y); err != nil {
			return nil, err
		}
		r2, err := ols.Score(x, y)
		if err != nil {
			return nil, err
		}

		if r2 >= 1.0 {
			vif[label] = math.Inf(1)
			continue
		}
		vif[label] = 1.0 / (1.0 - r2)
	}
	return vif, nil
}
