package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRidgeOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *RidgeOptions
		err      error
		expected *RidgeOptions
	}{
		"nil": {nil, nil, NewDefaultRidgeOptions()},
		"valid": {
			&RidgeOptions{
				Lambda:       0.5,
				FitIntercept: true,
			}, nil,
			&RidgeOptions{
				Lambda:       0.5,
				FitIntercept: true,
			},
		},
		"invalid lambda": {
			&RidgeOptions{Lambda: -1.0},
			ErrNegativeLambda,
			nil,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestRidgeRegression(t *testing.T) {
	tol := 1e-5
	testData := map[string]struct {
		x         [][]float64
		y         []float64
		opt       *RidgeOptions
		intercept float64
		coef      []float64
	}{
		"zero lambda converges to ols": {
			x: [][]float64{
				{0, 0},
				{3, 5},
				{9, 20},
				{12, 6},
				{15, 10},
			},
			y: []float64{2, 31, 109, 62, 87},
			opt: &RidgeOptions{
				Lambda:       0.0,
				FitIntercept: true,
			},
			intercept: 2.0,
			coef:      []float64{3.0, 4.0},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			x := newDenseFromRows(t, td.x)
			y := mat.NewDense(len(td.y), 1, td.y)

			model, err := NewRidgeRegression(td.opt)
			require.Nil(t, err)

			testModel(t, model, x, y, td.intercept, td.coef, tol)
		})
	}
}

func TestRidgeRegressionShrinks(t *testing.T) {
	x := newDenseFromRows(t, [][]float64{
		{0, 0},
		{3, 5},
		{9, 20},
		{12, 6},
		{15, 10},
	})
	y := mat.NewDense(5, 1, []float64{2, 31, 109, 62, 87})

	ols, err := NewOLSRegression(nil)
	require.Nil(t, err)
	require.Nil(t, ols.Fit(x, y))

	prevNorm := math.Inf(1)
	for _, lambda := range []float64{0.0, 1.0, 10.0, 100.0} {
		model, err := NewRidgeRegression(
			&RidgeOptions{
				Lambda:       lambda,
				FitIntercept: true,
			},
		)
		require.Nil(t, err)
		require.Nil(t, model.Fit(x, y))

		var norm float64
		for _, c := range model.Coef() {
			norm += c * c
		}

		// increasing lambda monotonically shrinks the L2 norm of the coefficients
		assert.Less(t, norm, prevNorm)
		prevNorm = norm
	}
}
