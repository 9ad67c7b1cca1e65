package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestElasticNetOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *ElasticNetOptions
		err      error
		expected *ElasticNetOptions
	}{
		"nil": {nil, nil, NewDefaultElasticNetOptions()},
		"valid": {
			&ElasticNetOptions{
				Lambda:     1.0,
				Mixture:    0.5,
				Iterations: 100,
				Tolerance:  1e-5,
			}, nil,
			&ElasticNetOptions{
				Lambda:     1.0,
				Mixture:    0.5,
				Iterations: 100,
				Tolerance:  1e-5,
			},
		},
		"invalid lambda": {
			&ElasticNetOptions{Lambda: -1.0},
			ErrNegativeLambda,
			nil,
		},
		"invalid mixture": {
			&ElasticNetOptions{Mixture: 1.5},
			ErrInvalidMixture,
			nil,
		},
		"invalid iterations": {
			&ElasticNetOptions{Iterations: -1},
			ErrNegativeIterations,
			nil,
		},
		"invalid tolerance": {
			&ElasticNetOptions{Tolerance: -1.0},
			ErrNegativeTolerance,
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

func TestElasticNetRegression(t *testing.T) {
	tol := 1e-2
	testData := map[string]struct {
		x         [][]float64
		y         []float64
		opt       *ElasticNetOptions
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
			opt: &ElasticNetOptions{
				Lambda:       0.0,
				Mixture:      0.5,
				Iterations:   10000,
				Tolerance:    1e-9,
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

			model, err := NewElasticNetRegression(td.opt)
			require.Nil(t, err)

			testModel(t, model, x, y, td.intercept, td.coef, tol)
		})
	}
}

func TestElasticNetWarmStartBetaSize(t *testing.T) {
	x := newDenseFromRows(t, [][]float64{{1, 2}, {3, 4}})
	y := mat.NewDense(2, 1, []float64{1, 2})

	model, err := NewElasticNetRegression(
		&ElasticNetOptions{
			Lambda:        1.0,
			Mixture:       1.0,
			Iterations:    10,
			Tolerance:     1e-4,
			FitIntercept:  true,
			WarmStartBeta: []float64{1.0},
		},
	)
	require.Nil(t, err)

	err = model.Fit(x, y)
	assert.ErrorIs(t, err, ErrWarmStartBetaSize)
}

func TestSoftThreshold(t *testing.T) {
	testData := map[string]struct {
		x        float64
		gamma    float64
		expected float64
	}{
		"below gamma":          {0.5, 1.0, 0.0},
		"above gamma":          {2.0, 1.0, 1.0},
		"negative above gamma": {-2.0, 1.0, -1.0},
		"negative below gamma": {-0.5, 1.0, 0.0},
		"zero gamma":           {1.5, 0.0, 1.5},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, SoftThreshold(td.x, td.gamma))
		})
	}
}
