package models

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var ErrSingularDesign = errors.New("design matrix is singular after regularization")

// RidgeOptions represents input options to run the Ridge Regression
type RidgeOptions struct {
	// Lambda represents the L2 multiplier, controlling the regularization. Must be non-negative.
	// 0.0 converges to Ordinary Least Squares (OLS).
	Lambda float64

	// FitIntercept adds a constant 1.0 feature as the first column if set to true. The intercept
	// column is not penalized.
	FitIntercept bool
}

// Validate runs basic validation on Ridge options
func (r *RidgeOptions) Validate() (*RidgeOptions, error) {
	if r == nil {
		r = NewDefaultRidgeOptions()
	}
	if r.Lambda < 0 {
		return nil, ErrNegativeLambda
	}
	return r, nil
}

// NewDefaultRidgeOptions returns a default set of Ridge Regression options
func NewDefaultRidgeOptions() *RidgeOptions {
	return &RidgeOptions{
		Lambda:       DefaultLambda,
		FitIntercept: true,
	}
}

// RidgeRegression computes the L2 regularized least squares solution from the
// normal equations, (X^T*X + lambda*I)b = X^T*y
type RidgeRegression struct {
	opt       *RidgeOptions
	coef      []float64
	intercept float64
}

// NewRidgeRegression initializes a Ridge model ready for fitting
func NewRidgeRegression(opt *RidgeOptions) (*RidgeRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &RidgeRegression{
		opt: opt,
	}, nil
}

// Fit the model according to the given training data
func (r *RidgeRegression) Fit(x, y mat.Matrix) error {
	if r.opt == nil {
		return ErrNoOptions
	}
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}
	m, n := x.Dims()

	ym, _ := y.Dims()
	if ym != m {
		return fmt.Errorf("training data has %d rows and target has %d row, %w", m, ym, ErrTargetLenMismatch)
	}

	if r.opt.FitIntercept {
		x = withIntercept(x)
		_, n = x.Dims()
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	for i := 0; i < n; i++ {
		if i == 0 && r.opt.FitIntercept {
			continue
		}
		xtx.Set(i, i, xtx.At(i, i)+r.opt.Lambda)
	}

	var xty mat.Dense
	xty.Mul(x.T(), y)

	var beta mat.Dense
	if err := beta.Solve(&xtx, &xty); err != nil {
		return fmt.Errorf("unable to solve ridge normal equations, %w", ErrSingularDesign)
	}

	c := mat.Col(nil, 0, &beta)
	if r.opt.FitIntercept {
		r.intercept = c[0]
		r.coef = c[1:]
	} else {
		r.coef = c
	}

	return nil
}

// Predict using the Ridge model
func (r *RidgeRegression) Predict(x mat.Matrix) ([]float64, error) {
	if r.opt == nil {
		return nil, ErrNoOptions
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}

	coef := r.coef
	if r.opt.FitIntercept {
		coef = append([]float64{r.intercept}, r.coef...)
		x = withIntercept(x)
	}
	return predict(x, coef)
}

// Score computes the coefficient of determination of the prediction
func (r *RidgeRegression) Score(x, y mat.Matrix) (float64, error) {
	if r.opt == nil {
		return 0.0, ErrNoOptions
	}
	if x == nil {
		return 0.0, ErrNoDesignMatrix
	}
	if y == nil {
		return 0.0, ErrNoTargetMatrix
	}

	m, _ := x.Dims()

	ym, _ := y.Dims()
	if m != ym {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	res, err := r.Predict(x)
	if err != nil {
		return 0.0, err
	}

	ySlice := mat.Col(nil, 0, y)

	score := stat.RSquaredFrom(res, ySlice, nil)
	if math.IsNaN(score) {
		score = 1.0
	}
	return score, nil
}

// Intercept returns the computed intercept if FitIntercept is set to true. Defaults to 0.0 if not set.
func (r *RidgeRegression) Intercept() float64 {
	return r.intercept
}

// Coef returns a slice of the trained coefficients in the same order of the training feature Matrix by column.
func (r *RidgeRegression) Coef() []float64 {
	c := make([]float64, len(r.coef))
	copy(c, r.coef)
	return c
}
