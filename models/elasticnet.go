package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultLambda     = 1.0
	DefaultMixture    = 0.5
	DefaultIterations = 1000
	DefaultTolerance  = 1e-4
)

// ElasticNetOptions represents input options to run the Elastic Net Regression
type ElasticNetOptions struct {
	// WarmStartBeta is used to prime the coordinate descent to reduce the training time if a previous
	// fit has been performed.
	WarmStartBeta []float64

	// Lambda represents the penalty multiplier, controlling the regularization. Must be non-negative.
	// 0.0 results in converging to Ordinary Least Squares (OLS).
	Lambda float64

	// Mixture blends the L1 and L2 penalties. 1.0 is a pure lasso and 0.0 is a pure ridge fit by
	// coordinate descent. Must be between 0.0 and 1.0.
	Mixture float64

	// Iterations is the maximum number of times the fit loops through training all coefficients.
	Iterations int

	// Tolerance is the smallest coefficient change on each iteration to determine when to stop iterating.
	Tolerance float64

	// FitIntercept adds a constant 1.0 feature as the first column if set to true. The intercept
	// column is not penalized.
	FitIntercept bool
}

// Validate runs basic validation on Elastic Net options
func (e *ElasticNetOptions) Validate() (*ElasticNetOptions, error) {
	if e == nil {
		e = NewDefaultElasticNetOptions()
	}

	if e.Lambda < 0 {
		return nil, ErrNegativeLambda
	}
	if e.Mixture < 0 || e.Mixture > 1 {
		return nil, ErrInvalidMixture
	}
	if e.Iterations < 0 {
		return nil, ErrNegativeIterations
	}
	if e.Tolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	return e, nil
}

// NewDefaultElasticNetOptions returns a default set of Elastic Net Regression options
func NewDefaultElasticNetOptions() *ElasticNetOptions {
	return &ElasticNetOptions{
		Lambda:        DefaultLambda,
		Mixture:       DefaultMixture,
		Iterations:    DefaultIterations,
		Tolerance:     DefaultTolerance,
		WarmStartBeta: nil,
		FitIntercept:  true,
	}
}

// ElasticNetRegression computes the elastic net regression using coordinate
// descent with soft thresholding. lambda = 0 converges to OLS.
type ElasticNetRegression struct {
	opt *ElasticNetOptions

	coef      []float64
	intercept float64
}

// NewElasticNetRegression initializes an Elastic Net model ready for fitting
func NewElasticNetRegression(opt *ElasticNetOptions) (*ElasticNetRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &ElasticNetRegression{
		opt: opt,
	}, nil
}

// Fit the model according to the given training data
func (e *ElasticNetRegression) Fit(x, y mat.Matrix) error {
	x, y, err := e.fitValidate(x, y)
	if err != nil {
		return err
	}
	m, n := x.Dims()

	// tracks current betas
	beta := make([]float64, n)
	if e.opt.WarmStartBeta != nil {
		copy(beta, e.opt.WarmStartBeta)
	}

	// precompute per feature columns and dot products
	xcols := make([][]float64, n)
	xdot := make([]float64, n)
	for j := 0; j < n; j++ {
		xj := mat.Col(nil, j, x)
		xcols[j] = xj
		xdot[j] = floats.Dot(xj, xj)
	}
	yArr := mat.Col(nil, 0, y)

	l1 := e.opt.Lambda * e.opt.Mixture
	l2 := e.opt.Lambda * (1.0 - e.opt.Mixture)

	// tracks the per coordinate residual
	residual := make([]float64, m)

	// tracks the current beta * x by adding the deltas on each beta iteration
	betaX := make([]float64, m)

	// tracks the delta of the beta * x of each iteration by computing the next beta
	// multiplied by the feature observations of that beta. will be added to betaX on
	// the next beta iteration
	betaXDelta := make([]float64, m)

	for i := 0; i < e.opt.Iterations; i++ {
		maxCoef := 0.0
		maxUpdate := 0.0
		betaDiff := 0.0

		// loop through all features and minimize loss function
		for j := 0; j < n; j++ {
			betaCurr := beta[j]
			if i != 0 && betaCurr == 0 {
				continue
			}

			floats.Add(betaX, betaXDelta)
			floats.SubTo(residual, yArr, betaX)

			obsCol := xcols[j]
			num := floats.Dot(obsCol, residual) + betaCurr*xdot[j]

			var betaNext float64
			if j == 0 && e.opt.FitIntercept {
				betaNext = num / xdot[j]
			} else {
				betaNext = SoftThreshold(num, l1) / (xdot[j] + l2)
			}

			maxCoef = math.Max(maxCoef, math.Abs(betaNext))
			maxUpdate = math.Max(maxUpdate, math.Abs(betaNext-betaCurr))
			betaDiff = betaNext - betaCurr
			floats.ScaleTo(betaXDelta, betaDiff, obsCol)
			beta[j] = betaNext
		}

		// break early if we've achieved the desired tolerance
		if maxUpdate < e.opt.Tolerance*maxCoef {
			break
		}
	}

	if e.opt.FitIntercept {
		e.intercept = beta[0]
		e.coef = beta[1:]
		return nil
	}
	e.coef = beta
	return nil
}

func (e *ElasticNetRegression) fitValidate(x, y mat.Matrix) (mat.Matrix, mat.Matrix, error) {
	if e.opt == nil {
		return nil, nil, ErrNoOptions
	}
	if x == nil {
		return nil, nil, ErrNoTrainingMatrix
	}
	if y == nil {
		return nil, nil, ErrNoTargetMatrix
	}

	m, n := x.Dims()

	ym, _ := y.Dims()
	if ym != m {
		return nil, nil, fmt.Errorf("training data has %d rows and target has %d row, %w", m, ym, ErrTargetLenMismatch)
	}

	if e.opt.FitIntercept {
		x = withIntercept(x)
		_, n = x.Dims()
	}

	if e.opt.WarmStartBeta != nil && len(e.opt.WarmStartBeta) != n {
		return nil, nil, fmt.Errorf("warm start beta has %d features instead of %d, %w", len(e.opt.WarmStartBeta), n, ErrWarmStartBetaSize)
	}
	return x, y, nil
}

// Predict using the Elastic Net model
func (e *ElasticNetRegression) Predict(x mat.Matrix) ([]float64, error) {
	if e.opt == nil {
		return nil, ErrNoOptions
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}

	coef := e.coef
	if e.opt.FitIntercept {
		coef = append([]float64{e.intercept}, e.coef...)
		x = withIntercept(x)
	}
	return predict(x, coef)
}

// Score computes the coefficient of determination of the prediction
func (e *ElasticNetRegression) Score(x, y mat.Matrix) (float64, error) {
	if e.opt == nil {
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

	res, err := e.Predict(x)
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
func (e *ElasticNetRegression) Intercept() float64 {
	return e.intercept
}

// Coef returns a slice of the trained coefficients in the same order of the training feature Matrix by column.
func (e *ElasticNetRegression) Coef() []float64 {
	c := make([]float64, len(e.coef))
	copy(c, e.coef)
	return c
}

// SoftThreshold returns 0.0 if the absolute value is less than or equal to the gamma input
func SoftThreshold(x, gamma float64) float64 {
	res := math.Max(0, math.Abs(x)-gamma)
	if math.Signbit(x) {
		return -res
	}
	return res
}
