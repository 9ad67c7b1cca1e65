package models

// LassoOptions represents input options to run the Lasso Regression
type LassoOptions struct {
	// Lambda represents the L1 multiplier, controlling the regularization. Must be non-negative.
	// 0.0 results in converging to Ordinary Least Squares (OLS).
	Lambda float64

	// Iterations is the maximum number of times the fit loops through training all coefficients.
	Iterations int

	// Tolerance is the smallest coefficient change on each iteration to determine when to stop iterating.
	Tolerance float64

	// FitIntercept adds a constant 1.0 feature as the first column if set to true
	FitIntercept bool
}

// Validate runs basic validation on Lasso options
func (l *LassoOptions) Validate() (*LassoOptions, error) {
	if l == nil {
		l = NewDefaultLassoOptions()
	}

	if l.Lambda < 0 {
		return nil, ErrNegativeLambda
	}
	if l.Iterations < 0 {
		return nil, ErrNegativeIterations
	}
	if l.Tolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	return l, nil
}

// NewDefaultLassoOptions returns a default set of Lasso Regression options
func NewDefaultLassoOptions() *LassoOptions {
	return &LassoOptions{
		Lambda:       DefaultLambda,
		Iterations:   DefaultIterations,
		Tolerance:    DefaultTolerance,
		FitIntercept: true,
	}
}

// LassoRegression computes the pure L1 regularized regression. This is the
// elastic net coordinate descent with the mixture pinned to 1.0.
type LassoRegression struct {
	*ElasticNetRegression
}

// NewLassoRegression initializes a Lasso model ready for fitting
func NewLassoRegression(opt *LassoOptions) (*LassoRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	en, err := NewElasticNetRegression(
		&ElasticNetOptions{
			Lambda:       opt.Lambda,
			Mixture:      1.0,
			Iterations:   opt.Iterations,
			Tolerance:    opt.Tolerance,
			FitIntercept: opt.FitIntercept,
		},
	)
	if err != nil {
		return nil, err
	}
	return &LassoRegression{en}, nil
}

var _ Model = (*LassoRegression)(nil)
