package regresslab

import (
	"errors"

	"github.com/gostatslab/regresslab/models"
	"github.com/gostatslab/regresslab/tune"
)

var (
	ErrInvalidInstanceCount = errors.New("number of instances must be at least 2")
	ErrInvalidTrainSize     = errors.New("train size must be between 1 and one less than the number of instances")
	ErrInvalidPredictorSpan = errors.New("predictor minimum must be less than predictor maximum")
	ErrNegativeNoiseScale   = errors.New("negative noise scale")
	ErrNoChainScales        = errors.New("no chain noise scales provided")
)

// Options configures the synthetic ground truth, the predictor chain, and the
// model families of a study.
type Options struct {
	// Seed primes every synthetic draw and the bootstrap resampling so runs
	// are reproducible.
	Seed uint64 `json:"seed"`

	// NumInstances is the total number of generated observations and
	// NumTrain the size of the leading training split.
	NumInstances int `json:"num_instances"`
	NumTrain     int `json:"num_train"`

	// TrueSlope and TrueIntercept define the noise free target of the base
	// predictor. NoiseScale is the standard deviation of the Gaussian noise
	// added on top.
	TrueSlope     float64 `json:"true_slope"`
	TrueIntercept float64 `json:"true_intercept"`
	NoiseScale    float64 `json:"noise_scale"`

	// PredictorMin and PredictorMax bound the uniform draw of the base
	// predictor.
	PredictorMin float64 `json:"predictor_min"`
	PredictorMax float64 `json:"predictor_max"`

	// ChainDecay and ChainNoiseScales define the correlated predictor chain.
	// Each level is ChainDecay times the previous level plus Gaussian noise,
	// one level per scale.
	ChainDecay       float64   `json:"chain_decay"`
	ChainNoiseScales []float64 `json:"chain_noise_scales"`

	// RidgeLambda and LassoLambda are the fixed penalties of the
	// single-model ridge and lasso fits.
	RidgeLambda float64 `json:"ridge_lambda"`
	LassoLambda float64 `json:"lasso_lambda"`

	// CVLambdas is the penalty grid searched by the cross validated ridge
	// and lasso fits with CVResamples bootstrap resamples per candidate.
	CVLambdas   []float64 `json:"cv_lambdas"`
	CVResamples int       `json:"cv_resamples"`

	// Parallelization sets how many grid candidates to score in parallel.
	Parallelization int `json:"parallelization"`
}

// NewDefaultOptions returns the reference scenario: 200 draws with a training
// split of 20, a ground truth of y = -3x + 1 with unit noise, and a four
// level predictor chain.
func NewDefaultOptions() *Options {
	return &Options{
		Seed:             1,
		NumInstances:     200,
		NumTrain:         20,
		TrueSlope:        -3.0,
		TrueIntercept:    1.0,
		NoiseScale:       1.0,
		PredictorMin:     -5.0,
		PredictorMax:     5.0,
		ChainDecay:       0.5,
		ChainNoiseScales: []float64{0.5, 0.2, 0.05, 0.01},
		RidgeLambda:      1.0,
		LassoLambda:      1.0,
		CVLambdas:        []float64{0.01, 0.1, 1.0, 10.0, 100.0},
		CVResamples:      tune.DefaultResamples,
		Parallelization:  tune.DefaultParallelization,
	}
}

// Validate runs basic validation on study options
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}

	if o.NumInstances < 2 {
		return nil, ErrInvalidInstanceCount
	}
	if o.NumTrain <= 0 || o.NumTrain >= o.NumInstances {
		return nil, ErrInvalidTrainSize
	}
	if o.PredictorMin >= o.PredictorMax {
		return nil, ErrInvalidPredictorSpan
	}
	if o.NoiseScale < 0 {
		return nil, ErrNegativeNoiseScale
	}
	if len(o.ChainNoiseScales) == 0 {
		return nil, ErrNoChainScales
	}
	for _, scale := range o.ChainNoiseScales {
		if scale < 0 {
			return nil, ErrNegativeNoiseScale
		}
	}
	if o.RidgeLambda < 0 || o.LassoLambda < 0 {
		return nil, models.ErrNegativeLambda
	}
	for _, lambda := range o.CVLambdas {
		if lambda < 0 {
			return nil, models.ErrNegativeLambda
		}
	}
	if o.CVResamples <= 0 {
		o.CVResamples = tune.DefaultResamples
	}
	if o.Parallelization <= 0 {
		o.Parallelization = tune.DefaultParallelization
	}
	return o, nil
}
