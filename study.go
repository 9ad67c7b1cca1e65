// Package regresslab compares ordinary and regularized linear regression
// models on synthetic data with a known ground truth. A study generates a
// base predictor with a linear target, chains increasingly collinear
// predictors off of it, and fits OLS models over growing predictor subsets
// along with fixed penalty and cross validated ridge and lasso models,
// accumulating train and test RMSE for side by side comparison.
package regresslab

import (
	"errors"
	"fmt"
	"math"

	"github.com/gostatslab/regresslab/dataset"
	"github.com/gostatslab/regresslab/models"
	"github.com/gostatslab/regresslab/stats"
	"github.com/gostatslab/regresslab/tune"
	"gonum.org/v1/gonum/mat"
)

var ErrNotRun = errors.New("study has not been run")

// Study fits the model comparison over a generated dataset and accumulates
// one evaluation record per model configuration.
type Study struct {
	opt *Options

	data  *dataset.Dataset
	train *dataset.Dataset
	test  *dataset.Dataset

	baseModel  models.Model
	comparison *Comparison
}

// New creates a new instance of a Study using the provided options. If no
// options are provided a default is used.
func New(opt *Options) (*Study, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Study{
		opt: opt,
	}, nil
}

// Run generates the synthetic dataset, splits it, and fits every model
// configuration of the comparison. Each call regenerates the data and starts
// a fresh comparison table.
func (s *Study) Run() error {
	if err := s.generate(); err != nil {
		return fmt.Errorf("unable to generate study data, %w", err)
	}

	s.comparison = NewComparison()

	if err := s.runOLSFamily(); err != nil {
		return err
	}
	if err := s.runRidge(); err != nil {
		return err
	}
	if err := s.runLasso(); err != nil {
		return err
	}
	if err := s.runRidgeCV(); err != nil {
		return err
	}
	return s.runLassoCV()
}

func (s *Study) generate() error {
	g := dataset.NewGenerator(s.opt.Seed)

	n := s.opt.NumInstances
	base := g.Uniform(n, s.opt.PredictorMin, s.opt.PredictorMax)
	y := dataset.Linear(base, s.opt.TrueSlope, s.opt.TrueIntercept).
		Add(g.Normal(n, 0.0, s.opt.NoiseScale))
	chain := g.Chain(base, s.opt.ChainDecay, s.opt.ChainNoiseScales)

	labels := make([]string, 0, len(chain)+1)
	cols := make([][]float64, 0, len(chain)+1)
	labels = append(labels, "x1")
	cols = append(cols, base)
	for i, col := range chain {
		labels = append(labels, fmt.Sprintf("x%d", i+2))
		cols = append(cols, col)
	}

	data, err := dataset.New(labels, cols, y)
	if err != nil {
		return err
	}

	train, test, err := data.Split(s.opt.NumTrain)
	if err != nil {
		return err
	}

	s.data = data
	s.train = train
	s.test = test
	return nil
}

func (s *Study) runOLSFamily() error {
	labels := s.data.Labels()
	for k := 1; k <= len(labels); k++ {
		model, err := models.NewOLSRegression(nil)
		if err != nil {
			return err
		}

		name := fmt.Sprintf("ols_%d", k)
		if err := s.fitAndEvaluate(name, 0.0, model, labels[:k]); err != nil {
			return fmt.Errorf("unable to evaluate %s, %w", name, err)
		}

		if k == 1 {
			s.baseModel = model
		}
	}
	return nil
}

func (s *Study) runRidge() error {
	model, err := models.NewRidgeRegression(
		&models.RidgeOptions{
			Lambda:       s.opt.RidgeLambda,
			FitIntercept: true,
		},
	)
	if err != nil {
		return err
	}
	if err := s.fitAndEvaluate("ridge", s.opt.RidgeLambda, model, s.data.Labels()); err != nil {
		return fmt.Errorf("unable to evaluate ridge, %w", err)
	}
	return nil
}

func (s *Study) runLasso() error {
	model, err := models.NewLassoRegression(
		&models.LassoOptions{
			Lambda:       s.opt.LassoLambda,
			Iterations:   models.DefaultIterations,
			Tolerance:    models.DefaultTolerance,
			FitIntercept: true,
		},
	)
	if err != nil {
		return err
	}
	if err := s.fitAndEvaluate("lasso", s.opt.LassoLambda, model, s.data.Labels()); err != nil {
		return fmt.Errorf("unable to evaluate lasso, %w", err)
	}
	return nil
}

func (s *Study) runRidgeCV() error {
	factory := func(lambda float64) (models.Model, error) {
		return models.NewRidgeRegression(
			&models.RidgeOptions{
				Lambda:       lambda,
				FitIntercept: true,
			},
		)
	}
	return s.runCV("ridge_cv", factory)
}

func (s *Study) runLassoCV() error {
	factory := func(lambda float64) (models.Model, error) {
		return models.NewLassoRegression(
			&models.LassoOptions{
				Lambda:       lambda,
				Iterations:   models.DefaultIterations,
				Tolerance:    models.DefaultTolerance,
				FitIntercept: true,
			},
		)
	}
	return s.runCV("lasso_cv", factory)
}

func (s *Study) runCV(name string, factory tune.ModelFactory) error {
	gs, err := tune.NewGridSearch(
		&tune.GridSearchOptions{
			Lambdas:         s.opt.CVLambdas,
			Resamples:       s.opt.CVResamples,
			Parallelization: s.opt.Parallelization,
			Seed:            s.opt.Seed,
		},
	)
	if err != nil {
		return err
	}

	res, err := gs.Search(s.train.FeatureMatrix(), s.train.TargetMatrix(), factory)
	if err != nil {
		return fmt.Errorf("unable to run penalty search for %s, %w", name, err)
	}

	rec, err := s.evaluate(name, res.BestLambda, res.Best, s.data.Labels())
	if err != nil {
		return fmt.Errorf("unable to evaluate %s, %w", name, err)
	}
	s.comparison.Add(rec)
	return nil
}

// fitAndEvaluate fits the model on the training split restricted to the
// given predictor labels and appends the resulting record.
func (s *Study) fitAndEvaluate(name string, lambda float64, model models.Model, labels []string) error {
	train, err := s.train.Select(labels...)
	if err != nil {
		return err
	}
	if err := model.Fit(train.FeatureMatrix(), train.TargetMatrix()); err != nil {
		return err
	}

	rec, err := s.evaluate(name, lambda, model, labels)
	if err != nil {
		return err
	}
	s.comparison.Add(rec)
	return nil
}

// evaluate scores an already fitted model on both splits.
func (s *Study) evaluate(name string, lambda float64, model models.Model, labels []string) (EvaluationRecord, error) {
	train, err := s.train.Select(labels...)
	if err != nil {
		return EvaluationRecord{}, err
	}
	test, err := s.test.Select(labels...)
	if err != nil {
		return EvaluationRecord{}, err
	}

	trainPred, err := model.Predict(train.FeatureMatrix())
	if err != nil {
		return EvaluationRecord{}, err
	}
	trainRMSE, err := RMSE(trainPred, train.Target())
	if err != nil {
		return EvaluationRecord{}, err
	}

	testPred, err := model.Predict(test.FeatureMatrix())
	if err != nil {
		return EvaluationRecord{}, err
	}
	testRMSE, err := RMSE(testPred, test.Target())
	if err != nil {
		return EvaluationRecord{}, err
	}

	var sumAbs float64
	for _, c := range model.Coef() {
		sumAbs += math.Abs(c)
	}

	return EvaluationRecord{
		Name:          name,
		ModelEq:       modelEq(model.Intercept(), model.Coef(), labels),
		Lambda:        lambda,
		TrainRMSE:     trainRMSE,
		TestRMSE:      testRMSE,
		SumAbsWeights: sumAbs,
	}, nil
}

// modelEq returns a string representation of a fitted model represented as
// y ~ b + m1x1 + m2x2 ...
func modelEq(intercept float64, coef []float64, labels []string) string {
	eq := fmt.Sprintf("y ~ %.2f", intercept)
	for i := 0; i < len(coef); i++ {
		eq += fmt.Sprintf("%+.2f*%s", coef[i], labels[i])
	}
	return eq
}

// Comparison returns the accumulated comparison table.
func (s *Study) Comparison() (*Comparison, error) {
	if s.comparison == nil {
		return nil, ErrNotRun
	}
	return s.comparison, nil
}

// BaselineModel returns the fitted single predictor OLS model.
func (s *Study) BaselineModel() (models.Model, error) {
	if s.baseModel == nil {
		return nil, ErrNotRun
	}
	return s.baseModel, nil
}

// Data returns the full generated dataset.
func (s *Study) Data() (*dataset.Dataset, error) {
	if s.data == nil {
		return nil, ErrNotRun
	}
	return s.data.Copy(), nil
}

// TrainingData returns the training split of the generated dataset.
func (s *Study) TrainingData() (*dataset.Dataset, error) {
	if s.train == nil {
		return nil, ErrNotRun
	}
	return s.train.Copy(), nil
}

// VIF returns the variance inflation factor of every generated predictor,
// quantifying how collinear the chain is.
func (s *Study) VIF() (map[string]float64, error) {
	labels, cols, err := s.predictorColumns()
	if err != nil {
		return nil, err
	}
	return stats.VarianceInflationFactor(labels, cols)
}

// PredictorCorrelations returns the pairwise correlation matrix of the
// generated predictors in label order.
func (s *Study) PredictorCorrelations() (*mat.SymDense, error) {
	_, cols, err := s.predictorColumns()
	if err != nil {
		return nil, err
	}
	return stats.CorrelationMatrix(cols)
}

func (s *Study) predictorColumns() ([]string, [][]float64, error) {
	if s.data == nil {
		return nil, nil, ErrNotRun
	}
	labels := s.data.Labels()
	cols := make([][]float64, 0, len(labels))
	for _, label := range labels {
		col, err := s.data.Column(label)
		if err != nil {
			return nil, nil, err
		}
		cols = append(cols, col)
	}
	return labels, cols, nil
}

// TestData returns the test split of the generated dataset.
func (s *Study) TestData() (*dataset.Dataset, error) {
	if s.test == nil {
		return nil, ErrNotRun
	}
	return s.test.Copy(), nil
}
