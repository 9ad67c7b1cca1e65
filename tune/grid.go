package tune

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/gostatslab/regresslab/models"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultResamples       = 25
	DefaultParallelization = 4
)

var (
	ErrNoLambdas      = errors.New("no lambdas provided to search with")
	ErrNoFactory      = errors.New("no model factory provided")
	ErrNoCandidateFit = errors.New("no candidate lambda produced a scoreable fit")
	ErrEmptyOutOfBag  = errors.New("all resamples have empty out-of-bag sets")
)

// ModelFactory builds a fresh model for a candidate lambda. The grid search
// fits one instance per resample, so factories must not share state between
// calls.
type ModelFactory func(lambda float64) (models.Model, error)

// GridSearchOptions represents input options to run a penalty grid search
type GridSearchOptions struct {
	// Lambdas are the candidate penalty values to score.
	Lambdas []float64

	// Resamples is the number of bootstrap resamples drawn per candidate.
	Resamples int

	// Parallelization sets how many candidates to score in parallel. More will increase
	// memory and compute usage.
	Parallelization int

	// Seed primes the bootstrap source so searches are reproducible.
	Seed uint64
}

// Validate runs basic validation on grid search options
func (g *GridSearchOptions) Validate() (*GridSearchOptions, error) {
	if g == nil {
		g = NewDefaultGridSearchOptions()
	}

	if len(g.Lambdas) == 0 {
		return nil, ErrNoLambdas
	}
	for _, lambda := range g.Lambdas {
		if lambda < 0.0 {
			return nil, models.ErrNegativeLambda
		}
	}
	if g.Resamples <= 0 {
		g.Resamples = DefaultResamples
	}
	if g.Parallelization <= 0 || g.Parallelization > len(g.Lambdas) {
		g.Parallelization = len(g.Lambdas)
	}
	return g, nil
}

// NewDefaultGridSearchOptions returns a default set of grid search options
func NewDefaultGridSearchOptions() *GridSearchOptions {
	return &GridSearchOptions{
		Lambdas:         []float64{models.DefaultLambda},
		Resamples:       DefaultResamples,
		Parallelization: DefaultParallelization,
	}
}

// CandidateScore is the resampled performance of a single lambda candidate.
type CandidateScore struct {
	Lambda    float64 `json:"lambda"`
	MeanRMSE  float64 `json:"mean_rmse"`
	Resamples int     `json:"resamples"`
}

// Result holds the selected model refit on the full training data along with
// the per candidate scores sorted by lambda.
type Result struct {
	Best       models.Model
	BestLambda float64
	Candidates []CandidateScore
}

// GridSearch scores every candidate lambda by mean out-of-bag RMSE across a
// shared set of bootstrap resamples and refits the winner on the full
// training data.
type GridSearch struct {
	opt *GridSearchOptions

	scoreMu    sync.Mutex
	bestScore  float64
	bestLambda float64
	candidates []CandidateScore
}

// NewGridSearch initializes a grid search ready for running
func NewGridSearch(opt *GridSearchOptions) (*GridSearch, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &GridSearch{
		opt:       opt,
		bestScore: math.Inf(1),
	}, nil
}

// Search runs the grid over the given training data and model factory
func (g *GridSearch) Search(x, y mat.Matrix, factory ModelFactory) (*Result, error) {
	if g.opt == nil {
		return nil, models.ErrNoOptions
	}
	if x == nil {
		return nil, models.ErrNoTrainingMatrix
	}
	if y == nil {
		return nil, models.ErrNoTargetMatrix
	}
	if factory == nil {
		return nil, ErrNoFactory
	}

	m, _ := x.Dims()
	ym, _ := y.Dims()
	if ym != m {
		return nil, fmt.Errorf("training data has %d rows and target has %d row, %w", m, ym, models.ErrTargetLenMismatch)
	}

	rng := rand.New(rand.NewPCG(g.opt.Seed, g.opt.Seed))
	resamples, err := Bootstrap(m, g.opt.Resamples, rng)
	if err != nil {
		return nil, fmt.Errorf("unable to generate bootstrap resamples, %w", err)
	}

	usable := 0
	for _, rs := range resamples {
		if len(rs.Test) > 0 {
			usable++
		}
	}
	if usable == 0 {
		return nil, ErrEmptyOutOfBag
	}

	sem := make(chan struct{}, g.opt.Parallelization)
	var wg sync.WaitGroup
	for _, lambda := range g.opt.Lambdas {
		sem <- struct{}{}
		wg.Add(1)

		go g.scoreCandidate(lambda, x, y, resamples, factory, &wg, sem)
	}
	wg.Wait()

	if math.IsInf(g.bestScore, 1) {
		return nil, ErrNoCandidateFit
	}

	best, err := factory(g.bestLambda)
	if err != nil {
		return nil, fmt.Errorf("unable to build model for selected lambda %f, %w", g.bestLambda, err)
	}
	if err := best.Fit(x, y); err != nil {
		return nil, fmt.Errorf("unable to refit selected lambda %f on full training data, %w", g.bestLambda, err)
	}

	candidates := make([]CandidateScore, len(g.candidates))
	copy(candidates, g.candidates)
	sort.Slice(
		candidates,
		func(i, j int) bool {
			return candidates[i].Lambda < candidates[j].Lambda
		},
	)

	return &Result{
		Best:       best,
		BestLambda: g.bestLambda,
		Candidates: candidates,
	}, nil
}

func (g *GridSearch) scoreCandidate(lambda float64, x, y mat.Matrix, resamples []Resample, factory ModelFactory, wg *sync.WaitGroup, sem chan struct{}) {
	defer func() {
		wg.Done()
		<-sem
	}()

	var sum float64
	var cnt int
	for _, rs := range resamples {
		if len(rs.Test) == 0 {
			continue
		}

		model, err := factory(lambda)
		if err != nil {
			slog.Error("unable to initialize candidate model", "lambda", lambda, "error", err.Error())
			return
		}

		trainX, trainY := gatherRows(x, y, rs.Train)
		if err := model.Fit(trainX, trainY); err != nil {
			slog.Error("unable to fit candidate model on resample", "lambda", lambda, "error", err.Error())
			return
		}

		testX, testY := gatherRows(x, y, rs.Test)
		predicted, err := model.Predict(testX)
		if err != nil {
			slog.Error("unable to predict out-of-bag rows", "lambda", lambda, "error", err.Error())
			return
		}

		var sqErr float64
		for i, p := range predicted {
			diff := testY.At(i, 0) - p
			sqErr += diff * diff
		}
		sum += math.Sqrt(sqErr / float64(len(predicted)))
		cnt++
	}
	if cnt == 0 {
		return
	}

	meanRMSE := sum / float64(cnt)

	g.scoreMu.Lock()
	defer g.scoreMu.Unlock()
	g.candidates = append(g.candidates, CandidateScore{
		Lambda:    lambda,
		MeanRMSE:  meanRMSE,
		Resamples: cnt,
	})
	if meanRMSE < g.bestScore {
		g.bestScore = meanRMSE
		g.bestLambda = lambda
	}
}

// gatherRows builds dense train or test matrices from the selected row
// indices, preserving duplicates for with-replacement draws.
func gatherRows(x, y mat.Matrix, idx []int) (mat.Matrix, mat.Matrix) {
	_, n := x.Dims()

	xDst := mat.NewDense(len(idx), n, nil)
	yDst := mat.NewDense(len(idx), 1, nil)
	for i, rowIdx := range idx {
		for j := 0; j < n; j++ {
			xDst.Set(i, j, x.At(rowIdx, j))
		}
		yDst.Set(i, 0, y.At(rowIdx, 0))
	}
	return xDst, yDst
}
