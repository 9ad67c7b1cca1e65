package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// Generator produces synthetic regression data from a seeded source so that
// every draw is reproducible run to run.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator seeded with the given value. Two
// generators with the same seed produce identical sequences.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed)),
	}
}

// Uniform draws n samples uniformly from the half-open interval [lo, hi).
func (g *Generator) Uniform(n int, lo, hi float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, lo+(hi-lo)*g.rng.Float64())
	}
	return Series(y)
}

// Normal draws n samples from a Gaussian with the given mean and standard
// deviation.
func (g *Generator) Normal(n int, mean, stddev float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, mean+g.rng.NormFloat64()*stddev)
	}
	return Series(y)
}

// Chain builds a sequence of predictors that grow more collinear with depth.
// Each level is decay times the previous level plus Gaussian noise of the
// corresponding scale. The base column is not included in the result, so the
// output has one column per noise scale.
func (g *Generator) Chain(base []float64, decay float64, noiseScales []float64) []Series {
	cols := make([]Series, 0, len(noiseScales))
	prev := Series(base)
	for _, scale := range noiseScales {
		next := prev.Copy().Scale(decay).Add(g.Normal(len(base), 0.0, scale))
		cols = append(cols, next)
		prev = next
	}
	return cols
}

// Series is a single column of observations with chainable helpers for
// composing synthetic data.
type Series []float64

// Linear returns slope*x + intercept for a predictor column. This is the
// noise-free target of the study's ground truth.
func Linear(x []float64, slope, intercept float64) Series {
	y := make([]float64, 0, len(x))
	for i := 0; i < len(x); i++ {
		y = append(y, slope*x[i]+intercept)
	}
	return Series(y)
}

// Add accumulates src into the receiver in place.
func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

// Scale multiplies the receiver by a constant in place.
func (s Series) Scale(c float64) Series {
	floats.Scale(c, s)
	return s
}

// Copy returns a new Series with the same values.
func (s Series) Copy() Series {
	dst := make([]float64, len(s))
	copy(dst, s)
	return Series(dst)
}
