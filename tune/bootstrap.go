// Package tune selects regularization penalties by grid search over
// bootstrap resamples, scoring candidates by out-of-bag RMSE.
package tune

import (
	"errors"
	"math/rand/v2"
)

var (
	ErrNoSamples   = errors.New("no samples to resample")
	ErrNoResamples = errors.New("resample count must be positive")
)

// Resample holds the row indices of a single bootstrap draw. Train contains n
// indices drawn with replacement and Test the out-of-bag indices that were
// never drawn.
type Resample struct {
	Train []int
	Test  []int
}

// Bootstrap generates times resamples of n rows. The out-of-bag set of a
// resample may be empty for very small n; callers are expected to skip those.
func Bootstrap(n, times int, rng *rand.Rand) ([]Resample, error) {
	if n <= 0 {
		return nil, ErrNoSamples
	}
	if times <= 0 {
		return nil, ErrNoResamples
	}

	resamples := make([]Resample, 0, times)
	for i := 0; i < times; i++ {
		train := make([]int, 0, n)
		drawn := make([]bool, n)
		for j := 0; j < n; j++ {
			idx := rng.IntN(n)
			train = append(train, idx)
			drawn[idx] = true
		}

		var test []int
		for idx, d := range drawn {
			if !d {
				test = append(test, idx)
			}
		}
		resamples = append(resamples, Resample{Train: train, Test: test})
	}
	return resamples, nil
}
