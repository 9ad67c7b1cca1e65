package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newDenseFromRows(t *testing.T, rows [][]float64) *mat.Dense {
	t.Helper()
	require.NotEmpty(t, rows)

	m := len(rows)
	n := len(rows[0])
	data := make([]float64, 0, m*n)
	for _, row := range rows {
		require.Len(t, row, n)
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data)
}

func testModel(t *testing.T, model Model, x, y mat.Matrix, intercept float64, coef []float64, tol float64) {
	t.Helper()

	err := model.Fit(x, y)
	require.Nil(t, err)

	assert.InDelta(t, intercept, model.Intercept(), tol)

	c := model.Coef()
	assert.InDeltaSlice(t, coef, c, tol)

	r2, err := model.Score(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, r2, tol)
}
