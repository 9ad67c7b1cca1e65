package models

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// withIntercept stacks a constant 1.0 feature as the first column of the
// design matrix.
func withIntercept(x mat.Matrix) mat.Matrix {
	m, _ := x.Dims()
	ones := make([]float64, m)
	floats.AddConst(1.0, ones)
	onesMx := mat.NewDense(1, m, ones)
	xT := x.T()

	var xWithOnes mat.Dense
	xWithOnes.Stack(onesMx, xT)
	return xWithOnes.T()
}

// predict multiplies the stored coefficients against the design matrix
// producing one prediction per row.
func predict(x mat.Matrix, coef []float64) ([]float64, error) {
	n := len(coef)

	_, xn := x.Dims()
	if xn != n {
		return nil, errFeatureLen(xn, n)
	}

	xT := x.T()
	coefMx := mat.NewDense(1, n, coef)

	var res mat.Dense
	res.Mul(coefMx, xT)
	return res.RawRowView(0), nil
}
