// Package regression fits the single-covariate logistic model used as an
// independent cross-check against the Bayesian posterior curve.
package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/core"
)

const (
	maxIterations = 50
	tolerance     = 1e-10

	// minWeight bounds the IRLS weights away from zero. Weights collapse when
	// every fitted probability saturates at 0 or 1, which is the numerical
	// signature of perfect separation.
	minWeight = 1e-10
)

// Model is a fitted intercept+slope binomial logistic model
type Model struct {
	Intercept  float64
	Slope      float64
	Iterations int
}

// FitLogistic fits P(label=1 | x) = logistic(b0 + b1*x) by iteratively
// reweighted least squares. On non-convergence it returns both the last
// iterate and ErrNonConvergence, so the caller can report a partial result
// while surfacing the failure.
func FitLogistic(xs []float64, labels []float64) (*Model, error) {
	if len(xs) != len(labels) {
		return nil, fmt.Errorf("length mismatch: %d observations, %d labels", len(xs), len(labels))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: %d observations", core.ErrInsufficientData, len(xs))
	}
	ones, zeros := 0, 0
	for i, y := range labels {
		switch y {
		case 0:
			zeros++
		case 1:
			ones++
		default:
			return nil, fmt.Errorf("%w: label[%d]=%g", core.ErrNonBinaryLabel, i, y)
		}
	}
	if ones == 0 || zeros == 0 {
		return nil, fmt.Errorf("%w: all labels identical, model is unidentifiable", core.ErrNonConvergence)
	}

	n := len(xs)
	m := &Model{}
	// Intercept-only start: log odds of the base rate.
	m.Intercept = math.Log(float64(ones) / float64(zeros))

	for iter := 1; iter <= maxIterations; iter++ {
		m.Iterations = iter

		// Accumulate the 2x2 normal equations X'WX and X'(y - p) directly;
		// with one covariate the full design matrix is never materialized.
		var s00, s01, s11, g0, g1 float64
		saturated := true
		for i := 0; i < n; i++ {
			p := m.Predict(xs[i])
			w := p * (1 - p)
			if w > minWeight {
				saturated = false
			}
			s00 += w
			s01 += w * xs[i]
			s11 += w * xs[i] * xs[i]
			r := labels[i] - p
			g0 += r
			g1 += r * xs[i]
		}
		if saturated {
			return m, fmt.Errorf("%w: fitted probabilities saturated (perfect separation)", core.ErrNonConvergence)
		}

		xtwx := mat.NewDense(2, 2, []float64{s00, s01, s01, s11})
		grad := mat.NewVecDense(2, []float64{g0, g1})

		var delta mat.VecDense
		if err := delta.SolveVec(xtwx, grad); err != nil {
			return m, fmt.Errorf("%w: singular weighted design: %v", core.ErrNonConvergence, err)
		}

		d0, d1 := delta.AtVec(0), delta.AtVec(1)
		if math.IsNaN(d0) || math.IsNaN(d1) || math.IsInf(d0, 0) || math.IsInf(d1, 0) {
			return m, fmt.Errorf("%w: diverging Newton step", core.ErrNonConvergence)
		}
		m.Intercept += d0
		m.Slope += d1

		if math.Abs(d0) < tolerance && math.Abs(d1) < tolerance {
			return m, nil
		}
	}
	return m, fmt.Errorf("%w: no convergence after %d iterations", core.ErrNonConvergence, maxIterations)
}

// Predict returns the fitted probability at x
func (m *Model) Predict(x float64) float64 {
	return logistic(m.Intercept + m.Slope*x)
}

// PredictCurve evaluates the fitted probability on each grid point
func (m *Model) PredictCurve(grid []float64) []float64 {
	out := make([]float64, len(grid))
	for i, x := range grid {
		out[i] = m.Predict(x)
	}
	return out
}

func logistic(z float64) float64 {
	// Split by sign to avoid overflow in exp for large |z|.
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
