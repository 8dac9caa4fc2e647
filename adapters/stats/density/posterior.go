package density

import (
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/analysis"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/clinical"
)

// Posterior converts the two class-conditional densities into
// P(recurrence | nodes) via Bayes' rule, evaluated on the no-recurrence
// curve's grid (the reference is the first argument, by the pipeline's
// convention). Where both densities are zero there is no evidence either way
// and the posterior is defined as 0 rather than dividing by zero.
func Posterior(curveNo, curveYes analysis.DensityCurve, priors clinical.Priors) (analysis.PosteriorCurve, error) {
	if err := curveNo.Validate(); err != nil {
		return analysis.PosteriorCurve{}, err
	}
	if err := curveYes.Validate(); err != nil {
		return analysis.PosteriorCurve{}, err
	}
	if err := priors.Validate(); err != nil {
		return analysis.PosteriorCurve{}, err
	}

	out := analysis.PosteriorCurve{
		X: append([]float64(nil), curveNo.X...),
		P: make([]float64, curveNo.Len()),
	}
	for i, x := range curveNo.X {
		fNo := curveNo.Y[i]
		fYes := interpolate(curveYes, x)

		num := priors.Yes * fYes
		den := num + priors.No*fNo
		if den == 0 {
			out.P[i] = 0
			continue
		}
		out.P[i] = clampUnit(num / den)
	}
	return out, nil
}

// clampUnit guards against floating-point overshoot past the probability range
func clampUnit(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
