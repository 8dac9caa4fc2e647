package density

import (
	"sort"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/analysis"
)

// Difference computes the pointwise density difference other - reference on
// the reference curve's grid. The other curve is linearly interpolated onto
// that grid; outside its original domain its boundary value is held constant
// rather than extrapolated. The sign convention is the caller's to document;
// the pipeline calls Difference(no, yes), giving recurrence minus
// no-recurrence.
func Difference(reference, other analysis.DensityCurve) (analysis.DensityCurve, error) {
	if err := reference.Validate(); err != nil {
		return analysis.DensityCurve{}, err
	}
	if err := other.Validate(); err != nil {
		return analysis.DensityCurve{}, err
	}

	out := analysis.DensityCurve{
		X: append([]float64(nil), reference.X...),
		Y: make([]float64, reference.Len()),
	}
	for i, x := range reference.X {
		out.Y[i] = interpolate(other, x) - reference.Y[i]
	}
	return out, nil
}

// interpolate evaluates a curve at x by linear interpolation between grid
// neighbors, clamping to the boundary values outside the curve's domain.
func interpolate(c analysis.DensityCurve, x float64) float64 {
	n := c.Len()
	if x <= c.X[0] {
		return c.Y[0]
	}
	if x >= c.X[n-1] {
		return c.Y[n-1]
	}
	// First index with X[i] >= x; the invariant above guarantees 0 < i < n.
	i := sort.SearchFloat64s(c.X, x)
	if c.X[i] == x {
		return c.Y[i]
	}
	x0, x1 := c.X[i-1], c.X[i]
	y0, y1 := c.Y[i-1], c.Y[i]
	t := (x - x0) / (x1 - x0)
	return y0 + t*(y1-y0)
}
