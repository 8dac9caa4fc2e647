// Package density implements the non-parametric core of the recurrence
// analysis: kernel density estimation, density differencing, the bootstrap
// equality test, and the Bayes-rule posterior.
package density

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/analysis"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/clinical"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/core"
)

// gridPadBandwidths extends the evaluation grid past [min, max] so kernel
// mass near the sample edges is not truncated.
const gridPadBandwidths = 3.0

// Estimator produces Gaussian kernel density estimates on a fixed-size grid
type Estimator struct {
	gridSize int
}

// NewEstimator creates a KDE estimator with the given grid resolution
func NewEstimator(gridSize int) *Estimator {
	if gridSize < 2 {
		gridSize = 2
	}
	return &Estimator{gridSize: gridSize}
}

// GridSize returns the number of grid points per curve
func (e *Estimator) GridSize() int {
	return e.gridSize
}

// Estimate computes the kernel density estimate of a sample. The baseline
// bandwidth comes from Silverman's rule of thumb and is scaled by
// bandwidthAdjust (>1 smooths more, <1 tracks local structure more tightly).
// The result is deterministic for a fixed (sample, adjust, grid size).
func (e *Estimator) Estimate(sample clinical.Sample, bandwidthAdjust float64) (analysis.DensityCurve, error) {
	if err := sample.Validate(); err != nil {
		return analysis.DensityCurve{}, err
	}
	if bandwidthAdjust <= 0 {
		return analysis.DensityCurve{}, fmt.Errorf("bandwidth adjust must be positive, got %g", bandwidthAdjust)
	}

	bw, err := SilvermanBandwidth(sample.Values)
	if err != nil {
		return analysis.DensityCurve{}, err
	}
	bw *= bandwidthAdjust

	lo, hi := minMax(sample.Values)
	grid := makeGrid(lo-gridPadBandwidths*bw, hi+gridPadBandwidths*bw, e.gridSize)

	curve := analysis.DensityCurve{
		Group: sample.Group,
		X:     grid,
		Y:     make([]float64, len(grid)),
	}
	evaluateKernels(sample.Values, bw, grid, curve.Y)
	return curve, nil
}

// EstimateOnGrid evaluates a sample's density on a caller-supplied grid with a
// caller-supplied bandwidth. The bootstrap hot path uses this so every
// iteration shares one pooled grid and bandwidth instead of re-deriving them.
func (e *Estimator) EstimateOnGrid(values []float64, bandwidth float64, grid, dst []float64) error {
	if len(values) < 2 {
		return fmt.Errorf("%w: %d observations", core.ErrInsufficientData, len(values))
	}
	if bandwidth <= 0 {
		return core.ErrZeroBandwidth
	}
	if len(dst) != len(grid) {
		return fmt.Errorf("destination length %d does not match grid length %d", len(dst), len(grid))
	}
	evaluateKernels(values, bandwidth, grid, dst)
	return nil
}

// SilvermanBandwidth computes the rule-of-thumb baseline bandwidth
// 0.9 * min(sd, IQR/1.349) * n^(-1/5). When the IQR degenerates to zero the
// standard deviation alone is used; a sample with zero spread has no usable
// bandwidth and is rejected.
func SilvermanBandwidth(values []float64) (float64, error) {
	n := float64(len(values))
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sd := stat.StdDev(sorted, nil)
	q75 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	q25 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	iqr := (q75 - q25) / 1.349

	spread := sd
	if iqr > 0 && iqr < sd {
		spread = iqr
	}
	if spread <= 0 {
		return 0, core.ErrZeroBandwidth
	}
	return 0.9 * spread * math.Pow(n, -0.2), nil
}

// evaluateKernels sums a unit Gaussian kernel centered at each observation
func evaluateKernels(values []float64, bandwidth float64, grid, dst []float64) {
	norm := 1.0 / (float64(len(values)) * bandwidth)
	for i, x := range grid {
		sum := 0.0
		for _, v := range values {
			sum += distuv.UnitNormal.Prob((x - v) / bandwidth)
		}
		dst[i] = sum * norm
	}
}

func makeGrid(lo, hi float64, size int) []float64 {
	grid := make([]float64, size)
	step := (hi - lo) / float64(size-1)
	for i := range grid {
		grid[i] = lo + float64(i)*step
	}
	return grid
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
