package analysis

import (
	"fmt"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/clinical"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/core"
)

// DensityCurve is an estimated probability density evaluated on an ordered grid.
// X and Y have equal length and Y is non-negative everywhere. Curves are
// immutable once produced; consumers interpolate, never modify.
type DensityCurve struct {
	Group clinical.GroupLabel `json:"group,omitempty"`
	X     []float64           `json:"x"`
	Y     []float64           `json:"y"`
}

// Len returns the number of grid points
func (c DensityCurve) Len() int {
	return len(c.X)
}

// Validate checks the equal-length and non-negativity invariants
func (c DensityCurve) Validate() error {
	if len(c.X) != len(c.Y) {
		return fmt.Errorf("%w: len(x)=%d len(y)=%d", core.ErrCurveMismatch, len(c.X), len(c.Y))
	}
	if len(c.X) < 2 {
		return fmt.Errorf("%w: grid has %d points", core.ErrCurveMismatch, len(c.X))
	}
	return nil
}

// Integral approximates the area under the curve by the trapezoid rule
func (c DensityCurve) Integral() float64 {
	total := 0.0
	for i := 1; i < len(c.X); i++ {
		total += 0.5 * (c.Y[i] + c.Y[i-1]) * (c.X[i] - c.X[i-1])
	}
	return total
}

// BootstrapResult captures one equality test: the observed discrepancy, the
// resampled null distribution, and the derived one-sided p-value.
type BootstrapResult struct {
	Observed float64   `json:"observed"`
	Null     []float64 `json:"null_distribution"`
	PValue   float64   `json:"p_value"`
	NBoot    int       `json:"n_boot"`
	Seed     int64     `json:"seed"`
}

// PosteriorCurve maps node counts to P(recurrence | nodes) on a reference grid
type PosteriorCurve struct {
	X []float64 `json:"x"`
	P []float64 `json:"p"`
}

// Len returns the number of grid points
func (c PosteriorCurve) Len() int {
	return len(c.X)
}

// LogisticFit holds the fitted single-covariate logistic model parameters
// together with the probability curve sampled for presentation.
type LogisticFit struct {
	Intercept  float64   `json:"intercept"`
	Slope      float64   `json:"slope"`
	Iterations int       `json:"iterations"`
	Converged  bool      `json:"converged"`
	X          []float64 `json:"x,omitempty"`
	P          []float64 `json:"p,omitempty"`
}

// RunArtifact is the complete read-only output bundle of one pipeline run,
// consumed by the report and HTTP presentation layers.
type RunArtifact struct {
	RunID     core.RunID              `json:"run_id"`
	DatasetID core.DatasetID          `json:"dataset_id"`
	Seed      int64                   `json:"seed"`
	Summary   []clinical.SummaryStats `json:"summary"`
	Priors    clinical.Priors         `json:"priors"`

	// Visual-bandwidth curves for the comparison plot
	DensityNo  DensityCurve `json:"density_no_recurrence"`
	DensityYes DensityCurve `json:"density_recurrence"`
	Difference DensityCurve `json:"difference"`

	Bootstrap BootstrapResult `json:"bootstrap"`
	Posterior PosteriorCurve  `json:"posterior"`

	// Logistic cross-check; Error is set when the fit did not converge
	Logistic      *LogisticFit `json:"logistic,omitempty"`
	LogisticError string       `json:"logistic_error,omitempty"`

	CreatedAt core.Timestamp `json:"created_at"`
}
