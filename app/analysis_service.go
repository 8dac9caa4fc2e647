package app

import (
	"context"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/adapters/stats/density"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/adapters/stats/regression"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/analysis"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/clinical"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/core"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/internal"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/internal/config"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/internal/errors"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/internal/profiling"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/ports"
)

// AnalysisService runs the full recurrence density pipeline over one cleaned
// dataset and assembles the read-only run artifact. Every component receives
// its inputs explicitly; nothing reads ambient dataset state.
type AnalysisService struct {
	cfg    config.AnalysisConfig
	est    *density.Estimator
	tester *density.EqualityTester
	logger *internal.Logger
}

// NewAnalysisService wires the pipeline components from configuration
func NewAnalysisService(cfg config.AnalysisConfig, rng ports.RNGPort, logger *internal.Logger) *AnalysisService {
	est := density.NewEstimator(cfg.GridSize)
	return &AnalysisService{
		cfg:    cfg,
		est:    est,
		tester: density.NewEqualityTester(est, cfg.ClassifyAdjust, cfg.Workers, rng),
		logger: logger,
	}
}

// Run executes one pipeline pass: summaries, visual-bandwidth KDE comparison,
// difference curve, bootstrap equality test, Bayesian posterior, and the
// logistic cross-check. Insufficient data in either group aborts before any
// estimation; a non-converging logistic fit is recorded on the artifact and
// never fails the run.
func (s *AnalysisService) Run(ctx context.Context, ds *clinical.Dataset) (*analysis.RunArtifact, error) {
	if err := ds.No.Validate(); err != nil {
		return nil, errors.Wrap(err, "no-recurrence group rejected")
	}
	if err := ds.Yes.Validate(); err != nil {
		return nil, errors.Wrap(err, "recurrence group rejected")
	}

	artifact := &analysis.RunArtifact{
		RunID:     core.RunID(core.NewID()),
		DatasetID: ds.ID,
		Seed:      s.cfg.Seed,
		Priors:    ds.EmpiricalPriors(),
		CreatedAt: core.Now(),
	}
	s.logger.Info("starting analysis run %s: no=%d yes=%d seed=%d",
		artifact.RunID, ds.No.Size(), ds.Yes.Size(), s.cfg.Seed)

	summary, err := profiling.DatasetSummary(ds)
	if err != nil {
		return nil, errors.Wrap(err, "summary statistics failed")
	}
	artifact.Summary = summary

	// Visual-bandwidth curves drive the comparison plot and difference curve.
	densityNo, err := s.est.Estimate(ds.No, s.cfg.VisualAdjust)
	if err != nil {
		return nil, errors.Wrap(err, "no-recurrence density estimation failed")
	}
	densityYes, err := s.est.Estimate(ds.Yes, s.cfg.VisualAdjust)
	if err != nil {
		return nil, errors.Wrap(err, "recurrence density estimation failed")
	}
	artifact.DensityNo = densityNo
	artifact.DensityYes = densityYes

	diff, err := density.Difference(densityNo, densityYes)
	if err != nil {
		return nil, errors.Wrap(err, "density differencing failed")
	}
	artifact.Difference = diff

	boot, err := s.tester.TestEqual(ctx, ds.No, ds.Yes, s.cfg.NBoot, s.cfg.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "bootstrap equality test failed")
	}
	artifact.Bootstrap = boot
	s.logger.Info("bootstrap equality test: observed=%.6g p=%.4g (n_boot=%d)",
		boot.Observed, boot.PValue, boot.NBoot)

	// Classification bandwidth smooths harder than the visual one so the
	// posterior curve is stable between observed node counts.
	classNo, err := s.est.Estimate(ds.No, s.cfg.ClassifyAdjust)
	if err != nil {
		return nil, errors.Wrap(err, "classification density estimation failed")
	}
	classYes, err := s.est.Estimate(ds.Yes, s.cfg.ClassifyAdjust)
	if err != nil {
		return nil, errors.Wrap(err, "classification density estimation failed")
	}
	posterior, err := density.Posterior(classNo, classYes, artifact.Priors)
	if err != nil {
		return nil, errors.Wrap(err, "posterior estimation failed")
	}
	artifact.Posterior = posterior

	s.fitLogistic(ds, artifact)
	return artifact, nil
}

// fitLogistic runs the independent cross-check. It shares no state with the
// density pipeline beyond the raw observations and its failure is non-fatal.
func (s *AnalysisService) fitLogistic(ds *clinical.Dataset, artifact *analysis.RunArtifact) {
	n := ds.Total()
	xs := make([]float64, 0, n)
	labels := make([]float64, 0, n)
	xs = append(xs, ds.No.Values...)
	for range ds.No.Values {
		labels = append(labels, 0)
	}
	xs = append(xs, ds.Yes.Values...)
	for range ds.Yes.Values {
		labels = append(labels, 1)
	}

	model, err := regression.FitLogistic(xs, labels)
	if err != nil {
		artifact.LogisticError = err.Error()
		s.logger.Warn("logistic cross-check did not converge: %v", err)
		if model == nil {
			return
		}
	}

	fit := &analysis.LogisticFit{
		Intercept:  model.Intercept,
		Slope:      model.Slope,
		Iterations: model.Iterations,
		Converged:  err == nil,
		X:          artifact.Posterior.X,
		P:          model.PredictCurve(artifact.Posterior.X),
	}
	artifact.Logistic = fit
	if err == nil {
		s.logger.Info("logistic cross-check: intercept=%.4f slope=%.4f (%d iterations)",
			fit.Intercept, fit.Slope, fit.Iterations)
	}
}
