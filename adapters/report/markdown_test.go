package report

import (
	"strings"
	"testing"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/analysis"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/clinical"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/core"
)

func fixtureArtifact() *analysis.RunArtifact {
	grid := []float64{0, 2, 4, 6, 8}
	return &analysis.RunArtifact{
		RunID:     core.RunID(core.NewID()),
		DatasetID: core.DatasetID(core.NewID()),
		Seed:      42,
		Summary: []clinical.SummaryStats{
			{Group: clinical.NoRecurrence, Count: 6, Mean: 0.5, StdDev: 0.84, Median: 0, Max: 2},
			{Group: clinical.Recurrence, Count: 6, Mean: 4.67, StdDev: 2.16, Median: 4.5, Max: 8},
		},
		Priors:     clinical.Priors{No: 0.5, Yes: 0.5},
		DensityNo:  analysis.DensityCurve{X: grid, Y: []float64{0.4, 0.1, 0.02, 0.005, 0.001}},
		DensityYes: analysis.DensityCurve{X: grid, Y: []float64{0.02, 0.12, 0.18, 0.12, 0.05}},
		Difference: analysis.DensityCurve{X: grid, Y: []float64{-0.38, 0.02, 0.16, 0.115, 0.049}},
		Bootstrap: analysis.BootstrapResult{
			Observed: 0.031, Null: []float64{0.001, 0.002}, PValue: 0.002, NBoot: 2000, Seed: 42,
		},
		Posterior: analysis.PosteriorCurve{X: grid, P: []float64{0.05, 0.55, 0.9, 0.96, 0.98}},
		Logistic: &analysis.LogisticFit{
			Intercept: -2.1, Slope: 0.9, Iterations: 7, Converged: true,
			X: grid, P: []float64{0.1, 0.4, 0.7, 0.9, 0.97},
		},
		CreatedAt: core.Now(),
	}
}

func TestMarkdown_ContainsAllSections(t *testing.T) {
	md := NewRenderer().Markdown(fixtureArtifact())

	for _, want := range []string{
		"# Lymph-Node Recurrence Analysis",
		"## Group summary",
		"## Density comparison",
		"## Bootstrap equality test",
		"## Posterior recurrence probability",
		"## Logistic cross-check",
		"p = 0.002",
		"distributions differ",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q\n%s", want, md)
		}
	}
}

func TestMarkdown_ReportsNonConvergence(t *testing.T) {
	a := fixtureArtifact()
	a.Logistic.Converged = false
	a.LogisticError = "model fit failed to converge"

	md := NewRenderer().Markdown(a)
	if !strings.Contains(md, "did not converge") {
		t.Fatalf("report should surface the non-convergence:\n%s", md)
	}
}

func TestHTML_RendersDocument(t *testing.T) {
	out := string(NewRenderer().HTML(fixtureArtifact()))
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<table") {
		t.Fatalf("html output missing expected elements:\n%s", out)
	}
}
