// Package report renders a run artifact into a markdown summary and its HTML
// form for the presentation layer. It emits curve data as tables and scalars,
// never rendered plots.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/analysis"
)

const equalityAlpha = 0.05

// Renderer builds the analysis report from a run artifact
type Renderer struct{}

// NewRenderer creates a report renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Markdown renders the run artifact as a markdown document
func (r *Renderer) Markdown(a *analysis.RunArtifact) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Lymph-Node Recurrence Analysis\n\n")
	fmt.Fprintf(&b, "Run `%s` · seed %d · %s\n\n", a.RunID, a.Seed, a.CreatedAt.Time().Format("2006-01-02 15:04:05"))

	b.WriteString("## Group summary\n\n")
	b.WriteString("| Group | Count | Mean | Std dev | Median | Max |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, s := range a.Summary {
		fmt.Fprintf(&b, "| %s | %d | %.2f | %.2f | %.1f | %.0f |\n",
			s.Group, s.Count, s.Mean, s.StdDev, s.Median, s.Max)
	}
	fmt.Fprintf(&b, "\nEmpirical priors: no recurrence %.3f, recurrence %.3f.\n\n", a.Priors.No, a.Priors.Yes)

	b.WriteString("## Density comparison\n\n")
	loN, hiN := curveMassRange(a.DensityNo)
	loY, hiY := curveMassRange(a.DensityYes)
	fmt.Fprintf(&b, "No-recurrence density mass concentrates in [%.1f, %.1f]; recurrence in [%.1f, %.1f].\n",
		loN, hiN, loY, hiY)
	x, d := extremeDifference(a.Difference)
	fmt.Fprintf(&b, "Largest density difference (recurrence minus no recurrence): %+.4f at %.1f nodes.\n\n", d, x)

	b.WriteString("## Bootstrap equality test\n\n")
	fmt.Fprintf(&b, "Observed discrepancy %.6g, p = %.4g over %d resamples.\n",
		a.Bootstrap.Observed, a.Bootstrap.PValue, a.Bootstrap.NBoot)
	if a.Bootstrap.PValue < equalityAlpha {
		fmt.Fprintf(&b, "The groups' node-count distributions differ at the %.2f level.\n\n", equalityAlpha)
	} else {
		fmt.Fprintf(&b, "No evidence against equal distributions at the %.2f level.\n\n", equalityAlpha)
	}

	b.WriteString("## Posterior recurrence probability\n\n")
	b.WriteString("| Nodes | P(recurrence) |\n|---|---|\n")
	for _, i := range sampleIndexes(a.Posterior.Len(), 9) {
		fmt.Fprintf(&b, "| %.1f | %.3f |\n", a.Posterior.X[i], a.Posterior.P[i])
	}
	b.WriteString("\n")

	b.WriteString("## Logistic cross-check\n\n")
	switch {
	case a.Logistic != nil && a.Logistic.Converged:
		fmt.Fprintf(&b, "logit P = %.4f %+.4f·nodes (converged in %d iterations).\n",
			a.Logistic.Intercept, a.Logistic.Slope, a.Logistic.Iterations)
	case a.Logistic != nil:
		fmt.Fprintf(&b, "Fit did not converge (%s); partial estimate logit P = %.4f %+.4f·nodes.\n",
			a.LogisticError, a.Logistic.Intercept, a.Logistic.Slope)
	default:
		fmt.Fprintf(&b, "Fit unavailable: %s.\n", a.LogisticError)
	}

	return b.String()
}

// HTML renders the markdown report to HTML
func (r *Renderer) HTML(a *analysis.RunArtifact) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	return markdown.ToHTML([]byte(r.Markdown(a)), p, renderer)
}

// curveMassRange finds the x-interval holding the central 90% of density mass
func curveMassRange(c analysis.DensityCurve) (float64, float64) {
	total := c.Integral()
	if total <= 0 {
		return c.X[0], c.X[c.Len()-1]
	}
	lo, hi := c.X[0], c.X[c.Len()-1]
	cum := 0.0
	for i := 1; i < c.Len(); i++ {
		cum += 0.5 * (c.Y[i] + c.Y[i-1]) * (c.X[i] - c.X[i-1])
		frac := cum / total
		if frac < 0.05 {
			lo = c.X[i]
		}
		if frac <= 0.95 {
			hi = c.X[i]
		}
	}
	return lo, hi
}

// extremeDifference locates the largest-magnitude point of the difference curve
func extremeDifference(c analysis.DensityCurve) (float64, float64) {
	x, d := c.X[0], c.Y[0]
	for i := range c.X {
		if abs(c.Y[i]) > abs(d) {
			x, d = c.X[i], c.Y[i]
		}
	}
	return x, d
}

// sampleIndexes picks n roughly evenly spaced indexes from [0, length)
func sampleIndexes(length, n int) []int {
	if n >= length {
		out := make([]int, length)
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i * (length - 1) / (n - 1)
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
