// Package ui exposes one completed analysis run over HTTP: the artifact as
// JSON and the rendered report as HTML. It is strictly read-only.
package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/adapters/report"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/analysis"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/ports"
)

// App represents the presentation application
type App struct {
	router   *chi.Mux
	artifact *analysis.RunArtifact
	load     *ports.LoadReport
	renderer *report.Renderer
}

// NewApp creates the HTTP surface for one completed run
func NewApp(artifact *analysis.RunArtifact, load *ports.LoadReport) *App {
	app := &App{
		router:   chi.NewRouter(),
		artifact: artifact,
		load:     load,
		renderer: report.NewRenderer(),
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app
}

// Handler returns the root HTTP handler
func (a *App) Handler() http.Handler {
	return a.router
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Get("/report", a.handleReport)

	a.router.Get("/api/run", a.handleRun)
	a.router.Get("/api/run/curves", a.handleCurves)
	a.router.Get("/api/run/load-report", a.handleLoadReport)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok", "run_id": a.artifact.RunID.String()})
}

func (a *App) handleRun(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.artifact)
}

// handleCurves serves only the plottable arrays, for lightweight charting
func (a *App) handleCurves(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"density_no_recurrence": a.artifact.DensityNo,
		"density_recurrence":    a.artifact.DensityYes,
		"difference":            a.artifact.Difference,
		"posterior":             a.artifact.Posterior,
		"logistic":              a.artifact.Logistic,
	})
}

func (a *App) handleLoadReport(w http.ResponseWriter, r *http.Request) {
	if a.load == nil {
		http.Error(w, "no load report for this run", http.StatusNotFound)
		return
	}
	writeJSON(w, a.load)
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(a.renderer.HTML(a.artifact))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
