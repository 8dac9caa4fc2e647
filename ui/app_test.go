package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/analysis"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/clinical"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/core"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/ports"
)

func fixtureArtifact() *analysis.RunArtifact {
	grid := []float64{0, 2, 4, 6}
	return &analysis.RunArtifact{
		RunID:     core.RunID(core.NewID()),
		DatasetID: core.DatasetID(core.NewID()),
		Seed:      42,
		Summary: []clinical.SummaryStats{
			{Group: clinical.NoRecurrence, Count: 6, Mean: 0.5, StdDev: 0.84, Median: 0, Max: 2},
			{Group: clinical.Recurrence, Count: 6, Mean: 4.67, StdDev: 2.16, Median: 4.5, Max: 8},
		},
		Priors:     clinical.Priors{No: 0.5, Yes: 0.5},
		DensityNo:  analysis.DensityCurve{X: grid, Y: []float64{0.4, 0.1, 0.02, 0.005}},
		DensityYes: analysis.DensityCurve{X: grid, Y: []float64{0.02, 0.12, 0.18, 0.12}},
		Difference: analysis.DensityCurve{X: grid, Y: []float64{-0.38, 0.02, 0.16, 0.115}},
		Bootstrap:  analysis.BootstrapResult{Observed: 0.03, Null: []float64{0.001}, PValue: 0.01, NBoot: 100, Seed: 42},
		Posterior:  analysis.PosteriorCurve{X: grid, P: []float64{0.05, 0.55, 0.9, 0.96}},
		CreatedAt:  core.Now(),
	}
}

func newTestServer(load *ports.LoadReport) *httptest.Server {
	return httptest.NewServer(NewApp(fixtureArtifact(), load).Handler())
}

func TestHandleRun_ServesArtifactJSON(t *testing.T) {
	srv := newTestServer(nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/run")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var got analysis.RunArtifact
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Seed != 42 || len(got.Summary) != 2 {
		t.Fatalf("unexpected artifact payload: seed=%d summary=%d", got.Seed, len(got.Summary))
	}
}

func TestHandleCurves_ServesPlottableArrays(t *testing.T) {
	srv := newTestServer(nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/run/curves")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var got map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"density_no_recurrence", "density_recurrence", "difference", "posterior"} {
		if _, ok := got[key]; !ok {
			t.Fatalf("curves payload missing %q", key)
		}
	}
}

func TestHandleLoadReport(t *testing.T) {
	srv := newTestServer(&ports.LoadReport{TotalRows: 10, UsableRows: 8, DroppedNull: 2})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/run/load-report")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var got ports.LoadReport
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.UsableRows != 8 {
		t.Fatalf("usable rows %d, want 8", got.UsableRows)
	}

	// Without a report the endpoint is a 404, not an empty object.
	srvNone := newTestServer(nil)
	defer srvNone.Close()
	respNone, err := http.Get(srvNone.URL + "/api/run/load-report")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	respNone.Body.Close()
	if respNone.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d, want 404", respNone.StatusCode)
	}
}

func TestHandleReport_ServesHTML(t *testing.T) {
	srv := newTestServer(nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/report")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type %q", ct)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
}
