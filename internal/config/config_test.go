package config

import (
	"testing"
)

func TestLoad_RequiresSeed(t *testing.T) {
	t.Setenv("ANALYSIS_SEED", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error when ANALYSIS_SEED is missing")
	}

	t.Setenv("ANALYSIS_SEED", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a non-integer seed")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ANALYSIS_SEED", "42")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Analysis.Seed != 42 {
		t.Fatalf("seed %d, want 42", cfg.Analysis.Seed)
	}
	if cfg.Analysis.NBoot != 10000 {
		t.Fatalf("n_boot default %d, want 10000", cfg.Analysis.NBoot)
	}
	if cfg.Analysis.VisualAdjust != 1.2 || cfg.Analysis.ClassifyAdjust != 3.0 {
		t.Fatalf("bandwidth adjust defaults %g/%g, want 1.2/3.0",
			cfg.Analysis.VisualAdjust, cfg.Analysis.ClassifyAdjust)
	}
	if cfg.Analysis.GridSize != 256 {
		t.Fatalf("grid size default %d, want 256", cfg.Analysis.GridSize)
	}
	if cfg.Analysis.Workers < 1 {
		t.Fatalf("workers default %d, want >= 1", cfg.Analysis.Workers)
	}
}

func TestLoad_ValidatesRanges(t *testing.T) {
	t.Setenv("ANALYSIS_SEED", "1")

	t.Setenv("N_BOOT", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for N_BOOT=0")
	}
	t.Setenv("N_BOOT", "100")

	t.Setenv("BANDWIDTH_ADJUST_VISUAL", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a negative bandwidth adjust")
	}
}
