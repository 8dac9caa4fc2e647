// Command analyze runs the recurrence density pipeline once and writes the
// run artifact as JSON plus a markdown report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/adapters/report"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/adapters/rng"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/adapters/tabular"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/app"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/internal"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		artifactOut = flag.String("out", "", "write the run artifact JSON to this file (default stdout)")
		reportOut   = flag.String("report", "", "write the markdown report to this file")
	)
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Data.Path == "" {
		return fmt.Errorf("DATASET_PATH is required")
	}

	ctx := context.Background()
	reader, err := tabular.ReaderFor(cfg.Data.Path, cfg.Data.Format, cfg.Data.Sheet)
	if err != nil {
		return err
	}
	ds, load, err := reader.Read(ctx, cfg.Data.Path)
	if err != nil {
		return err
	}
	logger.Info("loaded dataset: %d usable rows (%d null, %d bad dropped)",
		load.UsableRows, load.DroppedNull, load.DroppedBad)

	service := app.NewAnalysisService(cfg.Analysis, rng.NewSeededSource(), logger)
	artifact, err := service.Run(ctx, ds)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	if *artifactOut == "" {
		fmt.Println(string(payload))
	} else if err := os.WriteFile(*artifactOut, payload, 0o644); err != nil {
		return err
	}

	if *reportOut != "" {
		md := report.NewRenderer().Markdown(artifact)
		if err := os.WriteFile(*reportOut, []byte(md), 0o644); err != nil {
			return err
		}
		logger.Info("report written to %s", *reportOut)
	}
	return nil
}
