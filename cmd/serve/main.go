// Command serve runs the pipeline once at startup and serves the resulting
// artifact and report over HTTP.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/adapters/rng"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/adapters/tabular"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/app"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/internal"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/internal/config"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "serve: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
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

	service := app.NewAnalysisService(cfg.Analysis, rng.NewSeededSource(), logger)
	artifact, err := service.Run(ctx, ds)
	if err != nil {
		return err
	}

	application := ui.NewApp(artifact, load)
	logger.Info("serving run %s on %s", artifact.RunID, cfg.Server.Addr)
	return http.ListenAndServe(cfg.Server.Addr, application.Handler())
}
