package ports

import (
	"context"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/clinical"
)

// DatasetReaderPort loads a cleaned clinical dataset from an external source.
// Loading, null-filtering, and type coercion live behind this boundary; the
// statistical core only ever sees validated samples.
type DatasetReaderPort interface {
	Read(ctx context.Context, path string) (*clinical.Dataset, *LoadReport, error)
}

// LoadReport records what the reader dropped or rejected while cleaning
type LoadReport struct {
	TotalRows   int `json:"total_rows"`
	UsableRows  int `json:"usable_rows"`
	DroppedNull int `json:"dropped_null"`
	DroppedBad  int `json:"dropped_bad"`
}
