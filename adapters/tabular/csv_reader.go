package tabular

import (
	"context"
	"encoding/csv"
	"os"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/clinical"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/internal/errors"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/ports"
)

// CSVReader implements ports.DatasetReaderPort for comma-separated files
// with a header row.
type CSVReader struct{}

// NewCSVReader creates a CSV dataset reader
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Read loads, cleans, and partitions the dataset from a CSV file
func (r *CSVReader) Read(ctx context.Context, path string) (*clinical.Dataset, *ports.LoadReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open dataset %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are handled per-cell
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parse csv %s", path)
	}
	if len(records) < 2 {
		return nil, nil, errors.DataInvalid("csv has no data rows")
	}

	idx, err := findColumns(records[0])
	if err != nil {
		return nil, nil, errors.Wrap(err, "csv header rejected")
	}

	obs, report := parseRows(records[1:], idx)
	ds, err := clinical.NewDataset(obs)
	if err != nil {
		return nil, &report, errors.Wrap(err, "cleaned csv rows rejected")
	}
	return ds, &report, nil
}
