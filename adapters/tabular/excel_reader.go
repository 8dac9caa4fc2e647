package tabular

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/clinical"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/internal/errors"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/ports"
)

// ExcelReader implements ports.DatasetReaderPort for XLSX workbooks
type ExcelReader struct {
	sheet string // sheet name; first sheet when empty
}

// NewExcelReader creates an XLSX dataset reader for the given sheet
func NewExcelReader(sheet string) *ExcelReader {
	return &ExcelReader{sheet: sheet}
}

// Read loads, cleans, and partitions the dataset from an XLSX workbook
func (r *ExcelReader) Read(ctx context.Context, path string) (*clinical.Dataset, *ports.LoadReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open workbook %s", path)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read sheet %q", sheet)
	}
	if len(rows) < 2 {
		return nil, nil, errors.DataInvalid("sheet has no data rows")
	}

	idx, err := findColumns(rows[0])
	if err != nil {
		return nil, nil, errors.Wrap(err, "sheet header rejected")
	}

	obs, report := parseRows(rows[1:], idx)
	ds, err := clinical.NewDataset(obs)
	if err != nil {
		return nil, &report, errors.Wrap(err, "cleaned sheet rows rejected")
	}
	return ds, &report, nil
}
