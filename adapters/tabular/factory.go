package tabular

import (
	"path/filepath"
	"strings"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/internal/errors"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/ports"
)

// ReaderFor selects a dataset reader by explicit format, falling back to the
// file extension when format is empty.
func ReaderFor(path, format, sheet string) (ports.DatasetReaderPort, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			format = "csv"
		case ".xlsx", ".xlsm":
			format = "xlsx"
		}
	}
	switch format {
	case "csv":
		return NewCSVReader(), nil
	case "xlsx":
		return NewExcelReader(sheet), nil
	}
	return nil, errors.ConfigInvalid("unsupported dataset format: " + format)
}
