// Package tabular loads the cleaned clinical table from CSV or XLSX files.
// Null filtering and type coercion happen here so the statistical core only
// ever receives validated samples.
package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/clinical"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/core"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/ports"
)

// Column name candidates, checked case-insensitively against the header row
var (
	nodeColumns  = []string{"inv_nodes", "inv-nodes", "nodes", "lymph_nodes", "positive_nodes"}
	labelColumns = []string{"class", "recurrence", "label", "outcome"}
)

// nullMarkers are cell values treated as missing and dropped with a count
var nullMarkers = map[string]bool{
	"": true, "?": true, "na": true, "n/a": true, "null": true, "none": true,
}

type columnIndex struct {
	nodes int
	label int
}

// findColumns locates the node-count and label columns in a header row
func findColumns(header []string) (columnIndex, error) {
	idx := columnIndex{nodes: -1, label: -1}
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for _, c := range nodeColumns {
			if name == c && idx.nodes == -1 {
				idx.nodes = i
			}
		}
		for _, c := range labelColumns {
			if name == c && idx.label == -1 {
				idx.label = i
			}
		}
	}
	if idx.nodes == -1 {
		return idx, fmt.Errorf("no node-count column found (looked for %s)", strings.Join(nodeColumns, ", "))
	}
	if idx.label == -1 {
		return idx, fmt.Errorf("no label column found (looked for %s)", strings.Join(labelColumns, ", "))
	}
	return idx, nil
}

// parseRows converts raw string rows into observations, recording what was
// dropped. Missing cells are dropped silently into the report counts; values
// that parse but violate the data model (negative counts, unknown labels)
// are also dropped but counted separately.
func parseRows(rows [][]string, idx columnIndex) ([]clinical.Observation, ports.LoadReport) {
	report := ports.LoadReport{TotalRows: len(rows)}
	obs := make([]clinical.Observation, 0, len(rows))

	for _, row := range rows {
		if idx.nodes >= len(row) || idx.label >= len(row) {
			report.DroppedBad++
			continue
		}
		nodeCell := strings.TrimSpace(row[idx.nodes])
		labelCell := strings.TrimSpace(row[idx.label])
		if nullMarkers[strings.ToLower(nodeCell)] || nullMarkers[strings.ToLower(labelCell)] {
			report.DroppedNull++
			continue
		}

		nodes, err := strconv.ParseFloat(nodeCell, 64)
		if err != nil || nodes < 0 {
			report.DroppedBad++
			continue
		}
		group, err := parseLabel(labelCell)
		if err != nil {
			report.DroppedBad++
			continue
		}

		obs = append(obs, clinical.Observation{Nodes: nodes, Group: group})
		report.UsableRows++
	}
	return obs, report
}

// parseLabel coerces the binary outcome column into a group label
func parseLabel(cell string) (clinical.GroupLabel, error) {
	switch strings.ToLower(cell) {
	case "0", "no", "no-recurrence-events", "no-recurrence", "no_recurrence":
		return clinical.NoRecurrence, nil
	case "1", "yes", "recurrence-events", "recurrence":
		return clinical.Recurrence, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrNonBinaryLabel, cell)
}
