// Package profiling computes per-group descriptive statistics for the
// summary table in the analysis report.
package profiling

import (
	"github.com/montanaflynn/stats"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/clinical"
)

// GroupSummary computes count, mean, sample standard deviation, median, and
// max for one group's node counts.
func GroupSummary(sample clinical.Sample) (clinical.SummaryStats, error) {
	summary := clinical.SummaryStats{
		Group: sample.Group,
		Count: sample.Size(),
	}
	if err := sample.Validate(); err != nil {
		return summary, err
	}

	mean, err := stats.Mean(sample.Values)
	if err != nil {
		return summary, err
	}

	stdDev, err := stats.StandardDeviationSample(sample.Values)
	if err != nil {
		return summary, err
	}

	median, err := stats.Median(sample.Values)
	if err != nil {
		return summary, err
	}

	max, err := stats.Max(sample.Values)
	if err != nil {
		return summary, err
	}

	summary.Mean = mean
	summary.StdDev = stdDev
	summary.Median = median
	summary.Max = max
	return summary, nil
}

// DatasetSummary computes the summary rows for both groups in display order
func DatasetSummary(ds *clinical.Dataset) ([]clinical.SummaryStats, error) {
	no, err := GroupSummary(ds.No)
	if err != nil {
		return nil, err
	}
	yes, err := GroupSummary(ds.Yes)
	if err != nil {
		return nil, err
	}
	return []clinical.SummaryStats{no, yes}, nil
}
