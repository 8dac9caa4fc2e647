package clinical

import (
	"fmt"
	"math"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/core"
)

// GroupLabel identifies one of the two recurrence outcomes
type GroupLabel string

const (
	NoRecurrence GroupLabel = "no_recurrence"
	Recurrence   GroupLabel = "recurrence"
)

// String returns a human-readable group name
func (g GroupLabel) String() string {
	switch g {
	case NoRecurrence:
		return "no recurrence"
	case Recurrence:
		return "recurrence"
	}
	return string(g)
}

// Observation is one cleaned dataset row: an involved-node count and its outcome
type Observation struct {
	Nodes float64    `json:"nodes"`
	Group GroupLabel `json:"group"`
}

// Sample is an ordered sequence of node counts belonging to one group
type Sample struct {
	Group  GroupLabel `json:"group"`
	Values []float64  `json:"values"`
}

// Size returns the number of observations in the sample
func (s Sample) Size() int {
	return len(s.Values)
}

// Validate enforces the minimum-size and non-negativity invariants.
// Analysis is undefined below 2 observations, so the pipeline fails fast here.
func (s Sample) Validate() error {
	if len(s.Values) < 2 {
		return core.NewInsufficientDataError(string(s.Group), len(s.Values))
	}
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("group %q value %d is not finite", s.Group, i)
		}
		if v < 0 {
			return fmt.Errorf("%w: group %q value %d is %g", core.ErrNegativeCount, s.Group, i, v)
		}
	}
	return nil
}

// Dataset is the cleaned two-column clinical table split by outcome.
// Construction is the only mutation point; afterwards it is read-only.
type Dataset struct {
	ID  core.DatasetID `json:"id"`
	No  Sample         `json:"no_recurrence"`
	Yes Sample         `json:"recurrence"`
}

// NewDataset partitions cleaned observations by group label
func NewDataset(obs []Observation) (*Dataset, error) {
	if len(obs) == 0 {
		return nil, core.ErrEmptyDataset
	}
	ds := &Dataset{
		ID:  core.DatasetID(core.NewID()),
		No:  Sample{Group: NoRecurrence},
		Yes: Sample{Group: Recurrence},
	}
	for _, o := range obs {
		switch o.Group {
		case NoRecurrence:
			ds.No.Values = append(ds.No.Values, o.Nodes)
		case Recurrence:
			ds.Yes.Values = append(ds.Yes.Values, o.Nodes)
		default:
			return nil, fmt.Errorf("%w: %q", core.ErrNonBinaryLabel, o.Group)
		}
	}
	if err := ds.No.Validate(); err != nil {
		return nil, err
	}
	if err := ds.Yes.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Total returns the combined observation count across both groups
func (d *Dataset) Total() int {
	return d.No.Size() + d.Yes.Size()
}

// Priors holds the empirical group proportions used by the Bayesian estimator
type Priors struct {
	No  float64 `json:"no_recurrence"`
	Yes float64 `json:"recurrence"`
}

// EmpiricalPriors derives priors from the group sizes; they sum to 1 by construction
func (d *Dataset) EmpiricalPriors() Priors {
	total := float64(d.Total())
	return Priors{
		No:  float64(d.No.Size()) / total,
		Yes: float64(d.Yes.Size()) / total,
	}
}

// Validate checks both priors are proportions summing to 1
func (p Priors) Validate() error {
	if p.No < 0 || p.No > 1 || p.Yes < 0 || p.Yes > 1 {
		return fmt.Errorf("%w: no=%g yes=%g", core.ErrInvalidPriors, p.No, p.Yes)
	}
	if math.Abs(p.No+p.Yes-1) > 1e-9 {
		return fmt.Errorf("%w: sum=%g", core.ErrInvalidPriors, p.No+p.Yes)
	}
	return nil
}

// SummaryStats describes one group's node-count distribution
type SummaryStats struct {
	Group  GroupLabel `json:"group"`
	Count  int        `json:"count"`
	Mean   float64    `json:"mean"`
	StdDev float64    `json:"std_dev"`
	Median float64    `json:"median"`
	Max    float64    `json:"max"`
}
