package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Data errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrEmptyDataset     = errors.New("dataset contains no usable rows")
	ErrNegativeCount    = errors.New("negative node count")
	ErrNonBinaryLabel   = errors.New("label is not 0 or 1")

	// Estimation errors
	ErrNonConvergence = errors.New("model fit failed to converge")
	ErrZeroBandwidth  = errors.New("bandwidth collapsed to zero")
	ErrCurveMismatch  = errors.New("density curve grid mismatch")
	ErrInvalidPriors  = errors.New("group priors do not sum to 1")

	// Determinism errors
	ErrSeedRequired = errors.New("explicit random seed required")
	ErrInvalidBoot  = errors.New("bootstrap iteration count must be >= 1")
)

// Error constructors with context
func NewInsufficientDataError(group string, n int) error {
	return fmt.Errorf("%w: group %q has %d observations, need at least 2", ErrInsufficientData, group, n)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

func NewRowError(row int, err error) error {
	return fmt.Errorf("row %d: %w", row, err)
}

// Error checking helpers
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsNonConvergence(err error) bool {
	return errors.Is(err, ErrNonConvergence)
}

func IsDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrNegativeCount) ||
		errors.Is(err, ErrNonBinaryLabel)
}
