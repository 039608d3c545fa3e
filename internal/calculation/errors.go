package calculation

import "errors"

var (
	// ErrInvalidInput rejects loan or simulation parameters before any computation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptySample is returned when no finite observation survives cleaning.
	ErrEmptySample = errors.New("historical sample is empty after cleaning")
	// ErrScheduleDivergence is returned when an amortization never pays down.
	ErrScheduleDivergence = errors.New("amortization schedule does not converge")
	// ErrConfigurationTooLarge is returned when runs x periods exceeds MaxSimulationCells.
	ErrConfigurationTooLarge = errors.New("simulation configuration too large")
)
