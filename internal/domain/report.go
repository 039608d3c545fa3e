package domain

import (
	"time"
)

// SimulationResult bundles the presentation-facing views of a Monte Carlo batch
type SimulationResult struct {
	Summary    *SummaryReport `json:"summary"`
	EndingCDF  EmpiricalCDF   `json:"ending_value_cdf"`
	ReturnsCDF EmpiricalCDF   `json:"returns_cdf"`
	Bands      []PeriodBand   `json:"period_bands,omitempty"`
	SampleRuns [][]float64    `json:"sample_runs,omitempty"`
	SeriesID   string         `json:"series_id,omitempty"`
}

// ProjectionReport is everything a formatter may render. Sections that were not
// requested are nil.
type ProjectionReport struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Schedule    *AmortizationSchedule `json:"schedule,omitempty"`
	Options     *PaymentGrid          `json:"payment_options,omitempty"`
	Simulation  *SimulationResult     `json:"simulation,omitempty"`
}
