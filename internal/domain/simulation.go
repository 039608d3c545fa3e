package domain

import (
	"time"

	"gonum.org/v1/gonum/mat"
)

// SimulationBatch holds every simulated value path of one Monte Carlo invocation.
// Rows are runs, columns are periods 0..RunLength; column 0 is StartingValue.
type SimulationBatch struct {
	StartingValue float64
	RunLength     int
	RunCount      int
	Seed          int64

	values *mat.Dense
}

// NewSimulationBatch wraps a RunCount x (RunLength+1) matrix. The batch takes
// ownership of values; callers must not mutate it afterwards.
func NewSimulationBatch(startingValue float64, seed int64, values *mat.Dense) *SimulationBatch {
	runs, cols := values.Dims()
	return &SimulationBatch{
		StartingValue: startingValue,
		RunLength:     cols - 1,
		RunCount:      runs,
		Seed:          seed,
		values:        values,
	}
}

// Value returns the compounded value of run at period.
func (b *SimulationBatch) Value(run, period int) float64 {
	return b.values.At(run, period)
}

// Run returns a copy of one run's path, periods 0..RunLength.
func (b *SimulationBatch) Run(run int) []float64 {
	return mat.Row(nil, run, b.values)
}

// Period returns a copy of every run's value at period.
func (b *SimulationBatch) Period(period int) []float64 {
	return mat.Col(nil, period, b.values)
}

// Final returns every run's ending value.
func (b *SimulationBatch) Final() []float64 {
	return b.Period(b.RunLength)
}

// Matrix exposes the values read-only.
func (b *SimulationBatch) Matrix() mat.Matrix {
	return b.values
}

// SummaryRow is one labeled statistic of a SummaryReport. Return fields are nil
// for rows that are fractions rather than values.
type SummaryRow struct {
	Key              string   `json:"key"`
	Label            string   `json:"label"`
	Value            float64  `json:"value"`
	TotalReturn      *float64 `json:"total_return,omitempty"`
	AnnualizedReturn *float64 `json:"annualized_return,omitempty"`
}

// SummaryReport is the ordered list of statistics over a batch's ending values
type SummaryReport struct {
	StartingValue float64      `json:"starting_value"`
	RunLength     int          `json:"run_length"`
	RunCount      int          `json:"run_count"`
	BenchmarkRate float64      `json:"benchmark_annual_growth_rate"`
	Rows          []SummaryRow `json:"rows"`
}

// Row looks up a row by key.
func (r *SummaryReport) Row(key string) (SummaryRow, bool) {
	for _, row := range r.Rows {
		if row.Key == key {
			return row, true
		}
	}
	return SummaryRow{}, false
}

// CDFPoint is one step of an empirical CDF
type CDFPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EmpiricalCDF is a step-function estimate of a distribution
type EmpiricalCDF struct {
	Points []CDFPoint `json:"points"`
}

// X returns the ascending sample values.
func (c EmpiricalCDF) X() []float64 {
	xs := make([]float64, len(c.Points))
	for i, p := range c.Points {
		xs[i] = p.X
	}
	return xs
}

// Y returns the cumulative probabilities paired with X.
func (c EmpiricalCDF) Y() []float64 {
	ys := make([]float64, len(c.Points))
	for i, p := range c.Points {
		ys[i] = p.Y
	}
	return ys
}

// Len returns the number of points.
func (c EmpiricalCDF) Len() int { return len(c.Points) }

// PeriodBand summarizes all runs at one period
type PeriodBand struct {
	Period int     `json:"period"`
	Median float64 `json:"median"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
}

// Observation is one dated value of a historical series
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}
