package domain

import (
	"fmt"
	"time"

	"github.com/rpgo/property-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Configuration is the top-level input document
type Configuration struct {
	Loan       LoanTerms        `yaml:"loan" json:"loan"`
	Simulation SimulationConfig `yaml:"simulation" json:"simulation"`
	Data       DataConfig       `yaml:"data" json:"data"`
	Options    OptionsConfig    `yaml:"options" json:"options"`
}

// SimulationConfig holds the Monte Carlo settings. Zero values take defaults:
// StartingValue falls back to the loan's property value and RunLength to the loan term.
type SimulationConfig struct {
	StartingValue             float64 `yaml:"starting_value,omitempty" json:"starting_value,omitempty"`
	BenchmarkAnnualGrowthRate float64 `yaml:"benchmark_annual_growth_rate,omitempty" json:"benchmark_annual_growth_rate,omitempty"`
	RunLength                 int     `yaml:"run_length,omitempty" json:"run_length,omitempty"`
	RunCount                  int     `yaml:"run_count,omitempty" json:"run_count,omitempty"`
	Seed                      int64   `yaml:"seed,omitempty" json:"seed,omitempty"`
	Workers                   int     `yaml:"workers,omitempty" json:"workers,omitempty"`
	SampleRuns                int     `yaml:"sample_runs,omitempty" json:"sample_runs,omitempty"`
}

// DataConfig locates the historical series the simulation resamples. Sample, when
// present, is used instead of reading a series.
type DataConfig struct {
	Path       string    `yaml:"path,omitempty" json:"path,omitempty"`
	Series     string    `yaml:"series,omitempty" json:"series,omitempty"`
	RateSeries string    `yaml:"rate_series,omitempty" json:"rate_series,omitempty"`
	Start      string    `yaml:"start,omitempty" json:"start,omitempty"`
	End        string    `yaml:"end,omitempty" json:"end,omitempty"`
	Sample     []float64 `yaml:"sample,omitempty" json:"sample,omitempty"`
}

// OptionsConfig controls the payment comparison grid
type OptionsConfig struct {
	Terms    []int             `yaml:"terms,omitempty" json:"terms,omitempty"`
	Rates    []decimal.Decimal `yaml:"rates,omitempty" json:"rates,omitempty"`
	RateStep decimal.Decimal   `yaml:"rate_step,omitempty" json:"rate_step,omitempty"`
}

// Range parses Start and End. Empty bounds come back as zero times, which
// dateutil.InRange treats as open.
func (d DataConfig) Range() (start, end time.Time, err error) {
	if start, err = parseBound("start", d.Start); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end, err = parseBound("end", d.End); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func parseBound(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := dateutil.ParseObservationDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q: %w", name, value, err)
	}
	return t, nil
}
