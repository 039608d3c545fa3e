package config

import (
	"fmt"
	"math"
	"os"

	"github.com/rpgo/property-projector/internal/calculation"
	"github.com/rpgo/property-projector/internal/domain"
	"github.com/rpgo/property-projector/internal/marketdata"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultDataPath is where series files are looked up when data.path is empty.
const DefaultDataPath = "data"

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file, applies defaults
// and validates the result.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ApplyDefaults fills the settings that derive from other sections. The
// simulation starts from the property value and runs for the loan term.
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) {
	if config.Simulation.StartingValue == 0 && config.Loan.PropertyValue.IsPositive() {
		config.Simulation.StartingValue = config.Loan.PropertyValue.InexactFloat64()
	}
	if config.Simulation.RunLength == 0 {
		config.Simulation.RunLength = config.Loan.TermPeriods
	}
	if config.Data.Path == "" {
		config.Data.Path = DefaultDataPath
	}
	if config.Data.Series == "" && len(config.Data.Sample) == 0 {
		config.Data.Series = marketdata.SeriesCaseShiller
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := calculation.ValidateLoanTerms(config.Loan); err != nil {
		return fmt.Errorf("loan validation failed: %w", err)
	}
	if err := ip.validateSimulation(&config.Simulation); err != nil {
		return fmt.Errorf("simulation validation failed: %w", err)
	}
	if err := ip.validateData(&config.Data); err != nil {
		return fmt.Errorf("data validation failed: %w", err)
	}
	if err := ip.validateOptions(&config.Options); err != nil {
		return fmt.Errorf("options validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validateSimulation(sim *domain.SimulationConfig) error {
	if sim.StartingValue < 0 || math.IsNaN(sim.StartingValue) || math.IsInf(sim.StartingValue, 0) {
		return fmt.Errorf("starting value must be positive")
	}
	if sim.RunLength < 0 {
		return fmt.Errorf("run length cannot be negative")
	}
	if sim.RunCount < 0 {
		return fmt.Errorf("run count cannot be negative")
	}
	if sim.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	if sim.SampleRuns < 0 {
		return fmt.Errorf("sample runs cannot be negative")
	}
	if sim.BenchmarkAnnualGrowthRate <= -1 || math.IsNaN(sim.BenchmarkAnnualGrowthRate) {
		return fmt.Errorf("benchmark annual growth rate must be greater than -100%%")
	}
	length, count := sim.RunLength, sim.RunCount
	if length == 0 {
		length = calculation.DefaultRunLength
	}
	if count == 0 {
		count = calculation.DefaultRunCount
	}
	if length >= calculation.MaxSimulationCells || count > calculation.MaxSimulationCells/(length+1) {
		return fmt.Errorf("%w: %d runs x %d periods", calculation.ErrConfigurationTooLarge, count, length)
	}
	return nil
}

func (ip *InputParser) validateData(data *domain.DataConfig) error {
	if data.Series == "" && len(data.Sample) == 0 {
		return fmt.Errorf("either a series or an inline sample is required")
	}
	if len(data.Sample) > 0 {
		if _, err := calculation.CleanSample(data.Sample); err != nil {
			return err
		}
	}
	start, end, err := data.Range()
	if err != nil {
		return err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return fmt.Errorf("end %s is before start %s", data.End, data.Start)
	}
	return nil
}

func (ip *InputParser) validateOptions(opts *domain.OptionsConfig) error {
	for _, term := range opts.Terms {
		if term <= 0 || term > calculation.MaxTermPeriods {
			return fmt.Errorf("term %d must be between 1 and %d periods", term, calculation.MaxTermPeriods)
		}
	}
	for _, rate := range opts.Rates {
		if rate.IsNegative() {
			return fmt.Errorf("rate %s cannot be negative", rate)
		}
	}
	if opts.RateStep.IsNegative() {
		return fmt.Errorf("rate step cannot be negative")
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration: a 30-year loan
// at 6.5% on a $625,000 property, simulated against the national home price index.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Loan: domain.LoanTerms{
			AnnualRate:     decimal.NewFromFloat(0.065),
			PeriodsPerYear: 12,
			TermPeriods:    360,
			Principal:      decimal.NewFromInt(500000),
			PropertyValue:  decimal.NewFromInt(625000),
		},
		Simulation: domain.SimulationConfig{
			StartingValue:             625000,
			BenchmarkAnnualGrowthRate: calculation.DefaultBenchmarkAnnualGrowthRate,
			RunLength:                 360,
			RunCount:                  calculation.DefaultRunCount,
			SampleRuns:                5,
		},
		Data: domain.DataConfig{
			Path:       DefaultDataPath,
			Series:     marketdata.SeriesCaseShiller,
			RateSeries: marketdata.SeriesMortgage30Year,
			Start:      "1987-01-01",
		},
		Options: domain.OptionsConfig{
			Terms: append([]int(nil), calculation.DefaultOptionTerms...),
		},
	}
}

// SaveConfiguration writes a configuration back out as YAML.
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
