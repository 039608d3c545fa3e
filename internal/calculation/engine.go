package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/property-projector/internal/domain"
	"github.com/rpgo/property-projector/internal/marketdata"
)

// Sections selects which parts of a ProjectionReport to compute.
type Sections struct {
	Schedule   bool
	Options    bool
	Simulation bool
}

// AllSections computes every part of the report.
var AllSections = Sections{Schedule: true, Options: true, Simulation: true}

// ProjectionEngine orchestrates the loan, payment grid and property value
// calculations for one configuration.
type ProjectionEngine struct {
	Data   marketdata.Provider   // historical index observations; unused with an inline sample
	Rates  marketdata.RateQuoter // optional, for ApplyLatestRate
	Logger Logger
}

// NewProjectionEngine creates an engine reading history from data
func NewProjectionEngine(data marketdata.Provider) *ProjectionEngine {
	pe := &ProjectionEngine{Data: data, Logger: NopLogger{}}
	if q, ok := data.(marketdata.RateQuoter); ok {
		pe.Rates = q
	}
	return pe
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// ApplyLatestRate replaces the configured annual rate with the most recent
// observation of the configured rate series.
func (pe *ProjectionEngine) ApplyLatestRate(config *domain.Configuration) error {
	if config.Data.RateSeries == "" {
		return fmt.Errorf("%w: no rate series configured", ErrInvalidInput)
	}
	if pe.Rates == nil {
		return fmt.Errorf("%w: no rate source available", ErrInvalidInput)
	}
	rate, asOf, err := pe.Rates.LatestRate(config.Data.RateSeries)
	if err != nil {
		return fmt.Errorf("failed to read latest rate: %w", err)
	}
	pe.Logger.Infof("using %s rate %s as of %s", marketdata.ResolveSeries(config.Data.RateSeries),
		rate.String(), asOf.Format("2006-01-02"))
	config.Loan.AnnualRate = rate
	return nil
}

// Run computes the requested sections of a report.
func (pe *ProjectionEngine) Run(ctx context.Context, config *domain.Configuration, sections Sections) (*domain.ProjectionReport, error) {
	report := &domain.ProjectionReport{GeneratedAt: nowFunc()}

	if sections.Schedule {
		schedule, err := pe.Amortize(ctx, config)
		if err != nil {
			return nil, err
		}
		report.Schedule = schedule
	}
	if sections.Options {
		grid, err := pe.Options(ctx, config)
		if err != nil {
			return nil, err
		}
		report.Options = grid
	}
	if sections.Simulation {
		sim, err := pe.Simulate(ctx, config)
		if err != nil {
			return nil, err
		}
		report.Simulation = sim
	}
	return report, nil
}

// Amortize generates the loan's schedule.
func (pe *ProjectionEngine) Amortize(ctx context.Context, config *domain.Configuration) (*domain.AmortizationSchedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	engine := NewAmortizationEngine(config.Loan)
	engine.SetLogger(pe.Logger)
	schedule, err := engine.GenerateSchedule()
	if err != nil {
		return nil, fmt.Errorf("amortization failed: %w", err)
	}
	return schedule, nil
}

// Options builds the payment comparison grid around the loan's rate.
func (pe *ProjectionEngine) Options(ctx context.Context, config *domain.Configuration) (*domain.PaymentGrid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loan := config.Loan
	grid, err := PaymentOptions(loan.Principal, loan.AnnualRate, loan.PeriodsPerYear, loan.TermPeriods, config.Options)
	if err != nil {
		return nil, fmt.Errorf("payment options failed: %w", err)
	}
	return grid, nil
}

// HistoricalSample returns the periodic returns the simulation resamples: the
// inline sample when one is configured, otherwise the monthly returns of the
// configured series. The second result names the series, if any.
func (pe *ProjectionEngine) HistoricalSample(config *domain.Configuration) ([]float64, string, error) {
	if len(config.Data.Sample) > 0 {
		return config.Data.Sample, "", nil
	}
	if pe.Data == nil {
		return nil, "", fmt.Errorf("%w: no historical data provider", ErrInvalidInput)
	}
	start, end, err := config.Data.Range()
	if err != nil {
		return nil, "", err
	}
	id := marketdata.ResolveSeries(config.Data.Series)
	observations, err := pe.Data.Observations(id, start, end)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read series %s: %w", id, err)
	}
	returns := MonthlyReturns(observations)
	pe.Logger.Debugf("series %s: %d observations, %d monthly returns", id, len(observations), len(returns))
	return returns, id, nil
}

// Simulate runs the Monte Carlo bootstrap and collects its presentation views.
func (pe *ProjectionEngine) Simulate(ctx context.Context, config *domain.Configuration) (*domain.SimulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sample, seriesID, err := pe.HistoricalSample(config)
	if err != nil {
		return nil, err
	}

	sim := config.Simulation
	mcs, err := NewMonteCarloSimulator(MonteCarloConfig{
		StartingValue:             sim.StartingValue,
		Sample:                    sample,
		BenchmarkAnnualGrowthRate: sim.BenchmarkAnnualGrowthRate,
		RunLength:                 sim.RunLength,
		RunCount:                  sim.RunCount,
		Seed:                      sim.Seed,
		Workers:                   sim.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("simulation setup failed: %w", err)
	}
	mcs.SetLogger(pe.Logger)

	summary, err := mcs.Summary()
	if err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ending, err := mcs.EndingValuesCDF()
	if err != nil {
		return nil, err
	}
	bands, err := mcs.PeriodBands()
	if err != nil {
		return nil, err
	}
	runs, err := mcs.SampleRuns(sim.SampleRuns)
	if err != nil {
		return nil, err
	}

	pe.Logger.Infof("simulated %d runs of %d periods (seed %d)", summary.RunCount, summary.RunLength, mcs.Config().Seed)
	return &domain.SimulationResult{
		Summary:    summary,
		EndingCDF:  ending,
		ReturnsCDF: mcs.ReturnsCDF(),
		Bands:      bands,
		SampleRuns: runs,
		SeriesID:   seriesID,
	}, nil
}
