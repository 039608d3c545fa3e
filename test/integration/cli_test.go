package integration

import (
	"context"
	"testing"

	"github.com/rpgo/property-projector/internal/calculation"
	"github.com/rpgo/property-projector/internal/marketdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestRateDrivesOptions(t *testing.T) {
	cfg := loadExample(t)
	provider := marketdata.NewCSVProvider(cfg.Data.Path)
	engine := calculation.NewProjectionEngine(provider)

	latest, err := provider.LatestValue(cfg.Data.RateSeries)
	require.NoError(t, err)
	require.NoError(t, engine.ApplyLatestRate(cfg))
	assert.InDelta(t, latest.Value/100, cfg.Loan.AnnualRate.InexactFloat64(), 1e-12)

	report, err := engine.Run(context.Background(), cfg, calculation.Sections{Schedule: true, Options: true})
	require.NoError(t, err)
	assert.Nil(t, report.Simulation)

	// the grid's fifth rate is the quoted rate, and its 360 row matches the schedule
	grid := report.Options
	require.Len(t, grid.Rates, 9)
	assert.True(t, grid.Rates[4].Equal(cfg.Loan.AnnualRate))
	row := grid.Rows[len(grid.Rows)-1]
	require.Equal(t, 360, row.TermPeriods)
	assert.True(t, row.Payments[4].Equal(report.Schedule.Payment))
}

func TestDateWindowNarrowsSample(t *testing.T) {
	cfg := loadExample(t)
	cfg.Data.Start = "2010-01-01"
	cfg.Data.End = "2014-12-31"

	engine := calculation.NewProjectionEngine(marketdata.NewCSVProvider(cfg.Data.Path))
	sample, series, err := engine.HistoricalSample(cfg)
	require.NoError(t, err)
	assert.Equal(t, marketdata.SeriesCaseShiller, series)
	assert.Len(t, sample, 59)
}
