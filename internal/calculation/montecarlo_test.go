package calculation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func testMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		StartingValue: 100000,
		Sample:        []float64{-0.01, 0.01},
		RunLength:     12,
		RunCount:      1000,
		Seed:          12345,
	}
}

func TestMonteCarloSimulatorBatchShape(t *testing.T) {
	mcs, err := NewMonteCarloSimulator(testMonteCarloConfig())
	require.NoError(t, err)

	batch, err := mcs.Simulate()
	require.NoError(t, err)
	assert.Equal(t, 1000, batch.RunCount)
	assert.Equal(t, 12, batch.RunLength)
	assert.Equal(t, int64(12345), batch.Seed)

	rows, cols := batch.Matrix().Dims()
	assert.Equal(t, 1000, rows)
	assert.Equal(t, 13, cols)

	for _, v := range batch.Period(0) {
		assert.Equal(t, 100000.0, v)
	}

	// each step applies exactly one sampled return
	run := batch.Run(7)
	for i := 1; i < len(run); i++ {
		step := run[i]/run[i-1] - 1
		assert.True(t, math.Abs(step-0.01) < 1e-9 || math.Abs(step+0.01) < 1e-9, "step %d was %v", i, step)
	}
}

func TestMonteCarloSimulatorLawOfLargeNumbers(t *testing.T) {
	mcs, err := NewMonteCarloSimulator(testMonteCarloConfig())
	require.NoError(t, err)

	batch, err := mcs.Simulate()
	require.NoError(t, err)

	mean := stat.Mean(batch.Final(), nil)
	expected := 100000 * math.Pow(1+stat.Mean(mcs.Config().Sample, nil), 12)
	assert.InDelta(t, expected, mean, expected*0.01)
}

func TestMonteCarloSimulatorDeterministic(t *testing.T) {
	cfg := testMonteCarloConfig()
	cfg.RunCount = 250

	first, err := NewMonteCarloSimulator(cfg)
	require.NoError(t, err)
	second, err := NewMonteCarloSimulator(cfg)
	require.NoError(t, err)

	a, err := first.Simulate()
	require.NoError(t, err)
	b, err := second.Simulate()
	require.NoError(t, err)
	assert.Equal(t, a.Final(), b.Final(), "same seed must reproduce the batch")

	cfg.Seed = 54321
	third, err := NewMonteCarloSimulator(cfg)
	require.NoError(t, err)
	c, err := third.Simulate()
	require.NoError(t, err)
	assert.NotEqual(t, a.Final(), c.Final())
}

func TestMonteCarloSimulatorIndependentOfWorkers(t *testing.T) {
	cfg := testMonteCarloConfig()
	cfg.RunCount = 333

	var finals [][]float64
	for _, workers := range []int{1, 3, 8} {
		cfg.Workers = workers
		mcs, err := NewMonteCarloSimulator(cfg)
		require.NoError(t, err)
		batch, err := mcs.Simulate()
		require.NoError(t, err)
		finals = append(finals, batch.Final())
	}
	assert.Equal(t, finals[0], finals[1])
	assert.Equal(t, finals[0], finals[2])
}

func TestMonteCarloSimulatorMemoizes(t *testing.T) {
	mcs, err := NewMonteCarloSimulator(testMonteCarloConfig())
	require.NoError(t, err)

	b1, err := mcs.Simulate()
	require.NoError(t, err)
	b2, err := mcs.Simulate()
	require.NoError(t, err)
	assert.Same(t, b1, b2)

	s1, err := mcs.Summary()
	require.NoError(t, err)
	s2, err := mcs.Summary()
	require.NoError(t, err)
	assert.Same(t, s1, s2)

	row, ok := s1.Row(RowStartingValue)
	require.True(t, ok)
	assert.Equal(t, 100000.0, row.Value)
	assert.Equal(t, 0.02, s1.BenchmarkRate, "zero benchmark rate takes the default")
}

func TestMonteCarloSimulatorDefaults(t *testing.T) {
	orig := seedFunc
	SetSeedFunc(func() int64 { return 42 })
	defer SetSeedFunc(orig)

	mcs, err := NewMonteCarloSimulator(MonteCarloConfig{
		StartingValue: 250000,
		Sample:        []float64{0.003, math.NaN(), -0.002},
	})
	require.NoError(t, err)

	cfg := mcs.Config()
	assert.Equal(t, DefaultRunLength, cfg.RunLength)
	assert.Equal(t, DefaultRunCount, cfg.RunCount)
	assert.Equal(t, DefaultBenchmarkAnnualGrowthRate, cfg.BenchmarkAnnualGrowthRate)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Positive(t, cfg.Workers)
	assert.Equal(t, []float64{0.003, -0.002}, cfg.Sample)

	cfg.Sample[0] = 99
	assert.Equal(t, 0.003, mcs.Config().Sample[0], "Config returns a copy")
}

func TestNewMonteCarloSimulatorErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MonteCarloConfig)
		target error
	}{
		{"zero starting value", func(c *MonteCarloConfig) { c.StartingValue = 0 }, ErrInvalidInput},
		{"infinite starting value", func(c *MonteCarloConfig) { c.StartingValue = math.Inf(1) }, ErrInvalidInput},
		{"negative run length", func(c *MonteCarloConfig) { c.RunLength = -1 }, ErrInvalidInput},
		{"negative run count", func(c *MonteCarloConfig) { c.RunCount = -5 }, ErrInvalidInput},
		{"NaN benchmark", func(c *MonteCarloConfig) { c.BenchmarkAnnualGrowthRate = math.NaN() }, ErrInvalidInput},
		{"empty sample", func(c *MonteCarloConfig) { c.Sample = []float64{math.NaN()} }, ErrEmptySample},
		{"too many cells", func(c *MonteCarloConfig) { c.RunLength = 10000; c.RunCount = 10000 }, ErrConfigurationTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testMonteCarloConfig()
			tt.mutate(&cfg)
			_, err := NewMonteCarloSimulator(cfg)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestMonteCarloSimulatorDerivedViews(t *testing.T) {
	cfg := testMonteCarloConfig()
	cfg.RunCount = 40
	mcs, err := NewMonteCarloSimulator(cfg)
	require.NoError(t, err)

	returns := mcs.ReturnsCDF()
	assert.Equal(t, []float64{-0.01, 0.01}, returns.X())
	assert.Equal(t, []float64{0.5, 1}, returns.Y())

	ending, err := mcs.EndingValuesCDF()
	require.NoError(t, err)
	assert.Equal(t, 40, ending.Len())
	assert.Equal(t, 1.0, ending.Y()[ending.Len()-1])

	bands, err := mcs.PeriodBands()
	require.NoError(t, err)
	require.Len(t, bands, 13)
	for _, b := range bands {
		assert.LessOrEqual(t, b.P25, b.Median)
		assert.LessOrEqual(t, b.Median, b.P75)
	}

	runs, err := mcs.SampleRuns(5)
	require.NoError(t, err)
	require.Len(t, runs, 5)
	assert.Len(t, runs[0], 13)

	runs, err = mcs.SampleRuns(100)
	require.NoError(t, err)
	assert.Len(t, runs, 40)
}
