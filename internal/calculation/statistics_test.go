package calculation

import (
	"math"
	"testing"

	"github.com/rpgo/property-projector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestPercentile(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	tests := []struct {
		q        float64
		expected float64
	}{
		{0, 1},
		{0.1, 1},
		{0.25, 3},
		{0.5, 5},
		{0.75, 8},
		{1, 10},
	}
	for _, tt := range tests {
		got, err := Percentile(values, tt.q)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "q=%v", tt.q)
	}

	_, err := Percentile(values, 1.5)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Percentile([]float64{math.NaN()}, 0.5)
	assert.ErrorIs(t, err, ErrEmptySample)

	assert.Equal(t, float64(10), values[0], "input must not be reordered")
}

func TestMedian(t *testing.T) {
	m, err := Median([]float64{4, 1, 3, 2})
	require.NoError(t, err)
	assert.Equal(t, 2.5, m)

	m, err = Median([]float64{7, math.Inf(1), 1, 3})
	require.NoError(t, err)
	assert.Equal(t, 3.0, m)

	_, err = Median(nil)
	assert.ErrorIs(t, err, ErrEmptySample)
}

func TestEmpiricalCDF(t *testing.T) {
	cdf := EmpiricalCDF([]float64{3, math.NaN(), 1, 2, math.Inf(-1)})
	require.Equal(t, 3, cdf.Len())
	assert.Equal(t, []float64{1, 2, 3}, cdf.X())
	assert.InDeltaSlice(t, []float64{1.0 / 3, 2.0 / 3, 1}, cdf.Y(), 1e-12)

	ties := EmpiricalCDF([]float64{2, 1, 2, 2})
	ys := ties.Y()
	for i := 1; i < len(ys); i++ {
		assert.GreaterOrEqual(t, ys[i], ys[i-1])
	}
	assert.Equal(t, 1.0, ys[len(ys)-1])

	assert.Equal(t, 0, EmpiricalCDF(nil).Len())
}

// fixedBatch has four runs of two periods ending at 90, 100, 110 and 140.
func fixedBatch() *domain.SimulationBatch {
	return domain.NewSimulationBatch(100, 1, mat.NewDense(4, 3, []float64{
		100, 95, 90,
		100, 100, 100,
		100, 105, 110,
		100, 120, 140,
	}))
}

func TestSummarize(t *testing.T) {
	report, err := Summarize(fixedBatch(), 0.12)
	require.NoError(t, err)

	keys := make([]string, len(report.Rows))
	for i, row := range report.Rows {
		keys[i] = row.Key
	}
	assert.Equal(t, []string{
		RowStartingValue, RowMedianEndingValue, RowAverageEndingValue, RowAboveStartingValue,
		RowBenchmarkValue, RowAboveBenchmark, RowAboveAverageValue, RowMinimumEndingValue,
		RowP25EndingValue, RowP75EndingValue, RowMaximumEndingValue,
	}, keys)

	value := func(key string) domain.SummaryRow {
		row, ok := report.Row(key)
		require.True(t, ok, key)
		return row
	}

	assert.Equal(t, 100.0, value(RowStartingValue).Value)
	assert.Equal(t, 0.0, *value(RowStartingValue).TotalReturn)
	assert.Equal(t, 105.0, value(RowMedianEndingValue).Value)
	assert.Equal(t, 110.0, value(RowAverageEndingValue).Value)
	assert.Equal(t, 90.0, value(RowMinimumEndingValue).Value)
	assert.Equal(t, 90.0, value(RowP25EndingValue).Value)
	assert.Equal(t, 110.0, value(RowP75EndingValue).Value)
	assert.Equal(t, 140.0, value(RowMaximumEndingValue).Value)

	benchmark := value(RowBenchmarkValue)
	assert.InDelta(t, 102.01, benchmark.Value, 1e-9)
	require.NotNil(t, benchmark.AnnualizedReturn)
	assert.InDelta(t, math.Pow(1.0201, 6)-1, *benchmark.AnnualizedReturn, 1e-9)

	maximum := value(RowMaximumEndingValue)
	assert.InDelta(t, 0.4, *maximum.TotalReturn, 1e-12)

	assert.Equal(t, 0.5, value(RowAboveStartingValue).Value, "strictly above: 100 does not count")
	assert.Equal(t, 0.5, value(RowAboveBenchmark).Value)
	assert.Equal(t, 0.25, value(RowAboveAverageValue).Value)
	for _, key := range []string{RowAboveStartingValue, RowAboveBenchmark, RowAboveAverageValue} {
		assert.Nil(t, value(key).TotalReturn, key)
		assert.Nil(t, value(key).AnnualizedReturn, key)
	}

	assert.Equal(t, 4, report.RunCount)
	assert.Equal(t, 2, report.RunLength)
}

func TestSummarizeRejectsEmptyBatch(t *testing.T) {
	_, err := Summarize(nil, 0.02)
	assert.ErrorIs(t, err, ErrInvalidInput)

	flat := domain.NewSimulationBatch(100, 1, mat.NewDense(2, 1, []float64{100, 100}))
	_, err = Summarize(flat, 0.02)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPeriodBands(t *testing.T) {
	bands := PeriodBands(fixedBatch())
	require.Len(t, bands, 3)

	assert.Equal(t, domain.PeriodBand{Period: 0, Median: 100, P25: 100, P75: 100}, bands[0])
	assert.Equal(t, 1, bands[1].Period)
	assert.Equal(t, 102.5, bands[1].Median)
	assert.Equal(t, 95.0, bands[1].P25)
	assert.Equal(t, 105.0, bands[1].P75)
	assert.Equal(t, 105.0, bands[2].Median)
}
