package calculation

import (
	"fmt"
	"math"
	"sort"

	"github.com/rpgo/property-projector/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary row keys, in report order.
const (
	RowStartingValue      = "starting_value"
	RowMedianEndingValue  = "median_ending_value"
	RowAverageEndingValue = "average_ending_value"
	RowAboveStartingValue = "fraction_above_starting_value"
	RowBenchmarkValue     = "benchmark_ending_value"
	RowAboveBenchmark     = "fraction_above_benchmark"
	RowAboveAverageValue  = "fraction_above_average_ending_value"
	RowMinimumEndingValue = "minimum_ending_value"
	RowP25EndingValue     = "p25_ending_value"
	RowP75EndingValue     = "p75_ending_value"
	RowMaximumEndingValue = "maximum_ending_value"
)

const monthsPerYear = 12.0

// Summarize reduces a batch's ending values to the labeled statistics of a
// SummaryReport. The benchmark compounds benchmarkAnnualGrowthRate monthly over
// the run length.
func Summarize(batch *domain.SimulationBatch, benchmarkAnnualGrowthRate float64) (*domain.SummaryReport, error) {
	if batch == nil || batch.RunCount == 0 {
		return nil, fmt.Errorf("%w: empty simulation batch", ErrInvalidInput)
	}
	if batch.RunLength <= 0 {
		return nil, fmt.Errorf("%w: run length must be positive, got %d", ErrInvalidInput, batch.RunLength)
	}

	ending := batch.Final()
	sorted := append([]float64(nil), ending...)
	sort.Float64s(sorted)

	start := batch.StartingValue
	average := stat.Mean(ending, nil)
	benchmark := start * math.Pow(1+benchmarkAnnualGrowthRate/monthsPerYear, float64(batch.RunLength))

	value := func(key, label string, v float64) domain.SummaryRow {
		total := v/start - 1
		annualized := math.Pow(1+total, monthsPerYear/float64(batch.RunLength)) - 1
		return domain.SummaryRow{Key: key, Label: label, Value: v, TotalReturn: &total, AnnualizedReturn: &annualized}
	}
	fraction := func(key, label string, threshold float64) domain.SummaryRow {
		return domain.SummaryRow{Key: key, Label: label, Value: fractionAbove(sorted, threshold)}
	}

	rows := []domain.SummaryRow{
		value(RowStartingValue, "Starting value", start),
		value(RowMedianEndingValue, "Median ending value", medianSorted(sorted)),
		value(RowAverageEndingValue, "Average ending value", average),
		fraction(RowAboveStartingValue, "Fraction above starting value", start),
		value(RowBenchmarkValue, "Benchmark ending value", benchmark),
		fraction(RowAboveBenchmark, "Fraction above benchmark", benchmark),
		fraction(RowAboveAverageValue, "Fraction above average ending value", average),
		value(RowMinimumEndingValue, "Minimum ending value", floats.Min(ending)),
		value(RowP25EndingValue, "25th percentile", quantileSorted(sorted, 0.25)),
		value(RowP75EndingValue, "75th percentile", quantileSorted(sorted, 0.75)),
		value(RowMaximumEndingValue, "Maximum ending value", floats.Max(ending)),
	}

	return &domain.SummaryReport{
		StartingValue: start,
		RunLength:     batch.RunLength,
		RunCount:      batch.RunCount,
		BenchmarkRate: benchmarkAnnualGrowthRate,
		Rows:          rows,
	}, nil
}

// Percentile returns the inverted-CDF q-quantile of the finite values: the
// smallest observation x with at least a fraction q of the sample <= x.
func Percentile(values []float64, q float64) (float64, error) {
	if q < 0 || q > 1 || math.IsNaN(q) {
		return 0, fmt.Errorf("%w: quantile %v outside [0, 1]", ErrInvalidInput, q)
	}
	sorted := finite(values)
	if len(sorted) == 0 {
		return 0, fmt.Errorf("%w: no finite values", ErrEmptySample)
	}
	sort.Float64s(sorted)
	return quantileSorted(sorted, q), nil
}

// Median returns the middle finite value, averaging the two central values of an
// even-sized sample.
func Median(values []float64) (float64, error) {
	sorted := finite(values)
	if len(sorted) == 0 {
		return 0, fmt.Errorf("%w: no finite values", ErrEmptySample)
	}
	sort.Float64s(sorted)
	return medianSorted(sorted), nil
}

// EmpiricalCDF drops non-finite values, sorts the rest, and assigns the i-th
// smallest (1-indexed) the cumulative probability i/n.
func EmpiricalCDF(values []float64) domain.EmpiricalCDF {
	xs := finite(values)
	sort.Float64s(xs)
	n := float64(len(xs))
	points := make([]domain.CDFPoint, len(xs))
	for i, x := range xs {
		points[i] = domain.CDFPoint{X: x, Y: float64(i+1) / n}
	}
	return domain.EmpiricalCDF{Points: points}
}

// PeriodBands returns the median and quartiles across runs for every period.
func PeriodBands(batch *domain.SimulationBatch) []domain.PeriodBand {
	bands := make([]domain.PeriodBand, batch.RunLength+1)
	for t := range bands {
		col := batch.Period(t)
		sort.Float64s(col)
		bands[t] = domain.PeriodBand{
			Period: t,
			Median: medianSorted(col),
			P25:    quantileSorted(col, 0.25),
			P75:    quantileSorted(col, 0.75),
		}
	}
	return bands
}

func quantileSorted(sorted []float64, q float64) float64 {
	return stat.Quantile(q, stat.Empirical, sorted, nil)
}

func medianSorted(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// fractionAbove returns the share of sorted strictly greater than threshold.
func fractionAbove(sorted []float64, threshold float64) float64 {
	idx := sort.Search(len(sorted), func(i int) bool { return sorted[i] > threshold })
	return float64(len(sorted)-idx) / float64(len(sorted))
}
