package calculation

import (
	"fmt"
	"math"
	"sort"

	"github.com/rpgo/property-projector/internal/domain"
	"github.com/rpgo/property-projector/pkg/dateutil"
)

// CleanSample returns the finite observations of raw, in order. It fails with
// ErrEmptySample if none remain.
func CleanSample(raw []float64) ([]float64, error) {
	cleaned := finite(raw)
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: %d raw observations, none finite", ErrEmptySample, len(raw))
	}
	return cleaned, nil
}

func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// MonthlyReturns resamples observations to the last value of each calendar
// month and returns the month-over-month fractional change. Months without an
// observation, and the months right after them, yield NaN; the result has one
// entry per month after the first.
func MonthlyReturns(observations []domain.Observation) []float64 {
	if len(observations) == 0 {
		return nil
	}

	sorted := append([]domain.Observation(nil), observations...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	last := make(map[dateutil.MonthKey]float64)
	for _, o := range sorted {
		last[dateutil.MonthOf(o.Date)] = o.Value
	}

	first := dateutil.MonthOf(sorted[0].Date)
	final := dateutil.MonthOf(sorted[len(sorted)-1].Date)
	returns := make([]float64, 0, dateutil.MonthsBetween(first, final))

	prev, prevOK := last[first]
	for m := first.Next(); !final.Before(m); m = m.Next() {
		cur, ok := last[m]
		if ok && prevOK {
			returns = append(returns, cur/prev-1)
		} else {
			returns = append(returns, math.NaN())
		}
		prev, prevOK = cur, ok
	}
	return returns
}
