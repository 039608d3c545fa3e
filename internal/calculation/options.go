package calculation

import (
	"fmt"
	"sort"

	"github.com/rpgo/property-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultOptionTerms are the terms always compared, 15 and 30 years of months.
var DefaultOptionTerms = []int{180, 360}

const optionRateCount = 9

var (
	defaultRateStep  = decimal.New(25, -4) // 0.25 percentage points
	optionRateOffset = decimal.New(1, -2)  // grid starts 1 point below the quoted rate
)

// PaymentOptions builds a payment grid around a quoted annual rate. Terms
// default to DefaultOptionTerms plus the requested term; rates default to nine
// steps starting one point below the quote. Negative rates are skipped.
func PaymentOptions(principal, annualRate decimal.Decimal, periodsPerYear, termPeriods int, cfg domain.OptionsConfig) (*domain.PaymentGrid, error) {
	if periodsPerYear <= 0 {
		return nil, fmt.Errorf("%w: periods per year must be positive, got %d", ErrInvalidInput, periodsPerYear)
	}

	terms := optionTerms(cfg.Terms, termPeriods)
	rates := optionRates(cfg, annualRate)
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: no non-negative rates to compare around %s", ErrInvalidInput, annualRate)
	}

	grid := &domain.PaymentGrid{
		Principal: principal,
		Rates:     rates,
		Rows:      make([]domain.PaymentGridRow, 0, len(terms)),
	}
	ppy := decimal.NewFromInt(int64(periodsPerYear))
	for _, term := range terms {
		row := domain.PaymentGridRow{TermPeriods: term, Payments: make([]decimal.Decimal, len(rates))}
		for i, rate := range rates {
			payment, err := ComputePayment(rate.DivRound(ppy, WorkingScale), term, principal)
			if err != nil {
				return nil, fmt.Errorf("payment for %d periods at %s: %w", term, rate, err)
			}
			row.Payments[i] = payment
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}

func optionTerms(configured []int, requested int) []int {
	base := configured
	if len(base) == 0 {
		base = DefaultOptionTerms
	}
	seen := make(map[int]bool, len(base)+1)
	terms := make([]int, 0, len(base)+1)
	for _, t := range append(append([]int(nil), base...), requested) {
		if t <= 0 || seen[t] {
			continue
		}
		seen[t] = true
		terms = append(terms, t)
	}
	sort.Ints(terms)
	return terms
}

func optionRates(cfg domain.OptionsConfig, quoted decimal.Decimal) []decimal.Decimal {
	if len(cfg.Rates) > 0 {
		rates := make([]decimal.Decimal, 0, len(cfg.Rates))
		for _, r := range cfg.Rates {
			if !r.IsNegative() {
				rates = append(rates, r)
			}
		}
		return rates
	}

	step := cfg.RateStep
	if !step.IsPositive() {
		step = defaultRateStep
	}
	start := quoted.Sub(optionRateOffset)
	rates := make([]decimal.Decimal, 0, optionRateCount)
	for i := 0; i < optionRateCount; i++ {
		r := start.Add(step.Mul(decimal.NewFromInt(int64(i))))
		if r.IsNegative() {
			continue
		}
		rates = append(rates, r)
	}
	return rates
}
