package calculation

import (
	"fmt"

	money "github.com/rpgo/property-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// WorkingScale is the number of fractional digits every intermediate loan
// computation is rounded to. Together with MaxPrincipal (8 integer digits) it
// bounds intermediates to 28 significant digits regardless of loan size.
const WorkingScale int32 = 20

// MaxTermPeriods bounds the loan term, and with it the schedule length.
const MaxTermPeriods = 1200

// MaxPrincipal is the largest principal accepted.
var MaxPrincipal = decimal.New(1, 8)

var (
	one      = decimal.NewFromInt(1)
	minusOne = decimal.NewFromInt(-1)
)

// ComputePayment returns the fixed payment per period that retires principal
// over termPeriods at the given effective rate per period, rounded to cents
// half-even.
func ComputePayment(rate decimal.Decimal, termPeriods int, principal decimal.Decimal) (decimal.Decimal, error) {
	if !principal.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidInput, principal)
	}
	if principal.GreaterThan(MaxPrincipal) {
		return decimal.Zero, fmt.Errorf("%w: principal %s exceeds maximum %s", ErrInvalidInput, principal, MaxPrincipal)
	}
	if termPeriods <= 0 {
		return decimal.Zero, fmt.Errorf("%w: term must be positive, got %d periods", ErrInvalidInput, termPeriods)
	}
	if rate.LessThanOrEqual(minusOne) {
		return decimal.Zero, fmt.Errorf("%w: rate per period %s is non-amortizing", ErrInvalidInput, rate)
	}

	if rate.IsZero() {
		return money.NewMoneyFromDecimal(principal).Split(termPeriods).Decimal, nil
	}

	// principal / [(1 - (1+r)^-n) / r] == principal * r * f / (f - 1), f = (1+r)^n
	f := compoundFactor(rate, termPeriods)
	growth := f.Sub(one)
	if growth.IsZero() {
		// rate too small to register at the working scale
		return money.NewMoneyFromDecimal(principal).Split(termPeriods).Decimal, nil
	}
	payment := principal.Mul(rate).Mul(f).DivRound(growth, WorkingScale)
	return money.RoundCents(payment), nil
}

// compoundFactor computes (1+rate)^n by square-and-multiply, rounding every
// product to WorkingScale.
func compoundFactor(rate decimal.Decimal, n int) decimal.Decimal {
	base := one.Add(rate)
	result := one
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(WorkingScale)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base).Round(WorkingScale)
		}
	}
	return result
}
