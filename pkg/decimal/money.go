// Package decimal holds the currency rounding rules shared by the loan calculations.
package decimal

import (
	"github.com/shopspring/decimal"
)

// CentPlaces is the number of fractional digits kept for settled currency amounts.
const CentPlaces = 2

// Money is a settled currency amount. Arithmetic stays on the embedded
// decimal; rounding to cents only happens through Round.
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal wraps d without rounding it.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// ParseMoney parses a plain decimal string such as "2997.75".
func ParseMoney(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds to cents using round-half-even (banker's rounding).
func (m Money) Round() Money {
	return Money{RoundCents(m.Decimal)}
}

// RoundCents is Round for callers holding a bare decimal.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(CentPlaces)
}

// Split divides the amount into n level installments rounded to cents. A
// non-positive n yields zero.
func (m Money) Split(n int) Money {
	if n <= 0 {
		return Money{decimal.Zero}
	}
	return Money{m.Decimal.Div(decimal.NewFromInt(int64(n)))}.Round()
}

// String returns the amount with exactly two fractional digits (half-even).
func (m Money) String() string {
	return m.Decimal.StringFixedBank(CentPlaces)
}
