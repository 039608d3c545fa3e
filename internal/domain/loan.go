package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// LoanTerms describes a fixed-rate, level-payment loan secured by a property
type LoanTerms struct {
	AnnualRate     decimal.Decimal `yaml:"annual_rate" json:"annual_rate"` // fraction, 0.065 = 6.5%
	PeriodsPerYear int             `yaml:"periods_per_year" json:"periods_per_year"`
	TermPeriods    int             `yaml:"term_periods" json:"term_periods"`
	Principal      decimal.Decimal `yaml:"principal" json:"principal"`
	PropertyValue  decimal.Decimal `yaml:"property_value" json:"property_value"`
}

// Ratio is a derived fraction that may be undefined (division by zero).
type Ratio struct {
	Value decimal.Decimal
	Valid bool
}

// UndefinedRatio is the marker stored when the denominator is zero.
var UndefinedRatio = Ratio{}

// NewRatio returns num/den rounded to places, or UndefinedRatio when den is zero.
func NewRatio(num, den decimal.Decimal, places int32) Ratio {
	if den.IsZero() {
		return UndefinedRatio
	}
	return Ratio{Value: num.DivRound(den, places), Valid: true}
}

func (r Ratio) String() string {
	if !r.Valid {
		return "undefined"
	}
	return r.Value.String()
}

// MarshalJSON encodes an undefined ratio as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// Period is one row of an amortization schedule
type Period struct {
	Number             int             `json:"period"`
	BeginningPrincipal decimal.Decimal `json:"beginning_principal"`
	Payment            decimal.Decimal `json:"payment"`
	Interest           decimal.Decimal `json:"interest"`
	PrincipalPayment   decimal.Decimal `json:"principal_payment"`
	EndingPrincipal    decimal.Decimal `json:"ending_principal"`
	Equity             decimal.Decimal `json:"equity"`

	// Payment-relative ratios use the scheduled payment as denominator.
	PrincipalFraction Ratio `json:"principal_fraction"`
	InterestFraction  Ratio `json:"interest_fraction"`
	// Value-relative ratios use the property value as denominator.
	DebtFraction      Ratio `json:"debt_fraction"`
	OwnershipFraction Ratio `json:"ownership_fraction"`
}

// AmortizationSchedule is the full period-by-period expansion of a loan
type AmortizationSchedule struct {
	Terms         LoanTerms       `json:"terms"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	Payment       decimal.Decimal `json:"payment"`
	Periods       []Period        `json:"periods"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
}

// Len returns the number of periods in the schedule.
func (s *AmortizationSchedule) Len() int { return len(s.Periods) }

// Final returns the last period. The schedule is never empty once generated.
func (s *AmortizationSchedule) Final() Period {
	return s.Periods[len(s.Periods)-1]
}

// PaymentGridRow holds the payments for one term across every rate of the grid
type PaymentGridRow struct {
	TermPeriods int               `json:"term_periods"`
	Payments    []decimal.Decimal `json:"payments"`
}

// PaymentGrid compares level payments across terms and annual rates
type PaymentGrid struct {
	Principal decimal.Decimal   `json:"principal"`
	Rates     []decimal.Decimal `json:"rates"`
	Rows      []PaymentGridRow  `json:"rows"`
}
