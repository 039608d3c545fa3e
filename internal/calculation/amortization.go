package calculation

import (
	"fmt"
	"sync"

	"github.com/rpgo/property-projector/internal/domain"
	money "github.com/rpgo/property-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ratioPlaces is the precision of the derived fraction columns.
const ratioPlaces int32 = 10

// AmortizationEngine expands one loan into its schedule. The schedule is built
// once and cached on the instance.
type AmortizationEngine struct {
	terms  domain.LoanTerms
	Logger Logger

	mu       sync.Mutex
	schedule *domain.AmortizationSchedule
}

// NewAmortizationEngine creates an engine for a copy of terms
func NewAmortizationEngine(terms domain.LoanTerms) *AmortizationEngine {
	return &AmortizationEngine{
		terms:  terms,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (e *AmortizationEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Terms returns the loan terms this engine was built for.
func (e *AmortizationEngine) Terms() domain.LoanTerms {
	return e.terms
}

// EffectiveRate returns the annual rate divided by the compounding periods per year.
func EffectiveRate(terms domain.LoanTerms) decimal.Decimal {
	return terms.AnnualRate.DivRound(decimal.NewFromInt(int64(terms.PeriodsPerYear)), WorkingScale)
}

// ValidateLoanTerms rejects terms that cannot produce a schedule.
func ValidateLoanTerms(terms domain.LoanTerms) error {
	if !terms.Principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidInput, terms.Principal)
	}
	if terms.Principal.GreaterThan(MaxPrincipal) {
		return fmt.Errorf("%w: principal %s exceeds maximum %s", ErrInvalidInput, terms.Principal, MaxPrincipal)
	}
	if terms.PeriodsPerYear <= 0 {
		return fmt.Errorf("%w: periods per year must be positive, got %d", ErrInvalidInput, terms.PeriodsPerYear)
	}
	if terms.TermPeriods <= 0 {
		return fmt.Errorf("%w: term must be positive, got %d periods", ErrInvalidInput, terms.TermPeriods)
	}
	if terms.TermPeriods > MaxTermPeriods {
		return fmt.Errorf("%w: term of %d periods exceeds maximum %d", ErrInvalidInput, terms.TermPeriods, MaxTermPeriods)
	}
	if terms.PropertyValue.IsNegative() {
		return fmt.Errorf("%w: property value cannot be negative, got %s", ErrInvalidInput, terms.PropertyValue)
	}
	if EffectiveRate(terms).LessThanOrEqual(minusOne) {
		return fmt.Errorf("%w: annual rate %s is non-amortizing", ErrInvalidInput, terms.AnnualRate)
	}
	return nil
}

// GenerateSchedule returns the amortization schedule, computing it on first use.
func (e *AmortizationEngine) GenerateSchedule() (*domain.AmortizationSchedule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.schedule != nil {
		e.Logger.Debugf("amortization: reusing cached schedule (%d periods)", e.schedule.Len())
		return e.schedule, nil
	}

	schedule, err := buildSchedule(e.terms)
	if err != nil {
		return nil, err
	}
	e.Logger.Debugf("amortization: %d periods, payment %s, total interest %s",
		schedule.Len(), schedule.Payment.StringFixed(2), schedule.TotalInterest.StringFixed(2))
	e.schedule = schedule
	return schedule, nil
}

// buildSchedule iterates period by period until the balance reaches zero. The
// principal payment is capped at the outstanding balance, and the last scheduled
// period retires whatever cent rounding of the payment left over, so the final
// ending principal is exactly zero.
func buildSchedule(terms domain.LoanTerms) (*domain.AmortizationSchedule, error) {
	if err := ValidateLoanTerms(terms); err != nil {
		return nil, err
	}

	rate := EffectiveRate(terms)
	payment, err := ComputePayment(rate, terms.TermPeriods, terms.Principal)
	if err != nil {
		return nil, err
	}

	limit := 2 * terms.TermPeriods
	periods := make([]domain.Period, 0, terms.TermPeriods+1)
	totalInterest := decimal.Zero
	totalPaid := decimal.Zero
	beginning := terms.Principal

	for n := 1; ; n++ {
		if n > limit {
			return nil, fmt.Errorf("%w: balance %s still outstanding after %d periods",
				ErrScheduleDivergence, beginning.StringFixed(2), limit)
		}

		interest := money.RoundCents(beginning.Mul(rate))
		principalPayment := payment.Sub(interest)
		if !principalPayment.IsPositive() {
			return nil, fmt.Errorf("%w: period %d payment %s does not cover interest %s",
				ErrScheduleDivergence, n, payment.StringFixed(2), interest.StringFixed(2))
		}

		paid := payment
		if principalPayment.GreaterThan(beginning) || n == terms.TermPeriods {
			principalPayment = beginning
			paid = interest.Add(principalPayment)
		}
		ending := beginning.Sub(principalPayment)

		periods = append(periods, domain.Period{
			Number:             n,
			BeginningPrincipal: beginning,
			Payment:            paid,
			Interest:           interest,
			PrincipalPayment:   principalPayment,
			EndingPrincipal:    ending,
			Equity:             terms.PropertyValue.Sub(ending),
		})
		totalInterest = totalInterest.Add(interest)
		totalPaid = totalPaid.Add(paid)

		if !ending.IsPositive() {
			break
		}
		beginning = ending
	}

	for i := range periods {
		p := &periods[i]
		p.PrincipalFraction = domain.NewRatio(p.PrincipalPayment, payment, ratioPlaces)
		p.InterestFraction = domain.NewRatio(p.Interest, payment, ratioPlaces)
		p.DebtFraction = domain.NewRatio(p.EndingPrincipal, terms.PropertyValue, ratioPlaces)
		p.OwnershipFraction = domain.NewRatio(p.Equity, terms.PropertyValue, ratioPlaces)
	}

	return &domain.AmortizationSchedule{
		Terms:         terms,
		EffectiveRate: rate,
		Payment:       payment,
		Periods:       periods,
		TotalInterest: totalInterest,
		TotalPaid:     totalPaid,
	}, nil
}
