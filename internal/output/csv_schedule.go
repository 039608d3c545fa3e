package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/property-projector/internal/domain"
)

// ScheduleCSVFormatter exports one row per amortization period. Undefined
// ratios are left empty.
type ScheduleCSVFormatter struct{}

func (c ScheduleCSVFormatter) Name() string { return "csv" }

func (c ScheduleCSVFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	if report == nil || report.Schedule == nil {
		return nil, ErrEmptyReport
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"period", "beginning_principal", "payment", "interest", "principal_payment", "ending_principal",
		"equity", "principal_fraction", "interest_fraction", "debt_fraction", "ownership_fraction",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range report.Schedule.Periods {
		row := []string{
			intToString(p.Number),
			p.BeginningPrincipal.StringFixed(2),
			p.Payment.StringFixed(2),
			p.Interest.StringFixed(2),
			p.PrincipalPayment.StringFixed(2),
			p.EndingPrincipal.StringFixed(2),
			p.Equity.StringFixed(2),
			ratioCell(p.PrincipalFraction),
			ratioCell(p.InterestFraction),
			ratioCell(p.DebtFraction),
			ratioCell(p.OwnershipFraction),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
