package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/property-projector/internal/domain"
)

// SummaryCSVFormatter exports the simulation in long form: the summary rows,
// then both empirical CDFs, then the per-period bands. Columns that do not
// apply to a section are empty.
type SummaryCSVFormatter struct{}

func (c SummaryCSVFormatter) Name() string { return "summary-csv" }

func (c SummaryCSVFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	if report == nil || report.Simulation == nil || report.Simulation.Summary == nil {
		return nil, ErrEmptyReport
	}
	sim := report.Simulation

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"section", "key", "label", "value", "total_return", "annualized_return", "probability"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	var rows [][]string
	for _, r := range sim.Summary.Rows {
		rows = append(rows, []string{"summary", r.Key, r.Label, floatToString(r.Value),
			optionalFloat(r.TotalReturn), optionalFloat(r.AnnualizedReturn), ""})
	}
	rows = appendCDF(rows, "ending_value_cdf", sim.EndingCDF)
	rows = appendCDF(rows, "returns_cdf", sim.ReturnsCDF)
	for _, b := range sim.Bands {
		period := intToString(b.Period)
		rows = append(rows,
			[]string{"band", period, "p25", floatToString(b.P25), "", "", ""},
			[]string{"band", period, "median", floatToString(b.Median), "", "", ""},
			[]string{"band", period, "p75", floatToString(b.P75), "", "", ""},
		)
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendCDF(rows [][]string, section string, cdf domain.EmpiricalCDF) [][]string {
	for i, p := range cdf.Points {
		rows = append(rows, []string{section, intToString(i + 1), "", floatToString(p.X), "", "", floatToString(p.Y)})
	}
	return rows
}
