package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/property-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders a concise view: loan terms, a yearly schedule, the
// payment grid and the simulation summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	return renderConsole(report, false)
}

func renderConsole(report *domain.ProjectionReport, verbose bool) ([]byte, error) {
	if report == nil || (report.Schedule == nil && report.Options == nil && report.Simulation == nil) {
		return nil, ErrEmptyReport
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, RenderTitle("PROPERTY PROJECTION"))
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintln(&buf, mutedStyle.Render("  generated "+report.GeneratedAt.Format("2006-01-02 15:04:05")))
	}
	fmt.Fprintln(&buf)

	if report.Schedule != nil {
		writeLoan(&buf, report.Schedule)
		writeSchedule(&buf, report.Schedule, verbose)
	}
	if report.Options != nil {
		writeOptions(&buf, report.Options)
	}
	if report.Simulation != nil {
		writeSimulation(&buf, report.Simulation, verbose)
	}
	return buf.Bytes(), nil
}

func writeLoan(buf *bytes.Buffer, s *domain.AmortizationSchedule) {
	terms := s.Terms
	years := decimal.NewFromInt(int64(terms.TermPeriods)).DivRound(decimal.NewFromInt(int64(terms.PeriodsPerYear)), 1)
	fmt.Fprintln(buf, "  "+headerStyle.Render("Loan"))
	fmt.Fprint(buf, RenderKeyValues([][2]string{
		{"Principal", FormatCurrency(terms.Principal)},
		{"Property value", FormatCurrency(terms.PropertyValue)},
		{"Annual rate", FormatRate(terms.AnnualRate)},
		{"Term", fmt.Sprintf("%d periods (%s years, %d per year)", terms.TermPeriods, years.String(), terms.PeriodsPerYear)},
		{"Payment", FormatCurrency(s.Payment)},
		{"Total interest", FormatCurrency(s.TotalInterest)},
		{"Total paid", FormatCurrency(s.TotalPaid)},
	}))
	fmt.Fprintln(buf)
}

func writeSchedule(buf *bytes.Buffer, s *domain.AmortizationSchedule, verbose bool) {
	title := "Amortization by year"
	if verbose {
		title = "Amortization schedule"
	}
	t := Table{
		Title:   title,
		Headers: []string{"Period", "Payment", "Interest", "Principal", "Balance", "Equity", "Ownership"},
	}
	ppy := s.Terms.PeriodsPerYear
	for i, p := range s.Periods {
		last := i == len(s.Periods)-1
		if !verbose && p.Number%ppy != 0 && !last {
			continue
		}
		t.Rows = append(t.Rows, []string{
			intToString(p.Number),
			FormatCurrency(p.Payment),
			FormatCurrency(p.Interest),
			FormatCurrency(p.PrincipalPayment),
			FormatCurrency(p.EndingPrincipal),
			FormatCurrency(p.Equity),
			FormatRatio(p.OwnershipFraction),
		})
		if verbose && p.Number%ppy == 0 && !last {
			t.Rows = append(t.Rows, []string{separatorRow})
		}
	}
	fmt.Fprintln(buf, RenderTable(t))
}

func writeOptions(buf *bytes.Buffer, g *domain.PaymentGrid) {
	t := Table{
		Title:   "Payment options for " + FormatCurrency(g.Principal),
		Headers: []string{"Term"},
	}
	for _, r := range g.Rates {
		t.Headers = append(t.Headers, FormatRate(r))
	}
	for _, row := range g.Rows {
		cells := []string{fmt.Sprintf("%d periods", row.TermPeriods)}
		for _, p := range row.Payments {
			cells = append(cells, FormatCurrency(p))
		}
		t.Rows = append(t.Rows, cells)
	}
	fmt.Fprintln(buf, RenderTable(t))
}

func writeSimulation(buf *bytes.Buffer, sim *domain.SimulationResult, verbose bool) {
	summary := sim.Summary
	if summary == nil {
		return
	}

	fmt.Fprintln(buf, "  "+headerStyle.Render("Simulation"))
	pairs := [][2]string{
		{"Runs", fmt.Sprintf("%d x %d periods", summary.RunCount, summary.RunLength)},
		{"Benchmark growth", FormatFraction(summary.BenchmarkRate) + " per year"},
		{"Historical returns", intToString(sim.ReturnsCDF.Len())},
	}
	if sim.SeriesID != "" {
		pairs = append([][2]string{{"Series", sim.SeriesID}}, pairs...)
	}
	if len(sim.Bands) > 1 {
		medians := make([]float64, len(sim.Bands))
		for i, b := range sim.Bands {
			medians[i] = b.Median
		}
		pairs = append(pairs, [2]string{"Median path", RenderSparkline(medians)})
	}
	fmt.Fprint(buf, RenderKeyValues(pairs))
	fmt.Fprintln(buf)

	t := Table{
		Title:   "Ending value distribution",
		Headers: []string{"Statistic", "Value", "Total return", "Annualized"},
	}
	for _, r := range summary.Rows {
		if r.TotalReturn == nil {
			t.Rows = append(t.Rows, []string{r.Label, FormatFraction(r.Value), "", ""})
			continue
		}
		t.Rows = append(t.Rows, []string{
			r.Label,
			FormatFloatCurrency(r.Value),
			signed(FormatFraction(*r.TotalReturn), *r.TotalReturn),
			signed(FormatFraction(*r.AnnualizedReturn), *r.AnnualizedReturn),
		})
	}
	fmt.Fprintln(buf, RenderTable(t))

	if verbose {
		writeBands(buf, sim.Bands)
		writeSampleRuns(buf, sim.SampleRuns)
	}
}
