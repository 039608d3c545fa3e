package output_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpgo/property-projector/internal/calculation"
	"github.com/rpgo/property-projector/internal/domain"
	"github.com/rpgo/property-projector/internal/output"
	"github.com/shopspring/decimal"
)

func scheduleOnlyReport(t *testing.T) *domain.ProjectionReport {
	t.Helper()
	schedule, err := calculation.NewAmortizationEngine(domain.LoanTerms{
		AnnualRate:     decimal.RequireFromString("0.05"),
		PeriodsPerYear: 12,
		TermPeriods:    12,
		Principal:      decimal.NewFromInt(1200),
	}).GenerateSchedule()
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	return &domain.ProjectionReport{Schedule: schedule}
}

func TestGenerateReport(t *testing.T) {
	dir := t.TempDir()
	paths, err := output.GenerateReport(scheduleOnlyReport(t), "json", dir)
	if err != nil {
		t.Fatalf("GenerateReport json error: %v", err)
	}
	if len(paths) != 1 || !strings.HasSuffix(paths[0], ".json") {
		t.Fatalf("unexpected paths %v", paths)
	}
	if _, err := os.Stat(paths[0]); err != nil {
		t.Fatalf("report not written: %v", err)
	}
}

func TestGenerateReportAllSkipsEmptySections(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	paths, err := output.GenerateReport(scheduleOnlyReport(t), "all", dir)
	if err != nil {
		t.Fatalf("GenerateReport all error: %v", err)
	}
	// summary-csv has no simulation to render
	if len(paths) != 4 {
		t.Fatalf("expected 4 files, got %v", paths)
	}
	for _, p := range paths {
		if strings.Contains(p, "summary-csv") {
			t.Fatalf("summary csv written without a simulation: %s", p)
		}
	}
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	_, err := output.GenerateReport(scheduleOnlyReport(t), "definitely-not-a-format", t.TempDir())
	if !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "Try one of:") {
		t.Fatalf("error message missing suggestions: %s", err)
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := output.Render(&buf, scheduleOnlyReport(t), "csv"); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "period,beginning_principal") {
		t.Fatalf("unexpected csv output: %q", buf.String())
	}
}
