package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/property-projector/internal/domain"
)

// ConsoleVerboseFormatter renders every schedule period and adds the yearly
// value bands and the sample run paths to the console view.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	return renderConsole(report, true)
}

// bandStep is the period spacing of the band table.
const bandStep = 12

func writeBands(buf *bytes.Buffer, bands []domain.PeriodBand) {
	if len(bands) == 0 {
		return
	}
	t := Table{
		Title:   "Simulated value by period",
		Headers: []string{"Period", "25th percentile", "Median", "75th percentile"},
	}
	for i, b := range bands {
		if b.Period%bandStep != 0 && i != len(bands)-1 {
			continue
		}
		t.Rows = append(t.Rows, []string{
			intToString(b.Period),
			FormatFloatCurrency(b.P25),
			FormatFloatCurrency(b.Median),
			FormatFloatCurrency(b.P75),
		})
	}
	fmt.Fprintln(buf, RenderTable(t))
}

func writeSampleRuns(buf *bytes.Buffer, runs [][]float64) {
	if len(runs) == 0 {
		return
	}
	fmt.Fprintln(buf, "  "+headerStyle.Render("Sample runs"))
	pairs := make([][2]string, 0, len(runs))
	for i, run := range runs {
		pairs = append(pairs, [2]string{
			fmt.Sprintf("Run %d", i+1),
			fmt.Sprintf("%s  %s", RenderSparkline(run), FormatFloatCurrency(run[len(run)-1])),
		})
	}
	fmt.Fprint(buf, RenderKeyValues(pairs))
	fmt.Fprintln(buf)
}
