package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/property-projector/internal/domain"
)

// GenerateReport writes report in the named format to timestamped files in dir.
// The format "all" writes every registered formatter that can render the report.
func GenerateReport(report *domain.ProjectionReport, format, dir string) ([]string, error) {
	if strings.EqualFold(strings.TrimSpace(format), "all") {
		var written []string
		for _, r := range registry {
			path, err := WriteFormatted(r.formatter, report, dir, r.ext)
			if errors.Is(err, ErrEmptyReport) {
				continue
			}
			if err != nil {
				return written, err
			}
			written = append(written, path)
		}
		return written, nil
	}

	f, err := lookup(format)
	if err != nil {
		return nil, err
	}
	path, err := WriteFormatted(f, report, dir, ExtensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// Render formats report and copies it to w, typically stdout.
func Render(w io.Writer, report *domain.ProjectionReport, format string) error {
	f, err := lookup(format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func lookup(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	// enrich error with available formatters and aliases
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
