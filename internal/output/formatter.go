package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rpgo/property-projector/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *domain.ProjectionReport) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// nowFunc stamps output file names (override in tests).
var nowFunc = time.Now

// WriteFormatted runs a formatter and writes its output to a timestamped file
// in dir. It returns the path written.
func WriteFormatted(f Formatter, report *domain.ProjectionReport, dir, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	name := fmt.Sprintf("property_report_%s_%s.%s", f.Name(), nowFunc().Format("20060102_150405"), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// registration pairs a formatter with the extension of the files it writes.
type registration struct {
	formatter Formatter
	ext       string
}

// registry lists the built-in formatters in the order "all" writes them.
var registry = []registration{
	{ConsoleFormatter{}, "txt"},
	{ConsoleVerboseFormatter{}, "txt"},
	{JSONFormatter{}, "json"},
	{ScheduleCSVFormatter{}, "csv"},
	{SummaryCSVFormatter{}, "csv"},
}

func lookupRegistration(name string) (registration, bool) {
	n := NormalizeFormatName(name)
	for _, r := range registry {
		if r.formatter.Name() == n {
			return r, true
		}
	}
	return registration{}, false
}

// GetFormatterByName fetches a registered formatter, resolving aliases.
func GetFormatterByName(name string) Formatter {
	if r, ok := lookupRegistration(name); ok {
		return r.formatter
	}
	return nil
}

// ExtensionFor returns the file extension used when writing a format.
func ExtensionFor(name string) string {
	if r, ok := lookupRegistration(name); ok {
		return r.ext
	}
	return "txt"
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":         "console",
	"table":        "console",
	"verbose":      "console-verbose",
	"full":         "console-verbose",
	"json-pretty":  "json",
	"schedule":     "csv",
	"schedule-csv": "csv",
	"csv-summary":  "summary-csv",
	"simulation":   "summary-csv",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(registry))
	for _, r := range registry {
		names = append(names, r.formatter.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
