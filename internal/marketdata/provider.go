package marketdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rpgo/property-projector/internal/domain"
	"github.com/rpgo/property-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ErrNoObservations is returned when a series has no usable rows in range.
var ErrNoObservations = errors.New("no observations")

// Provider supplies dated observations of a historical series
type Provider interface {
	Observations(seriesID string, start, end time.Time) ([]domain.Observation, error)
}

// Series is one loaded historical series
type Series struct {
	ID           string               `json:"id"`
	Observations []domain.Observation `json:"observations"`
	First        time.Time            `json:"first"`
	Last         time.Time            `json:"last"`
	Skipped      int                  `json:"skipped"` // rows with a missing or malformed value
}

// CSVProvider reads series from <DataPath>/<SERIES_ID>.csv files in the FRED
// download layout: a header row, then date,value rows, "." marking a missing
// value. Loaded series are kept for the life of the provider.
type CSVProvider struct {
	DataPath string

	mu     sync.Mutex
	series map[string]*Series
}

// NewCSVProvider creates a provider rooted at dataPath
func NewCSVProvider(dataPath string) *CSVProvider {
	return &CSVProvider{
		DataPath: dataPath,
		series:   make(map[string]*Series),
	}
}

// Load reads a series (by identifier or friendly name), once.
func (p *CSVProvider) Load(name string) (*Series, error) {
	id := ResolveSeries(name)

	p.mu.Lock()
	defer p.mu.Unlock()

	if s, ok := p.series[id]; ok {
		return s, nil
	}
	s, err := loadCSVSeries(filepath.Join(p.DataPath, id+".csv"), id)
	if err != nil {
		return nil, fmt.Errorf("failed to load series %s: %w", id, err)
	}
	p.series[id] = s
	return s, nil
}

// Observations returns the observations dated within [start, end]; zero bounds are open.
func (p *CSVProvider) Observations(name string, start, end time.Time) ([]domain.Observation, error) {
	s, err := p.Load(name)
	if err != nil {
		return nil, err
	}
	var out []domain.Observation
	for _, o := range s.Observations {
		if dateutil.InRange(o.Date, start, end) {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: series %s between %s and %s", ErrNoObservations, s.ID,
			formatBound(start), formatBound(end))
	}
	return out, nil
}

// LatestValue returns the most recent observation of a series.
func (p *CSVProvider) LatestValue(name string) (domain.Observation, error) {
	s, err := p.Load(name)
	if err != nil {
		return domain.Observation{}, err
	}
	return s.Observations[len(s.Observations)-1], nil
}

// LatestRate returns the most recent observation of a rate series quoted in
// percent (FRED convention) as a fraction.
func (p *CSVProvider) LatestRate(name string) (decimal.Decimal, time.Time, error) {
	obs, err := p.LatestValue(name)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	return decimal.NewFromFloat(obs.Value).Div(decimal.NewFromInt(100)), obs.Date, nil
}

// loadCSVSeries parses one series file. Rows are kept in file order, which
// FRED guarantees ascending by date.
func loadCSVSeries(path, id string) (*Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}

	s := &Series{ID: id}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) < 2 {
			s.Skipped++
			continue
		}

		date, err := dateutil.ParseObservationDate(strings.TrimSpace(record[0]))
		if err != nil {
			s.Skipped++
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			s.Skipped++ // "." marks a missing value
			continue
		}
		s.Observations = append(s.Observations, domain.Observation{Date: date, Value: value})
	}

	if len(s.Observations) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoObservations, path)
	}
	s.First = s.Observations[0].Date
	s.Last = s.Observations[len(s.Observations)-1].Date
	return s, nil
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "open"
	}
	return t.Format(dateutil.ObservationLayout)
}

// RateQuoter returns the latest quote of a rate series as a fraction.
type RateQuoter interface {
	LatestRate(seriesID string) (decimal.Decimal, time.Time, error)
}
