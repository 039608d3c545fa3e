package calculation

import (
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/rpgo/property-projector/internal/domain"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultBenchmarkAnnualGrowthRate = 0.02
	DefaultRunLength                 = 360
	DefaultRunCount                  = 1000

	// MaxSimulationCells caps RunCount * (RunLength+1), about 400MB of float64.
	MaxSimulationCells = 50_000_000

	// runsPerStream is the number of consecutive runs drawn from one generator.
	// It is part of the reproducibility contract: changing it changes results.
	runsPerStream = 32
)

// MonteCarloConfig holds configuration for a property value simulation.
// Zero values of BenchmarkAnnualGrowthRate, RunLength, RunCount and Workers
// take their defaults; a zero Seed draws a fresh seed at construction.
type MonteCarloConfig struct {
	StartingValue             float64
	Sample                    []float64 // periodic returns; non-finite entries are dropped
	BenchmarkAnnualGrowthRate float64
	RunLength                 int
	RunCount                  int
	Seed                      int64
	Workers                   int
}

// MonteCarloSimulator bootstrap-resamples historical returns into simulated
// value paths. Results are computed once per instance and cached.
type MonteCarloSimulator struct {
	config MonteCarloConfig
	Logger Logger

	mu      sync.Mutex
	batch   *domain.SimulationBatch
	summary *domain.SummaryReport
}

// NewMonteCarloSimulator validates cfg, cleans its sample and applies defaults.
func NewMonteCarloSimulator(cfg MonteCarloConfig) (*MonteCarloSimulator, error) {
	if !(cfg.StartingValue > 0) || math.IsInf(cfg.StartingValue, 0) {
		return nil, fmt.Errorf("%w: starting value must be positive and finite, got %v", ErrInvalidInput, cfg.StartingValue)
	}
	if cfg.RunLength < 0 || cfg.RunCount < 0 {
		return nil, fmt.Errorf("%w: run length %d and run count %d cannot be negative", ErrInvalidInput, cfg.RunLength, cfg.RunCount)
	}
	if math.IsNaN(cfg.BenchmarkAnnualGrowthRate) || math.IsInf(cfg.BenchmarkAnnualGrowthRate, 0) {
		return nil, fmt.Errorf("%w: benchmark growth rate must be finite", ErrInvalidInput)
	}

	if cfg.BenchmarkAnnualGrowthRate == 0 {
		cfg.BenchmarkAnnualGrowthRate = DefaultBenchmarkAnnualGrowthRate
	}
	if cfg.RunLength == 0 {
		cfg.RunLength = DefaultRunLength
	}
	if cfg.RunCount == 0 {
		cfg.RunCount = DefaultRunCount
	}
	if cfg.RunLength >= MaxSimulationCells || cfg.RunCount > MaxSimulationCells/(cfg.RunLength+1) {
		return nil, fmt.Errorf("%w: %d runs x %d periods exceeds %d cells",
			ErrConfigurationTooLarge, cfg.RunCount, cfg.RunLength+1, MaxSimulationCells)
	}

	sample, err := CleanSample(cfg.Sample)
	if err != nil {
		return nil, err
	}
	cfg.Sample = sample

	if cfg.Seed == 0 {
		cfg.Seed = seedFunc()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	return &MonteCarloSimulator{
		config: cfg,
		Logger: NopLogger{},
	}, nil
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (mcs *MonteCarloSimulator) SetLogger(l Logger) {
	if l == nil {
		mcs.Logger = NopLogger{}
		return
	}
	mcs.Logger = l
}

// Config returns the effective configuration, with the cleaned sample and the
// seed actually used.
func (mcs *MonteCarloSimulator) Config() MonteCarloConfig {
	cfg := mcs.config
	cfg.Sample = append([]float64(nil), cfg.Sample...)
	return cfg
}

// Simulate draws the batch on first call and returns the cached batch afterwards.
func (mcs *MonteCarloSimulator) Simulate() (*domain.SimulationBatch, error) {
	mcs.mu.Lock()
	defer mcs.mu.Unlock()
	return mcs.simulateLocked()
}

func (mcs *MonteCarloSimulator) simulateLocked() (*domain.SimulationBatch, error) {
	if mcs.batch != nil {
		return mcs.batch, nil
	}

	cfg := mcs.config
	cols := cfg.RunLength + 1
	data := make([]float64, cfg.RunCount*cols)
	streams := (cfg.RunCount + runsPerStream - 1) / runsPerStream

	mcs.Logger.Debugf("monte carlo: %d runs x %d periods, %d streams on %d workers, seed %d",
		cfg.RunCount, cfg.RunLength, streams, cfg.Workers, cfg.Seed)

	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for stream := 0; stream < streams; stream++ {
		g.Go(func() error {
			mcs.simulateStream(stream, data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("monte carlo simulation failed: %w", err)
	}

	mcs.batch = domain.NewSimulationBatch(cfg.StartingValue, cfg.Seed, mat.NewDense(cfg.RunCount, cols, data))
	return mcs.batch, nil
}

// simulateStream fills the rows of one block of runs. Block k always draws from
// PCG(seed, k), so results do not depend on the number of workers.
func (mcs *MonteCarloSimulator) simulateStream(stream int, data []float64) {
	cfg := mcs.config
	cols := cfg.RunLength + 1
	sample := cfg.Sample
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(stream)))

	first := stream * runsPerStream
	last := min(first+runsPerStream, cfg.RunCount)
	for run := first; run < last; run++ {
		row := data[run*cols : (run+1)*cols]
		row[0] = cfg.StartingValue
		for t := 1; t < cols; t++ {
			row[t] = row[t-1] * (1 + sample[rng.IntN(len(sample))])
		}
	}
}

// Summary returns the cached summary report, simulating first if needed.
func (mcs *MonteCarloSimulator) Summary() (*domain.SummaryReport, error) {
	mcs.mu.Lock()
	defer mcs.mu.Unlock()

	if mcs.summary != nil {
		return mcs.summary, nil
	}
	batch, err := mcs.simulateLocked()
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(batch, mcs.config.BenchmarkAnnualGrowthRate)
	if err != nil {
		return nil, err
	}
	mcs.summary = summary
	return summary, nil
}

// ReturnsCDF is the empirical CDF of the cleaned historical sample.
func (mcs *MonteCarloSimulator) ReturnsCDF() domain.EmpiricalCDF {
	return EmpiricalCDF(mcs.config.Sample)
}

// EndingValuesCDF is the empirical CDF of every run's final value.
func (mcs *MonteCarloSimulator) EndingValuesCDF() (domain.EmpiricalCDF, error) {
	batch, err := mcs.Simulate()
	if err != nil {
		return domain.EmpiricalCDF{}, err
	}
	return EmpiricalCDF(batch.Final()), nil
}

// PeriodBands returns per-period median and quartiles across runs.
func (mcs *MonteCarloSimulator) PeriodBands() ([]domain.PeriodBand, error) {
	batch, err := mcs.Simulate()
	if err != nil {
		return nil, err
	}
	return PeriodBands(batch), nil
}

// SampleRuns returns copies of the first n run paths (fewer if the batch is smaller).
func (mcs *MonteCarloSimulator) SampleRuns(n int) ([][]float64, error) {
	batch, err := mcs.Simulate()
	if err != nil {
		return nil, err
	}
	n = max(0, min(n, batch.RunCount))
	runs := make([][]float64, n)
	for i := range runs {
		runs[i] = batch.Run(i)
	}
	return runs, nil
}
