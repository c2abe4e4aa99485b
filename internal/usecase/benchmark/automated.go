package benchmark

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	dombench "github.com/lexidex/lexidex/internal/domain/benchmark"
	"github.com/lexidex/lexidex/internal/metrics"
)

// DefaultHistoryLimit bounds retained adapter results when no limit is given.
const DefaultHistoryLimit = 20

// AutomatedRunner compares named engine configurations by running each
// through the benchmark Runner over the same cases. It adds orchestration and
// bounded retention only: per-adapter results are identical to running the
// Runner manually.
type AutomatedRunner struct {
	adapters map[string]EngineFactory
	history  *ring
	archive  Archiver
	logger   *zap.Logger
}

// AutomatedOption configures an AutomatedRunner.
type AutomatedOption func(*AutomatedRunner)

// WithHistoryLimit overrides the history ring capacity.
func WithHistoryLimit(limit int) AutomatedOption {
	return func(r *AutomatedRunner) { r.history = newRing(limit) }
}

// WithArchive mirrors every adapter result into a persistent archive.
func WithArchive(archive Archiver) AutomatedOption {
	return func(r *AutomatedRunner) { r.archive = archive }
}

// NewAutomatedRunner creates a runner over the given adapter factories.
func NewAutomatedRunner(
	adapters map[string]EngineFactory, logger *zap.Logger, opts ...AutomatedOption,
) *AutomatedRunner {
	r := &AutomatedRunner{
		adapters: adapters,
		history:  newRing(DefaultHistoryLimit),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Adapters returns the registered adapter names, sorted.
func (r *AutomatedRunner) Adapters() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunAll benchmarks each named adapter over cases. Unknown names are skipped
// silently. A nil or empty adapterNames runs every registered adapter in
// sorted name order. When trackHistory is set, each result is appended to the
// bounded history and a snapshot of the retained entries is included in the
// summary; otherwise Summary.History stays nil.
func (r *AutomatedRunner) RunAll(
	ctx context.Context, cases []dombench.Case, adapterNames []string, trackHistory bool,
) dombench.Summary {
	names := adapterNames
	if len(names) == 0 {
		names = r.Adapters()
	}

	runs := make([]dombench.AdapterResult, 0, len(names))
	for _, name := range names {
		factory, ok := r.adapters[name]
		if !ok {
			continue
		}

		runner := NewRunner(factory())
		start := time.Now()
		suite := runner.Run(cases)
		elapsed := time.Since(start)

		metrics.BenchmarkRunDuration.WithLabelValues(name).Observe(elapsed.Seconds())

		result := dombench.AdapterResult{
			Adapter:    name,
			Suite:      suite,
			DurationMS: round2(float64(elapsed.Nanoseconds()) / 1e6),
		}
		runs = append(runs, result)

		if trackHistory {
			r.history.append(result)
		}
		if r.archive != nil {
			if err := r.archive.Save(ctx, result); err != nil {
				r.logger.Warn("failed to archive benchmark result",
					zap.String("adapter", name), zap.Error(err))
			}
		}
	}

	var sumP, sumR float64
	for _, run := range runs {
		sumP += run.Suite.MacroPrecision
		sumR += run.Suite.MacroRecall
	}
	n := float64(len(runs))
	if n == 0 {
		n = 1
	}

	summary := dombench.Summary{
		Runs:           runs,
		MacroPrecision: round4(sumP / n),
		MacroRecall:    round4(sumR / n),
	}
	if trackHistory {
		summary.History = r.history.snapshot()
	}
	return summary
}
