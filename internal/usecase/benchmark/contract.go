package benchmark

import (
	"context"

	dombench "github.com/lexidex/lexidex/internal/domain/benchmark"
	"github.com/lexidex/lexidex/internal/domain/knowledge"
	domret "github.com/lexidex/lexidex/internal/domain/retrieval"
)

// Engine is the retrieval engine surface a benchmark drives. The usecase
// retrieval.Service satisfies it.
type Engine interface {
	Reset()
	Ingest(bundle knowledge.Bundle) int
	Query(text string, topK int) []domret.Hit
}

// EngineFactory produces a freshly configured engine for one adapter run.
type EngineFactory func() Engine

// Archiver persists adapter benchmark results outside the process, for
// dashboards and trend analysis. The in-memory history ring remains the
// authoritative source for RunAll summaries.
type Archiver interface {
	Save(ctx context.Context, result dombench.AdapterResult) error
	Recent(ctx context.Context, n int) ([]dombench.AdapterResult, error)
}
