// Package benchmark executes labeled retrieval cases against an engine and
// scores precision/recall, plus an automated layer that compares multiple
// engine configurations and retains bounded run history.
package benchmark

import (
	"math"

	dombench "github.com/lexidex/lexidex/internal/domain/benchmark"
)

// Runner drives a single engine through a suite of benchmark cases.
type Runner struct {
	engine Engine
}

// NewRunner creates a runner over the given engine.
func NewRunner(engine Engine) *Runner {
	return &Runner{engine: engine}
}

// Run processes cases strictly sequentially against the shared engine. The
// engine is reset before every case; skipping the reset would leak one case's
// corpus into the next and corrupt the scores.
func (r *Runner) Run(cases []dombench.Case) dombench.Suite {
	results := make([]dombench.Result, 0, len(cases))
	for _, c := range cases {
		r.engine.Reset()
		r.engine.Ingest(c.Bundle)
		hits := r.engine.Query(c.Query, c.TopK)

		relevant := make(map[string]struct{}, len(c.RelevantIDs))
		for _, id := range c.RelevantIDs {
			relevant[id] = struct{}{}
		}
		found := make([]string, 0, len(hits))
		for _, h := range hits {
			if _, ok := relevant[h.ID]; ok {
				found = append(found, h.ID)
			}
		}

		// Denominators floor at 1 so empty hit lists and empty ground truth
		// score zero instead of dividing by zero.
		precision := round4(float64(len(found)) / math.Max(float64(len(hits)), 1))
		recall := round4(float64(len(found)) / math.Max(float64(len(c.RelevantIDs)), 1))

		results = append(results, dombench.Result{
			CaseID:        c.ID,
			Hits:          hits,
			PrecisionAtK:  precision,
			RecallAtK:     recall,
			RelevantFound: found,
		})
	}

	var sumP, sumR float64
	for _, res := range results {
		sumP += res.PrecisionAtK
		sumR += res.RecallAtK
	}
	n := math.Max(float64(len(results)), 1)

	return dombench.Suite{
		Results:        results,
		MacroPrecision: round4(sumP / n),
		MacroRecall:    round4(sumR / n),
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
