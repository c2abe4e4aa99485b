// Package benchmark defines the case, result, and summary types produced by
// retrieval benchmark runs.
package benchmark

import (
	"fmt"

	"github.com/lexidex/lexidex/internal/domain/knowledge"
	"github.com/lexidex/lexidex/internal/domain/retrieval"
)

// DefaultTopK is the hit cutoff used when a case does not specify one.
const DefaultTopK = 5

// Case is a single benchmark scenario: a corpus to index and a target query
// with ground-truth relevant ids. Immutable input to a run.
type Case struct {
	ID          string
	Bundle      knowledge.Bundle
	Query       string
	RelevantIDs []string
	TopK        int
}

// NewCase validates and creates a Case. TopK <= 0 falls back to DefaultTopK.
func NewCase(id string, bundle knowledge.Bundle, query string, relevantIDs []string, topK int) (Case, error) {
	if id == "" {
		return Case{}, fmt.Errorf("case ID is required")
	}
	if query == "" {
		return Case{}, fmt.Errorf("case %s: query is required", id)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	return Case{ID: id, Bundle: bundle, Query: query, RelevantIDs: relevantIDs, TopK: topK}, nil
}

// Result holds per-case precision/recall, derived and recomputed each run.
type Result struct {
	CaseID        string
	Hits          []retrieval.Hit
	PrecisionAtK  float64
	RecallAtK     float64
	RelevantFound []string
}

// Suite aggregates per-case results with equal-weight macro metrics.
type Suite struct {
	Results        []Result
	MacroPrecision float64
	MacroRecall    float64
}

// AdapterResult is one adapter's suite plus its wall-clock duration.
type AdapterResult struct {
	Adapter    string
	Suite      Suite
	DurationMS float64
}

// Summary is the outcome of an automated run across adapters. History is nil
// when history tracking was not requested, as opposed to empty when it was
// requested but nothing has been recorded yet.
type Summary struct {
	Runs           []AdapterResult
	MacroPrecision float64
	MacroRecall    float64
	History        []AdapterResult
}
