// Package retrieval implements the retrieval engine: bundle ingestion into a
// vector index plus a query-time ranking adjustment layer. Raw similarity
// lives in the index; business-specific boosts live here, so benchmark
// adapters can differ only in coefficients without re-embedding.
package retrieval

import (
	"math"
	"sort"
	"strings"

	"github.com/lexidex/lexidex/internal/domain/knowledge"
	domret "github.com/lexidex/lexidex/internal/domain/retrieval"
	"github.com/lexidex/lexidex/internal/embedding"
)

// Service wraps an Index with tag and source boost coefficients. Both default
// to zero, which is the baseline configuration with no adjustment.
type Service struct {
	index       Index
	tagBoost    float64
	sourceBoost float64
}

// Option configures a Service.
type Option func(*Service)

// WithTagBoost sets the per-overlapping-tag score bonus.
func WithTagBoost(boost float64) Option {
	return func(s *Service) { s.tagBoost = boost }
}

// WithSourceBoost sets the flat bonus for hits that carry source references.
func WithSourceBoost(boost float64) Option {
	return func(s *Service) { s.sourceBoost = boost }
}

// New creates a retrieval engine over the given index.
func New(index Index, opts ...Option) *Service {
	s := &Service{index: index}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest indexes every slice of the bundle and returns the count ingested.
// Each slice collapses to a single embeddable text: summary plus all
// highlights, space-joined. Benchmark parity depends on this exact policy.
func (s *Service) Ingest(bundle knowledge.Bundle) int {
	for _, sl := range bundle.Slices {
		parts := make([]string, 0, len(sl.Highlights)+1)
		parts = append(parts, sl.Summary)
		parts = append(parts, sl.Highlights...)
		text := strings.Join(parts, " ")

		s.index.Add(sl.ID, text, sl.Summary, sl.Tags, sl.Modality, sl.SourceRefs)
	}
	return len(bundle.Slices)
}

// Query runs a similarity query and applies boost adjustments. Boosts rerank
// only within the hits the index already returned: the topK cut happens at
// the index first and again after boosting. A hit past the index's own cutoff
// can never be rescued by a boost, which caps the achievable precision/recall
// for boosted adapters.
func (s *Service) Query(text string, topK int) []domret.Hit {
	queryTokens := make(map[string]struct{})
	for _, tok := range embedding.Tokenize(text) {
		queryTokens[tok] = struct{}{}
	}

	raw := s.index.Query(text, topK)
	hits := make([]domret.Hit, 0, len(raw))
	for _, hit := range raw {
		overlap := 0
		for _, tag := range hit.Tags {
			if _, ok := queryTokens[tag]; ok {
				overlap++
			}
		}
		bonus := s.tagBoost * float64(overlap)
		if len(hit.Sources) > 0 {
			bonus += s.sourceBoost
		}
		hit.Score = round4(hit.Score + bonus)
		hits = append(hits, hit)
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits
}

// Reset delegates to the index, discarding all documents.
func (s *Service) Reset() {
	s.index.Reset()
}

// Size returns the number of indexed documents.
func (s *Service) Size() int {
	return s.index.Len()
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
