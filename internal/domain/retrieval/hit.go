// Package retrieval defines the result types returned by similarity queries.
package retrieval

import "github.com/lexidex/lexidex/internal/domain/knowledge"

// Hit is a read-only projection of an indexed document matched by a query,
// plus the query-specific score. Hits are recomputed on every query and are
// never persisted.
type Hit struct {
	ID       string
	Score    float64
	Summary  string
	Tags     []string
	Modality knowledge.Modality
	Sources  []string
}
