// Package memindex provides an in-memory vector index over bag-of-words
// embeddings with exact cosine-similarity scoring. It is a best-effort
// similarity scorer, not a transactional store: absent data yields empty
// results, never errors.
package memindex

import (
	"math"
	"sort"

	"github.com/lexidex/lexidex/internal/domain/knowledge"
	"github.com/lexidex/lexidex/internal/domain/retrieval"
	"github.com/lexidex/lexidex/internal/embedding"
)

// document is an indexed entry, immutable after insertion.
type document struct {
	id       string
	vector   embedding.Vector
	summary  string
	tags     []string
	modality knowledge.Modality
	sources  []string
}

// Index stores embedded documents and answers top-k similarity queries with a
// linear scan. Suitable for small corpora; there is no inverted index and no
// approximate-NN structure. Not safe for concurrent mutation.
type Index struct {
	docs []document
}

// New creates an empty index.
func New() *Index {
	return &Index{}
}

// Add embeds text and appends a document. There is no uniqueness check:
// re-adding an id creates a duplicate entry rather than replacing it.
func (i *Index) Add(
	id, text, summary string,
	tags []string, modality knowledge.Modality, sources []string,
) {
	i.docs = append(i.docs, document{
		id:       id,
		vector:   embedding.Embed(text),
		summary:  summary,
		tags:     tags,
		modality: modality,
		sources:  sources,
	})
}

// Query embeds text and scores it against every stored document by dot
// product. Hits are sorted descending by score; the sort is stable, so
// insertion order is preserved among equal scores. At most topK hits are
// returned; topK <= 0 yields none.
func (i *Index) Query(text string, topK int) []retrieval.Hit {
	if topK <= 0 || len(i.docs) == 0 {
		return nil
	}

	queryVec := embedding.Embed(text)
	hits := make([]retrieval.Hit, 0, len(i.docs))
	for _, doc := range i.docs {
		hits = append(hits, retrieval.Hit{
			ID:       doc.id,
			Score:    round4(queryVec.Dot(doc.vector)),
			Summary:  doc.summary,
			Tags:     doc.tags,
			Modality: doc.modality,
			Sources:  doc.sources,
		})
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits
}

// Reset discards all documents. Subsequent queries return no hits.
func (i *Index) Reset() {
	i.docs = nil
}

// Len returns the number of stored documents, counting duplicates.
func (i *Index) Len() int {
	return len(i.docs)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
