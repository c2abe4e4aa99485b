package retrieval

import (
	"github.com/lexidex/lexidex/internal/domain/knowledge"
	domret "github.com/lexidex/lexidex/internal/domain/retrieval"
)

// Index defines the storage contract for similarity search. The in-memory
// implementation lives in repository/memindex.
type Index interface {
	// Add embeds text and appends a document. Duplicate ids append duplicate
	// entries; callers that need uniqueness must enforce it themselves.
	Add(id, text, summary string, tags []string, modality knowledge.Modality, sources []string)

	// Query returns up to topK hits sorted descending by similarity.
	Query(text string, topK int) []domret.Hit

	// Reset discards all documents.
	Reset()

	// Len returns the number of stored documents.
	Len() int
}
