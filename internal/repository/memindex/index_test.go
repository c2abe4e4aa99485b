package memindex

import (
	"testing"

	"github.com/lexidex/lexidex/internal/domain/knowledge"
)

func TestQuery_SelfSimilarityRanksFirst(t *testing.T) {
	idx := New()
	idx.Add("transformer", "transformer attention layer norms", "transformers", nil, knowledge.ModalityText, nil)
	idx.Add("cnn", "convolution pooling feature maps", "cnns", nil, knowledge.ModalityText, nil)
	idx.Add("rnn", "recurrent hidden state sequence", "rnns", nil, knowledge.ModalityText, nil)

	hits := idx.Query("transformer attention layer norms", 3)
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	if hits[0].ID != "transformer" {
		t.Errorf("top hit = %s, want transformer", hits[0].ID)
	}
	if hits[0].Score != 1.0 {
		t.Errorf("self-similarity score = %v, want 1.0", hits[0].Score)
	}
}

func TestQuery_TopKBound(t *testing.T) {
	idx := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		idx.Add(id, "shared words here", id, nil, knowledge.ModalityText, nil)
	}

	if got := len(idx.Query("shared words", 2)); got != 2 {
		t.Errorf("topK=2: got %d hits", got)
	}
	if got := len(idx.Query("shared words", 10)); got != 4 {
		t.Errorf("topK=10 over 4 docs: got %d hits", got)
	}
	if got := len(idx.Query("shared words", 0)); got != 0 {
		t.Errorf("topK=0: got %d hits", got)
	}
	if got := len(idx.Query("shared words", -1)); got != 0 {
		t.Errorf("topK=-1: got %d hits", got)
	}
}

func TestQuery_StableTieBreakPreservesInsertionOrder(t *testing.T) {
	idx := New()
	// Identical documents score identically for any query.
	idx.Add("first", "identical text", "first", nil, knowledge.ModalityText, nil)
	idx.Add("second", "identical text", "second", nil, knowledge.ModalityText, nil)
	idx.Add("third", "identical text", "third", nil, knowledge.ModalityText, nil)

	hits := idx.Query("identical text", 3)
	want := []string{"first", "second", "third"}
	for i, id := range want {
		if hits[i].ID != id {
			t.Errorf("hit %d = %s, want %s", i, hits[i].ID, id)
		}
	}
}

func TestQuery_EmptyIndexAndEmptyQuery(t *testing.T) {
	idx := New()
	if hits := idx.Query("anything", 5); len(hits) != 0 {
		t.Errorf("empty index: got %d hits, want 0", len(hits))
	}

	idx.Add("doc", "some content", "doc", nil, knowledge.ModalityText, nil)
	hits := idx.Query("", 5)
	if len(hits) != 1 {
		t.Fatalf("empty query: got %d hits, want 1", len(hits))
	}
	if hits[0].Score != 0 {
		t.Errorf("empty query score = %v, want 0", hits[0].Score)
	}
}

func TestAdd_DuplicateIDAppends(t *testing.T) {
	idx := New()
	idx.Add("dup", "same content", "dup", nil, knowledge.ModalityText, nil)
	idx.Add("dup", "same content", "dup", nil, knowledge.ModalityText, nil)

	if idx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (duplicate ids append, not replace)", idx.Len())
	}
	hits := idx.Query("same content", 5)
	if len(hits) != 2 {
		t.Errorf("got %d hits, want 2", len(hits))
	}
}

func TestReset_Idempotent(t *testing.T) {
	idx := New()
	idx.Add("doc", "content here", "doc", nil, knowledge.ModalityText, nil)

	idx.Reset()
	idx.Reset()

	if idx.Len() != 0 {
		t.Errorf("Len() after reset = %d, want 0", idx.Len())
	}
	if hits := idx.Query("content", 5); len(hits) != 0 {
		t.Errorf("query after reset: got %d hits, want 0", len(hits))
	}
}

func TestQuery_ScoreRoundedToFourDecimals(t *testing.T) {
	idx := New()
	// Three distinct terms, one overlapping: score = 1 * 1/sqrt(3) = 0.57735...
	idx.Add("doc", "alpha beta gamma", "doc", nil, knowledge.ModalityText, nil)

	hits := idx.Query("alpha", 1)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].Score != 0.5774 {
		t.Errorf("score = %v, want 0.5774", hits[0].Score)
	}
}

func TestQuery_HitCarriesDocumentMetadata(t *testing.T) {
	idx := New()
	idx.Add("doc", "attention heatmap", "An attention heatmap",
		[]string{"attention", "viz"}, knowledge.ModalityImage, []string{"fig-3"})

	hits := idx.Query("attention", 1)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	h := hits[0]
	if h.Summary != "An attention heatmap" {
		t.Errorf("summary = %q", h.Summary)
	}
	if h.Modality != knowledge.ModalityImage {
		t.Errorf("modality = %s, want image", h.Modality)
	}
	if len(h.Tags) != 2 || h.Tags[0] != "attention" {
		t.Errorf("tags = %v", h.Tags)
	}
	if len(h.Sources) != 1 || h.Sources[0] != "fig-3" {
		t.Errorf("sources = %v", h.Sources)
	}
}
