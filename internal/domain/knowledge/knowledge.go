// Package knowledge defines the normalized multimodal knowledge types that
// ingestion produces and retrieval consumes.
package knowledge

import (
	"fmt"
	"time"
)

// Modality identifies the media type a knowledge slice was derived from.
type Modality string

const (
	// ModalityText is a slice derived from plain text content.
	ModalityText Modality = "text"
	// ModalityImage is a slice derived from an image caption.
	ModalityImage Modality = "image"
	// ModalityAudio is a slice derived from an audio transcript.
	ModalityAudio Modality = "audio"
	// ModalityMixed is a slice derived from more than one media type.
	ModalityMixed Modality = "mixed"
)

// Valid reports whether m is one of the known modalities.
func (m Modality) Valid() bool {
	switch m {
	case ModalityText, ModalityImage, ModalityAudio, ModalityMixed:
		return true
	}
	return false
}

// Slice is a normalized knowledge item used by downstream tools.
type Slice struct {
	ID         string
	Summary    string
	Highlights []string
	Modality   Modality
	SourceRefs []string
	Tags       []string
}

// NewSlice creates a Slice, dropping empty highlight strings.
func NewSlice(
	id, summary string, highlights []string,
	modality Modality, sourceRefs, tags []string,
) (Slice, error) {
	if id == "" {
		return Slice{}, fmt.Errorf("slice ID is required")
	}
	if !modality.Valid() {
		return Slice{}, fmt.Errorf("invalid modality %q", modality)
	}
	kept := make([]string, 0, len(highlights))
	for _, h := range highlights {
		if h != "" {
			kept = append(kept, h)
		}
	}
	return Slice{
		ID:         id,
		Summary:    summary,
		Highlights: kept,
		Modality:   modality,
		SourceRefs: sourceRefs,
		Tags:       tags,
	}, nil
}

// Bundle aggregates knowledge slices produced by one ingestion batch.
type Bundle struct {
	Slices      []Slice
	GeneratedAt time.Time
	TraceID     string
}

// NewBundle creates a Bundle stamped with the current time.
func NewBundle(slices []Slice) Bundle {
	return Bundle{Slices: slices, GeneratedAt: time.Now().UTC()}
}

// Tag adds the given tags to every slice, keeping each slice's tag set unique.
func (b *Bundle) Tag(tags ...string) *Bundle {
	for i := range b.Slices {
		seen := make(map[string]struct{}, len(b.Slices[i].Tags)+len(tags))
		for _, t := range b.Slices[i].Tags {
			seen[t] = struct{}{}
		}
		for _, t := range tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			b.Slices[i].Tags = append(b.Slices[i].Tags, t)
		}
	}
	return b
}

// Doc is a lightweight document used to assemble bundles without running the
// full ingestion pipeline. Content carries the text body, image caption, or
// audio transcript depending on the target modality.
type Doc struct {
	ID      string
	Content string
	Tags    []string
	Sources []string
}

// BundleFromDocs assembles a bundle from per-modality document lists. Each
// document's content becomes both the slice summary and its single highlight.
func BundleFromDocs(texts, images, audio []Doc) (Bundle, error) {
	var slices []Slice

	add := func(docs []Doc, modality Modality) error {
		for _, d := range docs {
			s, err := NewSlice(d.ID, d.Content, []string{d.Content}, modality, d.Sources, d.Tags)
			if err != nil {
				return fmt.Errorf("%s doc: %w", modality, err)
			}
			slices = append(slices, s)
		}
		return nil
	}

	if err := add(texts, ModalityText); err != nil {
		return Bundle{}, err
	}
	if err := add(images, ModalityImage); err != nil {
		return Bundle{}, err
	}
	if err := add(audio, ModalityAudio); err != nil {
		return Bundle{}, err
	}

	return NewBundle(slices), nil
}
