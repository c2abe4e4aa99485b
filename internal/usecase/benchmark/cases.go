package benchmark

import (
	dombench "github.com/lexidex/lexidex/internal/domain/benchmark"
	"github.com/lexidex/lexidex/internal/domain/knowledge"
	"github.com/lexidex/lexidex/internal/repository/memindex"
	retrievaluc "github.com/lexidex/lexidex/internal/usecase/retrieval"
)

// DefaultCases returns the canned corpus: three cases spanning text, image,
// and audio slices. Used whenever a caller supplies no cases of its own.
func DefaultCases() []dombench.Case {
	return []dombench.Case{
		mustCase("research-diagram",
			"attention diagram for transformers",
			[]string{"text-transformer", "image-attention"}, 3,
			mustBundle(
				[]knowledge.Doc{
					{
						ID:      "text-transformer",
						Content: "Transformer paper overview with attention diagrams and layer norms",
						Tags:    []string{"nlp", "attention"},
					},
					{
						ID:      "text-cv",
						Content: "CNN architecture with pooling layers and feature maps",
						Tags:    []string{"cv"},
					},
				},
				[]knowledge.Doc{
					{
						ID:      "image-attention",
						Content: "A heatmap showing transformer attention weights over tokens",
						Tags:    []string{"attention", "visualization"},
					},
				},
				nil,
			),
		),
		mustCase("speech-notes",
			"meeting audio summary",
			[]string{"audio-brief", "text-minutes"}, 3,
			mustBundle(
				[]knowledge.Doc{
					{
						ID:      "text-minutes",
						Content: "Minutes from the design review covering latency and throughput",
						Tags:    []string{"meeting", "summary"},
					},
					{
						ID:      "text-rfc",
						Content: "RFC draft with protocol changes unrelated to meetings",
						Tags:    []string{"rfc"},
					},
				},
				nil,
				[]knowledge.Doc{
					{
						ID:      "audio-brief",
						Content: "Quick audio brief recapping the meeting takeaways and action items",
						Tags:    []string{"meeting", "audio"},
					},
				},
			),
		),
		mustCase("hardware-lab",
			"oscilloscope waveform and capacitor",
			[]string{"image-scope", "text-capacitor"}, 3,
			mustBundle(
				[]knowledge.Doc{
					{
						ID:      "text-capacitor",
						Content: "Lab note describing capacitor discharge curves and RC timing",
						Tags:    []string{"hardware", "capacitor"},
					},
					{
						ID:      "text-mlp",
						Content: "Feedforward MLP architecture for classification",
						Tags:    []string{"ml"},
					},
				},
				[]knowledge.Doc{
					{
						ID:      "image-scope",
						Content: "Oscilloscope photo showing a decaying sine waveform",
						Tags:    []string{"hardware", "waveform"},
					},
				},
				nil,
			),
		),
	}
}

// NewEngineFactory returns a factory producing fresh engines with the given
// boost coefficients over an in-memory index.
func NewEngineFactory(tagBoost, sourceBoost float64) EngineFactory {
	return func() Engine {
		return retrievaluc.New(
			memindex.New(),
			retrievaluc.WithTagBoost(tagBoost),
			retrievaluc.WithSourceBoost(sourceBoost),
		)
	}
}

// DefaultAdapters returns the stock engine flavors compared during
// automation: an unboosted baseline plus tag- and source-biased variants.
func DefaultAdapters() map[string]EngineFactory {
	return map[string]EngineFactory{
		"baseline_bow": NewEngineFactory(0, 0),
		"tag_bias":     NewEngineFactory(0.2, 0),
		"source_bias":  NewEngineFactory(0, 0.05),
	}
}

// mustCase and mustBundle panic on invalid input; the canned corpus is
// compile-time constant data, so a failure here is a programming error.
func mustCase(id, query string, relevantIDs []string, topK int, bundle knowledge.Bundle) dombench.Case {
	c, err := dombench.NewCase(id, bundle, query, relevantIDs, topK)
	if err != nil {
		panic(err)
	}
	return c
}

func mustBundle(texts, images, audio []knowledge.Doc) knowledge.Bundle {
	b, err := knowledge.BundleFromDocs(texts, images, audio)
	if err != nil {
		panic(err)
	}
	return b
}
