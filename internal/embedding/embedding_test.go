package embedding

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize_StripsPunctuationAndLowercases(t *testing.T) {
	got := Tokenize("Hello, World! (foo) [bar] {baz}\t<qux>\n\"quoted\" 'single'")
	want := []string{"hello", "world", "foo", "bar", "baz", "qux", "quoted", "single"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens:\ngot:  %v\nwant: %v", got, want)
	}
}

func TestTokenize_DropsEmptyTokens(t *testing.T) {
	got := Tokenize("... !!! ??? word")
	want := []string{"word"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens: got %v, want %v", got, want)
	}
}

func TestTokenize_InteriorPunctuationKept(t *testing.T) {
	// Only leading/trailing punctuation is stripped.
	got := Tokenize("don't co-op")
	want := []string{"don't", "co-op"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens: got %v, want %v", got, want)
	}
}

func TestEmbed_UnitNorm(t *testing.T) {
	texts := []string{
		"the quick brown fox",
		"repeated repeated repeated words words",
		"single",
	}
	for _, text := range texts {
		vec := Embed(text)
		sumSq := 0.0
		for _, w := range vec {
			if w < 0 {
				t.Errorf("Embed(%q): negative weight %v", text, w)
			}
			sumSq += w * w
		}
		if norm := math.Sqrt(sumSq); math.Abs(norm-1) > 1e-9 {
			t.Errorf("Embed(%q): norm = %v, want 1", text, norm)
		}
	}
}

func TestEmbed_EmptyAndPunctuationOnly(t *testing.T) {
	for _, text := range []string{"", "   ", "... !!! ,,,"} {
		vec := Embed(text)
		if len(vec) != 0 {
			t.Errorf("Embed(%q): got %d terms, want empty vector", text, len(vec))
		}
	}
}

func TestEmbed_FrequencyWeighting(t *testing.T) {
	// "a a b" -> counts {a:2, b:1}, norm sqrt(5)
	vec := Embed("a a b")
	norm := math.Sqrt(5)
	if got, want := vec["a"], 2/norm; math.Abs(got-want) > 1e-12 {
		t.Errorf("weight(a) = %v, want %v", got, want)
	}
	if got, want := vec["b"], 1/norm; math.Abs(got-want) > 1e-12 {
		t.Errorf("weight(b) = %v, want %v", got, want)
	}
}

func TestDot_SelfSimilarityIsOne(t *testing.T) {
	vec := Embed("transformer attention layers")
	if got := vec.Dot(vec); math.Abs(got-1) > 1e-9 {
		t.Errorf("self dot product = %v, want 1", got)
	}
}

func TestDot_DisjointVectorsScoreZero(t *testing.T) {
	a := Embed("alpha beta")
	b := Embed("gamma delta")
	if got := a.Dot(b); got != 0 {
		t.Errorf("disjoint dot product = %v, want 0", got)
	}
}

func TestDot_EmptyVector(t *testing.T) {
	empty := Embed("")
	other := Embed("some words")
	if got := empty.Dot(other); got != 0 {
		t.Errorf("empty dot product = %v, want 0", got)
	}
	if got := other.Dot(empty); got != 0 {
		t.Errorf("empty dot product (reversed) = %v, want 0", got)
	}
}
