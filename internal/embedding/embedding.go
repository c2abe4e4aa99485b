// Package embedding turns raw text into sparse bag-of-words vectors
// normalized to unit length. It is pure and deterministic: no external state
// and no failure modes beyond accepting any string input.
package embedding

import (
	"math"
	"strings"
)

// punctCutset is trimmed from both ends of every whitespace-split token.
const punctCutset = ".,;:!?()[]{}<>\"'\n\t"

// Tokenize splits text on whitespace, strips leading/trailing punctuation
// from each token, and lowercases. Tokens that become empty are dropped.
func Tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.ToLower(strings.Trim(f, punctCutset))
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Vector is a sparse mapping from token to non-negative weight.
type Vector map[string]float64

// Dot returns the dot product with other. Both vectors are unit-normalized by
// Embed, so this equals their cosine similarity.
func (v Vector) Dot(other Vector) float64 {
	// Iterate the smaller map.
	a, b := v, other
	if len(b) < len(a) {
		a, b = b, a
	}
	sum := 0.0
	for tok, w := range a {
		sum += w * b[tok]
	}
	return sum
}

// Embed counts token frequencies in text and L2-normalizes the counts.
// Empty or all-punctuation input yields an empty vector; the norm is floored
// at 1.0 so the zero vector maps to itself without a division error.
func Embed(text string) Vector {
	counts := make(Vector)
	for _, tok := range Tokenize(text) {
		counts[tok]++
	}

	sumSq := 0.0
	for _, c := range counts {
		sumSq += c * c
	}
	norm := math.Sqrt(sumSq)
	if norm == 0 {
		norm = 1.0
	}

	for tok, c := range counts {
		counts[tok] = c / norm
	}
	return counts
}
