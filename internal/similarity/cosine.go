// Package similarity provides similarity scoring for embedding vectors.
package similarity

import (
	"errors"
	"fmt"
	"math"
)

// ErrShapeMismatch is returned when two vectors have different lengths.
// Vectors produced by the same engine always share one dimensionality, so a
// mismatch indicates a programming error rather than bad user input.
var ErrShapeMismatch = errors.New("vector length mismatch")

// Cosine computes the cosine similarity between two embedding vectors.
// The dot product and both squared norms are accumulated in a single pass,
// in float64 to limit rounding error over long vectors.
//
// If either vector has zero norm the result is exactly 0 — a defined
// degeneracy, not an error. Vectors of different lengths return
// ErrShapeMismatch.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrShapeMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
