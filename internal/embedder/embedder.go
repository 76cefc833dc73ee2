// Package embedder loads the embedding model and turns text into vectors.
package embedder

import (
	"context"
	"errors"
)

// Engine generates vector embeddings from text.
type Engine interface {
	// EmbedBatch generates one embedding per input, in input order.
	// All returned vectors share one model-fixed dimensionality.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector dimension.
	Dimensions() int

	// ModelVersion returns the model identifier for cache keying.
	ModelVersion() string

	// Close releases resources held by the engine.
	Close() error
}

// ErrLoad is returned when model artifacts are missing or malformed.
var ErrLoad = errors.New("model load failed")

// ErrInference is returned when the forward pass itself fails. Not expected
// under correct inputs, but surfaced rather than swallowed.
var ErrInference = errors.New("inference failed")
