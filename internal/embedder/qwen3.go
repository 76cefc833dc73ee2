package embedder

import (
	"context"
	"fmt"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/hargabyte/qembed/internal/hub"
)

const (
	// DefaultModelID is the embedding model used when none is configured.
	DefaultModelID = "Qwen/Qwen3-Embedding-0.6B"

	// EmbeddingDimensions is the output dimension of Qwen3-Embedding-0.6B.
	EmbeddingDimensions = 1024
)

// Options configure model acquisition and loading.
type Options struct {
	// ModelID is the hub identifier, e.g. "Qwen/Qwen3-Embedding-0.6B".
	ModelID string

	// CacheDir is where model artifacts live or get downloaded to.
	CacheDir string

	// OnnxFilename selects the model file when the snapshot carries several.
	OnnxFilename string
}

// Qwen3Engine runs the Qwen3 embedding model through a hugot
// feature-extraction pipeline on the pure-Go backend, which computes on
// CPU in float32. The engine is read-only after construction and safe for
// repeated EmbedBatch calls. Inputs longer than the model's position
// budget are truncated by the tokenizer per the snapshot's own config,
// keeping the leading portion.
type Qwen3Engine struct {
	session  *hugot.Session
	pipeline *pipelines.FeatureExtractionPipeline
	modelID  string
}

// LoadLocal loads the model strictly from the cache directory. It performs
// no network access; a missing or unusable snapshot is a load failure.
func LoadLocal(opts Options) (*Qwen3Engine, error) {
	modelPath, err := hub.ResolveSnapshot(opts.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return newEngine(modelPath, opts)
}

// FetchAndCache downloads the model snapshot into the cache directory,
// creating it if absent, and then loads it. In builds without hub support
// this fails immediately with hub.ErrFetchDisabled.
func FetchAndCache(opts Options) (*Qwen3Engine, error) {
	modelPath, err := hub.Download(opts.ModelID, opts.CacheDir)
	if err != nil {
		return nil, err
	}
	return newEngine(modelPath, opts)
}

func newEngine(modelPath string, opts Options) (*Qwen3Engine, error) {
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("%w: create inference session: %v", ErrLoad, err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath:    modelPath,
		Name:         "qwen3-embedding",
		OnnxFilename: opts.OnnxFilename,
	}

	pipe, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("%w: load model from %s: %v", ErrLoad, modelPath, err)
	}

	return &Qwen3Engine{
		session:  session,
		pipeline: pipe,
		modelID:  opts.ModelID,
	}, nil
}

// EmbedBatch runs tokenization and the forward pass over all inputs in one
// batch. Output is positionally aligned with the inputs and deterministic
// for a given engine.
func (e *Qwen3Engine) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: empty input batch", ErrInference)
	}

	result, err := e.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}

	vectors := result.Embeddings
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", ErrInference, len(vectors), len(texts))
	}
	for i, vec := range vectors {
		if len(vec) != len(vectors[0]) {
			return nil, fmt.Errorf("%w: embedding %d has %d dimensions, want %d", ErrInference, i, len(vec), len(vectors[0]))
		}
	}

	return vectors, nil
}

// Dimensions returns the model's documented embedding dimension.
func (e *Qwen3Engine) Dimensions() int {
	return EmbeddingDimensions
}

// ModelVersion returns the model identifier for cache keying.
func (e *Qwen3Engine) ModelVersion() string {
	if e.modelID != "" {
		return e.modelID
	}
	return DefaultModelID
}

// Close destroys the inference session and releases model memory.
func (e *Qwen3Engine) Close() error {
	if e.session == nil {
		return nil
	}
	return e.session.Destroy()
}
