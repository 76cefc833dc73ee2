// Package pipeline sequences the embed-and-score flow: resolve the model
// cache, acquire an engine locally or from the hub, embed the role-prefixed
// inputs as one batch, score them, and package the result with per-phase
// timings.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hargabyte/qembed/internal/config"
	"github.com/hargabyte/qembed/internal/embedder"
	"github.com/hargabyte/qembed/internal/hub"
	"github.com/hargabyte/qembed/internal/similarity"
	"github.com/hargabyte/qembed/internal/store"
)

// ErrMissingInput is returned when the query or document text is absent.
var ErrMissingInput = errors.New("missing required input")

// Options are the per-invocation inputs to the pipeline.
type Options struct {
	// Document is the passage-role text.
	Document string

	// Query is the query-role text.
	Query string

	// CacheDir overrides the configured model cache directory.
	CacheDir string

	// Diag receives human-readable progress lines. Nil means discard.
	Diag io.Writer
}

// Timings are per-phase wall-clock durations in whole milliseconds.
// Total is measured independently end-to-end, not derived by addition.
type Timings struct {
	ModelLoad  int64 `json:"model_load"`
	Embed      int64 `json:"embed"`
	Similarity int64 `json:"similarity"`
	Total      int64 `json:"total"`
}

// Result is the machine-readable pipeline output.
type Result struct {
	CosineSimilarity float64 `json:"cosine_similarity"`
	Timings          Timings `json:"timings_ms"`
}

// Run executes the full pipeline for one query/document pair.
// Inputs are validated before any model load.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	total := newStopwatch()
	diag := opts.diag()

	if strings.TrimSpace(opts.Query) == "" {
		return nil, fmt.Errorf("%w: query text", ErrMissingInput)
	}
	if strings.TrimSpace(opts.Document) == "" {
		return nil, fmt.Errorf("%w: document text", ErrMissingInput)
	}

	cacheDir := resolveCacheDir(cfg, opts)

	loadWatch := newStopwatch()
	engine, err := acquireEngine(cfg, cacheDir, diag)
	if err != nil {
		return nil, err
	}
	defer engine.Close()
	loadMS := loadWatch.ElapsedMS()

	var vectors *store.VectorStore
	if !cfg.Cache.SkipVectorCache {
		vectors, err = store.Open(cacheDir)
		if err != nil {
			// The side cache is an optimization: warn and run without it.
			fmt.Fprintf(diag, "vector cache unavailable: %v\n", err)
			vectors = nil
		} else {
			defer vectors.Close()
			fmt.Fprintf(diag, "vector cache at %s\n", vectors.Path())
		}
	}

	score, embedMS, simMS, err := embedAndScore(ctx, cfg, opts, engine, vectors)
	if err != nil {
		return nil, err
	}

	return &Result{
		CosineSimilarity: score,
		Timings: Timings{
			ModelLoad:  loadMS,
			Embed:      embedMS,
			Similarity: simMS,
			Total:      total.ElapsedMS(),
		},
	}, nil
}

// PopulateCache implements cache-only mode: an existing cache is left
// untouched, an absent one is downloaded. No inference runs either way.
func PopulateCache(cfg *config.Config, opts Options) error {
	diag := opts.diag()
	cacheDir := resolveCacheDir(cfg, opts)

	if hub.SnapshotExists(cacheDir) {
		fmt.Fprintf(diag, "cache already present at %s\n", cacheDir)
		return nil
	}

	if !hub.FetchEnabled() {
		return fmt.Errorf("%w: cannot populate cache at %s", hub.ErrFetchDisabled, cacheDir)
	}

	path, err := hub.Download(cfg.Model.ID, cacheDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(diag, "cache populated at %s\n", path)
	return nil
}

// acquireEngine loads the model from the cache when present, downloads it
// when fetch is compiled in, and otherwise fails fast naming the expected
// cache path.
func acquireEngine(cfg *config.Config, cacheDir string, diag io.Writer) (*embedder.Qwen3Engine, error) {
	engineOpts := embedder.Options{
		ModelID:      cfg.Model.ID,
		CacheDir:     cacheDir,
		OnnxFilename: cfg.Model.OnnxFilename,
	}

	if hub.SnapshotExists(cacheDir) {
		fmt.Fprintf(diag, "loading model from cache at %s\n", cacheDir)
		return embedder.LoadLocal(engineOpts)
	}

	if !hub.FetchEnabled() {
		return nil, fmt.Errorf("%w: no model cache at %s; point --cache-dir at an existing cache", hub.ErrFetchDisabled, cacheDir)
	}

	fmt.Fprintf(diag, "no cache at %s, downloading %s\n", cacheDir, cfg.Model.ID)
	return embedder.FetchAndCache(engineOpts)
}

// embedAndScore runs the two timed inference phases: one batched embed over
// both role-prefixed inputs, then the cosine score. Prefixing happens here —
// the engine embeds whatever it receives verbatim.
func embedAndScore(ctx context.Context, cfg *config.Config, opts Options, eng embedder.Engine, vectors *store.VectorStore) (score float64, embedMS, simMS int64, err error) {
	inputs := []string{
		cfg.Prefix.Query + opts.Query,
		cfg.Prefix.Passage + opts.Document,
	}

	embedWatch := newStopwatch()
	vecs, err := embedBatch(ctx, eng, vectors, inputs)
	if err != nil {
		return 0, 0, 0, err
	}
	embedMS = embedWatch.ElapsedMS()

	simWatch := newStopwatch()
	score, err = similarity.Cosine(vecs[0], vecs[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("scoring similarity: %w", err)
	}
	simMS = simWatch.ElapsedMS()

	return score, embedMS, simMS, nil
}

// embedBatch embeds all inputs, serving what it can from the vector cache
// and batching the misses through the engine in input order.
func embedBatch(ctx context.Context, eng embedder.Engine, vectors *store.VectorStore, inputs []string) ([][]float32, error) {
	if vectors == nil {
		return eng.EmbedBatch(ctx, inputs)
	}

	out := make([][]float32, len(inputs))
	var missing []string
	var missingIdx []int

	for i, input := range inputs {
		vec, err := vectors.Get(store.ContentHash(input), eng.ModelVersion())
		if err != nil {
			return nil, err
		}
		if vec != nil {
			out[i] = vec
			continue
		}
		missing = append(missing, input)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) > 0 {
		fresh, err := eng.EmbedBatch(ctx, missing)
		if err != nil {
			return nil, err
		}
		for j, vec := range fresh {
			out[missingIdx[j]] = vec
			if err := vectors.Put(store.ContentHash(missing[j]), eng.ModelVersion(), vec); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// resolveCacheDir prefers the per-invocation override over the config value.
func resolveCacheDir(cfg *config.Config, opts Options) string {
	if opts.CacheDir != "" {
		return opts.CacheDir
	}
	return cfg.Cache.Dir
}

func (o Options) diag() io.Writer {
	if o.Diag != nil {
		return o.Diag
	}
	return io.Discard
}
