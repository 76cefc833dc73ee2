// Package cmd contains the qembed CLI command.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hargabyte/qembed/internal/config"
	"github.com/hargabyte/qembed/internal/pipeline"
)

var (
	// Version is the current version of qembed
	Version = "0.1.0"

	document   string
	query      string
	cacheOnly  bool
	cacheDir   string
	configPath string
	verbose    bool
)

// rootCmd is the single qembed command; there are no subcommands.
var rootCmd = &cobra.Command{
	Use:   "qembed",
	Short: "Generate text embeddings and score semantic similarity",
	Long: `qembed embeds a query and a document with the Qwen3-Embedding-0.6B model
and prints their cosine similarity with per-phase timings as JSON.

The model loads from a local cache directory (default qwen3_local_cache,
relative to the working directory) and is downloaded from the Hugging Face
hub on first use. Builds made with -tags nohub cannot download and require
an existing cache.

The JSON result is the only stdout output; progress and timing lines go to
stderr.

Examples:
  qembed -q "Where is the cat?" -d "The cat sat on the mat."
  qembed --cache-only                          # populate the model cache and exit
  qembed --cache-dir /models/qwen3 -q "..." -d "..."`,
	Version: Version,
	// Execute prints returned errors itself; keep cobra from printing
	// them a second time.
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&document, "document", "d", "", "Document text to embed (passage role)")
	rootCmd.Flags().StringVarP(&query, "query", "q", "", "Query text to embed")
	rootCmd.Flags().BoolVar(&cacheOnly, "cache-only", false, "Only download and cache model files, do not run embedding")
	rootCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Cache directory (overrides the default qwen3_local_cache)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: .qembed/config.yaml)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose diagnostics on stderr")
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cacheOnly {
		fmt.Fprintln(cmd.ErrOrStderr(), "--cache-only requested: populating cache and exiting")
		return pipeline.PopulateCache(cfg, pipeline.Options{
			CacheDir: cacheDir,
			Diag:     cmd.ErrOrStderr(),
		})
	}

	var diag io.Writer = io.Discard
	if verbose {
		diag = cmd.ErrOrStderr()
	}

	result, err := pipeline.Run(cmd.Context(), cfg, pipeline.Options{
		Document: document,
		Query:    query,
		CacheDir: cacheDir,
		Diag:     diag,
	})
	if err != nil {
		return err
	}

	tm := result.Timings
	fmt.Fprintf(cmd.ErrOrStderr(), "timings (ms): model=%d embed=%d sim=%d total=%d\n",
		tm.ModelLoad, tm.Embed, tm.Similarity, tm.Total)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load(".")
}
