//go:build !nohub

package hub

import (
	"fmt"
	"os"

	"github.com/knights-analytics/hugot"
)

// FetchEnabled reports whether remote snapshot download was compiled in.
func FetchEnabled() bool { return true }

// Download fetches the model snapshot for modelID into cacheDir, creating
// the directory if needed, and returns the path to the downloaded snapshot.
// The download blocks until it completes or fails; there is no timeout.
func Download(modelID, cacheDir string) (string, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("create cache directory %s: %w", cacheDir, err)
	}

	path, err := hugot.DownloadModel(modelID, cacheDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("%w: %s into %s: %v", ErrFetch, modelID, cacheDir, err)
	}

	return path, nil
}
