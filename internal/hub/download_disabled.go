//go:build nohub

package hub

import "fmt"

// FetchEnabled reports whether remote snapshot download was compiled in.
func FetchEnabled() bool { return false }

// Download always fails in nohub builds.
func Download(modelID, cacheDir string) (string, error) {
	return "", fmt.Errorf("%w: cannot download %s; rebuild without the nohub tag or point --cache-dir at an existing cache", ErrFetchDisabled, modelID)
}
