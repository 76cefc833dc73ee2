// Package hub resolves model snapshots on disk and, when compiled in,
// downloads them from the Hugging Face hub. Remote fetch is a build-time
// capability: building with -tags nohub removes it, and the fetch entry
// point then fails fast with ErrFetchDisabled.
package hub

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrFetchDisabled is returned when a remote fetch is requested but the
// binary was built without hub support (-tags nohub).
var ErrFetchDisabled = errors.New("remote model fetch is disabled in this build")

// ErrFetch is returned when resolving or downloading a remote snapshot fails.
var ErrFetch = errors.New("model download failed")

// ErrNoSnapshot is returned when a cache directory exists but holds no
// usable model artifacts.
var ErrNoSnapshot = errors.New("no model snapshot found")

// SnapshotExists reports whether anything exists at the cache path. It is a
// pure presence check: a directory with incomplete or corrupt artifacts still
// counts as present, and the load step is where such a cache fails.
func SnapshotExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ResolveSnapshot locates the model artifact directory inside cacheDir.
// It accepts two layouts: artifacts directly in cacheDir, or a single level
// of subdirectories as created by a hub download. The first directory
// containing an .onnx file wins.
func ResolveSnapshot(cacheDir string) (string, error) {
	if hasModelArtifacts(cacheDir) {
		return cacheDir, nil
	}

	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrNoSnapshot, cacheDir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(cacheDir, entry.Name())
		if hasModelArtifacts(sub) {
			return sub, nil
		}
	}

	return "", fmt.Errorf("%w: no .onnx model file under %s", ErrNoSnapshot, cacheDir)
}

// hasModelArtifacts reports whether dir directly contains an ONNX model file.
func hasModelArtifacts(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".onnx") {
			return true
		}
	}
	return false
}
