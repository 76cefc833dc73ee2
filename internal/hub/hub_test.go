package hub

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotExists(t *testing.T) {
	dir := t.TempDir()

	if !SnapshotExists(dir) {
		t.Errorf("SnapshotExists(%q) = false, want true", dir)
	}

	missing := filepath.Join(dir, "does-not-exist")
	if SnapshotExists(missing) {
		t.Errorf("SnapshotExists(%q) = true, want false", missing)
	}
}

func TestSnapshotExistsIdempotent(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope")

	for i := 0; i < 2; i++ {
		if !SnapshotExists(dir) {
			t.Errorf("call %d: SnapshotExists(%q) = false, want true", i, dir)
		}
		if SnapshotExists(missing) {
			t.Errorf("call %d: SnapshotExists(%q) = true, want false", i, missing)
		}
	}
}

func TestSnapshotExistsAcceptsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.onnx")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	// Presence is a pure stat check: files count too, validation happens at load.
	if !SnapshotExists(path) {
		t.Errorf("SnapshotExists(%q) = false, want true", path)
	}
}

func TestResolveSnapshotDirectLayout(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "model.onnx")

	got, err := ResolveSnapshot(dir)
	if err != nil {
		t.Fatalf("ResolveSnapshot() error: %v", err)
	}
	if got != dir {
		t.Errorf("ResolveSnapshot() = %q, want %q", got, dir)
	}
}

func TestResolveSnapshotSubdirLayout(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "Qwen_Qwen3-Embedding-0.6B")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writeArtifact(t, sub, "model.onnx")

	got, err := ResolveSnapshot(dir)
	if err != nil {
		t.Fatalf("ResolveSnapshot() error: %v", err)
	}
	if got != sub {
		t.Errorf("ResolveSnapshot() = %q, want %q", got, sub)
	}
}

func TestResolveSnapshotEmpty(t *testing.T) {
	dir := t.TempDir()

	_, err := ResolveSnapshot(dir)
	if err == nil {
		t.Fatal("ResolveSnapshot() expected error for empty cache dir")
	}
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("ResolveSnapshot() error = %v, want ErrNoSnapshot", err)
	}
}

func TestResolveSnapshotMissingDir(t *testing.T) {
	_, err := ResolveSnapshot(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("ResolveSnapshot() error = %v, want ErrNoSnapshot", err)
	}
}

func writeArtifact(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("onnx"), 0644); err != nil {
		t.Fatal(err)
	}
}
