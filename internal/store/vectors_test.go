package store

import (
	"path/filepath"
	"testing"
)

const testModel = "Qwen/Qwen3-Embedding-0.6B"

func TestVectorStoreRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer s.Close()

	vec := []float32{0.5, -1.25, 3.75, 0}
	hash := ContentHash("query: Where is the cat?")

	if err := s.Put(hash, testModel, vec); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := s.Get(hash, testModel)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(got) != len(vec) {
		t.Fatalf("Get() returned %d values, want %d", len(got), len(vec))
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Errorf("Get()[%d] = %v, want %v", i, got[i], vec[i])
		}
	}
}

func TestVectorStoreMiss(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer s.Close()

	got, err := s.Get(ContentHash("never stored"), testModel)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %v, want nil on miss", got)
	}
}

func TestVectorStoreModelVersionKeying(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer s.Close()

	hash := ContentHash("passage: The cat sat on the mat.")
	if err := s.Put(hash, testModel, []float32{1, 2}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	// Same content under a different model version is a miss.
	got, err := s.Get(hash, "other-model")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != nil {
		t.Errorf("Get() with other model version = %v, want nil", got)
	}
}

func TestVectorStoreReplace(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer s.Close()

	hash := ContentHash("text")
	if err := s.Put(hash, testModel, []float32{1}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := s.Put(hash, testModel, []float32{2, 3}); err != nil {
		t.Fatalf("Put() replace error: %v", err)
	}

	got, err := s.Get(hash, testModel)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("Get() after replace = %v, want [2 3]", got)
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestVectorStorePath(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer s.Close()

	want := filepath.Join(dir, DBFileName)
	if s.Path() != want {
		t.Errorf("Path() = %q, want %q", s.Path(), want)
	}
}

func TestContentHash(t *testing.T) {
	a := ContentHash("query: Where is the cat?")
	b := ContentHash("query: Where is the cat?")
	c := ContentHash("passage: Where is the cat?")

	if len(a) != 16 {
		t.Errorf("ContentHash() length = %d, want 16", len(a))
	}
	if a != b {
		t.Errorf("ContentHash() not stable: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("ContentHash() collision for distinct inputs: %q", a)
	}
}

func TestEncodeDecodeVector(t *testing.T) {
	vec := []float32{0, -0.001, 12345.678, 1e-30}

	got := decodeVector(encodeVector(vec))
	if len(got) != len(vec) {
		t.Fatalf("decodeVector() length = %d, want %d", len(got), len(vec))
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Errorf("decodeVector()[%d] = %v, want %v", i, got[i], vec[i])
		}
	}
}
