// Package store provides a SQLite-backed cache of computed embedding
// vectors. The cache lives in vectors.db inside the model cache directory
// and lets repeated invocations skip inference for inputs already embedded
// by the same model version.
package store

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBFileName is the name of the vector cache database file.
const DBFileName = "vectors.db"

// VectorStore manages the vectors.db SQLite database.
type VectorStore struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the vector cache inside cacheDir. The schema is
// initialized if the database is new.
func Open(cacheDir string) (*VectorStore, error) {
	dbPath := filepath.Join(cacheDir, DBFileName)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open vector cache: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &VectorStore{db: db, dbPath: dbPath}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return s, nil
}

func (s *VectorStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS vectors (
			content_hash  TEXT NOT NULL,
			model_version TEXT NOT NULL,
			dims          INTEGER NOT NULL,
			vector        BLOB NOT NULL,
			created_at    TEXT NOT NULL DEFAULT (datetime('now')),
			PRIMARY KEY (content_hash, model_version)
		)`)
	return err
}

// Get retrieves a cached vector. A miss returns (nil, nil).
func (s *VectorStore) Get(contentHash, modelVersion string) ([]float32, error) {
	var dims int
	var blob []byte
	err := s.db.QueryRow(
		"SELECT dims, vector FROM vectors WHERE content_hash = ? AND model_version = ?",
		contentHash, modelVersion,
	).Scan(&dims, &blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query vector: %w", err)
	}

	vec := decodeVector(blob)
	if len(vec) != dims {
		return nil, fmt.Errorf("corrupt vector row %s: %d dims stored, %d decoded", contentHash, dims, len(vec))
	}
	return vec, nil
}

// Put stores a vector, replacing any existing row for the same key.
func (s *VectorStore) Put(contentHash, modelVersion string, vec []float32) error {
	_, err := s.db.Exec(`
		INSERT INTO vectors (content_hash, model_version, dims, vector)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(content_hash, model_version)
		DO UPDATE SET dims = excluded.dims, vector = excluded.vector`,
		contentHash, modelVersion, len(vec), encodeVector(vec))
	if err != nil {
		return fmt.Errorf("store vector: %w", err)
	}
	return nil
}

// Count returns the number of cached vectors.
func (s *VectorStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM vectors").Scan(&n); err != nil {
		return 0, fmt.Errorf("count vectors: %w", err)
	}
	return n, nil
}

// Path returns the database file path.
func (s *VectorStore) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *VectorStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// encodeVector packs float32 values as little-endian bytes.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// decodeVector unpacks little-endian float32 bytes. Trailing partial values
// are dropped.
func decodeVector(buf []byte) []float32 {
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return vec
}
