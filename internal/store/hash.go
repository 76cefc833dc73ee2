package store

import (
	"encoding/hex"
	"hash/fnv"
)

// ContentHash hashes an input text for vector cache keying.
// Returns a 16-character hex string. The model version is kept as a
// separate key column, so only the (already role-prefixed) text is hashed.
func ContentHash(text string) string {
	h := fnv.New64a()
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
