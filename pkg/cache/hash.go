package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// keySep joins key fields before hashing. A unit separator cannot occur
// in any field: fields are hex hashes, layout names, booleans, and
// formatted integers.
const keySep = "\x1f"

// buildKey hashes the fields into a namespaced key of the form
// prefix:sha256(field1 <sep> field2 ...).
func buildKey(prefix string, fields ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(fields, keySep)))
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
