package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching parse responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from normalized request text. Parsing is a
// pure function of its input, so identical text always maps to the same
// response.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "schedparse:v1:" + hex.EncodeToString(hash[:])
}
