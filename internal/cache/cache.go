package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache stores marshaled verification results keyed by claim
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from claim text. Claims differing only in case or
// surrounding whitespace share a verdict.
func Key(claimText string) string {
	normalized := strings.ToLower(strings.TrimSpace(claimText))
	hash := sha256.Sum256([]byte(normalized))
	return "medfact:v1:" + hex.EncodeToString(hash[:])
}
