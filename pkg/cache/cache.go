// Package cache provides byte-level caching of solved geometry artifacts.
//
// Solving a linkage is deterministic: the same target, bounds, and samples
// always produce the same hardpoints, so a solve result can be keyed by a
// hash of its inputs and reused across runs. Three backends are provided:
//   - file: directory-backed storage for CLI usage
//   - redis: shared storage for the HTTP service
//   - null: disabled caching for tests and one-shot runs
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Default lifetimes for cached artifacts. Solve inputs fully determine the
// outputs, so entries never go stale; the TTLs only bound disk growth.
const (
	TTLSolve  = 30 * 24 * time.Hour
	TTLReport = 7 * 24 * time.Hour
)

// Cache stores opaque byte payloads under string keys with optional TTL.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// hashKey builds a cache key from a type prefix and a canonical text encoding
// of the parts. The %#v verb sorts map keys and encodes the NaN bound values
// that JSON cannot represent. The full SHA-256 digest is kept to rule out
// collisions.
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	for _, part := range parts {
		fmt.Fprintf(h, "%#v\n", part)
	}
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(h.Sum(nil)))
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SolveKey builds the cache key for a solved linkage from its full input
// state: the design target, the bound table, and the sample fractions. Any
// change to any input changes the key.
func SolveKey(target, bounds, samples any) string {
	return hashKey("solve", target, bounds, samples)
}

// ReportKey builds the cache key for a rendered artifact derived from a
// solved linkage, namespaced by output format.
func ReportKey(solveKey, format string) string {
	return hashKey("report", solveKey, format)
}
