// Package provider defines the store client abstraction used by cachestore.
//
// Implementations MUST be byte-for-byte transparent: Get and MGet must return
// exactly the same []byte that was previously passed to Set/MSet for a key (no
// prepended/appended metadata, no re-encoding, no mutation).
//
// Every method returns a non-nil error for transport, timeout or command
// failures. A miss is never an error. The store maps all such errors to
// cachestore.ErrConnection and never retries.
package provider

import (
	"context"
	"errors"
	"time"
)

// TTL query results.
const (
	TTLNoExpiry int64 = -1 // key exists without expiry
	TTLMissing  int64 = -2 // key does not exist
)

// ErrRejected is returned when a store refuses a write (admission, pressure).
var ErrRejected = errors.New("provider: write rejected by store")

// ExpiryKind selects how a write treats the key's lifetime.
type ExpiryKind uint8

const (
	// ExpiryDefault issues no expiry directive; the store default applies.
	ExpiryDefault ExpiryKind = iota
	// ExpiryPersist stores the key without expiry, clearing any previous one.
	ExpiryPersist
	// ExpiryAfter expires the key TTL after the write, set atomically with it.
	ExpiryAfter
)

// Expiry is a normalized expiry directive. TTL is only meaningful for ExpiryAfter.
type Expiry struct {
	Kind ExpiryKind
	TTL  time.Duration
}

// After returns an ExpiryAfter directive.
func After(ttl time.Duration) Expiry { return Expiry{Kind: ExpiryAfter, TTL: ttl} }

// Persist returns an ExpiryPersist directive.
func Persist() Expiry { return Expiry{Kind: ExpiryPersist} }

// Duration is the value to hand to a client whose "0" means no expiry.
func (e Expiry) Duration() time.Duration {
	if e.Kind == ExpiryAfter && e.TTL > 0 {
		return e.TTL
	}
	return 0
}

// Entry is one key/value pair of a batch write.
type Entry struct {
	Key   string
	Value []byte
}

// Provider is the store client consumed by cachestore.
// Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value, applying exp in the same command.
	Set(ctx context.Context, key string, value []byte, exp Expiry) error

	// MSet stores every entry with the same expiry.
	MSet(ctx context.Context, entries []Entry, exp Expiry) error

	// MGet returns one slot per key, in order; a nil slot is a miss.
	MGet(ctx context.Context, keys []string) ([][]byte, error)

	// Del removes keys. Missing keys are not an error.
	Del(ctx context.Context, keys ...string) error

	// Keys lists keys matching a Redis-style glob. Order is unspecified.
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Flush removes every key in the store's logical database.
	Flush(ctx context.Context) error

	// TTL returns remaining whole seconds, TTLNoExpiry or TTLMissing.
	TTL(ctx context.Context, key string) (int64, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close(ctx context.Context) error
}
