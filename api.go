package cachestore

import (
	"context"

	c "github.com/unkn0wn-root/cachestore/codec"
	pr "github.com/unkn0wn-root/cachestore/provider"
)

// Adapter is the store surface a caching façade delegates to.
// *Store implements it.
type Adapter interface {
	Get(ctx context.Context, key string) (Result, error)
	Set(ctx context.Context, key string, value any, ttl ...TTLOption) error
	MGet(ctx context.Context, keys ...string) ([]Result, error)
	MSet(ctx context.Context, pairs []Pair, ttl ...TTLOption) error
	Del(ctx context.Context, keys ...string) error
	Reset(ctx context.Context) error
	Keys(ctx context.Context, pattern string) ([]string, error)
	TTL(ctx context.Context, key string) (int64, error)
	IsCacheableValue(value any) bool
	Wrap(ctx context.Context, key string, fn Producer, ttl ...TTLOption) (any, error)

	// Provider is the raw store client, for advanced use and tests.
	Provider() pr.Provider
	Close(ctx context.Context) error
}

// Pair is one key/value of an MSet batch.
type Pair struct {
	Key   string
	Value any
}

// Producer computes the value for a Wrap miss.
type Producer func(ctx context.Context) (any, error)

// TTL query results, re-exported from provider.
const (
	TTLNoExpiry = pr.TTLNoExpiry
	TTLMissing  = pr.TTLMissing
)

// Options configure a Store. Only Provider is required.
type Options struct {
	Provider pr.Provider

	Codec       c.Codec[any]  // nil => codec.JSON[any]
	IsCacheable CacheableFunc // nil => DefaultCacheable; replaces it entirely
	DefaultTTL  TTL           // unset => writes without a TTL carry no expiry directive
	Prefix      string        // namespace prepended to every key; "" => whole database
	Logger      Logger        // nil => NopLogger
	Hooks       Hooks         // nil => NopHooks
}

var _ Adapter = (*Store)(nil)
