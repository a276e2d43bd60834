package cachestore

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/unkn0wn-root/cachestore/internal/util"
	pr "github.com/unkn0wn-root/cachestore/provider"
)

// resetBatch bounds the DEL fan-out when Reset clears a prefix.
const resetBatch = 500

// Store is the cache-store adapter. It holds no entries of its own and is safe
// for concurrent use.
type Store struct {
	provider    pr.Provider
	ser         Serializer
	isCacheable CacheableFunc
	defaultTTL  TTL
	prefix      string
	log         Logger
	hooks       Hooks

	flight singleflight.Group
}

func New(opts Options) (*Store, error) {
	if opts.Provider == nil {
		return nil, ErrNoProvider
	}
	if _, err := normalizeTTL(opts.DefaultTTL, nil); err != nil {
		return nil, fmt.Errorf("default ttl: %w", err)
	}

	opts = withDefaults(opts)
	return &Store{
		provider:    opts.Provider,
		ser:         NewSerializer(opts.Codec),
		isCacheable: opts.IsCacheable,
		defaultTTL:  opts.DefaultTTL,
		prefix:      opts.Prefix,
		log:         opts.Logger,
		hooks:       opts.Hooks,
	}, nil
}

func (s *Store) Provider() pr.Provider { return s.provider }

// IsCacheableValue applies the configured policy.
func (s *Store) IsCacheableValue(v any) bool { return s.isCacheable(v) }

func (s *Store) Close(ctx context.Context) error {
	return s.provider.Close(ctx)
}

func (s *Store) Get(ctx context.Context, key string) (Result, error) {
	raw, ok, err := s.provider.Get(ctx, s.key(key))
	if err != nil {
		return Result{}, s.storeErr("get", err)
	}
	if !ok {
		return Result{Kind: Miss}, nil
	}
	if raw == nil {
		raw = []byte{} // present but empty: let the frame check reject it
	}
	return s.decode(key, raw)
}

func (s *Store) Set(ctx context.Context, key string, value any, ttl ...TTLOption) error {
	if err := s.admit("set", key, value); err != nil {
		return err
	}
	b, err := s.encode(key, value)
	if err != nil {
		return err
	}
	exp, err := normalizeTTL(s.defaultTTL, ttl)
	if err != nil {
		return err
	}
	if err := s.provider.Set(ctx, s.key(key), b, exp); err != nil {
		return s.storeErr("set", err)
	}
	return nil
}

// MSet validates and encodes the whole batch before touching the store, so a
// single rejected or unencodable item means nothing is written. Cross-key
// atomicity of the write itself is whatever the provider's batch offers.
func (s *Store) MSet(ctx context.Context, pairs []Pair, ttl ...TTLOption) error {
	if len(pairs) == 0 {
		return nil
	}
	for _, p := range pairs {
		if err := s.admit("mset", p.Key, p.Value); err != nil {
			return err
		}
	}
	entries := make([]pr.Entry, len(pairs))
	for i, p := range pairs {
		b, err := s.encode(p.Key, p.Value)
		if err != nil {
			return err
		}
		entries[i] = pr.Entry{Key: s.key(p.Key), Value: b}
	}
	exp, err := normalizeTTL(s.defaultTTL, ttl)
	if err != nil {
		return err
	}
	if err := s.provider.MSet(ctx, entries, exp); err != nil {
		return s.storeErr("mset", err)
	}
	s.log.Debug("mset", Fields{"count": len(entries)})
	return nil
}

// MGet returns one Result per key, in input order.
func (s *Store) MGet(ctx context.Context, keys ...string) ([]Result, error) {
	if len(keys) == 0 {
		return []Result{}, nil
	}
	raws, err := s.provider.MGet(ctx, util.NamespacedAll(s.prefix, keys))
	if err != nil {
		return nil, s.storeErr("mget", err)
	}
	if len(raws) != len(keys) {
		return nil, s.storeErr("mget", fmt.Errorf("provider returned %d values for %d keys", len(raws), len(keys)))
	}
	out := make([]Result, len(keys))
	for i, raw := range raws {
		res, err := s.decode(keys[i], raw)
		if err != nil {
			return nil, err
		}
		out[i] = res
	}
	return out, nil
}

// Del removes one or more keys. Missing keys are not an error.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.provider.Del(ctx, util.NamespacedAll(s.prefix, keys)...); err != nil {
		return s.storeErr("del", err)
	}
	return nil
}

// Reset flushes the whole database when the store has no prefix; otherwise it
// deletes every key under the prefix. There is no rollback on partial failure.
func (s *Store) Reset(ctx context.Context) error {
	if s.prefix == "" {
		if err := s.provider.Flush(ctx); err != nil {
			return s.storeErr("reset", err)
		}
		s.log.Info("store flushed", nil)
		return nil
	}

	keys, err := s.provider.Keys(ctx, util.Pattern(s.prefix, util.MatchAll))
	if err != nil {
		return s.storeErr("reset", err)
	}
	for start := 0; start < len(keys); start += resetBatch {
		end := min(start+resetBatch, len(keys))
		if err := s.provider.Del(ctx, keys[start:end]...); err != nil {
			return s.storeErr("reset", err)
		}
	}
	s.log.Info("namespace flushed", Fields{"prefix": s.prefix, "removed": len(keys)})
	return nil
}

// Keys lists keys matching a Redis-style glob ("" selects all). Order is unspecified.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys, err := s.provider.Keys(ctx, util.Pattern(s.prefix, pattern))
	if err != nil {
		return nil, s.storeErr("keys", err)
	}
	return util.StripAll(s.prefix, keys), nil
}

// TTL returns remaining seconds, TTLNoExpiry (-1) or TTLMissing (-2).
func (s *Store) TTL(ctx context.Context, key string) (int64, error) {
	ttl, err := s.provider.TTL(ctx, s.key(key))
	if err != nil {
		return 0, s.storeErr("ttl", err)
	}
	return ttl, nil
}

func (s *Store) key(k string) string { return util.Namespaced(s.prefix, k) }

func (s *Store) admit(op, key string, v any) error {
	if s.isCacheable(v) {
		return nil
	}
	s.hooks.ValueRejected(op, key)
	s.log.Debug("value rejected by cacheability policy", Fields{"op": op, "key": key})
	return &NotCacheableError{Key: key, Value: describe(v)}
}

func (s *Store) encode(key string, v any) ([]byte, error) {
	b, err := s.ser.Encode(v)
	if err != nil {
		return nil, &SerializationError{Key: key, Err: err}
	}
	return b, nil
}

func (s *Store) decode(key string, raw []byte) (Result, error) {
	res, err := s.ser.Decode(raw)
	if err != nil {
		s.hooks.DecodeError(key, err)
		s.log.Warn("stored value could not be decoded", Fields{"key": key, "err": err})
		return Result{}, &SerializationError{Key: key, Err: err}
	}
	return res, nil
}

func (s *Store) storeErr(op string, err error) error {
	s.hooks.StoreError(op, err)
	s.log.Warn("store operation failed", Fields{"op": op, "err": err})
	return &ConnectionError{Op: op, Err: err}
}
