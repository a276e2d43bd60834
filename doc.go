// Package cachestore adapts a remote key-value store to the store contract a
// generic caching façade delegates to: Get, Set, MGet, MSet, Del, Reset, Keys,
// TTL, IsCacheableValue and Wrap.
//
// Components:
//   - Provider: store client (Redis via go-redis, or in-process ristretto).
//   - Codec[any]: payload (de)serialization, JSON by default.
//   - CacheableFunc: write policy; rejects null and Undefined by default.
//
// Values are framed before they reach the store, so the Undefined sentinel and
// a stored string "undefined" never collide. Reads return a tagged Result:
//
//	r, err := store.Get(ctx, "user:1")
//	switch r.Kind {
//	case cachestore.Miss:         // key absent
//	case cachestore.HitUndefined: // sentinel stored under a permissive policy
//	case cachestore.Hit:          // r.Value holds the decoded value
//	}
//
// TTLs are whole seconds. Seconds(0) (Forever) stores without expiry; an
// unspecified TTL falls back to Options.DefaultTTL, then to no directive.
//
// Every store failure surfaces as ErrConnection; the adapter never retries,
// reconnects or swallows errors. Wrap is the one best-effort path: a failed
// cache write still returns the producer's value.
package cachestore
