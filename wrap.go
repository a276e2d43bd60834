package cachestore

import (
	"context"
	"errors"
)

var errNilProducer = errors.New("cachestore: nil producer")

// Wrap returns the cached value for key, or computes it with fn, caches it and
// returns it. A stored Undefined counts as a hit.
//
// Caching is best-effort: if the read or the write fails, the computed value is
// still returned and the failure goes to the logger and Hooks.WrapSetFailed.
// Errors from fn are returned as-is and nothing is cached.
//
// Concurrent calls for the same key share one fn invocation. The shared run
// keeps ctx's values but not its cancellation, so one caller giving up does not
// fail the others; each caller still returns ctx.Err() when its own ctx ends.
func (s *Store) Wrap(ctx context.Context, key string, fn Producer, ttl ...TTLOption) (any, error) {
	if fn == nil {
		return nil, errNilProducer
	}
	flightCtx := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(key, func() (any, error) {
		return s.fill(flightCtx, key, fn, ttl)
	})
	select {
	case r := <-ch:
		return r.Val, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Store) fill(ctx context.Context, key string, fn Producer, ttl []TTLOption) (any, error) {
	res, err := s.Get(ctx, key)
	switch {
	case err != nil:
		s.log.Warn("wrap read failed; computing value", Fields{"key": key, "err": err})
	case res.Found():
		return res.Value, nil
	}

	v, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Set(ctx, key, v, ttl...); err != nil {
		s.hooks.WrapSetFailed(key, err)
		if errors.Is(err, ErrNotCacheable) {
			s.log.Debug("wrap result not cacheable", Fields{"key": key})
		} else {
			s.log.Warn("wrap could not cache value", Fields{"key": key, "err": err})
		}
	}
	return v, nil
}
