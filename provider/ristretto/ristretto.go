// Package ristretto is an in-process provider for tests, local development and
// single-process deployments. Entries live in a ristretto cache; a side index
// of live keys backs Keys, which ristretto itself cannot enumerate.
//
// Batch writes are applied one key at a time and are NOT atomic across keys.
package ristretto

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/cachestore/internal/util"
	pr "github.com/unkn0wn-root/cachestore/provider"
)

var ErrClosed = errors.New("ristretto provider: closed")

type Provider struct {
	c *rc.Cache

	mu    sync.Mutex
	index map[string]struct{}

	closed atomic.Bool
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	NumCounters int64 // 0 => 1e5
	MaxCost     int64 // total bytes (key+value); 0 => 64 MiB
	BufferItems int64 // 0 => 64
	Metrics     bool
}

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters < 0 || cfg.MaxCost < 0 || cfg.BufferItems < 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: coalesce(cfg.NumCounters, 100_000),
		MaxCost:     coalesce(cfg.MaxCost, 64<<20),
		BufferItems: coalesce(cfg.BufferItems, 64),
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c, index: make(map[string]struct{})}, nil
}

func coalesce(v, def int64) int64 {
	if v == 0 {
		return def
	}
	return v
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	if p.closed.Load() {
		return nil, false, ErrClosed
	}
	b, ok := p.get(key)
	return b, ok, nil
}

func (p *Provider) get(key string) ([]byte, bool) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		p.c.Del(key)
		return nil, false
	}
	return b, true
}

// Set buffers the write in ristretto, waits for it to apply and then confirms the
// key is present. A write dropped by admission returns ErrRejected.
func (p *Provider) Set(_ context.Context, key string, value []byte, exp pr.Expiry) error {
	if p.closed.Load() {
		return ErrClosed
	}
	return p.set(key, value, exp.Duration())
}

func (p *Provider) set(key string, value []byte, ttl time.Duration) error {
	val := append([]byte(nil), value...)
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.c.SetWithTTL(key, val, int64(len(key)+len(val)), ttl) {
		return pr.ErrRejected
	}
	p.c.Wait()
	if _, ok := p.c.Get(key); !ok {
		return pr.ErrRejected
	}
	p.index[key] = struct{}{}
	return nil
}

func (p *Provider) MSet(_ context.Context, entries []pr.Entry, exp pr.Expiry) error {
	if p.closed.Load() {
		return ErrClosed
	}
	ttl := exp.Duration()
	for _, e := range entries {
		if err := p.set(e.Key, e.Value, ttl); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) MGet(_ context.Context, keys []string) ([][]byte, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	out := make([][]byte, len(keys))
	for i, k := range keys {
		if b, ok := p.get(k); ok {
			out[i] = b
		}
	}
	return out, nil
}

func (p *Provider) Del(_ context.Context, keys ...string) error {
	if p.closed.Load() {
		return ErrClosed
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, k := range keys {
		p.c.Del(k)
		delete(p.index, k)
	}
	return nil
}

// Keys matches the pattern against the index, pruning keys that have expired or
// been evicted since they were written.
func (p *Provider) Keys(_ context.Context, pattern string) ([]string, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	if pattern == "" {
		pattern = util.MatchAll
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0)
	for k := range p.index {
		if _, ok := p.c.Get(k); !ok {
			delete(p.index, k)
			continue
		}
		if util.Match(pattern, k) {
			out = append(out, k)
		}
	}
	return out, nil
}

func (p *Provider) Flush(_ context.Context) error {
	if p.closed.Load() {
		return ErrClosed
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.c.Clear()
	p.index = make(map[string]struct{})
	return nil
}

func (p *Provider) TTL(_ context.Context, key string) (int64, error) {
	if p.closed.Load() {
		return 0, ErrClosed
	}
	d, ok := p.c.GetTTL(key)
	if !ok {
		return pr.TTLMissing, nil
	}
	if d <= 0 {
		return pr.TTLNoExpiry, nil
	}
	// round up so a live key never reports 0
	return int64((d + time.Second - 1) / time.Second), nil
}

func (p *Provider) Ping(context.Context) error {
	if p.closed.Load() {
		return ErrClosed
	}
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	if p.closed.Swap(true) {
		return nil
	}
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics exposes ristretto metrics if enabled (not part of provider.Provider).
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
