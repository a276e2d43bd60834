// Package asynchook moves cachestore hook calls off the request path.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{RejectEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	store, _ := cachestore.New(cachestore.Options{
//	    Provider: provider,
//	    Prefix:   "app:prod:",
//	    Hooks:    hooks, // or `raw` if you don't want async
//	})
//
// Events are dropped, not queued without bound, when the buffer is full.
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/cachestore"
)

type Hooks struct {
	inner   cachestore.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ cachestore.Hooks = (*Hooks)(nil)

func New(inner cachestore.Hooks, workers, qlen int) *Hooks {
	if inner == nil {
		inner = cachestore.NopHooks{}
	}
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Later events are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) ValueRejected(op, key string) { h.try(func() { h.inner.ValueRejected(op, key) }) }
func (h *Hooks) StoreError(op string, err error) {
	h.try(func() { h.inner.StoreError(op, err) })
}
func (h *Hooks) DecodeError(key string, err error) {
	h.try(func() { h.inner.DecodeError(key, err) })
}
func (h *Hooks) WrapSetFailed(key string, err error) {
	h.try(func() { h.inner.WrapSetFailed(key, err) })
}
