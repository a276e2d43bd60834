package asynchook

import (
	"errors"
	"sync"
	"testing"

	"github.com/unkn0wn-root/cachestore"
)

type counting struct {
	mu     sync.Mutex
	events []string
	block  chan struct{}
}

func (c *counting) add(s string) {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	c.events = append(c.events, s)
	c.mu.Unlock()
}

func (c *counting) ValueRejected(op, key string)  { c.add("rejected:" + op + ":" + key) }
func (c *counting) StoreError(op string, _ error) { c.add("store:" + op) }
func (c *counting) DecodeError(key string, _ error) {
	c.add("decode:" + key)
}
func (c *counting) WrapSetFailed(key string, _ error) { c.add("wrap:" + key) }

var _ cachestore.Hooks = (*counting)(nil)

func TestForwardsAllEvents(t *testing.T) {
	inner := &counting{}
	h := New(inner, 1, 16)

	h.ValueRejected("set", "k")
	h.StoreError("get", errors.New("x"))
	h.DecodeError("k", errors.New("x"))
	h.WrapSetFailed("k", errors.New("x"))
	h.Close()

	want := []string{"rejected:set:k", "store:get", "decode:k", "wrap:k"}
	if len(inner.events) != len(want) {
		t.Fatalf("events: %v", inner.events)
	}
	for i := range want {
		if inner.events[i] != want[i] {
			t.Fatalf("event %d: got %q want %q", i, inner.events[i], want[i])
		}
	}
	if h.Dropped() != 0 {
		t.Fatalf("dropped %d", h.Dropped())
	}
}

func TestDropsWhenFullAndAfterClose(t *testing.T) {
	inner := &counting{block: make(chan struct{})}
	h := New(inner, 1, 1)

	// The worker takes one event and blocks; one more fits the queue.
	for i := 0; i < 10; i++ {
		h.StoreError("set", nil)
	}
	if h.Dropped() < 8 {
		t.Fatalf("expected at least 8 drops, got %d", h.Dropped())
	}
	close(inner.block)
	h.Close()

	before := h.Dropped()
	h.DecodeError("k", nil)
	if h.Dropped() != before+1 {
		t.Fatal("events after Close must be dropped")
	}
	h.Close() // idempotent
}
