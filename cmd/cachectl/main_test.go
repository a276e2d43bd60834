package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/cachestore"
	rp "github.com/unkn0wn-root/cachestore/provider/redis"
)

func newTestStore(t *testing.T) *cachestore.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	p, err := rp.New(rp.Config{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}), CloseClient: true})
	if err != nil {
		t.Fatal(err)
	}
	s, err := cachestore.New(cachestore.Options{Provider: p, Prefix: "cli:"})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func exec(t *testing.T, s *cachestore.Store, args ...string) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	if err := dispatch(context.Background(), s, args, json.NewEncoder(&buf)); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("%v: output %q: %v", args, buf.String(), err)
	}
	return out
}

func TestSetGetTTLDel(t *testing.T) {
	s := newTestStore(t)

	exec(t, s, "set", "user:1", `{"name":"ada"}`, "120")

	got := exec(t, s, "get", "user:1")
	if got["kind"] != "hit" {
		t.Fatalf("get: %v", got)
	}
	if v, _ := got["value"].(map[string]any); v["name"] != "ada" {
		t.Fatalf("value: %v", got["value"])
	}

	ttl := exec(t, s, "ttl", "user:1")["ttl"].(float64)
	if ttl <= 0 || ttl > 120 {
		t.Fatalf("ttl: %v", ttl)
	}

	exec(t, s, "del", "user:1")
	if got := exec(t, s, "get", "user:1"); got["kind"] != "miss" {
		t.Fatalf("after del: %v", got)
	}
	if exec(t, s, "ping")["pong"] != true {
		t.Fatal("ping")
	}
}

func TestKeysAndReset(t *testing.T) {
	s := newTestStore(t)
	exec(t, s, "set", "a", "1")
	exec(t, s, "set", "b", `"two"`)

	var buf bytes.Buffer
	if err := dispatch(context.Background(), s, []string{"keys", "a*"}, json.NewEncoder(&buf)); err != nil {
		t.Fatal(err)
	}
	var keys []string
	if err := json.Unmarshal(buf.Bytes(), &keys); err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != "a" {
		t.Fatalf("keys: %v", keys)
	}

	exec(t, s, "reset")
	if got := exec(t, s, "get", "b"); got["kind"] != "miss" {
		t.Fatalf("after reset: %v", got)
	}
}

func TestUsageErrors(t *testing.T) {
	s := newTestStore(t)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, args := range [][]string{{"get"}, {"set", "k"}, {"del"}, {"frobnicate"}, {"keys", "a", "b"}} {
		if err := dispatch(context.Background(), s, args, enc); !errors.Is(err, errUsage) {
			t.Fatalf("%v: want usage error, got %v", args, err)
		}
	}
	if err := dispatch(context.Background(), s, []string{"set", "k", "{not json"}, enc); err == nil {
		t.Fatal("expected JSON error")
	}
	if err := dispatch(context.Background(), s, []string{"set", "k", "null"}, enc); !errors.Is(err, cachestore.ErrNotCacheable) {
		t.Fatalf("null should be rejected, got %v", err)
	}
}
