package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/cachestore/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

const defaultScanCount = 500

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
	scanCount   int64
}

var _ pr.Provider = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool  // set true only if this provider exclusively owns the client
	ScanCount   int64 // SCAN COUNT hint for Keys; 0 => 500
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	count := cfg.ScanCount
	if count <= 0 {
		count = defaultScanCount
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient, scanCount: count}, nil
}

// Client exposes the underlying go-redis client for advanced use.
func (p *Redis) Client() goredis.UniversalClient { return p.rdb }

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := p.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

// Set issues a single SET; with ExpiryAfter the TTL rides on the same command (EX/PX),
// so the value never exists without its expiry.
func (p *Redis) Set(ctx context.Context, key string, value []byte, exp pr.Expiry) error {
	return p.rdb.Set(ctx, key, value, exp.Duration()).Err()
}

// MSet uses MSET when no expiry is needed. Otherwise it wraps one SET per key in
// MULTI/EXEC, which is atomic on a single node.
func (p *Redis) MSet(ctx context.Context, entries []pr.Entry, exp pr.Expiry) error {
	if len(entries) == 0 {
		return nil
	}
	ttl := exp.Duration()
	if ttl == 0 {
		args := make([]any, 0, len(entries)*2)
		for _, e := range entries {
			args = append(args, e.Key, e.Value)
		}
		return p.rdb.MSet(ctx, args...).Err()
	}
	_, err := p.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, e := range entries {
			pipe.Set(ctx, e.Key, e.Value, ttl)
		}
		return nil
	})
	return err
}

func (p *Redis) MGet(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return [][]byte{}, nil
	}
	vals, err := p.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(keys))
	for i, v := range vals {
		switch vv := v.(type) {
		case nil:
			// miss
		case string:
			out[i] = []byte(vv)
		case []byte:
			out[i] = vv
		}
	}
	return out, nil
}

func (p *Redis) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return p.rdb.Del(ctx, keys...).Err()
}

// Keys walks SCAN with MATCH rather than KEYS so large keyspaces do not block the server.
// SCAN may repeat keys; results are de-duplicated.
func (p *Redis) Keys(ctx context.Context, pattern string) ([]string, error) {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	iter := p.rdb.Scan(ctx, 0, pattern, p.scanCount).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Redis) Flush(ctx context.Context) error {
	return p.rdb.FlushDB(ctx).Err()
}

// TTL reads PTTL and rounds up, so a live key with under a second left reports 1, not 0.
func (p *Redis) TTL(ctx context.Context, key string) (int64, error) {
	d, err := p.rdb.PTTL(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// go-redis reports the -1/-2 replies verbatim as nanoseconds.
	switch d {
	case -2:
		return pr.TTLMissing, nil
	case -1:
		return pr.TTLNoExpiry, nil
	}
	secs := int64(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs, nil
}

func (p *Redis) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

// Close releases the underlying redis client only when this provider owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Redis) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
