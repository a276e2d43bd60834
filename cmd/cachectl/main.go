// Command cachectl inspects and edits a cachestore namespace from the shell.
//
//	cachectl get user:1
//	cachectl set user:1 '{"name":"ada"}' 300
//	cachectl keys 'user:*'
//
// Connection settings come from the environment (see package config).
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/cachestore"
	"github.com/unkn0wn-root/cachestore/config"
	zaplog "github.com/unkn0wn-root/cachestore/log/zap"
	rp "github.com/unkn0wn-root/cachestore/provider/redis"
)

var errUsage = errors.New("usage: cachectl [-timeout d] <get|set|del|keys|ttl|reset|ping> [args]")

func main() {
	timeout := flag.Duration("timeout", 5*time.Second, "per-command timeout")
	flag.Parse()

	if err := run(*timeout, flag.Args(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "cachectl:", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func run(timeout time.Duration, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zl, err := newLogger(zap.NewAtomicLevelAt(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	p, err := rp.New(rp.Config{Client: redis.NewClient(cfg.RedisOptions()), CloseClient: true})
	if err != nil {
		return err
	}
	opts, err := cfg.StoreOptions(p, zaplog.New(zl))
	if err != nil {
		return err
	}
	store, err := cachestore.New(opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	defer func() { _ = store.Close(context.Background()) }()

	return dispatch(ctx, store, args, json.NewEncoder(out))
}

func dispatch(ctx context.Context, s *cachestore.Store, args []string, enc *json.Encoder) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "get":
		if len(rest) != 1 {
			return errUsage
		}
		res, err := s.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		return enc.Encode(render(res))

	case "set":
		if len(rest) < 2 || len(rest) > 3 {
			return errUsage
		}
		var v any
		if err := json.Unmarshal([]byte(rest[1]), &v); err != nil {
			return fmt.Errorf("value is not JSON: %w", err)
		}
		var ttl []cachestore.TTLOption
		if len(rest) == 3 {
			n, err := strconv.ParseInt(rest[2], 10, 64)
			if err != nil {
				return fmt.Errorf("ttl: %w", err)
			}
			ttl = append(ttl, cachestore.Seconds(n))
		}
		if err := s.Set(ctx, rest[0], v, ttl...); err != nil {
			return err
		}
		return enc.Encode(map[string]any{"ok": true})

	case "del":
		if len(rest) == 0 {
			return errUsage
		}
		if err := s.Del(ctx, rest...); err != nil {
			return err
		}
		return enc.Encode(map[string]any{"deleted": len(rest)})

	case "keys":
		pattern := ""
		if len(rest) == 1 {
			pattern = rest[0]
		} else if len(rest) > 1 {
			return errUsage
		}
		keys, err := s.Keys(ctx, pattern)
		if err != nil {
			return err
		}
		return enc.Encode(keys)

	case "ttl":
		if len(rest) != 1 {
			return errUsage
		}
		ttl, err := s.TTL(ctx, rest[0])
		if err != nil {
			return err
		}
		return enc.Encode(map[string]any{"ttl": ttl})

	case "reset":
		if err := s.Reset(ctx); err != nil {
			return err
		}
		return enc.Encode(map[string]any{"ok": true})

	case "ping":
		if err := s.Provider().Ping(ctx); err != nil {
			return err
		}
		return enc.Encode(map[string]any{"pong": true})
	}
	return errUsage
}

func render(r cachestore.Result) map[string]any {
	out := map[string]any{"kind": r.Kind.String()}
	if r.Kind == cachestore.Hit {
		out["value"] = r.Value
	}
	return out
}
