// Package config loads cachestore settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/cachestore"
	"github.com/unkn0wn-root/cachestore/codec"
	pr "github.com/unkn0wn-root/cachestore/provider"
)

// EnvFileVar names the dotenv file to load. When unset, ".env" is loaded if present.
const EnvFileVar = "CACHESTORE_ENV_FILE"

type Config struct {
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	RedisDialTimeout  time.Duration
	RedisReadTimeout  time.Duration
	RedisWriteTimeout time.Duration
	RedisPoolSize     int

	Prefix        string
	DefaultTTL    *int64 // seconds; nil => no default
	CodecName     string // json | msgpack | cbor | structpb
	MaxValueBytes int    // 0 => unlimited
	LogLevel      zapcore.Level
}

// Load reads the dotenv file (if any) and then the process environment.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	if path, ok := os.LookupEnv(EnvFileVar); ok && path != "" {
		if err := godotenv.Load(path); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, e.g. os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	p := parser{lookup: lookup}
	cfg := Config{
		RedisAddr:         p.str("REDIS_ADDR"),
		RedisPassword:     p.str("REDIS_PASSWORD"),
		RedisDB:           p.num("REDIS_DB"),
		RedisDialTimeout:  p.dur("REDIS_DIAL_TIMEOUT"),
		RedisReadTimeout:  p.dur("REDIS_READ_TIMEOUT"),
		RedisWriteTimeout: p.dur("REDIS_WRITE_TIMEOUT"),
		RedisPoolSize:     p.num("REDIS_POOL_SIZE"),
		Prefix:            p.str("CACHE_PREFIX"),
		CodecName:         p.lower("CACHE_CODEC"),
		MaxValueBytes:     p.num("CACHE_MAX_VALUE_BYTES"),
	}
	if v, ok := lookup("CACHE_DEFAULT_TTL"); ok && v != "" {
		n := p.parseInt("CACHE_DEFAULT_TTL", v)
		if n < 0 || int64(n) > cachestore.MaxTTLSeconds {
			p.fail("CACHE_DEFAULT_TTL", v, cachestore.ErrInvalidTTL)
		}
		secs := int64(n)
		cfg.DefaultTTL = &secs
	}
	if v := p.str("LOG_LEVEL"); v != "" {
		lvl, err := zapcore.ParseLevel(v)
		if err != nil {
			p.fail("LOG_LEVEL", v, err)
		}
		cfg.LogLevel = lvl
	}
	if p.err != nil {
		return Config{}, p.err
	}

	cfg = cfg.withDefaults()
	if _, err := codecByName(cfg.CodecName); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) withDefaults() Config {
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "127.0.0.1:6379"
	}
	if cfg.RedisDialTimeout <= 0 {
		cfg.RedisDialTimeout = 5 * time.Second
	}
	if cfg.RedisReadTimeout <= 0 {
		cfg.RedisReadTimeout = 2 * time.Second
	}
	if cfg.RedisWriteTimeout <= 0 {
		cfg.RedisWriteTimeout = 2 * time.Second
	}
	if cfg.RedisDB < 0 {
		cfg.RedisDB = 0
	}
	if cfg.RedisPoolSize <= 0 {
		cfg.RedisPoolSize = 8
	}
	if cfg.CodecName == "" {
		cfg.CodecName = "json"
	}
	if cfg.MaxValueBytes < 0 {
		cfg.MaxValueBytes = 0
	}
	return cfg
}

func (cfg Config) RedisOptions() *redis.Options {
	return &redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  cfg.RedisDialTimeout,
		ReadTimeout:  cfg.RedisReadTimeout,
		WriteTimeout: cfg.RedisWriteTimeout,
		PoolSize:     cfg.RedisPoolSize,
	}
}

// Codec returns the configured codec, size-limited when MaxValueBytes is set.
func (cfg Config) Codec() (codec.Codec[any], error) {
	cd, err := codecByName(cfg.CodecName)
	if err != nil {
		return nil, err
	}
	if cfg.MaxValueBytes > 0 {
		return codec.LimitCodec[any]{Inner: cd, MaxEncode: cfg.MaxValueBytes, MaxDecode: cfg.MaxValueBytes}, nil
	}
	return cd, nil
}

// TTL is the configured default; unset when CACHE_DEFAULT_TTL is absent.
func (cfg Config) TTL() cachestore.TTL {
	if cfg.DefaultTTL == nil {
		return cachestore.TTL{}
	}
	return cachestore.Seconds(*cfg.DefaultTTL)
}

// StoreOptions assembles cachestore.Options around p.
func (cfg Config) StoreOptions(p pr.Provider, log cachestore.Logger) (cachestore.Options, error) {
	cd, err := cfg.Codec()
	if err != nil {
		return cachestore.Options{}, err
	}
	return cachestore.Options{
		Provider:   p,
		Codec:      cd,
		DefaultTTL: cfg.TTL(),
		Prefix:     cfg.Prefix,
		Logger:     log,
	}, nil
}
