// Package sloghooks reports cachestore hook events through log/slog.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/cachestore"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	RejectEvery uint64
	DecodeEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	rejectCtr atomic.Uint64
	decodeCtr atomic.Uint64
}

var _ cachestore.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) ValueRejected(op, key string) {
	if h.l == nil || !sample(h.opts.RejectEvery, &h.rejectCtr) {
		return
	}
	h.l.Debug("cachestore.value_rejected",
		"op", op,
		"key", h.redact(key))
}

func (h *Hooks) StoreError(op string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("cachestore.store_error",
		"op", op,
		"err", err)
}

func (h *Hooks) DecodeError(key string, err error) {
	if h.l == nil || !sample(h.opts.DecodeEvery, &h.decodeCtr) {
		return
	}
	h.l.Warn("cachestore.decode_error",
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) WrapSetFailed(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Info("cachestore.wrap_set_failed",
		"key", h.redact(key),
		"err", err)
}
