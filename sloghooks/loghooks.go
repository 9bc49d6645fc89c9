package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/genasset"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	SelfHealEvery  uint64
	ReadErrorEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr atomic.Uint64
	readErrCtr  atomic.Uint64
}

var _ genasset.Hooks = (*Hooks)(nil)

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

func (h *Hooks) SelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("genasset.self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

// ReadError is sampled: a provider outage fires it on every lookup.
func (h *Hooks) ReadError(storageKey string, err error) {
	if h.l == nil || !sample(h.opts.ReadErrorEvery, &h.readErrCtr) {
		return
	}
	h.l.Warn("genasset.read_error",
		"key", h.redact(storageKey),
		"err", err)
}

func (h *Hooks) WriteError(storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("genasset.write_error",
		"key", h.redact(storageKey),
		"err", err)
}

func (h *Hooks) WriteRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("genasset.write_rejected",
		"key", h.redact(storageKey))
}

func (h *Hooks) Inconsistent(filename string) {
	if h.l == nil {
		return
	}
	h.l.Error("genasset.inconsistent",
		"filename", filename)
}

func (h *Hooks) Regenerated(filename string, size int) {
	if h.l == nil {
		return
	}
	h.l.Debug("genasset.regenerated",
		"filename", filename,
		"size", size)
}

func (h *Hooks) Flushed(namespace string) {
	if h.l == nil {
		return
	}
	h.l.Info("genasset.flushed",
		"ns", namespace)
}
