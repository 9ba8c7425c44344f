// Package sloghooks is an unreadcache.Hooks implementation backed by
// log/slog, with sampling on the two events that can fire per keystroke in a
// busy inbox (cold-cache skips and store write rejections).
package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/unreadcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	ColdCacheEvery   uint64
	WriteRejectEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	coldCacheCtr   atomic.Uint64
	writeRejectCtr atomic.Uint64
}

var _ unreadcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sampled(ctr *atomic.Uint64, every uint64) bool {
	if every <= 1 {
		return true
	}
	return ctr.Add(1)%every == 1
}

func (h *Hooks) ColdCache(kind unreadcache.OpKind, affected int) {
	if !sampled(&h.coldCacheCtr, h.opts.ColdCacheEvery) {
		return
	}
	h.l.Debug("unreadcache cold cache", "kind", kind.String(), "affected", affected)
}

func (h *Hooks) SnapshotWriteRejected(storageKey string) {
	if !sampled(&h.writeRejectCtr, h.opts.WriteRejectEvery) {
		return
	}
	h.l.Warn("unreadcache write rejected", "key", storageKey)
}

func (h *Hooks) SnapshotWriteError(storageKey string, err error) {
	h.l.Error("unreadcache write error", "key", storageKey, "err", err)
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	h.l.Warn("unreadcache self-heal", "key", storageKey, "reason", reason)
}

func (h *Hooks) UnknownKind(kind unreadcache.OpKind) {
	h.l.Warn("unreadcache unknown kind", "kind", kind.String())
}

func (h *Hooks) InvalidateError(keyPrefix string, err error) {
	h.l.Error("unreadcache invalidate error", "prefix", keyPrefix, "err", err)
}
