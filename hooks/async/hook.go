// Package asynchook decouples hook callbacks from the engine's synchronous
// hot path: events are queued to a small worker pool and dropped (never
// blocking) when the queue is full.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{ColdCacheEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	mgr, _ := unreadcache.New(unreadcache.Options{
//	    Namespace: "newsletters",
//	    Cache:     store,
//	    Hooks:     hooks, // or `raw` if async isn't wanted
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/unreadcache"
)

type Hooks struct {
	inner unreadcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ unreadcache.Hooks = (*Hooks)(nil)

func New(inner unreadcache.Hooks, workers, qlen int) *Hooks {
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

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) ColdCache(kind unreadcache.OpKind, affected int) {
	h.try(func() { h.inner.ColdCache(kind, affected) })
}

func (h *Hooks) SnapshotWriteRejected(k string) {
	h.try(func() { h.inner.SnapshotWriteRejected(k) })
}

func (h *Hooks) SnapshotWriteError(k string, err error) {
	h.try(func() { h.inner.SnapshotWriteError(k, err) })
}

func (h *Hooks) SelfHeal(k, reason string) {
	h.try(func() { h.inner.SelfHeal(k, reason) })
}

func (h *Hooks) UnknownKind(kind unreadcache.OpKind) {
	h.try(func() { h.inner.UnknownKind(kind) })
}

func (h *Hooks) InvalidateError(prefix string, err error) {
	h.try(func() { h.inner.InvalidateError(prefix, err) })
}
