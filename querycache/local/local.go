// Package local is an in-process querycache.Cache with per-entry TTLs and a
// subscription registry, the default store for single-process hosts and
// tests. Invalidation drops every entry under a prefix and triggers refetch
// callbacks for matching subscribers, honoring the requested scope.
package local

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/unkn0wn-root/unreadcache/querycache"
)

type entry struct {
	v   []byte
	exp time.Time // zero => no TTL
}

// Store keeps entries in-process.
// Optional sweep loop to prune expired entries.
type Store struct {
	mu   sync.RWMutex
	m    map[string]entry
	subs map[*Subscription]struct{}

	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup
}

var _ querycache.Cache = (*Store)(nil)

// New constructs a Store. sweepInterval > 0 starts a background loop that
// prunes expired entries; 0 disables it (expired entries are still dropped
// lazily on Get).
func New(sweepInterval time.Duration) *Store {
	s := &Store{
		m:    make(map[string]entry),
		subs: make(map[*Subscription]struct{}),
	}
	if sweepInterval > 0 {
		s.ticker = time.NewTicker(sweepInterval)
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-s.ticker.C:
					s.sweep()
				case <-s.stopCh:
					return
				}
			}
		}()
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.m[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		s.mu.Lock()
		delete(s.m, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return e.v, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.m[key] = entry{v: value, exp: exp}
	s.mu.Unlock()
	return true, nil
}

func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
	return nil
}

// Invalidate drops every entry under keyPrefix, then fires refetch callbacks:
// active subscribers always, paused ones only for ScopeAll. Callbacks run
// outside the lock and must not block.
func (s *Store) Invalidate(_ context.Context, keyPrefix string, scope querycache.Scope) error {
	var notify []func()

	s.mu.Lock()
	for k := range s.m {
		if strings.HasPrefix(k, keyPrefix) {
			delete(s.m, k)
		}
	}
	for sub := range s.subs {
		if !strings.HasPrefix(keyPrefix, sub.prefix) && !strings.HasPrefix(sub.prefix, keyPrefix) {
			continue
		}
		if sub.active || scope == querycache.ScopeAll {
			notify = append(notify, sub.refetch)
		}
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn()
	}
	return nil
}

func (s *Store) Close(_ context.Context) error {
	if s.stopCh != nil {
		close(s.stopCh)
		s.ticker.Stop()
		s.wg.Wait()
	}
	return nil
}

func (s *Store) sweep() {
	now := time.Now()
	s.mu.Lock()
	for k, e := range s.m {
		if !e.exp.IsZero() && e.exp.Before(now) {
			delete(s.m, k)
		}
	}
	s.mu.Unlock()
}

// Len reports the number of live entries (expired-but-unswept included).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Subscription registers interest in a key prefix. A subscription starts
// active; Pause marks its consumer off-screen so ScopeActive invalidations
// skip it.
type Subscription struct {
	s       *Store
	prefix  string
	refetch func()
	active  bool
}

// Subscribe registers refetch to run when any key under keyPrefix is
// invalidated. The callback runs on the invalidating goroutine.
func (s *Store) Subscribe(keyPrefix string, refetch func()) *Subscription {
	sub := &Subscription{s: s, prefix: keyPrefix, refetch: refetch, active: true}
	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()
	return sub
}

func (sub *Subscription) Pause() {
	sub.s.mu.Lock()
	sub.active = false
	sub.s.mu.Unlock()
}

func (sub *Subscription) Resume() {
	sub.s.mu.Lock()
	sub.active = true
	sub.s.mu.Unlock()
}

// Close unsubscribes. Safe to call multiple times.
func (sub *Subscription) Close() {
	sub.s.mu.Lock()
	delete(sub.s.subs, sub)
	sub.s.mu.Unlock()
}
