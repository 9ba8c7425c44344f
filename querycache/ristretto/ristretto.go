// Package ristretto adapts dgraph-io/ristretto to querycache.Cache.
//
// Ristretto cannot enumerate its keys, so the adapter maintains its own index
// of keys written through it; scoped invalidation walks that index. Keys
// written to the underlying cache by other code are invisible to Invalidate.
package ristretto

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/unreadcache/querycache"
)

type Store struct {
	c *rc.Cache

	mu   sync.Mutex
	keys map[string]struct{}
}

var _ querycache.Cache = (*Store)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c, keys: make(map[string]struct{})}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		s.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	ok := s.c.SetWithTTL(key, value, int64(len(value)), ttl)
	if ok {
		s.mu.Lock()
		s.keys[key] = struct{}{}
		s.mu.Unlock()
	}
	return ok, nil
}

func (s *Store) Del(_ context.Context, key string) error {
	s.c.Del(key)
	s.mu.Lock()
	delete(s.keys, key)
	s.mu.Unlock()
	return nil
}

// Invalidate drops every indexed key under keyPrefix. The scope is advisory:
// ristretto has no subscriber concept, so active and all behave alike.
func (s *Store) Invalidate(_ context.Context, keyPrefix string, _ querycache.Scope) error {
	s.mu.Lock()
	var victims []string
	for k := range s.keys {
		if strings.HasPrefix(k, keyPrefix) {
			victims = append(victims, k)
			delete(s.keys, k)
		}
	}
	s.mu.Unlock()

	for _, k := range victims {
		s.c.Del(k)
	}
	return nil
}

func (s *Store) Close(_ context.Context) error {
	s.c.Wait()
	s.c.Close()
	return nil
}

// Metrics exposes ristretto metrics if enabled (not part of querycache.Cache).
func (s *Store) Metrics() *rc.Metrics { return s.c.Metrics }
