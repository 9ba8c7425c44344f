// Package bigcache adapts allegro/bigcache to querycache.Cache. BigCache has
// no per-entry TTL (global LifeWindow only) and no subscribers; invalidation
// walks the iterator and deletes matching keys.
package bigcache

import (
	"context"
	"strings"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/unreadcache/querycache"
)

type Store struct {
	c *bc.BigCache
}

var _ querycache.Cache = (*Store)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Store, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := s.c.Get(key)
	if err == bc.ErrEntryNotFound {
		return nil, false, nil
	}
	return b, err == nil, err
}

func (s *Store) Set(_ context.Context, key string, value []byte, _ time.Duration) (bool, error) {
	// Per-entry TTL unsupported; the global LifeWindow applies.
	return true, s.c.Set(key, value)
}

func (s *Store) Del(_ context.Context, key string) error {
	err := s.c.Delete(key)
	if err == bc.ErrEntryNotFound {
		return nil
	}
	return err
}

// Invalidate deletes every entry under keyPrefix. Scope is advisory: there is
// no subscriber concept in BigCache.
func (s *Store) Invalidate(ctx context.Context, keyPrefix string, _ querycache.Scope) error {
	it := s.c.Iterator()
	var victims []string
	for it.SetNext() {
		info, err := it.Value()
		if err != nil {
			continue // entry evicted mid-iteration
		}
		if strings.HasPrefix(info.Key(), keyPrefix) {
			victims = append(victims, info.Key())
		}
	}
	for _, k := range victims {
		if err := s.Del(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close(_ context.Context) error {
	return s.c.Close()
}
