// Package redis adapts redis/go-redis to querycache.Cache for hosts that
// share the aggregate across processes. Invalidation SCANs and deletes the
// prefix, then optionally publishes a notification carrying the scope so
// remote subscribers can decide whether to refetch.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/unreadcache/querycache"
)

var ErrNilClient = errors.New("redis store: nil client")

const scanBatch = 256

type Store struct {
	rdb         goredis.UniversalClient
	channel     string
	closeClient bool
}

var _ querycache.Cache = (*Store)(nil)

type Config struct {
	Client goredis.UniversalClient
	// NotifyChannel, when non-empty, receives "<keyPrefix>|<scope>" on every
	// Invalidate so subscribers in other processes can refetch.
	NotifyChannel string
	CloseClient   bool // set true only if this store exclusively owns the client
}

func New(cfg Config) (*Store, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Store{rdb: cfg.Client, channel: cfg.NotifyChannel, closeClient: cfg.CloseClient}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = 0 // non-positive TTL => no expiry
	}
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// Invalidate deletes every key under keyPrefix and publishes the event when a
// notify channel is configured. Local deletion is the authoritative part;
// the publish is best-effort fan-out.
func (s *Store) Invalidate(ctx context.Context, keyPrefix string, scope querycache.Scope) error {
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, keyPrefix+"*", scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if s.channel != "" {
		return s.rdb.Publish(ctx, s.channel, keyPrefix+"|"+scope.String()).Err()
	}
	return nil
}

// Close releases the underlying redis client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Store) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
