// Package querycache defines the keyed-store boundary unreadcache depends on.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no
// prepended/appended metadata, no re-encoding, no mutation). If a store
// performs internal transforms (e.g., compression), they MUST be fully
// reversed so that the bytes returned by Get are identical to the bytes
// provided to Set.
//
// Important: the "unread:<ns>" keyspace is owned by unreadcache. External
// code MUST NOT write values under it. Foreign writes may be treated as
// corruption by strict envelope validation and deleted.
package querycache

import (
	"context"
	"time"
)

// Scope selects which consumers of an invalidated key family must refetch.
type Scope uint8

const (
	// ScopeActive refetches only consumers currently subscribed and active
	// (on screen). Background consumers pick up the change when they resume,
	// avoiding needless network activity for views nobody is looking at.
	ScopeActive Scope = iota
	// ScopeAll forces every subscribed consumer to refetch.
	ScopeAll
)

func (s Scope) String() string {
	if s == ScopeAll {
		return "all"
	}
	return "active"
}

// Cache is a minimal keyed byte store with TTLs and scoped prefix
// invalidation. Must be safe for concurrent use.
type Cache interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL (<= 0 means no expiry where the
	// store supports it). Returns ok=false when the store rejected the write
	// under pressure.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Invalidate drops every entry under keyPrefix and signals the given
	// scope of subscribers to refetch. Stores without a subscriber concept
	// treat the scope as advisory.
	Invalidate(ctx context.Context, keyPrefix string, scope Scope) error

	// Close releases resources.
	Close(ctx context.Context) error
}
