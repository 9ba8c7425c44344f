package unreadcache

import (
	"context"
	"time"

	cdc "github.com/unkn0wn-root/unreadcache/codec"
	qc "github.com/unkn0wn-root/unreadcache/querycache"
)

// Request describes one mutation performed elsewhere in the application:
// N items underwent operation Kind, optionally scoped to one source.
// Requests are ephemeral; nothing is retained between calls beyond the
// cached snapshot itself.
type Request struct {
	Kind OpKind

	// ItemIDs identifies the affected items. Only the count matters to the
	// arithmetic; the ids themselves appear in failure logs. Duplicates are
	// not deduplicated here — the caller owns set correctness.
	ItemIDs []string

	// SourceID optionally scopes the per-source count. Empty adjusts Total
	// only and leaves every source count untouched.
	SourceID string
}

// Manager is the cache-consistency authority for one unread aggregate.
// Every method is best-effort and synchronous: failures are logged with the
// operation's context and degrade to a no-op, never surfacing to the caller,
// because the caller's real mutation independently reconciles the true value.
type Manager interface {
	Enabled() bool
	Close(context.Context) error

	// UpdateUnreadOptimistically classifies the request and either applies a
	// signed delta to the cached snapshot (mark-read/unread families), does
	// nothing (navigation, cold cache), or warns (unknown kinds).
	// Invalidate-classified kinds do not belong here; route those through
	// InvalidateRelated.
	UpdateUnreadOptimistically(ctx context.Context, req Request)

	// InvalidateRelated handles a mutation by classification: optimistic
	// kinds delegate to UpdateUnreadOptimistically, archive/delete kinds
	// invalidate the aggregate key family for active subscribers, navigation
	// is a guaranteed no-op, unknown kinds warn.
	InvalidateRelated(ctx context.Context, itemIDs []string, kind OpKind)

	// CurrentUnread returns a copy of the cached snapshot, or ok=false when
	// the cache is cold. Pure read: no side effects, no self-healing.
	CurrentUnread(ctx context.Context) (Snapshot, bool)
}

// Options tune the manager. Only Namespace and Cache are required; others
// have sensible defaults.
type Options struct {
	// Required
	Namespace string // logical namespace to avoid collisions, e.g. "newsletters"
	Cache     qc.Cache

	Codec    cdc.Codec[Snapshot] // nil => codec.Msgpack[Snapshot]
	Logger   Logger              // nil => NopLogger
	Hooks    Hooks               // nil => NopHooks
	TTL      time.Duration       // snapshot TTL; 0 => 10m
	Disabled bool                // default false (enabled)
	OwnCache bool                // close the cache on Manager.Close
}

func New(opts Options) (Manager, error) {
	return newManager(opts)
}
