package unreadcache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The engine calls them on hot paths.
type Hooks interface {
	// An optimistic update arrived while no snapshot was cached.
	// Deliberately a no-op: fabricating a snapshot into a cold cache would
	// create a plausible-looking wrong value.
	ColdCache(kind OpKind, affected int)

	// The store rejected the snapshot write (backpressure/eviction).
	SnapshotWriteRejected(storageKey string)

	// The store errored on the snapshot write; absorbed by the façade.
	SnapshotWriteError(storageKey string, err error)

	// A cached snapshot failed envelope or codec decode and was deleted.
	// reason ∈ {"corrupt", "value_decode"}
	SelfHeal(storageKey, reason string)

	// A kind outside the closed set was classified.
	UnknownKind(kind OpKind)

	// Scoped invalidation of the aggregate key family failed.
	InvalidateError(keyPrefix string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) ColdCache(OpKind, int)            {}
func (NopHooks) SnapshotWriteRejected(string)     {}
func (NopHooks) SnapshotWriteError(string, error) {}
func (NopHooks) SelfHeal(string, string)          {}
func (NopHooks) UnknownKind(OpKind)               {}
func (NopHooks) InvalidateError(string, error)    {}
