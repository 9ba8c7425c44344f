// Package unreadcache keeps a cached unread-count aggregate (overall total +
// per-source breakdown) consistent with fine-grained newsletter mutations
// (mark-read, mark-unread, archive, delete) without a round trip to the
// system of record after every mutation.
//
// Read/unread toggles have a bounded, locally computable effect on the
// aggregate, so they are applied as optimistic deltas directly to the cached
// snapshot. Archive and delete can move items between counted and uncounted
// states in ways the client cannot see, so they invalidate the aggregate key
// family instead and let actively subscribed consumers refetch. Navigation is
// a guaranteed no-op.
//
// Components:
//   - querycache.Cache: the host application's keyed byte store
//     (local map, Ristretto, BigCache, Redis).
//   - Codec[V]: (de)serializes the snapshot <-> []byte.
//   - Manager: the façade owning the snapshot key. Best-effort by contract —
//     only configuration mistakes surface as errors; everything else is
//     logged and absorbed because the caller's real mutation reconciles the
//     true value independently.
//   - Registry: explicit create/get/reset lifecycle for the single
//     per-process consistency authority.
//
// Keys:
//
//	unread:<ns>:count  - the aggregate snapshot
//	unread:<ns>        - prefix invalidated for archive/delete kinds
//
// Optimistic pattern:
//
//	mgr, _ := reg.Get()
//	mgr.UpdateUnreadOptimistically(ctx, unreadcache.Request{
//	    Kind:     unreadcache.OpMarkRead,
//	    ItemIDs:  ids,
//	    SourceID: sourceID,
//	})
//	// the mark-read API call proceeds independently either way
package unreadcache
