package unreadcache

import (
	"context"
	"fmt"
	"time"

	cdc "github.com/unkn0wn-root/unreadcache/codec"
	"github.com/unkn0wn-root/unreadcache/internal/wire"
	qc "github.com/unkn0wn-root/unreadcache/querycache"
)

type manager struct {
	ns       string
	cache    qc.Cache
	codec    cdc.Codec[Snapshot]
	log      Logger
	hooks    Hooks
	ttl      time.Duration
	enabled  bool
	ownCache bool
}

func newManager(opts Options) (*manager, error) {
	if opts.Cache == nil {
		return nil, fmt.Errorf("unreadcache: cache is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("unreadcache: namespace is required")
	}

	m := &manager{
		ns:       opts.Namespace,
		cache:    opts.Cache,
		enabled:  !opts.Disabled,
		ownCache: opts.OwnCache,
	}

	// defaults
	m.codec = coalesce[cdc.Codec[Snapshot]](opts.Codec, cdc.Msgpack[Snapshot]{})
	m.log = coalesce[Logger](opts.Logger, NopLogger{})
	m.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	m.ttl = coalesce[time.Duration](opts.TTL, 10*time.Minute)

	return m, nil
}

func (m *manager) Enabled() bool { return m.enabled }

func (m *manager) Close(ctx context.Context) error {
	if m.ownCache {
		return m.cache.Close(ctx)
	}
	return nil
}

func (m *manager) countKey() string  { return "unread:" + m.ns + ":count" }
func (m *manager) keyPrefix() string { return "unread:" + m.ns }

func (m *manager) UpdateUnreadOptimistically(ctx context.Context, req Request) {
	if !m.enabled {
		return
	}
	f := opFields("update_unread_optimistic", req.Kind, len(req.ItemIDs), req.SourceID)

	switch out := m.step(ctx, req); out.kind {
	case outcomeApplied:
		if err := m.writeSnapshot(ctx, out.next); err != nil {
			m.hooks.SnapshotWriteError(m.countKey(), err)
			f["item_ids"] = req.ItemIDs
			f["err"] = &WriteError{
				Key:      m.countKey(),
				Kind:     req.Kind,
				Affected: len(req.ItemIDs),
				SourceID: req.SourceID,
				Cause:    err,
			}
			m.log.Error("unread snapshot write failed; optimistic update dropped", f)
			return
		}
		f["total"] = out.next.Total
		m.log.Debug("unread snapshot updated optimistically", f)
	case outcomeColdCache:
		// Writing a fabricated snapshot into a cold cache would create a
		// plausible-looking but wrong value; doing nothing is safer.
		m.hooks.ColdCache(req.Kind, len(req.ItemIDs))
		m.log.Debug("no cached unread snapshot; optimistic update skipped", f)
	case outcomeSkipped:
		m.log.Debug("view-state change; unread snapshot untouched", f)
	case outcomeInvalidate:
		m.log.Debug("invalidate-classified kind on optimistic path; route through InvalidateRelated", f)
	case outcomeUnknownKind:
		m.hooks.UnknownKind(req.Kind)
		m.log.Warn("unknown operation kind; unread snapshot untouched", f)
	case outcomeAbsorbed:
		f["item_ids"] = req.ItemIDs
		f["err"] = out.err
		m.log.Error("unread snapshot read failed; optimistic update dropped", f)
	}
}

func (m *manager) InvalidateRelated(ctx context.Context, itemIDs []string, kind OpKind) {
	if !m.enabled {
		return
	}
	f := opFields("invalidate_related", kind, len(itemIDs), "")

	switch Classify(kind) {
	case ActionOptimistic:
		m.UpdateUnreadOptimistically(ctx, Request{Kind: kind, ItemIDs: itemIDs})
	case ActionInvalidate:
		prefix := m.keyPrefix()
		if err := m.cache.Invalidate(ctx, prefix, qc.ScopeActive); err != nil {
			m.hooks.InvalidateError(prefix, err)
			f["item_ids"] = itemIDs
			f["err"] = err
			m.log.Error("unread aggregate invalidation failed", f)
			return
		}
		f["scope"] = qc.ScopeActive.String()
		m.log.Debug("unread aggregate invalidated for active subscribers", f)
	case ActionSkip:
		m.log.Debug("view-state change; nothing to invalidate", f)
	case ActionUnknown:
		m.hooks.UnknownKind(kind)
		m.log.Warn("unknown operation kind; nothing to invalidate", f)
	}
}

func (m *manager) CurrentUnread(ctx context.Context) (Snapshot, bool) {
	if !m.enabled {
		return Snapshot{}, false
	}
	raw, ok, err := m.cache.Get(ctx, m.countKey())
	if err != nil || !ok {
		return Snapshot{}, false
	}
	payload, err := wire.Decode(raw)
	if err != nil {
		return Snapshot{}, false
	}
	v, err := m.codec.Decode(payload)
	if err != nil {
		return Snapshot{}, false
	}
	return v.Clone(), true
}

// step classifies and computes without writing. The read is its only side
// channel; everything it decides comes back as a tagged outcome for the
// façade to act on.
func (m *manager) step(ctx context.Context, req Request) outcome {
	switch Classify(req.Kind) {
	case ActionInvalidate:
		return outcome{kind: outcomeInvalidate}
	case ActionSkip:
		return outcome{kind: outcomeSkipped}
	case ActionUnknown:
		return outcome{kind: outcomeUnknownKind}
	}

	cur, ok, err := m.readSnapshot(ctx)
	if err != nil {
		return outcome{kind: outcomeAbsorbed, err: err}
	}
	if !ok {
		return outcome{kind: outcomeColdCache}
	}
	return outcome{
		kind: outcomeApplied,
		next: applyDelta(cur, req.Kind, len(req.ItemIDs), req.SourceID),
	}
}

// readSnapshot is the update-path read: entries that fail envelope or codec
// decode are deleted (self-heal) and reported as a miss.
func (m *manager) readSnapshot(ctx context.Context) (Snapshot, bool, error) {
	k := m.countKey()
	raw, ok, err := m.cache.Get(ctx, k)
	if err != nil || !ok {
		return Snapshot{}, false, err
	}
	payload, err := wire.Decode(raw)
	if err != nil {
		_ = m.cache.Del(ctx, k)
		m.hooks.SelfHeal(k, "corrupt")
		return Snapshot{}, false, nil
	}
	v, err := m.codec.Decode(payload)
	if err != nil {
		_ = m.cache.Del(ctx, k)
		m.hooks.SelfHeal(k, "value_decode")
		return Snapshot{}, false, nil
	}
	return v, true, nil
}

// writeSnapshot replaces the cached value whole; no partial write is ever
// observable.
func (m *manager) writeSnapshot(ctx context.Context, s Snapshot) error {
	payload, err := m.codec.Encode(s)
	if err != nil {
		return err
	}
	k := m.countKey()
	ok, err := m.cache.Set(ctx, k, wire.Encode(payload), m.ttl)
	if err != nil {
		return err
	}
	if !ok {
		m.hooks.SnapshotWriteRejected(k)
		m.log.Debug("snapshot write rejected by store (pressure)", Fields{"action": "write_snapshot", "key": k})
	}
	return nil
}

func opFields(action string, kind OpKind, affected int, sourceID string) Fields {
	f := Fields{"action": action, "kind": kind.String(), "affected": affected}
	if sourceID != "" {
		f["source_id"] = sourceID
	}
	return f
}
