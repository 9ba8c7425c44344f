package unreadcache

// Snapshot is the cached unread-count aggregate: an overall total plus a
// per-source breakdown. Every value is >= 0 at all times.
//
// BySource is a subset view, not a partition of Total: the total may include
// sources that are not separately tracked, so the two are never reconciled
// against each other. When an operation names a source, both are adjusted by
// the same signed delta; when it does not, only Total moves and BySource is
// left to lag until the next authoritative refetch.
type Snapshot struct {
	Total    int            `json:"total" msgpack:"total"`
	BySource map[string]int `json:"bySource" msgpack:"bySource"`
}

// Clone returns a deep copy. The engine only ever stores and returns whole
// fresh values so callers can never mutate cached state through a reference.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Total: s.Total}
	if s.BySource != nil {
		out.BySource = make(map[string]int, len(s.BySource))
		for k, v := range s.BySource {
			out.BySource[k] = v
		}
	}
	return out
}

// Equal reports whether two snapshots carry the same counts.
// A nil and an empty BySource map compare equal.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Total != o.Total || len(s.BySource) != len(o.BySource) {
		return false
	}
	for k, v := range s.BySource {
		if o.BySource[k] != v {
			return false
		}
	}
	return true
}
