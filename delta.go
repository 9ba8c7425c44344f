package unreadcache

// applyDelta computes the snapshot that results from applying kind to cur,
// scoped to sourceID when non-empty. Pure: cur is never mutated; the result
// carries a fresh BySource map.
//
// Counts are clamped at zero. An optimistic delta can overshoot when it races
// the authoritative refetch; showing zero instead of a negative unread count
// is the accepted approximation, corrected by the next real fetch. No exact
// debt is tracked for the overshoot.
func applyDelta(cur Snapshot, kind OpKind, count int, sourceID string) Snapshot {
	delta := deltaSign(kind) * count

	next := cur.Clone()
	next.Total = floorZero(cur.Total + delta)

	if sourceID == "" {
		// Source counts are left to lag until the next authoritative
		// refetch; consumers depend on this, so no fix-up here.
		return next
	}
	if next.BySource == nil {
		next.BySource = make(map[string]int, 1)
	}
	next.BySource[sourceID] = floorZero(cur.BySource[sourceID] + delta)
	return next
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// outcome is the tagged result of the internal computation step. The façade
// alone decides what to log and what to swallow; the step itself stays pure
// apart from the cache read.
type outcome struct {
	kind outcomeKind
	next Snapshot // valid only for outcomeApplied
	err  error    // valid only for outcomeAbsorbed
}

type outcomeKind uint8

const (
	outcomeApplied outcomeKind = iota + 1
	outcomeSkipped
	outcomeColdCache
	outcomeInvalidate
	outcomeUnknownKind
	outcomeAbsorbed
)
