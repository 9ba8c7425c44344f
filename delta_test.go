package unreadcache

import "testing"

func snap(total int, bySource map[string]int) Snapshot {
	return Snapshot{Total: total, BySource: bySource}
}

// TestApplyDeltaMarkRead covers the plain decrement path: total and the named
// source drop by the affected count, other sources pass through.
func TestApplyDeltaMarkRead(t *testing.T) {
	cur := snap(10, map[string]int{"s1": 5, "s2": 3, "s3": 2})
	got := applyDelta(cur, OpMarkRead, 2, "s1")

	want := snap(8, map[string]int{"s1": 3, "s2": 3, "s3": 2})
	if !got.Equal(want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

// TestApplyDeltaClampsAtZero: overshooting deltas floor at zero instead of
// going negative; untouched sources keep their counts.
func TestApplyDeltaClampsAtZero(t *testing.T) {
	cur := snap(2, map[string]int{"s1": 1, "s2": 1})
	got := applyDelta(cur, OpMarkRead, 3, "s1")

	want := snap(0, map[string]int{"s1": 0, "s2": 1})
	if !got.Equal(want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

// TestApplyDeltaSequential walks two updates against different sources.
func TestApplyDeltaSequential(t *testing.T) {
	cur := snap(20, map[string]int{"s1": 8, "s2": 6, "s3": 4, "s4": 2})
	cur = applyDelta(cur, OpMarkRead, 2, "s1")
	cur = applyDelta(cur, OpMarkRead, 1, "s2")

	want := snap(17, map[string]int{"s1": 6, "s2": 5, "s3": 4, "s4": 2})
	if !cur.Equal(want) {
		t.Fatalf("got %+v want %+v", cur, want)
	}
}

// TestApplyDeltaInverse: mark-unread immediately after mark-read restores the
// prior snapshot exactly (when the decrement did not clamp).
func TestApplyDeltaInverse(t *testing.T) {
	orig := snap(10, map[string]int{"s1": 5, "s2": 3})
	down := applyDelta(orig, OpBulkMarkRead, 4, "s1")
	up := applyDelta(down, OpBulkMarkUnread, 4, "s1")

	if !up.Equal(orig) {
		t.Fatalf("inverse did not restore: got %+v want %+v", up, orig)
	}
}

// TestApplyDeltaNoSource: without a source id only Total moves; BySource is
// left to lag (including the source that actually changed).
func TestApplyDeltaNoSource(t *testing.T) {
	cur := snap(10, map[string]int{"s1": 5})
	got := applyDelta(cur, OpMarkUnread, 3, "")

	want := snap(13, map[string]int{"s1": 5})
	if !got.Equal(want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

// TestApplyDeltaUnknownSource: naming a source the snapshot has never seen
// treats its count as 0 and clamps.
func TestApplyDeltaUnknownSource(t *testing.T) {
	cur := snap(5, map[string]int{"s1": 5})
	got := applyDelta(cur, OpMarkRead, 2, "s9")

	want := snap(3, map[string]int{"s1": 5, "s9": 0})
	if !got.Equal(want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

// TestApplyDeltaDoesNotMutateInput: the input snapshot and its map survive
// untouched; the result carries a fresh map.
func TestApplyDeltaDoesNotMutateInput(t *testing.T) {
	cur := snap(10, map[string]int{"s1": 5})
	got := applyDelta(cur, OpMarkRead, 2, "s1")

	if cur.Total != 10 || cur.BySource["s1"] != 5 {
		t.Fatalf("input mutated: %+v", cur)
	}
	got.BySource["s1"] = 99
	if cur.BySource["s1"] != 5 {
		t.Fatalf("result shares map with input")
	}
}

// TestApplyDeltaNilBySource: a snapshot with no breakdown map accepts a
// source-scoped delta without panicking.
func TestApplyDeltaNilBySource(t *testing.T) {
	cur := snap(4, nil)
	got := applyDelta(cur, OpMarkUnread, 2, "s1")

	if got.Total != 6 || got.BySource["s1"] != 2 {
		t.Fatalf("got %+v", got)
	}
}
