package unreadcache

import "fmt"

// OpKind is the closed set of newsletter mutation kinds the engine
// understands. Values outside the set classify as ActionUnknown, which the
// façade treats as skip-plus-warn.
type OpKind uint8

const (
	OpMarkRead OpKind = iota + 1
	OpBulkMarkRead
	OpMarkUnread
	OpBulkMarkUnread
	OpArchive
	OpDelete
	OpBulkArchive
	OpBulkDelete
	OpNavigation
)

var kindNames = map[OpKind]string{
	OpMarkRead:       "mark_read",
	OpBulkMarkRead:   "bulk_mark_read",
	OpMarkUnread:     "mark_unread",
	OpBulkMarkUnread: "bulk_mark_unread",
	OpArchive:        "archive",
	OpDelete:         "delete",
	OpBulkArchive:    "bulk_archive",
	OpBulkDelete:     "bulk_delete",
	OpNavigation:     "navigation",
}

func (k OpKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("op_kind(%d)", uint8(k))
}

// ParseOpKind maps a kind name (as produced by String) back to its OpKind.
// Unrecognized names return ok=false; callers should route those through the
// classifier, which resolves them to ActionUnknown.
func ParseOpKind(s string) (OpKind, bool) {
	for k, n := range kindNames {
		if n == s {
			return k, true
		}
	}
	return 0, false
}

// Action is the classifier's verdict for a mutation kind.
type Action uint8

const (
	// ActionOptimistic: the effect on the aggregate is locally computable;
	// apply a signed delta to the cached snapshot.
	ActionOptimistic Action = iota + 1
	// ActionInvalidate: the effect cannot be computed client-side; mark the
	// aggregate key family stale for active subscribers.
	ActionInvalidate
	// ActionSkip: the kind never changes underlying data (navigation).
	ActionSkip
	// ActionUnknown: not a recognized kind; skip and warn.
	ActionUnknown
)

func (a Action) String() string {
	switch a {
	case ActionOptimistic:
		return "optimistic"
	case ActionInvalidate:
		return "invalidate"
	case ActionSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Classify decides how a mutation kind affects the aggregate. Pure and total:
// read/unread toggles are the high-frequency path worth optimizing; archive
// and delete may move items across sources or filters the engine has no
// visibility into, so their only safe handling is invalidate-and-refetch;
// navigation is asserted to be a no-op.
func Classify(kind OpKind) Action {
	switch kind {
	case OpMarkRead, OpBulkMarkRead, OpMarkUnread, OpBulkMarkUnread:
		return ActionOptimistic
	case OpArchive, OpDelete, OpBulkArchive, OpBulkDelete:
		return ActionInvalidate
	case OpNavigation:
		return ActionSkip
	default:
		return ActionUnknown
	}
}

// deltaSign is +1 for the mark-unread family, -1 for the mark-read family,
// and 0 for every kind that carries no optimistic delta.
func deltaSign(kind OpKind) int {
	switch kind {
	case OpMarkRead, OpBulkMarkRead:
		return -1
	case OpMarkUnread, OpBulkMarkUnread:
		return +1
	default:
		return 0
	}
}
