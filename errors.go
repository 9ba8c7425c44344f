package unreadcache

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by Registry.Get when no manager was created.
// It is the one error this package surfaces to callers: it signals an
// initialization-order mistake in the host application, not a data condition.
var ErrNotConfigured = errors.New("unreadcache: manager not configured (Registry.Create must run before Get)")

// WriteError carries full operation context when the underlying cache write
// fails. The façade logs it and absorbs it; it never crosses the boundary.
type WriteError struct {
	Key      string
	Kind     OpKind
	Affected int
	SourceID string
	Cause    error
}

func (e *WriteError) Error() string {
	if e.SourceID != "" {
		return fmt.Sprintf("unreadcache: write %q failed for %s (%d items, source %s): %v",
			e.Key, e.Kind, e.Affected, e.SourceID, e.Cause)
	}
	return fmt.Sprintf("unreadcache: write %q failed for %s (%d items): %v",
		e.Key, e.Kind, e.Affected, e.Cause)
}

func (e *WriteError) Unwrap() error { return e.Cause }
