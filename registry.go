package unreadcache

import "sync"

// Registry holds the single per-process consistency authority. One authority
// per running application instance keeps optimistic views from diverging;
// the registry is an explicit object (not a package global) so tests can
// construct isolated instances.
type Registry struct {
	mu  sync.RWMutex
	cur Manager
}

func NewRegistry() *Registry { return &Registry{} }

// Create constructs a manager from opts and registers it, replacing any
// previous registration. Replacement never merges state and never closes the
// previous manager; the host owns that handoff.
func (r *Registry) Create(opts Options) (Manager, error) {
	m, err := New(opts)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.cur = m
	r.mu.Unlock()
	return m, nil
}

// Get returns the registered manager, or ErrNotConfigured when Create has
// not run — an initialization-order mistake worth failing loudly on.
func (r *Registry) Get() (Manager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cur == nil {
		return nil, ErrNotConfigured
	}
	return r.cur, nil
}

// Reset clears the registration without closing the manager.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.cur = nil
	r.mu.Unlock()
}
