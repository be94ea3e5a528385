package services

import (
	"sync"
)

// SlateRegistry holds the live slates for the process. Purely transient
// session state: restart loses everything, which is the intended lifecycle.
type SlateRegistry struct {
	mu     sync.RWMutex
	slates map[string]*Slate
}

// NewSlateRegistry returns an empty registry.
func NewSlateRegistry() *SlateRegistry {
	return &SlateRegistry{slates: make(map[string]*Slate)}
}

// Put stores a slate under its run ID.
func (r *SlateRegistry) Put(slate *Slate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slates[slate.ID.String()] = slate
}

// Get returns the slate for id, if present.
func (r *SlateRegistry) Get(id string) (*Slate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slate, ok := r.slates[id]
	return slate, ok
}

// Len returns the number of live slates.
func (r *SlateRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slates)
}
