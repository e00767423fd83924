package timeline

import (
	"sync"

	"github.com/ytget/reel/internal/media"
)

// HandleRegistry tracks the media handles the engine keeps in sync, in
// registration order
type HandleRegistry struct {
	mu      sync.RWMutex
	ids     []string
	handles map[string]media.Handle
}

// NewHandleRegistry creates an empty registry
func NewHandleRegistry() *HandleRegistry {
	return &HandleRegistry{handles: make(map[string]media.Handle)}
}

// Register adds or replaces the handle for id
func (r *HandleRegistry) Register(id string, h media.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handles[id]; !ok {
		r.ids = append(r.ids, id)
	}
	r.handles[id] = h
}

// Unregister removes the handle for id
func (r *HandleRegistry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handles[id]; !ok {
		return
	}
	delete(r.handles, id)
	for i, v := range r.ids {
		if v == id {
			r.ids = append(r.ids[:i:i], r.ids[i+1:]...)
			break
		}
	}
}

// Get returns the handle for id
func (r *HandleRegistry) Get(id string) (media.Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handles[id]
	return h, ok
}

// Handles returns the handles in registration order
func (r *HandleRegistry) Handles() []media.Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]media.Handle, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.handles[id])
	}
	return out
}

// IDs returns the registered ids in registration order
func (r *HandleRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.ids...)
}

func (r *HandleRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids)
}
