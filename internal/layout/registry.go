package layout

import "sync"

// Registry maps dashlet ids to the endpoint that serves their size-dependent
// content. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	endpoints map[int]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{endpoints: make(map[int]string)}
}

// Register records the endpoint template for a dashlet, replacing any previous one.
func (r *Registry) Register(id int, endpoint string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endpoints[id] = endpoint
}

// Unregister removes a dashlet from the registry.
func (r *Registry) Unregister(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.endpoints, id)
}

// Lookup returns the endpoint template for a dashlet.
func (r *Registry) Lookup(id int) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	endpoint, ok := r.endpoints[id]
	return endpoint, ok
}

// Len returns the number of registered dashlets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.endpoints)
}
