package device

import "sync"

// registry tracks which device ids are currently held open. It is shared by
// catalog implementations so exclusivity is enforced uniformly.
type registry struct {
	mu   sync.Mutex
	open map[string]bool
}

func newRegistry() *registry {
	return &registry{open: make(map[string]bool)}
}

// claim marks id as held. Returns false if it is already held.
func (r *registry) claim(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.open[id] {
		return false
	}
	r.open[id] = true
	return true
}

// release frees a previously claimed id. Releasing an unclaimed id is a no-op.
func (r *registry) release(id string) {
	r.mu.Lock()
	delete(r.open, id)
	r.mu.Unlock()
}

// held reports whether id is currently claimed.
func (r *registry) held(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open[id]
}
