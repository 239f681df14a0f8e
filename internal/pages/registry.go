// Package pages tracks the dashboard routes known from the sitemap
// manifest. The registry is swapped wholesale on each reload.
package pages

import (
	"sync"
	"time"

	"github.com/pinnote/pinnote/internal/domain"
)

// Registry provides in-memory lookup of known dashboard pages.
type Registry struct {
	mu         sync.RWMutex
	byPath     map[string]domain.Page
	order      []string // manifest order
	lastReload time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		byPath: make(map[string]domain.Page),
	}
}

// Update replaces all pages in the registry, preserving manifest order.
func (r *Registry) Update(pages []domain.Page) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byPath = make(map[string]domain.Page, len(pages))
	r.order = make([]string, 0, len(pages))
	for _, p := range pages {
		if _, dup := r.byPath[p.Path]; dup {
			continue
		}
		r.byPath[p.Path] = p
		r.order = append(r.order, p.Path)
	}
	r.lastReload = time.Now()
}

// Get retrieves a page by path.
func (r *Registry) Get(path string) (domain.Page, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byPath[path]
	return p, ok
}

// All returns all pages in manifest order.
func (r *Registry) All() []domain.Page {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Page, 0, len(r.order))
	for _, path := range r.order {
		out = append(out, r.byPath[path])
	}
	return out
}

// Count returns the number of known pages.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byPath)
}

// LastReload returns the timestamp of the last manifest reload.
func (r *Registry) LastReload() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastReload
}
