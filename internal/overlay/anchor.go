package overlay

import (
	"sync"

	"github.com/pinnote/pinnote/internal/domain"
)

// AnchorRegistry maps element paths to stable anchor identifiers, so that
// repeated clicks on the same unnamed element resolve to the same ID. This
// replaces stashing synthesized IDs on the view tree itself: the mapping
// lives here, and the client is told when to assign the ID onto the node.
type AnchorRegistry struct {
	mu     sync.Mutex
	byPath map[string]string
}

func NewAnchorRegistry() *AnchorRegistry {
	return &AnchorRegistry{
		byPath: make(map[string]string),
	}
}

// Resolve returns the stable anchor ID for a clicked element and whether
// the client must assign it onto the node (true whenever the element
// reported no ID of its own).
//
// An element-reported ID always wins and is recorded against the path.
// Otherwise a previously synthesized ID for the same path is reused, and
// only as a last resort is a new one minted.
func (r *AnchorRegistry) Resolve(reportedID, path string) (id string, assign bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reportedID != "" {
		if path != "" {
			r.byPath[path] = reportedID
		}
		return reportedID, false
	}

	if path != "" {
		if known, ok := r.byPath[path]; ok {
			return known, true
		}
	}

	id = domain.NewAnchorID()
	if path != "" {
		r.byPath[path] = id
	}
	return id, true
}

// Len returns the number of recorded path mappings.
func (r *AnchorRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byPath)
}
