package memory

import (
	"sync"

	"github.com/omarshaarawi/statbot/internal/models"
)

// Repository holds the current canonical snapshot. Publish swaps the whole
// reference, so readers always see one snapshot in full, never a mix of
// two refreshes.
type Repository struct {
	snapshot *models.Snapshot
	mu       sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Publish(snapshot *models.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = snapshot
}

// Snapshot returns the current snapshot, nil before the first publish.
// Snapshots are immutable once published; callers never need a lock.
func (r *Repository) Snapshot() *models.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}
