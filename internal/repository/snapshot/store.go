package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/you-humble/spare-parts/internal/model"
)

// store holds the one snapshot visible to readers. Swap replaces it in a single
// pointer store, so readers see either the old set or the new one, never a mix.
type store struct {
	current atomic.Pointer[model.Snapshot]
}

func NewStore(source string) *store {
	s := &store{}
	s.current.Store(model.EmptySnapshot(source, time.Now()))
	return s
}

func (s *store) Current() *model.Snapshot {
	return s.current.Load()
}

// Swap installs next and returns the snapshot it replaced. A nil next is ignored.
func (s *store) Swap(next *model.Snapshot) *model.Snapshot {
	if next == nil {
		return s.current.Load()
	}
	return s.current.Swap(next)
}
