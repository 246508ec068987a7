// Package memory is an in-process VolumeAppender for tests and
// deployments without a spreadsheet.
package memory

import (
	"context"
	"fmt"
	"sync"

	"waterlog/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Volume
}

func New() *Store {
	return &Store{}
}

// Append stores the volume and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, v core.Volume) (string, error) {
	if err := v.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, v)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Items returns a copy of the appended volumes.
func (s *Store) Items() []core.Volume {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Volume(nil), s.items...)
}
