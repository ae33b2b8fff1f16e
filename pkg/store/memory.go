package store

import (
	"context"
	"sync"

	"github.com/slacklinehq/slackline/pkg/project"
)

// MemoryStore is an in-memory project store for development and testing.
// It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]*project.Project
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]*project.Project)}
}

// Get retrieves a project by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// Put stores a project.
func (s *MemoryStore) Put(ctx context.Context, p *project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	s.projects[p.ID] = &cp
	return nil
}

// Delete removes a project.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

// List returns all stored projects in unspecified order.
func (s *MemoryStore) List(ctx context.Context) ([]*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*project.Project, 0, len(s.projects))
	for _, p := range s.projects {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
