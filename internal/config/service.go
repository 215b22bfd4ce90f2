package config

import (
	"context"
	"sync"
)

// Service memoizes loaded configuration documents per config-directory
// argument for the lifetime of the process. Documents are immutable once
// loaded; callers that mutate config files mid-run must call Invalidate.
type Service struct {
	mu    sync.Mutex
	cache map[string]*Documents
}

// NewService creates an empty configuration service.
func NewService() *Service {
	return &Service{cache: make(map[string]*Documents)}
}

// Load returns the documents for configDir, loading them on first use.
// Repeated calls with the same argument return the identical cached value.
// The lock covers the whole check-and-populate sequence so concurrent first
// callers cannot race a partial load.
func (s *Service) Load(ctx context.Context, configDir string) (*Documents, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if docs, ok := s.cache[configDir]; ok {
		return docs, nil
	}

	docs, err := Load(ctx, configDir)
	if err != nil {
		return nil, err
	}
	s.cache[configDir] = docs
	return docs, nil
}

// Invalidate drops every cached document so the next Load re-reads from disk.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*Documents)
}
