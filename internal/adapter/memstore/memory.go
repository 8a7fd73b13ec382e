// Package memstore is a ModuleCache that lives only as long as the process.
// It backs parse runs with caching disabled and the watch loop's tests.
package memstore

import (
	"sort"
	"sync"

	"xray/internal/domain"
)

type MemoryStore struct {
	mu      sync.RWMutex
	modules map[string]domain.CachedModule
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		modules: make(map[string]domain.CachedModule),
	}
}

func (s *MemoryStore) Get(path string) (domain.CachedModule, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.modules[path]
	return entry, ok, nil
}

func (s *MemoryStore) Put(entry domain.CachedModule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules[entry.Path] = entry
	return nil
}

func (s *MemoryStore) Delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.modules, path)
	return nil
}

func (s *MemoryStore) Paths() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make([]string, 0, len(s.modules))
	for p := range s.modules {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
