package logic

import (
	"sync"

	"rgqview/internal/domain"
)

// MemorySectionStore is an in-memory, insertion-ordered SectionStore
type MemorySectionStore struct {
	mu       sync.RWMutex
	sections map[string]*domain.Section
	order    []string
}

// NewMemorySectionStore creates a store holding the given sections in order
func NewMemorySectionStore(sections ...*domain.Section) *MemorySectionStore {
	s := &MemorySectionStore{
		sections: make(map[string]*domain.Section),
	}
	for _, sec := range sections {
		s.AddSection(sec)
	}
	return s
}

func (s *MemorySectionStore) GetSection(name string) *domain.Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sections[name]
}

// GetAllSections returns the sections in insertion order. The slice is a
// copy; the sections themselves are shared.
func (s *MemorySectionStore) GetAllSections() []*domain.Section {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Section, 0, len(s.order))
	for _, name := range s.order {
		result = append(result, s.sections[name])
	}
	return result
}

// Names returns a snapshot of the keys in insertion order
func (s *MemorySectionStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// AddSection inserts a section. Re-adding an existing name replaces the
// value and keeps its position.
func (s *MemorySectionStore) AddSection(section *domain.Section) {
	if section == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sections[section.Name]; !exists {
		s.order = append(s.order, section.Name)
	}
	s.sections[section.Name] = section
}

func (s *MemorySectionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
