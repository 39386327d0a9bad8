package sections

import (
	"log/slog"

	"rgqview/internal/domain"
	"rgqview/internal/logic"
)

// Service owns the expand/collapse state of every results section and
// notifies listeners when a section is revealed.
//
// All methods run synchronously on the caller's goroutine. Listeners are
// called in registration order before the method returns.
type Service struct {
	store     logic.SectionStore
	listeners []listener
	nextID    uint64
	logger    *slog.Logger
}

// NewService creates a sections service over the given store
func NewService(store logic.SectionStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		logger: logger.With("component", "sections"),
	}
}

// OnLoadSection registers a listener for load notifications.
// Returns an unsubscribe function
func (s *Service) OnLoadSection(fn LoadSectionFunc) func() {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// ToggleSection flips the tab of the given section. Expanding it notifies
// listeners with sectionName; collapsing it notifies nobody.
func (s *Service) ToggleSection(sectionName string, section *domain.Section) {
	if section == nil {
		s.logger.Debug("toggle on nil section", "section", sectionName)
		return
	}
	section.IsTabExpanded = !section.IsTabExpanded
	if section.IsTabExpanded {
		s.emit(sectionName)
	}
}

// ExpandAllSections expands every section and notifies listeners once per
// section, including sections that were already expanded.
func (s *Service) ExpandAllSections() {
	for _, name := range s.store.Names() {
		section := s.store.GetSection(name)
		if section == nil {
			continue
		}
		section.IsTabExpanded = true
		s.emit(name)
	}
}

// CollapseAllSections collapses every section without notifying anyone
func (s *Service) CollapseAllSections() {
	for _, name := range s.store.Names() {
		if section := s.store.GetSection(name); section != nil {
			section.IsTabExpanded = false
		}
	}
}

// IsExpanded reports whether the named section is expanded
func (s *Service) IsExpanded(name string) bool {
	section := s.store.GetSection(name)
	return section != nil && section.IsTabExpanded
}

// ExpandedNames returns the expanded sections in store order
func (s *Service) ExpandedNames() []string {
	var names []string
	for _, section := range s.store.GetAllSections() {
		if section.IsTabExpanded {
			names = append(names, section.Name)
		}
	}
	return names
}

func (s *Service) emit(sectionName string) {
	s.logger.Debug("section revealed", "section", sectionName)
	// Copy so listeners may (un)subscribe while being notified
	ls := make([]listener, len(s.listeners))
	copy(ls, s.listeners)
	for _, l := range ls {
		l.fn(sectionName)
	}
}
