package logic

import "rgqview/internal/domain"

// SectionStore is the ordered mapping of section name to section view state.
// Iteration order is insertion order. Sections are never removed.
type SectionStore interface {
	GetSection(name string) *domain.Section
	GetAllSections() []*domain.Section
	Names() []string
	AddSection(section *domain.Section)
	Len() int
}
