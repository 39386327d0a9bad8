package logic

import (
	"strings"

	"rgqview/internal/domain"
)

// MatchesFilter checks if a section matches the given filter query.
// "status:<state>" matches on view state (expanded, collapsed, loaded,
// loading, failed); anything else is a case-insensitive name match, also
// tried against recipients and givers of loaded sections.
func MatchesFilter(section *domain.Section, filterQuery string) bool {
	if filterQuery == "" {
		return true
	}

	query := strings.ToLower(strings.TrimSpace(filterQuery))
	if strings.HasPrefix(query, "status:") {
		return MatchesStatusFilter(section, strings.TrimPrefix(query, "status:"))
	}

	if strings.Contains(strings.ToLower(section.Name), query) {
		return true
	}
	if section.Content == nil {
		return false
	}
	for _, r := range section.Content.Recipients {
		if strings.Contains(strings.ToLower(r.Recipient), query) {
			return true
		}
		for _, g := range r.Givers {
			if strings.Contains(strings.ToLower(g.Giver), query) {
				return true
			}
		}
	}
	return false
}

// MatchesStatusFilter checks if a section is in the named view state
func MatchesStatusFilter(section *domain.Section, filter string) bool {
	switch filter {
	case "expanded", "open":
		return section.IsTabExpanded
	case "collapsed", "closed":
		return !section.IsTabExpanded
	case "loaded":
		return section.Content != nil
	case "loading":
		return section.Loading
	case "failed", "error":
		return section.LoadErr != ""
	default:
		return false
	}
}

// FilterSections returns the sections matching the query, keeping order
func FilterSections(sections []*domain.Section, filterQuery string) []*domain.Section {
	if filterQuery == "" {
		return sections
	}
	var out []*domain.Section
	for _, s := range sections {
		if MatchesFilter(s, filterQuery) {
			out = append(out, s)
		}
	}
	return out
}
