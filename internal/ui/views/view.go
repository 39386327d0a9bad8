package views

import (
	"strings"

	"rgqview/internal/domain"
)

// ViewState contains all the state needed for rendering the section list
type ViewState struct {
	Sections    []*domain.Section // visible sections, in display order
	Cursor      int
	FilterQuery string
	Width       int
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	sectionRender *SectionRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showQuestionNumbers bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		sectionRender: NewSectionRenderer(styles, showQuestionNumbers),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// RenderSections renders the section list. It returns the content and the
// line index of each section header.
func (r *Renderer) RenderSections(state ViewState) (string, []int) {
	if len(state.Sections) == 0 {
		if state.FilterQuery != "" {
			return r.styles.Dim.Render("No sections match the filter"), nil
		}
		return r.styles.Dim.Render("No sections"), nil
	}

	var lines []string
	headers := make([]int, 0, len(state.Sections))
	for i, section := range state.Sections {
		headers = append(headers, len(lines))
		lines = append(lines, r.sectionRender.RenderHeader(section, i == state.Cursor, state.FilterQuery, state.Width))
		if section.IsTabExpanded {
			lines = append(lines, r.sectionRender.RenderBody(section)...)
		}
	}
	return strings.Join(lines, "\n"), headers
}

// RenderPlain renders a fully expanded section without cursor styling,
// for the pager and for printing
func (r *Renderer) RenderPlain(section *domain.Section) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(section.Name))
	b.WriteString("\n")
	for _, line := range r.sectionRender.RenderBody(section) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
