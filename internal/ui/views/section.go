package views

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"rgqview/internal/domain"
)

// SectionRenderer handles rendering of section headers and bodies
type SectionRenderer struct {
	styles              *Styles
	showQuestionNumbers bool
}

// NewSectionRenderer creates a new section renderer
func NewSectionRenderer(styles *Styles, showQuestionNumbers bool) *SectionRenderer {
	return &SectionRenderer{
		styles:              styles,
		showQuestionNumbers: showQuestionNumbers,
	}
}

// RenderHeader renders the tab line of a section
func (r *SectionRenderer) RenderHeader(section *domain.Section, isSelected bool, filterQuery string, width int) string {
	arrow := "▶"
	if section.IsTabExpanded {
		arrow = "▼"
	}

	name := section.Name
	if filterQuery != "" {
		name = r.highlightMatch(name, filterQuery, r.styles.Highlight, lipgloss.NewStyle())
	}

	line := fmt.Sprintf("%s %s", arrow, name)
	if section.Content != nil {
		line += r.styles.Dim.Render(fmt.Sprintf(" (%d)", section.Content.ResponseCount()))
	}

	if isSelected {
		if width > 0 {
			if w := lipgloss.Width(line); w < width {
				line += strings.Repeat(" ", width-w)
			}
		}
		return r.styles.Cursor.Render(line)
	}
	return line
}

// RenderBody renders the lines shown under an expanded section
func (r *SectionRenderer) RenderBody(section *domain.Section) []string {
	switch {
	case section.LoadErr != "":
		return []string{"  " + r.styles.StatusError.Render("failed to load: "+section.LoadErr)}
	case section.Content == nil:
		return []string{"  " + r.styles.Loading.Render("loading...")}
	case len(section.Content.Recipients) == 0:
		return []string{"  " + r.styles.Dim.Render("no responses")}
	}

	var lines []string
	for _, recipient := range section.Content.Recipients {
		lines = append(lines, "  "+r.styles.Recipient.Render("To: "+recipient.Recipient))
		for _, giver := range recipient.Givers {
			lines = append(lines, "    "+r.styles.Giver.Render("From: "+giver.Giver))
			for _, a := range giver.Answers {
				lines = append(lines, "      "+r.styles.Question.Render(r.questionLabel(a)))
				for _, text := range strings.Split(a.Answer, "\n") {
					lines = append(lines, "        "+r.styles.Answer.Render(text))
				}
			}
		}
	}
	return lines
}

func (r *SectionRenderer) questionLabel(a domain.Answer) string {
	if r.showQuestionNumbers {
		return fmt.Sprintf("Q%d: %s", a.QuestionNumber, a.QuestionText)
	}
	return a.QuestionText
}

// highlightMatch highlights the first case-insensitive match of query in text
func (r *SectionRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	start, end, ok := foldIndex(text, query)
	if !ok {
		return normalStyle.Render(text)
	}

	before := text[:start]
	match := text[start:end]
	after := text[end:]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}
	return strings.Join(result, "")
}

// foldIndex returns the byte span in text of the first rune-wise
// case-insensitive match of query. Lowercasing may change a rune's encoded
// length, so offsets are taken from text itself.
func foldIndex(text, query string) (int, int, bool) {
	q := []rune(query)
	if len(q) == 0 {
		return 0, 0, false
	}
	for start := 0; start < len(text); {
		i, k := start, 0
		for k < len(q) && i < len(text) {
			c, size := utf8.DecodeRuneInString(text[i:])
			if unicode.ToLower(c) != unicode.ToLower(q[k]) {
				break
			}
			i += size
			k++
		}
		if k == len(q) {
			return start, i, true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		start += size
	}
	return 0, 0, false
}
