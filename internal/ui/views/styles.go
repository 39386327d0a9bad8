package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Filter      lipgloss.Style
	Help        lipgloss.Style
	Highlight   lipgloss.Style
	Cursor      lipgloss.Style
	Recipient   lipgloss.Style
	Giver       lipgloss.Style
	Question    lipgloss.Style
	Answer      lipgloss.Style
	Loading     lipgloss.Style
	StatusError lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:        lipgloss.NewStyle().Faint(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Cursor:      lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Recipient:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Giver:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Question:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Answer:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Loading:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
	}
}
