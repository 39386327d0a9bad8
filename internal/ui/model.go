package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rgqview/internal/config"
	"rgqview/internal/domain"
	"rgqview/internal/eventbus"
	"rgqview/internal/logic"
	"rgqview/internal/ui/handlers"
	uilogic "rgqview/internal/ui/logic"
	"rgqview/internal/ui/services/sections"
	"rgqview/internal/ui/views"
)

// headerHeight is the title plus the session summary line
const headerHeight = 2

// Model represents the UI state
type Model struct {
	store    logic.SectionStore
	sections *sections.Service
	config   *config.Config
	session  *domain.Session
	logger   *slog.Logger

	width  int
	height int

	keys          keyMap
	help          help.Model
	viewport      viewport.Model
	filter        textinput.Model
	filtering     bool
	filterQuery   string
	cursor        int   // index into the visible sections
	headers       []int // viewport line of each visible section header
	statusMessage string

	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	pager        *PagerOps

	configSvc   config.ConfigService
	resultsPath string

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model over the section store. The sections
// service must operate on the same store.
func NewModel(store logic.SectionStore, svc *sections.Service, cfg *config.Config, session *domain.Session, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if session == nil {
		session = &domain.Session{}
	}

	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "section, person or status:expanded"

	m := &Model{
		store:        store,
		sections:     svc,
		config:       cfg,
		session:      session,
		logger:       logger.With("component", "ui"),
		keys:         defaultKeyMap(),
		help:         help.New(),
		viewport:     viewport.New(80, 20),
		filter:       filter,
		renderer:     views.NewRenderer(cfg.UISettings.ShowQuestionNumbers),
		eventHandler: handlers.NewEventHandler(store, logger),
	}

	svc.OnLoadSection(m.eventHandler.MarkLoading)
	m.refresh()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// SetConfigService enables remembering the open results file in the config
func (m *Model) SetConfigService(svc config.ConfigService, resultsPath string) {
	m.configSvc = svc
	m.resultsPath = resultsPath
}

// Init expands every section when configured to do so
func (m *Model) Init() tea.Cmd {
	if m.config.UISettings.ExpandOnStart {
		m.sections.ExpandAllSections()
		m.refresh()
	}
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		m.refresh()
		return m, nil

	case EventMsg:
		if status := m.eventHandler.HandleEvent(msg.Event); status != "" {
			m.statusMessage = status
		}
		if _, ok := msg.Event.(eventbus.ConfigSavedEvent); ok {
			m.config.ResultsFile = m.resultsPath
		}
		m.refresh()
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", "section", msg.section, "error", msg.err)
			m.statusMessage = fmt.Sprintf("Pager error: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.handleKey(msg)
	}

	// mouse wheel and the like
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()

	case key.Matches(msg, m.keys.Up):
		m.cursor--

	case key.Matches(msg, m.keys.Down):
		m.cursor++

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.visibleSections()) - 1

	case key.Matches(msg, m.keys.Toggle):
		if section := m.selected(); section != nil {
			m.sections.ToggleSection(section.Name, section)
			if m.sections.IsExpanded(section.Name) {
				m.statusMessage = "Expanded " + section.Name
			} else {
				m.statusMessage = "Collapsed " + section.Name
			}
		}

	case key.Matches(msg, m.keys.ExpandAll):
		m.sections.ExpandAllSections()
		m.statusMessage = "Expanded all sections"

	case key.Matches(msg, m.keys.CollapseAll):
		m.sections.CollapseAllSections()
		m.statusMessage = "Collapsed all sections"

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.SetValue(m.filterQuery)
		m.filter.CursorEnd()
		m.resize()
		return m, m.filter.Focus()

	case key.Matches(msg, m.keys.ClearFilter):
		m.filterQuery = ""
		m.filter.SetValue("")
		m.resize()

	case key.Matches(msg, m.keys.Pager):
		if section := m.selected(); section != nil {
			switch {
			case section.Content != nil:
				return m, m.openPager(section)
			case section.LoadErr != "":
				m.statusMessage = fmt.Sprintf("%s failed to load", section.Name)
			case section.Loading:
				m.statusMessage = fmt.Sprintf("%s is still loading", section.Name)
			default:
				m.statusMessage = fmt.Sprintf("%s is not loaded, expand it first", section.Name)
			}
		}

	case key.Matches(msg, m.keys.Remember):
		return m, m.rememberResultsFile()

	default:
		// page up/down
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filterQuery = ""
		m.filter.SetValue("")
	default:
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.filterQuery = m.filter.Value()
		m.cursor = 0
		m.refresh()
		return m, cmd
	}
	m.resize()
	m.refresh()
	return m, nil
}

func (m *Model) openPager(section *domain.Section) tea.Cmd {
	content := m.renderer.RenderPlain(section)
	pager := m.pager
	name := section.Name
	return func() tea.Msg {
		if pager == nil {
			return pagerMsg{section: name, err: fmt.Errorf("pager unavailable")}
		}
		return pagerMsg{section: name, err: pager.Show(content)}
	}
}

// rememberResultsFile saves the open results file as the configured default
func (m *Model) rememberResultsFile() tea.Cmd {
	if m.configSvc == nil || m.resultsPath == "" {
		m.statusMessage = "No results file to remember"
		return nil
	}
	if m.config.ResultsFile == m.resultsPath {
		m.statusMessage = "Results file already remembered"
		return nil
	}

	cfg := *m.config
	cfg.ResultsFile = m.resultsPath
	svc := m.configSvc
	return func() tea.Msg {
		if err := svc.Save(&cfg); err != nil {
			return EventMsg{Event: eventbus.ErrorEvent{Message: "failed to save config", Err: err}}
		}
		return EventMsg{Event: eventbus.ConfigSavedEvent{Path: svc.Path()}}
	}
}

// visibleSections returns the sections passing the filter, in store order
func (m *Model) visibleSections() []*domain.Section {
	return uilogic.FilterSections(m.store.GetAllSections(), m.filterQuery)
}

// selected returns the section under the cursor, or nil
func (m *Model) selected() *domain.Section {
	visible := m.visibleSections()
	if len(visible) == 0 {
		return nil
	}
	m.clampCursor(len(visible))
	return visible[m.cursor]
}

func (m *Model) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// refresh re-renders the section list into the viewport
func (m *Model) refresh() {
	visible := m.visibleSections()
	m.clampCursor(len(visible))

	content, headers := m.renderer.RenderSections(views.ViewState{
		Sections:    visible,
		Cursor:      m.cursor,
		FilterQuery: m.filterQuery,
		Width:       m.viewport.Width,
	})
	m.headers = headers
	m.viewport.SetContent(content)
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	if m.cursor >= len(m.headers) {
		return
	}
	line := m.headers[m.cursor]
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	} else if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// resize fits the viewport between the header and the footer
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - headerHeight - lipgloss.Height(m.footer())
	if h < 1 {
		h = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
}

func (m *Model) footer() string {
	styles := m.renderer.Styles()
	var lines []string
	if m.filtering {
		lines = append(lines, m.filter.View())
	} else if m.filterQuery != "" {
		lines = append(lines, styles.Filter.Render("Filter: "+m.filterQuery))
	}
	lines = append(lines, styles.Status.Render(m.statusMessage))
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

// View renders the UI
func (m *Model) View() string {
	styles := m.renderer.Styles()

	title := m.session.Name
	if title == "" {
		title = "Session results"
	}

	summary := fmt.Sprintf("%d sections, %d expanded", m.store.Len(), len(m.sections.ExpandedNames()))
	if m.session.CourseID != "" {
		summary = m.session.CourseID + " · " + summary
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(summary))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}
