package prlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cheerioskun/prfilter/internal/filter"
	"github.com/cheerioskun/prfilter/internal/messages"
	"github.com/cheerioskun/prfilter/internal/models"
)

// Row is one pull request with its current decision
type Row struct {
	PullRequest *models.PullRequest
	Excluded    bool
	Match       filter.Match // Valid only when not excluded
}

// Model represents the pull request list with live decisions
type Model struct {
	// Data
	pullRequests []*models.PullRequest
	rows         []Row
	filter       *filter.Configuration

	// UI state
	focused  bool
	width    int
	height   int
	viewport viewport.Model

	// Styles
	titleStyle    lipgloss.Style
	includedStyle lipgloss.Style
	excludedStyle lipgloss.Style
	matchStyle    lipgloss.Style
	emptyStyle    lipgloss.Style
}

// NewModel creates a new pull request list model
func NewModel() *Model {
	vp := viewport.New(40, 6) // Initial size, will be updated in SetSize
	vp.SetContent("")

	return &Model{
		pullRequests: make([]*models.PullRequest, 0),
		rows:         make([]Row, 0),
		width:        40,
		height:       10,
		viewport:     vp,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Margin(0, 0, 1, 0),

		includedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")),

		excludedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		matchStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),

		emptyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case messages.PatternsChangedMsg:
		m.filter = msg.Filter
		m.evaluate()
		m.updateViewportContent()
		return m, m.decisionsUpdated()

	case tea.KeyMsg:
		if m.focused {
			switch msg.String() {
			case "j", "down":
				m.viewport.LineDown(1)
			case "k", "up":
				m.viewport.LineUp(1)
			case "pgdown", " ":
				m.viewport.ViewDown()
			case "pgup":
				m.viewport.ViewUp()
			case "home", "g":
				m.viewport.GotoTop()
			case "end", "G":
				m.viewport.GotoBottom()
			}
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the component
func (m *Model) View() string {
	title := "🔀 Pull Requests"
	if m.focused {
		title += " *"
	}

	header := m.titleStyle.Render(title)

	var content string
	if len(m.rows) == 0 {
		content = m.emptyStyle.Render("No pull requests loaded")
	} else {
		content = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, m.renderSummary())
}

// SetPullRequests replaces the pull requests and re-evaluates them
func (m *Model) SetPullRequests(prs []*models.PullRequest) {
	m.pullRequests = prs
	m.evaluate()
	m.updateViewportContent()
}

// Rows returns the current decisions
func (m *Model) Rows() []Row {
	return m.rows
}

// Counts returns how many pull requests are included and excluded
func (m *Model) Counts() (included, excluded int) {
	for _, row := range m.rows {
		if row.Excluded {
			excluded++
		} else {
			included++
		}
	}
	return included, excluded
}

// evaluate recomputes every decision. Without a valid filter every pull
// request is shown as excluded.
func (m *Model) evaluate() {
	m.rows = make([]Row, 0, len(m.pullRequests))
	for _, pr := range m.pullRequests {
		row := Row{PullRequest: pr, Excluded: true}
		if m.filter != nil {
			if match, ok := m.filter.FirstMatch(pr.Files); ok {
				row.Excluded = false
				row.Match = match
			}
		}
		m.rows = append(m.rows, row)
	}
}

func (m *Model) decisionsUpdated() tea.Cmd {
	included, excluded := m.Counts()
	return func() tea.Msg {
		return messages.DecisionsUpdatedMsg{Included: included, Excluded: excluded}
	}
}

// updateViewportContent updates the viewport with the current rows
func (m *Model) updateViewportContent() {
	if len(m.rows) == 0 {
		m.viewport.SetContent(m.emptyStyle.Render("No pull requests to display"))
		return
	}

	m.viewport.SetContent(m.renderRows())
}

func (m *Model) renderRows() string {
	var lines []string

	maxTitleWidth := m.width - 14
	if maxTitleWidth < 10 {
		maxTitleWidth = 10
	}

	for _, row := range m.rows {
		pr := row.PullRequest
		title := pr.Title
		if len(title) > maxTitleWidth {
			title = title[:maxTitleWidth-3] + "..."
		}

		if row.Excluded {
			lines = append(lines, m.excludedStyle.Render(fmt.Sprintf("✗ %-6s %s", pr.Ref(), title)))
			continue
		}

		lines = append(lines, m.includedStyle.Render(fmt.Sprintf("✓ %-6s %s", pr.Ref(), title)))

		label := "matched"
		if row.Match.Previous {
			label = "matched (previous)"
		}
		lines = append(lines, m.matchStyle.Render(fmt.Sprintf("         %s: %s", label, row.Match.Filename)))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderSummary() string {
	if len(m.rows) == 0 {
		return ""
	}

	included, excluded := m.Counts()
	summary := fmt.Sprintf("Build: %d • Skip: %d", included, excluded)
	if m.filter == nil {
		summary += " • invalid pattern"
	}
	return m.matchStyle.Render(summary)
}

// Component interface methods

func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
}

func (m *Model) IsFocused() bool {
	return m.focused
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Account for title (2 lines) and summary (1 line)
	viewportHeight := height - 4
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	m.viewport.Width = width
	m.viewport.Height = viewportHeight

	if len(m.rows) > 0 {
		m.updateViewportContent()
	}
}
