package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cheerioskun/prfilter/internal/messages"
	"github.com/cheerioskun/prfilter/internal/models"
	"github.com/cheerioskun/prfilter/internal/trait"
	"github.com/cheerioskun/prfilter/ui/prlist"
	"github.com/cheerioskun/prfilter/ui/regex"
)

// FocusedPanel represents which panel is currently focused
type FocusedPanel int

const (
	RegexPanel FocusedPanel = iota
	PullRequestPanel
)

// AppModel represents the pattern tester application
type AppModel struct {
	// Core state
	source       string
	pullRequests []*models.PullRequest

	// Components
	regex  *regex.Model
	prList *prlist.Model

	// UI state
	focused FocusedPanel
	width   int
	height  int

	// Status
	status   string
	quitting bool
}

// NewAppModel creates a new application model
func NewAppModel(source string, prs []*models.PullRequest, cfg trait.Config) *AppModel {
	rx := regex.NewModel(cfg)
	rx.SetPullRequests(prs)
	rx.Focus()

	list := prlist.NewModel()
	list.SetPullRequests(prs)

	return &AppModel{
		source:       source,
		pullRequests: prs,
		regex:        rx,
		prList:       list,
		focused:      RegexPanel,
		width:        80,
		height:       24,
		status:       "Ready",
	}
}

// Init implements tea.Model
func (m *AppModel) Init() tea.Cmd {
	return m.regex.PatternsChanged()
}

// Config returns the patterns currently entered
func (m *AppModel) Config() trait.Config {
	return m.regex.Config()
}

// Update implements tea.Model
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case messages.PatternsChangedMsg:
		var cmd tea.Cmd
		m.prList, cmd = m.prList.Update(msg)
		if msg.Filter == nil {
			m.status = "Invalid pattern"
		}
		return m, cmd

	case messages.DecisionsUpdatedMsg:
		m.status = fmt.Sprintf("%d to build, %d skipped", msg.Included, msg.Excluded)
		return m, nil

	case tea.KeyMsg:
		if m.regex.IsEditing() {
			var cmd tea.Cmd
			m.regex, cmd = m.regex.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "tab", "shift+tab":
			m.togglePanel()
			return m, nil

		case "?":
			m.status = "Help: Tab to switch panels, e to edit a pattern, q to quit"
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focused == RegexPanel {
		m.regex, cmd = m.regex.Update(msg)
	} else {
		m.prList, cmd = m.prList.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model
func (m *AppModel) View() string {
	if m.quitting {
		return ""
	}

	return m.renderLayout()
}

// renderLayout creates the main application layout
func (m *AppModel) renderLayout() string {
	headerHeight := 3
	statusHeight := 3
	contentHeight := m.height - headerHeight - statusHeight

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	header := m.renderHeader()

	left := m.getPanelStyle(RegexPanel, leftWidth, contentHeight).Render(m.regex.View())
	right := m.getPanelStyle(PullRequestPanel, rightWidth, contentHeight).Render(m.prList.View())

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, m.renderStatusPanel(m.width, statusHeight))
}

// renderHeader creates the application header
func (m *AppModel) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		Render(trait.DisplayName)

	path := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(fmt.Sprintf("Source: %s", m.source))

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render("Tab: Navigate | ?: Help | q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, path, help)
}

// renderStatusPanel renders the status panel
func (m *AppModel) renderStatusPanel(width, height int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(width-2).
		Height(height-2).
		Padding(0, 1)

	statusParts := []string{
		fmt.Sprintf("Pull requests: %d", len(m.pullRequests)),
		fmt.Sprintf("Status: %s", m.status),
	}

	return style.Render(strings.Join(statusParts, " | "))
}

// Helper methods

func (m *AppModel) getPanelStyle(panel FocusedPanel, width, height int) lipgloss.Style {
	borderColor := lipgloss.Color("240")
	if panel == m.focused {
		borderColor = lipgloss.Color("205")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width-2).
		Height(height-2).
		Padding(0, 1)
}

func (m *AppModel) resize() {
	contentHeight := m.height - 6
	m.regex.SetSize(m.width/2-4, contentHeight-2)
	m.prList.SetSize(m.width-m.width/2-4, contentHeight-2)
}

func (m *AppModel) togglePanel() {
	if m.focused == RegexPanel {
		m.focused = PullRequestPanel
		m.regex.Blur()
		m.prList.Focus()
	} else {
		m.focused = RegexPanel
		m.prList.Blur()
		m.regex.Focus()
	}
}
