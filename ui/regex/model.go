package regex

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cheerioskun/prfilter/internal/filter"
	"github.com/cheerioskun/prfilter/internal/messages"
	"github.com/cheerioskun/prfilter/internal/models"
	"github.com/cheerioskun/prfilter/internal/trait"
)

// Section represents which pattern is currently active
type Section int

const (
	IncludeSection Section = iota
	ExcludeSection
)

// String returns a human-readable representation of the section
func (s Section) String() string {
	if s == ExcludeSection {
		return "Exclusion"
	}
	return "Inclusion"
}

// Pattern represents one of the two trait patterns with its validation state
type Pattern struct {
	Text       string            // The regex pattern text
	Validation filter.Validation // Result of checking the pattern
	MatchCount int               // Pull requests with at least one file matched by this pattern alone
}

// Model represents the regex panel state
type Model struct {
	// Data
	patterns [2]Pattern
	current  *filter.Configuration

	// UI State
	activeSection Section
	editMode      bool
	editInput     textinput.Model

	// Component state
	focused bool
	width   int
	height  int

	// Pull requests for pattern testing
	pullRequests []*models.PullRequest
}

// NewModel creates a new regex panel model seeded with cfg
func NewModel(cfg trait.Config) *Model {
	input := textinput.New()
	input.Placeholder = "Enter regex pattern..."
	input.CharLimit = 256

	m := &Model{
		activeSection: IncludeSection,
		editInput:     input,
		width:         40,
		height:        20,
		pullRequests:  make([]*models.PullRequest, 0),
	}
	m.patterns[IncludeSection] = Pattern{Text: cfg.Inclusion}
	m.patterns[ExcludeSection] = Pattern{Text: cfg.Exclusion}
	m.rebuild()

	return m
}

// Update handles messages for the regex panel
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle edit mode input
	if m.editMode {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "enter":
				return m.confirmEdit()
			case "esc":
				return m.cancelEdit(), nil
			default:
				m.editInput, cmd = m.editInput.Update(msg)
				return m, cmd
			}
		default:
			m.editInput, cmd = m.editInput.Update(msg)
			return m, cmd
		}
	}

	// Handle normal navigation
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k", "down", "j":
			m.switchSection()
		case "e", "enter":
			m.startEditPattern()
		case "d", "delete":
			return m, m.clearPattern()
		}
	}

	return m, cmd
}

// View renders the regex panel
func (m *Model) View() string {
	if m.editMode {
		return m.renderEditMode()
	}
	return m.renderNormalMode()
}

// Component interface methods

func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
	if m.editMode {
		m.cancelEdit()
	}
}

func (m *Model) IsFocused() bool {
	return m.focused
}

// IsEditing returns true while a pattern is being typed
func (m *Model) IsEditing() bool {
	return m.editMode
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Data management methods

// SetPullRequests sets the pull requests patterns are tested against
func (m *Model) SetPullRequests(prs []*models.PullRequest) {
	m.pullRequests = prs
	m.testPatterns()
}

// Config returns the patterns as typed
func (m *Model) Config() trait.Config {
	return trait.Config{
		Inclusion: m.patterns[IncludeSection].Text,
		Exclusion: m.patterns[ExcludeSection].Text,
	}
}

// Filter returns the compiled filter, nil while a pattern is invalid
func (m *Model) Filter() *filter.Configuration {
	return m.current
}

// Pattern returns the pattern of the given section
func (m *Model) Pattern(section Section) Pattern {
	return m.patterns[section]
}

// PatternsChanged returns the command announcing the current patterns
func (m *Model) PatternsChanged() tea.Cmd {
	cfg, current := m.Config(), m.current
	return func() tea.Msg {
		return messages.PatternsChangedMsg{
			Config:          cfg,
			Filter:          current,
			SourceComponent: "regex_panel",
		}
	}
}

// Internal methods

func (m *Model) switchSection() {
	if m.activeSection == IncludeSection {
		m.activeSection = ExcludeSection
	} else {
		m.activeSection = IncludeSection
	}
}

func (m *Model) startEditPattern() {
	m.editMode = true
	m.editInput.SetValue(m.patterns[m.activeSection].Text)
	m.editInput.Focus()
}

func (m *Model) confirmEdit() (*Model, tea.Cmd) {
	value := m.editInput.Value()
	if m.activeSection == ExcludeSection && strings.TrimSpace(value) == "" {
		value = ""
	}

	m.patterns[m.activeSection].Text = value
	m.rebuild()
	model := m.cancelEdit()

	return model, m.PatternsChanged()
}

func (m *Model) cancelEdit() *Model {
	m.editMode = false
	m.editInput.Blur()
	m.editInput.SetValue("")
	return m
}

// clearPattern resets the active pattern: inclusion back to match-all,
// exclusion to unset
func (m *Model) clearPattern() tea.Cmd {
	if m.activeSection == IncludeSection {
		m.patterns[IncludeSection].Text = filter.MatchAll
	} else {
		m.patterns[ExcludeSection].Text = ""
	}
	m.rebuild()
	return m.PatternsChanged()
}

// rebuild validates both patterns and recompiles the filter
func (m *Model) rebuild() {
	m.patterns[IncludeSection].Validation = filter.CheckInclusion(m.patterns[IncludeSection].Text)
	m.patterns[ExcludeSection].Validation = filter.CheckExclusion(m.patterns[ExcludeSection].Text)

	m.current = nil
	if !m.patterns[IncludeSection].Validation.Blocking() && !m.patterns[ExcludeSection].Validation.Blocking() {
		f, err := filter.Build(m.patterns[IncludeSection].Text, m.patterns[ExcludeSection].Text)
		if err == nil {
			m.current = f
		}
	}

	m.testPatterns()
}

func (m *Model) testPatterns() {
	m.patterns[IncludeSection].MatchCount = 0
	m.patterns[ExcludeSection].MatchCount = 0
	if m.current == nil {
		return
	}

	for _, pr := range m.pullRequests {
		included, excluded := false, false
		for _, name := range pr.GetFilenames() {
			included = included || m.current.ShouldInclude(name)
			excluded = excluded || !m.current.NotExcluded(name)
		}
		if included {
			m.patterns[IncludeSection].MatchCount++
		}
		if excluded {
			m.patterns[ExcludeSection].MatchCount++
		}
	}
}
