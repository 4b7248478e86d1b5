package regex

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cheerioskun/prfilter/internal/filter"
)

// Styling constants
var (
	// Colors
	primaryColor   = lipgloss.Color("205")
	secondaryColor = lipgloss.Color("240")
	successColor   = lipgloss.Color("46")
	errorColor     = lipgloss.Color("196")
	warningColor   = lipgloss.Color("214")

	// Base styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Margin(0, 1, 1, 0)

	patternStyle = lipgloss.NewStyle().
			Padding(0, 1)

	editInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1).
			Margin(1, 0)

	helpStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Margin(1, 0, 0, 0)
)

func (m *Model) renderNormalMode() string {
	sectionHeight := (m.height - 6) / 2 // Leave space for help
	sectionWidth := m.width - 4

	includeSection := m.renderSection(IncludeSection, sectionWidth, sectionHeight)
	excludeSection := m.renderSection(ExcludeSection, sectionWidth, sectionHeight)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		includeSection,
		excludeSection,
		m.renderHelp(),
	)
}

func (m *Model) renderEditMode() string {
	header := headerStyle.
		Foreground(primaryColor).
		Render(fmt.Sprintf("Edit %s Pattern", m.activeSection))

	input := editInputStyle.Render(m.editInput.View())

	editHelp := helpStyle.Render("Enter: Confirm • Esc: Cancel")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		input,
		editHelp,
	)
}

func (m *Model) renderSection(section Section, width, height int) string {
	isActive := section == m.activeSection
	pattern := m.patterns[section]

	var title string
	var titleColor lipgloss.Color
	borderColor := secondaryColor

	if section == IncludeSection {
		title = "📥 Inclusion"
		titleColor = successColor
	} else {
		title = "📤 Exclusion"
		titleColor = errorColor
	}

	header := headerStyle.
		Foreground(titleColor).
		Render(title)

	if isActive && m.focused {
		borderColor = primaryColor
		header = headerStyle.
			Foreground(titleColor).
			Background(lipgloss.Color("235")).
			Render(title + " *")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPattern(pattern, section),
		m.renderValidation(pattern.Validation),
	)

	return sectionStyle.
		Width(width).
		Height(height).
		BorderForeground(borderColor).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, content))
}

func (m *Model) renderPattern(pattern Pattern, section Section) string {
	text := pattern.Text
	if text == "" {
		text = "(none)"
	}

	maxWidth := m.width - 16
	if maxWidth > 3 && len(text) > maxWidth {
		text = text[:maxWidth-3] + "..."
	}

	matchInfo := " (error)"
	if m.current != nil {
		matchInfo = fmt.Sprintf(" (%d PRs)", pattern.MatchCount)
	}
	if section == ExcludeSection && pattern.Text == "" {
		matchInfo = ""
	}

	return patternStyle.Render(text + matchInfo)
}

func (m *Model) renderValidation(v filter.Validation) string {
	switch v.Kind {
	case filter.KindWarning:
		return patternStyle.Foreground(warningColor).Render("⚠ " + v.Message)
	case filter.KindError:
		return patternStyle.Foreground(errorColor).Render("✗ " + v.Message)
	default:
		return patternStyle.Foreground(successColor).Render("✓")
	}
}

func (m *Model) renderHelp() string {
	if !m.focused {
		return ""
	}

	helpItems := []string{
		"↑/↓: Switch",
		"e/Enter: Edit",
		"d: Reset",
	}
	return helpStyle.Render(strings.Join(helpItems, " • "))
}
