package regex

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheerioskun/prfilter/internal/filter"
	"github.com/cheerioskun/prfilter/internal/messages"
	"github.com/cheerioskun/prfilter/internal/models"
	"github.com/cheerioskun/prfilter/internal/trait"
)

func keys(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func prs() []*models.PullRequest {
	return []*models.PullRequest{
		{Number: 1, Files: []models.ChangedFile{{Filename: "docs/a.md"}}},
		{Number: 2, Files: []models.ChangedFile{{Filename: "src/a.go"}, {Filename: "docs/b.md"}}},
	}
}

func TestNewModelValidates(t *testing.T) {
	m := NewModel(trait.Config{Inclusion: filter.MatchAll, Exclusion: `docs/.*`})
	m.SetPullRequests(prs())

	require.NotNil(t, m.Filter())
	assert.Equal(t, filter.KindWarning, m.Pattern(IncludeSection).Validation.Kind)
	assert.Equal(t, 2, m.Pattern(IncludeSection).MatchCount)
	assert.Equal(t, 2, m.Pattern(ExcludeSection).MatchCount)

	m = NewModel(trait.Config{Inclusion: "("})
	assert.Nil(t, m.Filter())
	assert.Equal(t, filter.KindError, m.Pattern(IncludeSection).Validation.Kind)
}

func TestEditExclusion(t *testing.T) {
	m := NewModel(trait.DefaultConfig())
	m.SetPullRequests(prs())
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.IsEditing())

	for _, k := range keys(`src/.*`) {
		m, _ = m.Update(k)
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.IsEditing())

	msg, ok := cmd().(messages.PatternsChangedMsg)
	require.True(t, ok)
	assert.Equal(t, `src/.*`, msg.Config.Exclusion)
	require.NotNil(t, msg.Filter)
	assert.False(t, msg.Filter.Matches("src/a.go"))
	assert.Equal(t, 1, m.Pattern(ExcludeSection).MatchCount)

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	require.NotNil(t, cmd)
	assert.Equal(t, "", m.Config().Exclusion)
}

func TestCancelEditKeepsPattern(t *testing.T) {
	m := NewModel(trait.Config{Inclusion: `src/.*`})
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	for _, k := range keys("xyz") {
		m, _ = m.Update(k)
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, `src/.*`, m.Config().Inclusion)
	assert.NotEmpty(t, m.View())
}

func TestPatternsChangedReportsPatternsAtCreation(t *testing.T) {
	m := NewModel(trait.Config{Inclusion: filter.MatchAll, Exclusion: `docs/.*`})
	m.Focus()

	cmd := m.PatternsChanged()
	before := m.Filter()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	require.Equal(t, "", m.Config().Exclusion)

	msg, ok := cmd().(messages.PatternsChangedMsg)
	require.True(t, ok)
	assert.Equal(t, `docs/.*`, msg.Config.Exclusion)
	assert.Same(t, before, msg.Filter)
	assert.False(t, msg.Filter.Matches("docs/a.md"))
}
