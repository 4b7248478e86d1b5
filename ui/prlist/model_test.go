package prlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheerioskun/prfilter/internal/filter"
	"github.com/cheerioskun/prfilter/internal/messages"
	"github.com/cheerioskun/prfilter/internal/models"
)

func TestPatternsChangedReevaluates(t *testing.T) {
	m := NewModel()
	m.SetSize(60, 20)
	m.SetPullRequests([]*models.PullRequest{
		{Number: 1, Title: "Docs", Files: []models.ChangedFile{{Filename: "docs/a.md"}}},
		{Number: 2, Title: "Rename", Files: []models.ChangedFile{{Filename: "b.go", PreviousFilename: "src/b.go"}}},
		{Number: 3, Title: "Empty"},
	})

	included, excluded := m.Counts()
	assert.Equal(t, 0, included)
	assert.Equal(t, 3, excluded)

	c, err := filter.Build(`src/.*`, "")
	require.NoError(t, err)

	m, cmd := m.Update(messages.PatternsChangedMsg{Filter: c})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.DecisionsUpdatedMsg{Included: 1, Excluded: 2}, cmd())

	rows := m.Rows()
	require.Len(t, rows, 3)
	assert.True(t, rows[0].Excluded)
	assert.False(t, rows[1].Excluded)
	assert.Equal(t, filter.Match{Filename: "src/b.go", Previous: true}, rows[1].Match)
	assert.True(t, rows[2].Excluded)

	assert.Contains(t, m.View(), "matched (previous): src/b.go")
}
