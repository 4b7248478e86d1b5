package scanner

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheerioskun/prfilter/internal/models"
	"github.com/cheerioskun/prfilter/internal/trait"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func newFixture(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/prs/12.yaml", `
number: 12
title: Update docs
url: https://github.com/acme/widgets/pull/12
target: main
files:
  - filename: docs/index.md
`)
	writeFile(t, fs, "/prs/nested/7.json", `{
  "number": 7,
  "title": "Move parser",
  "files": [
    {"filename": "pkg/parser/parse.go", "previous_filename": "internal/parse.go"}
  ]
}`)
	writeFile(t, fs, "/prs/README.txt", "not a manifest")
	return fs
}

func TestScan(t *testing.T) {
	fs := newFixture(t)

	req, err := NewManifestScanner(fs).Scan("/prs", nil)
	require.NoError(t, err)
	assert.Equal(t, "/prs", req.Path())

	prs, err := req.PullRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, prs, 2)
	assert.Equal(t, 7, prs[0].Number)
	assert.Equal(t, 12, prs[1].Number)
	assert.Equal(t, "main", prs[1].Target)
	assert.Equal(t, "nested/7.json", prs[0].Source)
	assert.Equal(t, 1, req.Skipped())

	files, err := req.ListFiles(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []models.ChangedFile{{Filename: "pkg/parser/parse.go", PreviousFilename: "internal/parse.go"}}, files)

	_, err = req.ListFiles(context.Background(), 404)
	assert.Error(t, err)

	assert.Equal(t, []models.Head{
		models.PullRequestHead{Number: 7},
		models.PullRequestHead{Number: 12, Target: "main"},
	}, req.Heads())
}

func TestScanMaxDepth(t *testing.T) {
	fs := newFixture(t)

	s := NewManifestScanner(fs)
	s.SetMaxDepth(0)
	req, err := s.Scan("/prs", nil)
	require.NoError(t, err)

	prs, _ := req.PullRequests(context.Background())
	require.Len(t, prs, 1)
	assert.Equal(t, 12, prs[0].Number)
}

func TestScanInvalidManifests(t *testing.T) {
	fs := newFixture(t)
	writeFile(t, fs, "/prs/bad.yaml", "number: [")
	writeFile(t, fs, "/prs/zero.yml", "title: no number\n")
	writeFile(t, fs, "/prs/dup.yaml", "number: 12\n")

	req, err := NewManifestScanner(fs).Scan("/prs", nil)
	require.NoError(t, err)
	prs, _ := req.PullRequests(context.Background())
	assert.Len(t, prs, 2)
	assert.Equal(t, 4, req.Skipped())

	s := NewManifestScanner(fs)
	s.SetStrict(true)
	_, err = s.Scan("/prs", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidManifest))
}

func TestScanRejectsMissingOrFilePath(t *testing.T) {
	fs := newFixture(t)

	_, err := NewManifestScanner(fs).Scan("/missing", nil)
	assert.Error(t, err)

	_, err = NewManifestScanner(fs).Scan("/prs/12.yaml", nil)
	assert.Error(t, err)
}

func TestManifestRequestWithTrait(t *testing.T) {
	fs := newFixture(t)
	var out bytes.Buffer
	req, err := NewManifestScanner(fs).Scan("/prs", &out)
	require.NoError(t, err)

	tr, err := trait.New(trait.Config{Inclusion: `internal/.*`})
	require.NoError(t, err)
	hf := tr.HeadFilter()

	excluded, err := hf.IsExcluded(context.Background(), req, models.PullRequestHead{Number: 7})
	require.NoError(t, err)
	assert.False(t, excluded)
	assert.Equal(t, "\n    Will Build PR #7. Found matching (previous) file : internal/parse.go\n", out.String())

	excluded, err = hf.IsExcluded(context.Background(), req, models.PullRequestHead{Number: 12})
	require.NoError(t, err)
	assert.True(t, excluded)
}
