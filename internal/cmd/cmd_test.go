package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cheerioskun/prfilter/internal/models"
	"github.com/cheerioskun/prfilter/internal/scanner"
	"github.com/cheerioskun/prfilter/internal/trait"
)

func setPatterns(t *testing.T, inclusion, exclusion string) {
	t.Helper()
	viper.Set("inclusion", inclusion)
	viper.Set("exclusion", exclusion)
	t.Cleanup(viper.Reset)
}

func manifestRequest(t *testing.T) *scanner.ManifestRequest {
	t.Helper()
	fs := afero.NewMemMapFs()
	manifests := map[string]string{
		"/prs/1.yaml": "number: 1\nfiles:\n  - filename: docs/index.md\n",
		"/prs/2.yaml": "number: 2\nfiles:\n  - filename: README.md\n  - filename: src/main.go\n",
		"/prs/3.yaml": "number: 3\nfiles:\n  - filename: src/new.go\n    previous_filename: lib/old.go\n",
		"/prs/4.yaml": "number: 4\nfiles: []\n",
	}
	for path, content := range manifests {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}

	req, err := scanner.NewManifestScanner(fs).Scan("/prs", nil)
	require.NoError(t, err)
	return req
}

func TestEvaluateHeads(t *testing.T) {
	req := manifestRequest(t)
	tr, err := trait.New(trait.Config{Inclusion: `(src|lib)/.*`, Exclusion: `src/new\.go`})
	require.NoError(t, err)

	heads := append([]models.Head{models.Branch{BranchName: "main"}}, req.Heads()...)
	report := evaluateHeads(context.Background(), tr, req, heads, 3)

	require.Len(t, report.Decisions, 5)
	assert.Equal(t, []string{"main", "PR-2", "PR-3"}, report.IncludedHeads())
	assert.Equal(t, 3, report.Included)
	assert.Equal(t, 2, report.Excluded)
	assert.Zero(t, report.Failed)

	assert.Equal(t, "\n    Will Build PR #2. Found matching file : src/main.go\n", report.Decisions[2].Output)
	assert.Equal(t, "\n    Will Build PR #3. Found matching (previous) file : lib/old.go\n", report.Decisions[3].Output)
	assert.True(t, report.Decisions[4].Excluded, "pull request without files")

	var out bytes.Buffer
	printReport(&out, report)
	assert.Contains(t, out.String(), "PR-1         skip")
	assert.Contains(t, out.String(), "3 to build, 2 skipped, 0 failed")
}

type failingLister struct{}

func (failingLister) Listener() io.Writer { return io.Discard }

func (failingLister) PullRequests(ctx context.Context) ([]*models.PullRequest, error) {
	return nil, errors.New("rate limited")
}

func (failingLister) ListFiles(ctx context.Context, number int) ([]models.ChangedFile, error) {
	return nil, nil
}

func TestEvaluateHeadsRecordsErrors(t *testing.T) {
	tr, err := trait.New(trait.Config{Inclusion: `src/.*`})
	require.NoError(t, err)

	report := evaluateHeads(context.Background(), tr, failingLister{}, []models.Head{models.PullRequestHead{Number: 1}}, 0)

	require.Len(t, report.Decisions, 1)
	assert.Equal(t, 1, report.Failed)
	assert.Contains(t, report.Decisions[0].Error, "rate limited")
	assert.Empty(t, report.IncludedHeads())
}

func TestBuildTraitRejectsBlockingValidation(t *testing.T) {
	_, err := buildTrait(trait.Config{Inclusion: "  "})
	assert.ErrorContains(t, err, "Cannot have empty or blank regex.")

	_, err = buildTrait(trait.Config{Inclusion: "src/("})
	assert.ErrorContains(t, err, "Invalid Regex : ")

	tr, err := buildTrait(trait.Config{Inclusion: ".*", Exclusion: ".*"})
	require.NoError(t, err)
	assert.NotNil(t, tr)

	tr, err = buildTrait(trait.Config{Inclusion: `\Qsrc/a+b.go`, Exclusion: `\Qdocs/`})
	require.NoError(t, err)
	assert.True(t, tr.Filter().Matches("src/a+b.go"))
}

func TestPrintReportWithoutHeads(t *testing.T) {
	var out bytes.Buffer
	printReport(&out, models.NewDecisionReport(models.FilterCriteria{}))
	assert.Equal(t, "No heads discovered\n", out.String())
}

func TestWriteConfig(t *testing.T) {
	setPatterns(t, `charts/.*`, `charts/.*\.md`)
	fs := afero.NewMemMapFs()

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, writeConfig(cmd, fs, "/repo/.prfilter.yaml", false))
	assert.Contains(t, out.String(), "Configuration saved to: /repo/.prfilter.yaml")

	data, err := afero.ReadFile(fs, "/repo/.prfilter.yaml")
	require.NoError(t, err)
	var cfg trait.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, trait.Config{Inclusion: `charts/.*`, Exclusion: `charts/.*\.md`}, cfg)

	assert.Error(t, writeConfig(cmd, fs, "/repo/.prfilter.yaml", false))
	assert.NoError(t, writeConfig(cmd, fs, "/repo/.prfilter.yaml", true))
}

func TestRunValidate(t *testing.T) {
	setPatterns(t, ".*", "docs/.*")

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runValidate(cmd, nil))
	assert.Contains(t, out.String(), `inclusion Warning ".*": You should remove this trait instead of matching all paths`)
	assert.Contains(t, out.String(), `exclusion OK      "docs/.*"`)

	viper.Set("inclusion", "")
	out.Reset()
	assert.Error(t, runValidate(cmd, nil))
	assert.Contains(t, out.String(), "Cannot have empty or blank regex.")
}
