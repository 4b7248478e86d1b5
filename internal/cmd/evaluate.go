package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/cheerioskun/prfilter/internal/export"
	"github.com/cheerioskun/prfilter/internal/github"
	"github.com/cheerioskun/prfilter/internal/models"
	"github.com/cheerioskun/prfilter/internal/scanner"
	"github.com/cheerioskun/prfilter/internal/trait"
	"github.com/cheerioskun/prfilter/internal/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var (
	maxDepth       int
	manifestsDir   string
	useGitHub      bool
	reportPath     string
	overwrite      bool
	strictManifest bool
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run one discovery pass and report which pull requests would be built",
	Long: `Discover open pull requests, list their changed files and decide for
each one whether it is built or skipped.

Pull requests come either from a directory of manifests (one YAML or JSON
file per pull request) or from the GitHub API.

Examples:
  prfilter evaluate --manifests ./prs --inclusion 'src/.*'
  prfilter evaluate --github --github.owner acme --github.repo widgets --exclusion 'docs/.*'
  prfilter evaluate --manifests ./prs --report decisions.json --overwrite`,
	Args: cobra.NoArgs,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	// Evaluate-specific flags
	evaluateCmd.Flags().StringVar(&manifestsDir, "manifests", "", "directory of pull request manifests")
	evaluateCmd.Flags().BoolVar(&useGitHub, "github", false, "discover pull requests through the GitHub API")
	evaluateCmd.Flags().String("github.owner", "", "repository owner")
	evaluateCmd.Flags().String("github.repo", "", "repository name")
	evaluateCmd.Flags().String("github.token", "", "API token (also GITHUB_TOKEN)")
	evaluateCmd.Flags().String("github.base-url", "", "API base URL for GitHub Enterprise")
	evaluateCmd.Flags().Int("concurrency", 4, "pull requests evaluated in parallel")
	evaluateCmd.Flags().IntVar(&maxDepth, "max-depth", 10, "maximum directory depth to scan")
	evaluateCmd.Flags().BoolVar(&strictManifest, "strict", false, "fail on the first invalid manifest")
	evaluateCmd.Flags().StringVar(&reportPath, "report", "", "write a JSON decision report to this file")
	evaluateCmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite an existing report")
	evaluateCmd.MarkFlagsMutuallyExclusive("manifests", "github")

	// Bind flags to viper
	for _, name := range []string{"github.owner", "github.repo", "github.token", "github.base-url", "concurrency"} {
		viper.BindPFlag(name, evaluateCmd.Flags().Lookup(name))
	}
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := loadTraitConfig()
	t, err := buildTrait(cfg)
	if err != nil {
		return err
	}

	req, heads, source, err := discover(ctx)
	if err != nil {
		return err
	}

	report := evaluateHeads(ctx, t, req, heads, viper.GetInt("concurrency"))
	report.Criteria = models.FilterCriteria{Inclusion: cfg.Inclusion, Exclusion: cfg.Exclusion, Source: source}
	report.Finish()

	printReport(cmd.OutOrStdout(), report)

	if reportPath != "" {
		svc := export.NewService(afero.NewOsFs())
		if err := svc.WriteReport(report, export.WriteOptions{DestinationPath: reportPath, Overwrite: overwrite}); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nReport saved to: %s\n", reportPath)
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d heads could not be evaluated", report.Failed, len(report.Decisions))
	}
	return nil
}

// discover builds the request for the selected source and enumerates its heads
func discover(ctx context.Context) (trait.PullRequestLister, []models.Head, string, error) {
	switch {
	case useGitHub:
		client, err := github.NewClient(nil, viper.GetString("github.token"), viper.GetString("github.base-url"))
		if err != nil {
			return nil, nil, "", err
		}
		req, err := github.NewRequest(client, viper.GetString("github.owner"), viper.GetString("github.repo"))
		if err != nil {
			return nil, nil, "", err
		}
		heads, err := req.Heads(ctx)
		if err != nil {
			return nil, nil, "", err
		}
		return req, heads, "github.com/" + req.Repository(), nil

	case manifestsDir != "":
		absPath, err := filepath.Abs(manifestsDir)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to resolve absolute path: %w", err)
		}
		manifestScanner := scanner.NewManifestScanner(afero.NewOsFs())
		manifestScanner.SetMaxDepth(maxDepth)
		manifestScanner.SetStrict(strictManifest)

		req, err := manifestScanner.Scan(absPath, nil)
		if err != nil {
			return nil, nil, "", err
		}
		utils.Debug("loaded %d heads from %s (%d files skipped)", len(req.Heads()), req.Path(), req.Skipped())
		return req, req.Heads(), req.Path(), nil

	default:
		return nil, nil, "", fmt.Errorf("one of --manifests or --github is required")
	}
}

// scopedRequest gives each concurrently evaluated head its own console buffer
type scopedRequest struct {
	trait.PullRequestLister
	out io.Writer
}

func (r scopedRequest) Listener() io.Writer {
	return r.out
}

// evaluateHeads runs the trait over every head with at most concurrency
// heads in flight. Decisions keep the order of heads.
func evaluateHeads(ctx context.Context, t *trait.Trait, req trait.PullRequestLister, heads []models.Head, concurrency int) *models.DecisionReport {
	sc := trait.NewSourceContext(t)
	decisions := make([]models.HeadDecision, len(heads))

	if concurrency < 1 {
		concurrency = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, head := range heads {
		i, head := i, head
		decisions[i] = models.HeadDecision{Head: head.Name(), Category: head.Category()}

		if !t.IncludeCategory(head.Category()) {
			continue
		}

		g.Go(func() error {
			var buf bytes.Buffer
			excluded, err := sc.IsExcluded(gctx, scopedRequest{PullRequestLister: req, out: &buf}, head)
			decisions[i].Output = buf.String()
			if err != nil {
				utils.GetLogger().WithField("head", head.Name()).Errorf("evaluation failed: %v", err)
				decisions[i].Error = err.Error()
				return nil
			}
			decisions[i].Excluded = excluded
			return nil
		})
	}
	g.Wait()

	report := models.NewDecisionReport(models.FilterCriteria{})
	for _, d := range decisions {
		report.AddDecision(d)
	}
	return report
}

func printReport(w io.Writer, report *models.DecisionReport) {
	if report.IsEmpty() {
		fmt.Fprintln(w, "No heads discovered")
		return
	}

	for _, d := range report.Decisions {
		fmt.Fprint(w, d.Output)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Decisions:")
	for _, d := range report.Decisions {
		state := "build"
		switch {
		case d.Error != "":
			state = "error: " + d.Error
		case d.Excluded:
			state = "skip"
		}
		fmt.Fprintf(w, "  %-12s %s\n", d.Head, state)
	}

	fmt.Fprintf(w, "\n%d to build, %d skipped, %d failed\n", report.Included, report.Excluded, report.Failed)
}
