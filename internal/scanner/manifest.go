package scanner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cheerioskun/prfilter/internal/models"
	"github.com/cheerioskun/prfilter/internal/utils"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrInvalidManifest indicates a manifest that cannot describe a pull request
var ErrInvalidManifest = errors.New("invalid manifest")

// ManifestScanner discovers pull request manifests in a directory
type ManifestScanner struct {
	fs       afero.Fs
	maxDepth int
	strict   bool
	exts     map[string]bool
}

// NewManifestScanner creates a new ManifestScanner with the given filesystem
func NewManifestScanner(fs afero.Fs) *ManifestScanner {
	return &ManifestScanner{
		fs:       fs,
		maxDepth: 10, // Default max depth
		exts: map[string]bool{
			".json": true,
			".yaml": true,
			".yml":  true,
		},
	}
}

// SetMaxDepth sets the maximum scanning depth
func (ms *ManifestScanner) SetMaxDepth(depth int) {
	ms.maxDepth = depth
}

// SetStrict makes an invalid manifest fail the whole scan instead of being skipped
func (ms *ManifestScanner) SetStrict(strict bool) {
	ms.strict = strict
}

// Scan walks path and returns a request over every pull request found
func (ms *ManifestScanner) Scan(path string, listener io.Writer) (*ManifestRequest, error) {
	info, err := ms.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path %s: %w", path, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path %s is not a directory", path)
	}

	req := NewManifestRequest(path, listener)

	if err := ms.scanDirectory(path, "", 0, req); err != nil {
		return nil, fmt.Errorf("failed to scan manifests: %w", err)
	}

	sort.Slice(req.pullRequests, func(i, j int) bool {
		return req.pullRequests[i].Number < req.pullRequests[j].Number
	})

	return req, nil
}

// scanDirectory recursively scans a directory and adds pull requests to the request
func (ms *ManifestScanner) scanDirectory(basePath, relativePath string, depth int, req *ManifestRequest) error {
	if depth > ms.maxDepth {
		return nil
	}

	currentPath := filepath.Join(basePath, relativePath)

	entries, err := afero.ReadDir(ms.fs, currentPath)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", currentPath, err)
	}

	for _, entry := range entries {
		entryRelPath := filepath.Join(relativePath, entry.Name())

		if entry.IsDir() {
			if err := ms.scanDirectory(basePath, entryRelPath, depth+1, req); err != nil {
				if ms.strict {
					return err
				}
				utils.Warning("failed to scan directory %s: %v", entryRelPath, err)
			}
			continue
		}

		if !ms.isManifest(entry.Name()) {
			req.skipped++
			continue
		}

		pr, err := ms.loadManifest(filepath.Join(basePath, entryRelPath))
		if err == nil {
			pr.Source = entryRelPath
			err = req.add(pr)
		}
		if err != nil {
			if ms.strict {
				return fmt.Errorf("%s: %w", entryRelPath, err)
			}
			utils.Warning("skipping manifest %s: %v", entryRelPath, err)
			req.skipped++
		}
	}

	return nil
}

func (ms *ManifestScanner) isManifest(name string) bool {
	return ms.exts[strings.ToLower(filepath.Ext(name))]
}

// loadManifest parses one manifest. JSON is valid YAML, so one decoder serves both.
func (ms *ManifestScanner) loadManifest(path string) (*models.PullRequest, error) {
	data, err := afero.ReadFile(ms.fs, path)
	if err != nil {
		return nil, err
	}

	var pr models.PullRequest
	if err := yaml.Unmarshal(data, &pr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	if pr.Number <= 0 {
		return nil, fmt.Errorf("%w: pull request number must be positive, got %d", ErrInvalidManifest, pr.Number)
	}

	return &pr, nil
}

// ManifestRequest is a discovery pass over pull requests loaded from manifests
type ManifestRequest struct {
	path         string
	listener     io.Writer
	pullRequests []*models.PullRequest
	byNumber     map[int]*models.PullRequest
	skipped      int
}

// NewManifestRequest creates an empty request rooted at path
func NewManifestRequest(path string, listener io.Writer) *ManifestRequest {
	if listener == nil {
		listener = io.Discard
	}
	return &ManifestRequest{
		path:         path,
		listener:     listener,
		pullRequests: make([]*models.PullRequest, 0),
		byNumber:     make(map[int]*models.PullRequest),
	}
}

func (r *ManifestRequest) add(pr *models.PullRequest) error {
	if prev, ok := r.byNumber[pr.Number]; ok {
		return fmt.Errorf("%w: PR %s already defined in %s", ErrInvalidManifest, pr.Ref(), prev.Source)
	}
	r.byNumber[pr.Number] = pr
	r.pullRequests = append(r.pullRequests, pr)
	return nil
}

// Path returns the scanned directory
func (r *ManifestRequest) Path() string {
	return r.path
}

// Skipped returns how many files were not loaded as manifests
func (r *ManifestRequest) Skipped() int {
	return r.skipped
}

// Listener implements trait.Request
func (r *ManifestRequest) Listener() io.Writer {
	return r.listener
}

// PullRequests implements trait.PullRequestLister
func (r *ManifestRequest) PullRequests(ctx context.Context) ([]*models.PullRequest, error) {
	return r.pullRequests, nil
}

// ListFiles implements trait.PullRequestLister
func (r *ManifestRequest) ListFiles(ctx context.Context, number int) ([]models.ChangedFile, error) {
	pr, ok := r.byNumber[number]
	if !ok {
		return nil, fmt.Errorf("pull request #%d not found in %s", number, r.path)
	}
	return pr.Files, nil
}

// Heads returns the pull request heads in number order
func (r *ManifestRequest) Heads() []models.Head {
	heads := make([]models.Head, 0, len(r.pullRequests))
	for _, pr := range r.pullRequests {
		heads = append(heads, pr.Head())
	}
	return heads
}
