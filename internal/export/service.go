package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cheerioskun/prfilter/internal/models"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Service writes decision reports and trait configurations
type Service struct {
	fs afero.Fs
}

// NewService creates a new export service
func NewService(fs afero.Fs) *Service {
	return &Service{
		fs: fs,
	}
}

// WriteOptions contains configuration for write operations
type WriteOptions struct {
	DestinationPath string
	Overwrite       bool
}

// WriteReport writes the report as indented JSON
func (s *Service) WriteReport(report *models.DecisionReport, opts WriteOptions) error {
	if report == nil {
		return fmt.Errorf("invalid report")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	return s.write(data, opts)
}

// WriteConfig writes v as YAML, typically a trait configuration
func (s *Service) WriteConfig(v interface{}, opts WriteOptions) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	return s.write(data, opts)
}

func (s *Service) write(data []byte, opts WriteOptions) error {
	if err := ValidatePath(opts.DestinationPath); err != nil {
		return err
	}

	destDir := filepath.Dir(opts.DestinationPath)
	if err := s.fs.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", destDir, err)
	}

	if !opts.Overwrite {
		if exists, err := afero.Exists(s.fs, opts.DestinationPath); err != nil {
			return fmt.Errorf("failed to check if destination exists: %w", err)
		} else if exists {
			return fmt.Errorf("destination file exists and overwrite is disabled: %s", opts.DestinationPath)
		}
	}

	if err := afero.WriteFile(s.fs, opts.DestinationPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.DestinationPath, err)
	}

	return nil
}

// ValidatePath performs basic validation on a destination path
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("destination path cannot be empty")
	}
	if strings.HasSuffix(path, "/") {
		return fmt.Errorf("destination path must name a file: %s", path)
	}
	return nil
}
