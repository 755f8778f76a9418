package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"car-integration/models"
)

// SummaryWriter stores a run summary as a YAML document.
type SummaryWriter struct {
	path string
}

func NewSummaryWriter(path string) *SummaryWriter {
	return &SummaryWriter{path: path}
}

// Write replaces the summary file at the writer's path.
func (s *SummaryWriter) Write(summary *models.Summary) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("summary: create output dir: %w", err)
	}

	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("summary: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("summary: write %q: %w", s.path, err)
	}
	return nil
}

// ReadSummary loads a summary previously written by SummaryWriter.
func ReadSummary(path string) (*models.Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("summary: read %q: %w", path, err)
	}
	var summary models.Summary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("summary: parse %q: %w", path, err)
	}
	return &summary, nil
}
