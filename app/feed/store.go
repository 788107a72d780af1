package feed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Write persists a snapshot as pretty-printed JSON, creating the
// destination directory when absent and replacing any existing file.
func Write(path string, file File) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode feed: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}

	return nil
}

// Load reads a previously persisted snapshot. An error is returned when
// the file is missing, malformed, or lacks an items sequence.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	if file.Items == nil {
		return nil, fmt.Errorf("feed file %s has no items sequence", path)
	}

	return &file, nil
}

// WriteRSS persists an RSS rendition, creating the destination directory
// when absent.
func WriteRSS(path string, document string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(document), 0644); err != nil {
		return fmt.Errorf("failed to write rss: %w", err)
	}

	return nil
}
