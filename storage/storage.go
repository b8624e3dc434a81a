// Package storage provides the persistence primitive the reporter delegates
// to: write a structured value as JSON to a path, creating parent directories
// as needed.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Writer persists a structured value as JSON at the given path
type Writer interface {
	WriteJSON(path string, value any) error
}

// FileWriter writes JSON reports to the local filesystem. The write goes
// through a temp file in the destination directory followed by a rename, so
// a crashed or failed write never leaves a truncated report behind.
type FileWriter struct{}

var _ Writer = FileWriter{}

// NewFileWriter creates the default filesystem writer
func NewFileWriter() FileWriter {
	return FileWriter{}
}

// WriteJSON marshals value with indentation and writes it to path
func (FileWriter) WriteJSON(path string, value any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close report file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move report into place: %w", err)
	}
	return nil
}
