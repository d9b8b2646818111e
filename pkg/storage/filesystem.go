package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage persists raw spreadsheet uploads on disk under a base
// directory. Each upload kind ("routine", "tif") keeps at most one file,
// named <kind><ext>; saving a new file replaces the previous one even when
// the extension differs.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// SaveUpload streams the upload to disk and returns the stored key
// (file name relative to the base dir).
func (s *LocalStorage) SaveUpload(kind, originalName string, r io.Reader) (string, error) {
	if err := s.DeleteUpload(kind); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".xlsx"
	}
	key := kind + ext

	file, err := os.Create(filepath.Join(s.baseDir, key))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write upload stream: %w", err)
	}
	return key, nil
}

// FindUpload returns the stored key for a kind, or "" when nothing is stored.
func (s *LocalStorage) FindUpload(kind string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(s.baseDir, kind+".*"))
	if err != nil {
		return "", fmt.Errorf("scan uploads: %w", err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	return filepath.Base(matches[0]), nil
}

// OpenUpload returns a read-only handle for the stored file of a kind.
func (s *LocalStorage) OpenUpload(kind string) (*os.File, string, error) {
	key, err := s.FindUpload(kind)
	if err != nil {
		return nil, "", err
	}
	if key == "" {
		return nil, "", fmt.Errorf("no %s upload stored", kind)
	}
	file, err := os.Open(filepath.Join(s.baseDir, key))
	if err != nil {
		return nil, "", fmt.Errorf("open upload file: %w", err)
	}
	return file, key, nil
}

// DeleteUpload removes any stored file for the kind.
func (s *LocalStorage) DeleteUpload(kind string) error {
	matches, err := filepath.Glob(filepath.Join(s.baseDir, kind+".*"))
	if err != nil {
		return fmt.Errorf("scan uploads: %w", err)
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete upload file: %w", err)
		}
	}
	return nil
}
