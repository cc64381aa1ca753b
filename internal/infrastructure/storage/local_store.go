package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LocalDocumentStore writes invoice documents to a directory on disk.
// Default for single-machine deployments and tests.
type LocalDocumentStore struct {
	dir string
}

// NewLocalDocumentStore creates a local store rooted at dir
func NewLocalDocumentStore(dir string) (*LocalDocumentStore, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalDocumentStore{dir: dir}, nil
}

// Store writes the document and returns its file path
func (s *LocalDocumentStore) Store(_ context.Context, key string, data []byte, _ string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	path := filepath.Join(s.dir, filepath.Clean(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create document directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return path, nil
}
