// Package store persists the passage collection in a single flat JSON file.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cloo-solutions/docvault/internal/domain"
)

// FileStore is a file-backed vector store. Passages are only ever read as a
// whole snapshot and written back as a whole collection; the mutex enforces
// the single-writer discipline across ingestion and reset.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a FileStore persisting to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns a snapshot of every stored passage. A missing file is an
// empty store, not an error.
func (s *FileStore) Load(ctx context.Context) ([]domain.Passage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Passage{}, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	var passages []domain.Passage
	if err := json.Unmarshal(data, &passages); err != nil {
		return nil, fmt.Errorf("failed to decode store file: %w", err)
	}
	if passages == nil {
		passages = []domain.Passage{}
	}

	return passages, nil
}

// Replace atomically writes the full collection, replacing whatever was
// stored before. The file is written human-readable so it can be inspected
// and re-loaded in full.
func (s *FileStore) Replace(ctx context.Context, passages []domain.Passage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if passages == nil {
		passages = []domain.Passage{}
	}

	data, err := json.MarshalIndent(passages, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".vault-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close store file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	return nil
}

// Reset clears every stored passage. Resetting an already-empty store is a
// no-op success.
func (s *FileStore) Reset(ctx context.Context) error {
	return s.Replace(ctx, []domain.Passage{})
}

// Count returns the number of stored passages.
func (s *FileStore) Count(ctx context.Context) (int, error) {
	passages, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(passages), nil
}
