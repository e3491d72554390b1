package service

import (
	"context"
	"fmt"

	"github.com/cloo-solutions/docvault/internal/domain"
)

// Status describes the current contents of the passage store.
type Status struct {
	TotalPassages  int
	DocumentTitles []string
}

// StatusService reports on and clears the passage collection.
type StatusService struct {
	store PassageStore
}

// NewStatusService creates a new StatusService instance.
func NewStatusService(store PassageStore) *StatusService {
	return &StatusService{store: store}
}

// Status returns the passage count and distinct source documents.
func (s *StatusService) Status(ctx context.Context) (*Status, error) {
	passages, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading passage store: %w", err)
	}

	return &Status{
		TotalPassages:  len(passages),
		DocumentTitles: domain.DistinctDocuments(passages),
	}, nil
}

// Reset removes every stored passage.
func (s *StatusService) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("resetting passage store: %w", err)
	}
	return nil
}
