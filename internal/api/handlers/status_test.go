package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloo-solutions/docvault/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockVaultService struct {
	mock.Mock
}

func (m *MockVaultService) Status(ctx context.Context) (*service.Status, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Status), args.Error(1)
}

func (m *MockVaultService) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestStatusReportsStoreContents(t *testing.T) {
	svc := new(MockVaultService)
	svc.On("Status", mock.Anything).Return(&service.Status{
		TotalPassages:  5,
		DocumentTitles: []string{"a.pdf", "b.pdf"},
	}, nil)

	h := NewStatusHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	h.Status(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.TotalPassageCount)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, resp.DistinctDocumentTitles)
}

func TestStatusStoreError(t *testing.T) {
	svc := new(MockVaultService)
	svc.On("Status", mock.Anything).Return(nil, assert.AnError)

	h := NewStatusHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	h.Status(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestResetReturnsConfirmation(t *testing.T) {
	svc := new(MockVaultService)
	svc.On("Reset", mock.Anything).Return(nil)

	h := NewStatusHandler(svc)
	req := httptest.NewRequest(http.MethodDelete, "/api/reset", nil)
	w := httptest.NewRecorder()
	h.Reset(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cleared")
	svc.AssertExpectations(t)
}

func TestResetStoreError(t *testing.T) {
	svc := new(MockVaultService)
	svc.On("Reset", mock.Anything).Return(assert.AnError)

	h := NewStatusHandler(svc)
	req := httptest.NewRequest(http.MethodDelete, "/api/reset", nil)
	w := httptest.NewRecorder()
	h.Reset(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
