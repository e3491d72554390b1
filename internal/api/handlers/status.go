package handlers

import (
	"context"
	"net/http"

	"github.com/cloo-solutions/docvault/internal/api"
	"github.com/cloo-solutions/docvault/internal/service"
)

type VaultService interface {
	Status(ctx context.Context) (*service.Status, error)
	Reset(ctx context.Context) error
}

type StatusHandler struct {
	svc VaultService
}

func NewStatusHandler(svc VaultService) *StatusHandler {
	return &StatusHandler{svc: svc}
}

type StatusResponse struct {
	TotalPassageCount      int      `json:"total_passage_count"`
	DistinctDocumentTitles []string `json:"distinct_document_titles"`
}

type ResetResponse struct {
	Message string `json:"message"`
}

func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Status(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, StatusResponse{
		TotalPassageCount:      status.TotalPassages,
		DistinctDocumentTitles: status.DocumentTitles,
	})
}

// Reset clears the whole passage store. Resetting an empty store still
// succeeds.
func (h *StatusHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, ResetResponse{Message: "document store cleared"})
}
