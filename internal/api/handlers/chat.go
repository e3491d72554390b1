package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cloo-solutions/docvault/internal/api"
	"github.com/cloo-solutions/docvault/internal/service"
)

type ChatService interface {
	Ask(ctx context.Context, question string) (*service.QueryOutput, error)
}

type ChatHandler struct {
	svc ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ReferenceResponse struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

type ChatResponse struct {
	Answer     string              `json:"answer"`
	References []ReferenceResponse `json:"references"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.svc.Ask(r.Context(), req.Message)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	references := make([]ReferenceResponse, 0, len(out.References))
	for _, ref := range out.References {
		references = append(references, ReferenceResponse{
			Source: ref.Source,
			Text:   ref.Text,
		})
	}

	api.JSON(w, http.StatusOK, ChatResponse{
		Answer:     out.Answer,
		References: references,
	})
}
