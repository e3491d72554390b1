package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloo-solutions/docvault/internal/domain"
	"github.com/cloo-solutions/docvault/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Ask(ctx context.Context, question string) (*service.QueryOutput, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QueryOutput), args.Error(1)
}

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Chat(w, req)
	return w
}

func TestChatReturnsAnswerWithReferences(t *testing.T) {
	svc := new(MockChatService)
	svc.On("Ask", mock.Anything, "Can I work remotely?").Return(&service.QueryOutput{
		Answer: "Yes [Fonte: handbook.pdf (Part 1)]",
		References: []service.Reference{
			{Source: "handbook.pdf (Part 1)", Text: "Remote work is allowed."},
		},
	}, nil)

	h := NewChatHandler(svc)
	w := postChat(t, h, `{"message":"Can I work remotely?"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Yes [Fonte: handbook.pdf (Part 1)]", resp.Answer)
	require.Len(t, resp.References, 1)
	assert.Equal(t, "handbook.pdf (Part 1)", resp.References[0].Source)
}

func TestChatNoEvidenceHasEmptyReferenceArray(t *testing.T) {
	svc := new(MockChatService)
	svc.On("Ask", mock.Anything, mock.Anything).Return(&service.QueryOutput{
		Answer:     service.NoEvidenceMessage,
		References: []service.Reference{},
	}, nil)

	h := NewChatHandler(svc)
	w := postChat(t, h, `{"message":"Unrelated question"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	// references must serialize as [] rather than null
	assert.Contains(t, w.Body.String(), `"references":[]`)
}

func TestChatInvalidBody(t *testing.T) {
	h := NewChatHandler(new(MockChatService))
	w := postChat(t, h, `{invalid`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatEmptyMessage(t *testing.T) {
	svc := new(MockChatService)
	svc.On("Ask", mock.Anything, "").Return(nil, domain.ErrEmptyQuestion)

	h := NewChatHandler(svc)
	w := postChat(t, h, `{"message":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatEmptyStore(t *testing.T) {
	svc := new(MockChatService)
	svc.On("Ask", mock.Anything, mock.Anything).Return(nil, domain.ErrEmptyStore)

	h := NewChatHandler(svc)
	w := postChat(t, h, `{"message":"anything"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatProviderQuota(t *testing.T) {
	svc := new(MockChatService)
	svc.On("Ask", mock.Anything, mock.Anything).Return(nil, domain.ErrProviderQuota)

	h := NewChatHandler(svc)
	w := postChat(t, h, `{"message":"anything"}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
