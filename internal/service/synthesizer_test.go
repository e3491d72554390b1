package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloo-solutions/docvault/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGenerationClient struct {
	mock.Mock
}

func (m *MockGenerationClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

func TestSynthesizerAnswer(t *testing.T) {
	client := new(MockGenerationClient)
	client.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("The policy allows remote work [Fonte: handbook.pdf (Part 2)]", nil)

	s := NewSynthesizer(client)
	matches := []ScoredPassage{
		{Passage: domain.Passage{ID: 1, Title: "handbook.pdf (Part 2)", Text: "Remote work is allowed."}, Score: 0.9},
		{Passage: domain.Passage{ID: 2, Title: "handbook.pdf (Part 5)", Text: "Office hours are flexible."}, Score: 0.7},
	}

	answer, err := s.Answer(context.Background(), "Can I work remotely?", matches)

	require.NoError(t, err)
	assert.Contains(t, answer.Text, "[Fonte: handbook.pdf (Part 2)]")
	require.Len(t, answer.References, 2)
	assert.Equal(t, "handbook.pdf (Part 2)", answer.References[0].Source)
	assert.Equal(t, "Remote work is allowed.", answer.References[0].Text)
	assert.Equal(t, "handbook.pdf (Part 5)", answer.References[1].Source)
	client.AssertExpectations(t)
}

func TestSynthesizerPromptContainsPassagesAndQuestion(t *testing.T) {
	client := new(MockGenerationClient)
	var capturedSystem, capturedPrompt string
	client.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedSystem = args.String(1)
			capturedPrompt = args.String(2)
		}).
		Return("answer", nil)

	s := NewSynthesizer(client)
	matches := []ScoredPassage{
		{Passage: domain.Passage{Title: "report.pdf (Part 1)", Text: "Revenue grew 12%."}, Score: 0.8},
	}

	_, err := s.Answer(context.Background(), "How did revenue change?", matches)

	require.NoError(t, err)
	assert.Contains(t, capturedSystem, "[Fonte: <title>]")
	assert.Contains(t, capturedPrompt, "Fonte: report.pdf (Part 1)")
	assert.Contains(t, capturedPrompt, "Revenue grew 12%.")
	assert.True(t, strings.HasSuffix(capturedPrompt, "How did revenue change?"))
}

func TestSynthesizerPropagatesGenerationError(t *testing.T) {
	client := new(MockGenerationClient)
	client.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("", domain.ErrProviderQuota)

	s := NewSynthesizer(client)

	_, err := s.Answer(context.Background(), "question", nil)

	assert.ErrorIs(t, err, domain.ErrProviderQuota)
}

func TestSynthesizerGenericError(t *testing.T) {
	client := new(MockGenerationClient)
	client.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("connection reset"))

	s := NewSynthesizer(client)

	answer, err := s.Answer(context.Background(), "question", nil)

	assert.Error(t, err)
	assert.Nil(t, answer)
}
