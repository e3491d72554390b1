package service

import (
	"context"
	"fmt"
	"strings"
)

// GenerationClient defines the interface for answer generation
type GenerationClient interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Reference points a reader back to the passage that grounded an answer.
type Reference struct {
	Source string
	Text   string
}

// Answer is a synthesized answer plus the full set of passages that were in
// context, whether or not the model chose to cite them.
type Answer struct {
	Text       string
	References []Reference
}

// citationInstruction is the grounding contract for the generation model.
// The [Fonte: <title>] tag is consumed verbatim by the UI; its form must not
// change.
const citationInstruction = `You are an audit assistant that answers questions strictly from the supplied document excerpts.

Rules:
1. Use only the information in the CONTEXT section below. Never use outside knowledge.
2. Every factual sentence of your answer must end with a citation in the exact literal form [Fonte: <title>], where <title> is the exact title of the excerpt supporting that sentence.
3. If the context does not contain the information needed to answer, state explicitly that the information is not present in the supplied documents. Never invent an answer.`

// Synthesizer builds grounded prompts and invokes the generation provider.
type Synthesizer struct {
	client GenerationClient
}

// NewSynthesizer creates a new Synthesizer instance.
func NewSynthesizer(client GenerationClient) *Synthesizer {
	return &Synthesizer{client: client}
}

// Answer generates a citation-annotated answer to the question from the
// selected passages.
func (s *Synthesizer) Answer(ctx context.Context, question string, matches []ScoredPassage) (*Answer, error) {
	prompt := buildPrompt(question, matches)

	text, err := s.client.Generate(ctx, citationInstruction, prompt)
	if err != nil {
		return nil, err
	}

	references := make([]Reference, 0, len(matches))
	for _, m := range matches {
		references = append(references, Reference{
			Source: m.Passage.Title,
			Text:   m.Passage.Text,
		})
	}

	return &Answer{Text: text, References: references}, nil
}

func buildPrompt(question string, matches []ScoredPassage) string {
	var sb strings.Builder

	sb.WriteString("CONTEXT:\n\n")
	for _, m := range matches {
		fmt.Fprintf(&sb, "Fonte: %s\n%s\n\n---\n\n", m.Passage.Title, m.Passage.Text)
	}

	sb.WriteString("QUESTION: ")
	sb.WriteString(question)

	return sb.String()
}
