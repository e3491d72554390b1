package domain

import (
	"fmt"
	"strings"
)

// MinPassageChars is the minimum length of a paragraph for it to be stored;
// shorter fragments are discarded as extraction noise.
const MinPassageChars = 50

// partMarker separates the document name from the passage index in a title.
const partMarker = " (Part"

// Passage is a single embedded chunk of a source document.
type Passage struct {
	ID     int64     `json:"id"`
	Title  string    `json:"title"`
	Text   string    `json:"text"`
	Vector []float32 `json:"vector"`
}

// PassageTitle builds the unique title for paragraph index (0-based) of the
// named document. Titles act as the idempotency key for re-ingestion.
func PassageTitle(documentName string, index int) string {
	return fmt.Sprintf("%s (Part %d)", documentName, index+1)
}

// DocumentName returns the original document name a passage title belongs to.
func DocumentName(title string) string {
	if i := strings.Index(title, partMarker); i >= 0 {
		return title[:i]
	}
	return title
}

// ValidatePassage validates a Passage instance.
func ValidatePassage(p *Passage) error {
	if p == nil {
		return fmt.Errorf("passage cannot be nil")
	}

	if p.Title == "" {
		return fmt.Errorf("passage Title is required")
	}

	if len(strings.TrimSpace(p.Text)) <= MinPassageChars {
		return fmt.Errorf("passage Text must be longer than %d characters", MinPassageChars)
	}

	if len(p.Vector) == 0 {
		return fmt.Errorf("passage Vector is required")
	}

	return nil
}

// DistinctDocuments returns the distinct document names across the given
// passages, in first-seen storage order.
func DistinctDocuments(passages []Passage) []string {
	seen := make(map[string]bool, len(passages))
	names := make([]string, 0, len(passages))
	for _, p := range passages {
		name := DocumentName(p.Title)
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
