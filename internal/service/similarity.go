package service

import (
	"math"
	"sort"

	"github.com/cloo-solutions/docvault/internal/domain"
)

// Default retrieval knobs. Both are externally configurable; these values
// only apply when the caller does not override them.
const (
	DefaultRelevanceCutoff = 0.65
	DefaultTopK            = 4
)

// ScoredPassage pairs a stored passage with its similarity to a query.
type ScoredPassage struct {
	Passage domain.Passage
	Score   float64
}

// Cosine computes cosine similarity between two vectors. A zero-norm vector
// on either side yields 0; the function never divides by zero.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// RankPassages scores every passage against the query vector, keeps those at
// or above the cutoff, sorts descending by similarity with ties broken by
// storage order, and returns at most topK results.
func RankPassages(query []float32, passages []domain.Passage, cutoff float64, topK int) []ScoredPassage {
	if topK <= 0 {
		topK = DefaultTopK
	}

	scored := make([]ScoredPassage, 0, len(passages))
	for _, p := range passages {
		score := Cosine(query, p.Vector)
		if score >= cutoff {
			scored = append(scored, ScoredPassage{Passage: p, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	return scored
}
