package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloo-solutions/docvault/internal/domain"
)

func testPassage(id int64, title string) domain.Passage {
	return domain.Passage{
		ID:     id,
		Title:  title,
		Text:   strings.Repeat("text ", 20),
		Vector: []float32{0.1, 0.2, 0.3},
	}
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "vault.json"))
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	passages, err := s.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, passages)
}

func TestFileStore_ReplaceAndLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := []domain.Passage{
		testPassage(1, "a.pdf (Part 1)"),
		testPassage(2, "a.pdf (Part 2)"),
	}

	require.NoError(t, s.Replace(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestFileStore_ReplaceOverwritesWholeCollection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Replace(ctx, []domain.Passage{testPassage(1, "a.pdf (Part 1)")}))
	require.NoError(t, s.Replace(ctx, []domain.Passage{testPassage(2, "b.pdf (Part 1)")}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b.pdf (Part 1)", got[0].Title)
}

func TestFileStore_ResetIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// reset before anything was ever stored
	require.NoError(t, s.Reset(ctx))

	require.NoError(t, s.Replace(ctx, []domain.Passage{testPassage(1, "a.pdf (Part 1)")}))
	require.NoError(t, s.Reset(ctx))
	require.NoError(t, s.Reset(ctx))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFileStore_FileIsHumanReadableJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	s := NewFileStore(path)

	require.NoError(t, s.Replace(context.Background(), []domain.Passage{testPassage(7, "a.pdf (Part 1)")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "a.pdf (Part 1)", decoded[0]["title"])
	assert.Contains(t, string(data), "\n  ")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	s := NewFileStore(path)
	_, err := s.Load(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
