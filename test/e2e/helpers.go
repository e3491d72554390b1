//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cloo-solutions/docvault/internal/api/handlers"
	"github.com/cloo-solutions/docvault/internal/jobs"
	"github.com/cloo-solutions/docvault/internal/server"
	"github.com/cloo-solutions/docvault/internal/service"
	"github.com/cloo-solutions/docvault/internal/store"
)

// topicVocab spans the subjects used by the test documents. Embeddings are
// bag-of-words projections onto it, so texts sharing words score high cosine
// similarity and unrelated texts score zero.
var topicVocab = []string{
	"remote", "work", "policy", "office", "vacation",
	"revenue", "growth", "quarter", "profit", "budget",
}

// fakeEmbedder embeds text deterministically without a provider.
type fakeEmbedder struct{}

func (fakeEmbedder) embed(text string) []float32 {
	lower := strings.ToLower(text)
	vec := make([]float32, len(topicVocab))
	for i, word := range topicVocab {
		if strings.Contains(lower, word) {
			vec[i] = 1
		}
	}
	return vec
}

func (f fakeEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return f.embed(text), nil
}

func (f fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return f.embed(text), nil
}

// fakeGenerator answers with the context it was handed, citing the first
// passage title it finds in the prompt.
type fakeGenerator struct{}

func (fakeGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	for _, line := range strings.Split(prompt, "\n") {
		if title, ok := strings.CutPrefix(line, "Fonte: "); ok {
			return fmt.Sprintf("Answer based on the documents [Fonte: %s]", title), nil
		}
	}
	return "Answer based on the documents", nil
}

// fakeParagraphExtractor treats the uploaded bytes as plain text paragraphs,
// keeping the real splitting semantics without needing well-formed PDFs.
type fakeParagraphExtractor struct{}

func (fakeParagraphExtractor) Paragraphs(data []byte) ([]string, error) {
	var paragraphs []string
	for _, block := range strings.Split(string(data), "\n\n") {
		trimmed := strings.TrimSpace(block)
		if len(trimmed) > 50 {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs, nil
}

// TestEnv wires the full HTTP stack against a temp-dir store and fake
// providers.
type TestEnv struct {
	T          *testing.T
	Server     *httptest.Server
	Runner     *jobs.Runner
	Store      *store.FileStore
	UploadDir  string
	HTTPClient *http.Client
}

func SetupEnv(t *testing.T) *TestEnv {
	t.Helper()

	dataDir := t.TempDir()
	uploadDir := t.TempDir()

	fileStore := store.NewFileStore(filepath.Join(dataDir, "vault.json"))
	embedder := fakeEmbedder{}

	ingestion := service.NewIngestionService(fileStore, fakeParagraphExtractor{}, embedder, time.Millisecond)
	query := service.NewQueryService(fileStore, embedder, service.NewSynthesizer(fakeGenerator{}), 0.65, 4)
	status := service.NewStatusService(fileStore)

	runner := jobs.NewRunner(ingestion, 16)
	go runner.Start(context.Background())

	router := server.NewRouter(server.RouterConfig{
		UploadHandler: handlers.NewUploadHandler(runner, uploadDir),
		ChatHandler:   handlers.NewChatHandler(query),
		StatusHandler: handlers.NewStatusHandler(status),
	})

	srv := httptest.NewServer(router)

	env := &TestEnv{
		T:          t,
		Server:     srv,
		Runner:     runner,
		Store:      fileStore,
		UploadDir:  uploadDir,
		HTTPClient: srv.Client(),
	}

	t.Cleanup(func() {
		srv.Close()
		runner.Stop()
	})

	return env
}

// UploadPDF posts content as a multipart PDF upload and returns the response.
func (e *TestEnv) UploadPDF(filename string, content []byte) *http.Response {
	e.T.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("document", filename)
	if err != nil {
		e.T.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		e.T.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		e.T.Fatalf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, e.Server.URL+"/api/upload-pdf", &body)
	if err != nil {
		e.T.Fatalf("failed to build upload request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		e.T.Fatalf("upload request failed: %v", err)
	}
	return resp
}

// Chat posts a question and decodes the response body into out.
func (e *TestEnv) Chat(question string, out interface{}) *http.Response {
	e.T.Helper()

	payload, err := json.Marshal(map[string]string{"message": question})
	if err != nil {
		e.T.Fatalf("failed to marshal chat request: %v", err)
	}

	resp, err := e.HTTPClient.Post(e.Server.URL+"/api/chat", "application/json", bytes.NewReader(payload))
	if err != nil {
		e.T.Fatalf("chat request failed: %v", err)
	}

	if out != nil {
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			e.T.Fatalf("failed to read chat response: %v", err)
		}
		if err := json.Unmarshal(data, out); err != nil {
			e.T.Fatalf("failed to decode chat response %q: %v", data, err)
		}
	}
	return resp
}

// Status fetches /api/status and decodes it.
func (e *TestEnv) Status() (int, []string) {
	e.T.Helper()

	resp, err := e.HTTPClient.Get(e.Server.URL + "/api/status")
	if err != nil {
		e.T.Fatalf("status request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.T.Fatalf("status returned %d", resp.StatusCode)
	}

	var body struct {
		TotalPassageCount      int      `json:"total_passage_count"`
		DistinctDocumentTitles []string `json:"distinct_document_titles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		e.T.Fatalf("failed to decode status response: %v", err)
	}
	return body.TotalPassageCount, body.DistinctDocumentTitles
}

// Reset calls DELETE /api/reset.
func (e *TestEnv) Reset() *http.Response {
	e.T.Helper()

	req, err := http.NewRequest(http.MethodDelete, e.Server.URL+"/api/reset", nil)
	if err != nil {
		e.T.Fatalf("failed to build reset request: %v", err)
	}
	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		e.T.Fatalf("reset request failed: %v", err)
	}
	return resp
}

// WaitForPassages polls the status endpoint until the store holds at least
// want passages.
func (e *TestEnv) WaitForPassages(want int, timeout time.Duration) {
	e.T.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		count, _ := e.Status()
		if count >= want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	e.T.Fatalf("store did not reach %d passages within %v", want, timeout)
}
