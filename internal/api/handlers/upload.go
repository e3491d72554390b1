package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cloo-solutions/docvault/internal/api"
	"github.com/cloo-solutions/docvault/internal/jobs"
)

// parseMemoryLimit caps how much of the multipart body is buffered in memory.
const parseMemoryLimit = 10 << 20

type TaskQueue interface {
	Enqueue(task jobs.IngestTask) bool
}

type UploadHandler struct {
	queue     TaskQueue
	uploadDir string
}

func NewUploadHandler(queue TaskQueue, uploadDir string) *UploadHandler {
	return &UploadHandler{queue: queue, uploadDir: uploadDir}
}

type UploadResponse struct {
	Message string `json:"message"`
}

// Upload accepts a PDF in the multipart field "document", stages it on disk
// and queues it for background ingestion. The response is sent before any
// embedding work happens.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(parseMemoryLimit); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		api.Error(w, http.StatusBadRequest, "document file is required")
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		api.Error(w, http.StatusBadRequest, "only PDF files are accepted")
		return
	}

	staged, err := h.stage(file)
	if err != nil {
		log.Printf("staging upload %q: %v", name, err)
		api.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !h.queue.Enqueue(jobs.IngestTask{DocumentName: name, Path: staged}) {
		if err := os.Remove(staged); err != nil {
			log.Printf("removing staged file %s: %v", staged, err)
		}
		api.Error(w, http.StatusServiceUnavailable, "ingestion queue is full, try again later")
		return
	}

	api.JSON(w, http.StatusAccepted, UploadResponse{
		Message: fmt.Sprintf("%s received and queued for processing", name),
	})
}

func (h *UploadHandler) stage(file io.Reader) (string, error) {
	path := filepath.Join(h.uploadDir, fmt.Sprintf("docvault-%s.pdf", uuid.NewString()))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating staged file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("writing staged file: %w", err)
	}
	return path, nil
}
