package jobs

import (
	"context"
	"log"
	"os"
)

// IngestTask is a staged document waiting to be embedded. Path points at the
// staged copy of the upload, which the runner removes once the task finishes.
type IngestTask struct {
	DocumentName string
	Path         string
}

// Ingestor defines the interface for processing staged documents
type Ingestor interface {
	IngestFile(ctx context.Context, documentName, path string) error
}

// Runner executes ingestion tasks one at a time on a background goroutine.
// Serializing tasks through a single worker keeps concurrent uploads from
// overwriting each other's store writes.
type Runner struct {
	ingestor Ingestor
	tasks    chan IngestTask
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewRunner creates a new Runner instance with the given queue capacity.
func NewRunner(ingestor Ingestor, queueSize int) *Runner {
	return &Runner{
		ingestor: ingestor,
		tasks:    make(chan IngestTask, queueSize),
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Enqueue submits a task without blocking. It reports false when the queue is
// full, in which case the caller keeps ownership of the staged file.
func (r *Runner) Enqueue(task IngestTask) bool {
	select {
	case r.tasks <- task:
		return true
	default:
		log.Printf("ingestion queue full, rejecting %q", task.DocumentName)
		return false
	}
}

// Start begins the runner's task loop
func (r *Runner) Start(ctx context.Context) {
	defer close(r.doneChan)

	log.Println("ingestion runner started")

	for {
		select {
		case <-ctx.Done():
			log.Println("ingestion runner stopped: context cancelled")
			return
		case <-r.stopChan:
			log.Println("ingestion runner stopped: stop signal received")
			return
		case task := <-r.tasks:
			r.run(ctx, task)
		}
	}
}

func (r *Runner) run(ctx context.Context, task IngestTask) {
	defer func() {
		if err := os.Remove(task.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("removing staged file %s: %v", task.Path, err)
		}
	}()

	if err := r.ingestor.IngestFile(ctx, task.DocumentName, task.Path); err != nil {
		log.Printf("ingesting %q failed: %v", task.DocumentName, err)
	}
}

// Stop gracefully stops the runner
func (r *Runner) Stop() {
	close(r.stopChan)
	<-r.doneChan
	log.Println("ingestion runner shutdown complete")
}
