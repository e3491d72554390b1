package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloo-solutions/docvault/internal/config"
	"github.com/cloo-solutions/docvault/internal/domain"
)

// IngestCmd returns the ingest command
func IngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <dir>",
		Short: "Ingest every PDF in a directory",
		Long:  "Embed and store every PDF in the given directory without starting the API server",
		Args:  cobra.ExactArgs(1),
		RunE:  runIngest,
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}

	dir := args[0]
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	var processed, failed int
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("skipping %s: %v", entry.Name(), err)
			failed++
			continue
		}

		result, err := app.ingestion.Ingest(ctx, entry.Name(), data)
		if err != nil {
			// A quota error will hit every remaining file too, so give up
			// here; the run can be resumed once the quota window resets.
			if errors.Is(err, domain.ErrProviderQuota) {
				if result != nil {
					log.Printf("%s: %d passages stored before hitting the provider quota", entry.Name(), result.Added)
				}
				return fmt.Errorf("provider quota reached, re-run to resume: %w", err)
			}
			log.Printf("failed to ingest %s: %v", entry.Name(), err)
			failed++
			continue
		}

		log.Printf("%s: %d added, %d skipped", entry.Name(), result.Added, result.Skipped)
		processed++
	}

	log.Printf("done: %d files ingested, %d failed", processed, failed)
	if processed == 0 && failed == 0 {
		log.Printf("no PDF files found in %s", dir)
	}
	return nil
}
