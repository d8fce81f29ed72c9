package main

import (
	"fmt"
	"log/slog"

	"github.com/docsem/docsem"
	"github.com/docsem/docsem/ingest"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	pipeline := &ingest.Pipeline{
		Fetcher:  deps.Fetcher,
		Splitter: deps.Splitter,
		Chunks:   deps.Chunks,
		Embedder: deps.Embedder,
		Index:    deps.Index,
		BaseURL:  c.BaseURL,
		Logger:   slog.New(slog.NewTextHandler(deps.Stderr, nil)),
	}

	result, err := pipeline.Ingest(deps.Ctx, c.Version, c.PagePath)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsem.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Ingested %s %s: %d created, %d updated, %d skipped\n",
		c.Version, c.PagePath, result.Created, result.Updated, result.Skipped)

	return nil
}
