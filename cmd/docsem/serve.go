package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	dochttp "github.com/docsem/docsem/http"
	"github.com/docsem/docsem/search"
)

// Run executes the serve command. It blocks until the listener fails or
// the process is terminated.
func (c *ServeCmd) Run(deps *Dependencies) error {
	logger := slog.New(slog.NewTextHandler(deps.Stderr, nil))

	server := dochttp.NewServer(
		search.NewService(deps.Embedder, deps.Index, deps.Chunks),
		deps.Chunks,
		logger,
	)

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Addr)
	if err := http.ListenAndServe(c.Addr, server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
