// Package ingest provides the page ingestion pipeline. It coordinates
// fetching, section splitting, relational upserts, and vector indexing
// for one documentation page at a time.
package ingest

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/docsem/docsem"
)

// DefaultBaseURL is the version-parameterized documentation root. The
// {version} placeholder is substituted with the version argument.
const DefaultBaseURL = "https://docs.djangoproject.com/en/{version}/"

// Pipeline orchestrates the ingestion of a single documentation page:
// fetch, split, upsert relational rows, embed, upsert vectors.
//
// Sections are processed sequentially so that per-section failure
// accounting stays well-defined. The relational store is the source of
// truth; a failed embedding never rolls back the relational upsert, it
// only leaves the vector index lagging until the next ingest.
type Pipeline struct {
	Fetcher  docsem.Fetcher
	Splitter docsem.Splitter
	Chunks   docsem.ChunkService
	Embedder docsem.Embedder
	Index    docsem.VectorIndex

	// BaseURL is the version-parameterized documentation root.
	// Defaults to DefaultBaseURL.
	BaseURL string

	Logger *slog.Logger
}

// Result holds the outcome of one page ingestion.
type Result struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Ingest fetches one page and stores its sections as chunks.
//
// Fetch and split failures abort before any writes. Per-section embedding
// or vector failures are counted as skipped and do not abort the run.
func (p *Pipeline) Ingest(ctx context.Context, version, pagePath string) (*Result, error) {
	if version == "" {
		return nil, docsem.Errorf(docsem.EINVALID, "version required")
	}
	if strings.Trim(pagePath, "/") == "" {
		return nil, docsem.Errorf(docsem.EINVALID, "page path required")
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pageURL, err := p.pageURL(version, pagePath)
	if err != nil {
		return nil, err
	}

	logger.Info("fetching page", "url", pageURL)
	html, err := p.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	pageTitle, sections, err := p.Splitter.Split(html)
	if err != nil {
		return nil, err
	}
	logger.Info("page split", "title", pageTitle, "sections", len(sections))

	var result Result
	for _, section := range sections {
		if strings.TrimSpace(section.Text) == "" {
			// An empty chunk cannot be meaningfully embedded; it is never
			// stored in either store.
			result.Skipped++
			logger.Info("section skipped", "section", section.Title, "reason", "empty content")
			continue
		}

		chunk := &docsem.Chunk{
			SourceURL:  pageURL + "#" + section.Anchor,
			Title:      pageTitle + " - " + section.Title,
			Content:    section.Text,
			DocVersion: version,
		}

		created, err := p.Chunks.UpsertChunk(ctx, chunk)
		if err != nil {
			// Relational failures are fatal: without the row there is no
			// identifier to index under.
			return nil, err
		}

		if err := p.indexChunk(ctx, chunk); err != nil {
			result.Skipped++
			logger.Warn("section skipped", "section", section.Title, "error", err)
			continue
		}

		if created {
			result.Created++
			logger.Info("section ingested", "section", section.Title, "status", "created")
		} else {
			result.Updated++
			logger.Info("section ingested", "section", section.Title, "status", "updated")
		}
	}

	logger.Info("ingestion complete",
		"url", pageURL,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)

	return &result, nil
}

// indexChunk embeds the chunk's content and upserts it into the vector
// index under the relational identifier.
func (p *Pipeline) indexChunk(ctx context.Context, chunk *docsem.Chunk) error {
	vector, err := p.Embedder.Embed(ctx, chunk.Content)
	if err != nil {
		return err
	}

	return p.Index.Upsert(ctx, chunk.ID, vector, docsem.VectorMetadata{
		Title:     chunk.Title,
		SourceURL: chunk.SourceURL,
	})
}

// pageURL builds the page URL from the versioned base and the path,
// trimmed of surrounding slashes.
func (p *Pipeline) pageURL(version, pagePath string) (string, error) {
	base := p.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	base = strings.ReplaceAll(base, "{version}", version)

	joined, err := url.JoinPath(base, strings.Trim(pagePath, "/"))
	if err != nil {
		return "", docsem.Errorf(docsem.EINVALID, "invalid page URL: %v", err)
	}
	return joined, nil
}
