package main

import (
	"context"
	"io"

	"github.com/docsem/docsem"
	"github.com/docsem/docsem/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Chunks   docsem.ChunkService
	Embedder docsem.Embedder
	Index    docsem.VectorIndex
	Fetcher  docsem.Fetcher
	Splitter docsem.Splitter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Ingest IngestCmd `cmd:"" help:"Fetch a documentation page and index its sections"`
	Serve  ServeCmd  `cmd:"" help:"Serve the search API over HTTP"`

	Embedder   string `default:"openai" enum:"openai,gemini" env:"DOCSEM_EMBEDDER" help:"Embedding provider (openai or gemini)"`
	QdrantHost string `default:"localhost" env:"DOCSEM_QDRANT_HOST" help:"Qdrant host"`
	QdrantPort int    `default:"6334" env:"DOCSEM_QDRANT_PORT" help:"Qdrant gRPC port"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	Version  string `arg:"" help:"Documentation version, e.g. 5.2"`
	PagePath string `arg:"" help:"Page path under the versioned root, e.g. ref/models/fields/"`
	BaseURL  string `env:"DOCSEM_BASE_URL" help:"Documentation root with a {version} placeholder"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" help:"HTTP listen address"`
}
