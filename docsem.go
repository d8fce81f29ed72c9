// Package docsem ingests versioned documentation pages as section-level
// chunks and serves semantic search over them. Pages are fetched over HTTP,
// split on their h2 headings, stored relationally, embedded, and indexed
// in a vector store for nearest-neighbor retrieval.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, qdrant/, goquery/).
package docsem
