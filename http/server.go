package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/docsem/docsem"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the search API server. The search path is read-only: it never
// writes to either store.
type Server struct {
	router chi.Router
	search docsem.SearchService
	chunks docsem.ChunkService
	log    *slog.Logger
}

// NewServer creates and configures the search HTTP server.
func NewServer(search docsem.SearchService, chunks docsem.ChunkService, log *slog.Logger) *Server {
	s := &Server{
		search: search,
		chunks: chunks,
		log:    log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealth)
	r.Get("/search", s.handleSearch)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// searchResult is the JSON shape of one search hit.
type searchResult struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	SourceURL  string `json:"source_url"`
	DocVersion string `json:"doc_version"`
}

// handleSearch serves GET /search?q=...&k=...&mode=semantic|text.
//
// Semantic mode (the default) returns chunks in relevance order. Text mode
// is a distinct substring-match fallback; the two are never mixed. A
// missing or empty q is a 400, distinguishing "no query" from "no matches".
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		jsonError(w, "the search parameter 'q' is required, e.g. /search?q=models", http.StatusBadRequest)
		return
	}

	k := docsem.DefaultSearchLimit
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			jsonError(w, "the parameter 'k' must be a positive integer", http.StatusBadRequest)
			return
		}
		k = parsed
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "semantic"
	}

	var chunks []*docsem.Chunk
	var err error
	switch mode {
	case "semantic":
		chunks, err = s.search.Search(r.Context(), query, k)
	case "text":
		chunks, err = s.chunks.SearchText(r.Context(), query)
		// SearchText has no limit of its own; k caps both modes.
		if err == nil && len(chunks) > k {
			chunks = chunks[:k]
		}
	default:
		jsonError(w, "unknown search mode; use 'semantic' or 'text'", http.StatusBadRequest)
		return
	}
	if err != nil {
		s.log.Error("search failed", "mode", mode, "error", err)
		jsonError(w, docsem.ErrorMessage(err), codeToStatus(docsem.ErrorCode(err)))
		return
	}

	results := make([]searchResult, 0, len(chunks))
	for _, chunk := range chunks {
		results = append(results, searchResult{
			ID:         chunk.ID,
			Title:      chunk.Title,
			Content:    chunk.Content,
			SourceURL:  chunk.SourceURL,
			DocVersion: chunk.DocVersion,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"results": results})
}

// codeToStatus maps application error codes to HTTP status codes.
func codeToStatus(code string) int {
	switch code {
	case docsem.EINVALID:
		return http.StatusBadRequest
	case docsem.ENOTFOUND:
		return http.StatusNotFound
	case docsem.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// jsonError writes a JSON error body with the given status.
func jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// requestLogger logs incoming requests.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
