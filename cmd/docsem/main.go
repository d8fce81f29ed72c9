package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/docsem/docsem"
	"github.com/docsem/docsem/gemini"
	"github.com/docsem/docsem/goquery"
	dochttp "github.com/docsem/docsem/http"
	aiopenai "github.com/docsem/docsem/openai"
	"github.com/docsem/docsem/qdrant"
	"github.com/docsem/docsem/sqlite"
	"github.com/joho/godotenv"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	// Missing .env is fine; environment variables may be set directly.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ChunkService docsem.ChunkService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsem"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsem --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Global flags may precede the subcommand, so the command must come from
	// the parsed context, not from the raw argument list.
	command := commandName(kongCtx)

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCSEM_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.ChunkService = sqlite.NewChunkService(m.DB)
	deps.DB = m.DB
	deps.Chunks = m.ChunkService

	// Both commands talk to the embedding provider and the vector index;
	// the index dimension is dictated by the chosen embedder.
	embedder, err := newEmbedder(ctx, cli.Embedder, stderr)
	if err != nil {
		return err
	}
	deps.Embedder = embedder

	index, err := qdrant.NewIndex(cli.QdrantHost, cli.QdrantPort, embedder.Dimension())
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Qdrant must be running; see https://qdrant.tech/documentation/quickstart/")
		return fmt.Errorf("failed to connect to qdrant at %s:%d: %w", cli.QdrantHost, cli.QdrantPort, err)
	}
	defer index.Close()
	deps.Index = index

	if command == "ingest" {
		fetcher := dochttp.NewFetcher()
		defer fetcher.Close()
		deps.Fetcher = fetcher
		deps.Splitter = goquery.NewSplitter()
	}

	return kongCtx.Run(deps)
}

// commandName returns the leading command word from a parsed kong context.
// kong's Command() includes argument placeholders (e.g. "ingest <version>
// <page-path>"); only the first word identifies the command.
func commandName(kongCtx *kong.Context) string {
	name := kongCtx.Command()
	if i := strings.IndexByte(name, ' '); i >= 0 {
		name = name[:i]
	}
	return name
}

// newEmbedder selects the embedding provider by name and validates its
// API key up front, before any network wiring happens.
func newEmbedder(ctx context.Context, name string, stderr io.Writer) (docsem.Embedder, error) {
	switch name {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set. Get an API key at https://platform.openai.com/api-keys")
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		client := openai.NewClient(option.WithAPIKey(apiKey))
		return aiopenai.NewEmbedder(&client), nil

	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewEmbedder(client), nil

	default:
		return nil, fmt.Errorf("unknown embedder %q: use 'openai' or 'gemini'", name)
	}
}

func defaultDBPath() string {
	if path := os.Getenv("DOCSEM_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docsem.db"
	}
	dir := filepath.Join(home, ".docsem")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docsem.db")
}
