package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"github.com/sitekb/sitekb"
	"github.com/sitekb/sitekb/crawl"
	"github.com/sitekb/sitekb/gemini"
	"github.com/sitekb/sitekb/goquery"
	kbhttp "github.com/sitekb/sitekb/http"
	"github.com/sitekb/sitekb/pipeline"
	kbslog "github.com/sitekb/sitekb/slog"
	"github.com/sitekb/sitekb/sqlite"
	"github.com/sitekb/sitekb/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run().
	ConfigPath string

	// SQLite database backing the vector store.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitekb"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitekb --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(m.ConfigPath)
	if err != nil {
		return err
	}
	deps.Config = cfg

	m.DB = sqlite.NewDB(cfg.Storage.DatabasePath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set SITEKB_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", cfg.Storage.DatabasePath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Store = sqlite.NewChunkStore(m.DB, cfg.Storage.Collection)

	// Every command except stats talks to the Gemini API.
	var client *genai.Client
	if cmd != "stats" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
	}

	deps.Pipeline = m.buildPipeline(cfg, client, deps.Logger)

	return kongCtx.Run(deps)
}

// buildPipeline wires the crawler, embedder, store, and generator. client may
// be nil for commands that never reach the Gemini API.
func (m *Main) buildPipeline(cfg *Config, client *genai.Client, logger *slog.Logger) *pipeline.Pipeline {
	crawlOpts := []crawl.Option{
		crawl.WithLogger(logger),
		crawl.WithConcurrency(cfg.Crawler.Concurrency),
	}
	if cfg.Crawler.Retries {
		crawlOpts = append(crawlOpts, crawl.WithRetryDelays(crawl.DefaultRetryDelays()))
	}
	var extractor sitekb.Extractor = goquery.NewExtractor()
	if cfg.Crawler.Extractor == "trafilatura" {
		extractor = trafilatura.NewExtractor()
	}

	crawler := crawl.NewCrawler(
		kbhttp.NewFetcher(),
		extractor,
		goquery.NewLinks(),
		crawlOpts...,
	)

	store := kbslog.NewVectorStore(sqlite.NewChunkStore(m.DB, cfg.Storage.Collection), logger)

	var embedder *kbslog.Embedder
	var generator *gemini.Generator
	if client != nil {
		embedder = kbslog.NewEmbedder(gemini.NewEmbedder(client, cfg.Models.Embedding), logger)
		generator = gemini.NewGenerator(client, cfg.Models.Generation)
	}

	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	if client == nil {
		return pipeline.NewPipeline(crawler, nil, store, nil, opts...)
	}
	return pipeline.NewPipeline(crawler, embedder, store, generator, opts...)
}
