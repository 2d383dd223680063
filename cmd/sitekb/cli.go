package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/sitekb/sitekb/pipeline"
	"github.com/sitekb/sitekb/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *Config
	Logger   *slog.Logger
	DB       *sqlite.DB
	Store    *sqlite.ChunkStore
	Pipeline *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve  ServeCmd  `cmd:"" help:"Run the knowledge base HTTP server"`
	Ingest IngestCmd `cmd:"" help:"Crawl a website and index its content"`
	Ask    AskCmd    `cmd:"" help:"Ask a question against the knowledge base"`
	Stats  StatsCmd  `cmd:"" help:"Show knowledge base statistics"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `short:"a" help:"Listen address (overrides config)"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	URL           string `arg:"" help:"Base URL to crawl"`
	MaxPages      int    `default:"50" help:"Maximum pages to crawl"`
	MaxDepth      int    `default:"3" help:"Maximum link depth from the base URL"`
	MaxChunkChars int    `default:"800" help:"Maximum characters per chunk"`
	Reset         bool   `help:"Clear the collection before ingesting"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the indexed site"`
	TopK     int    `short:"k" default:"5" help:"Number of chunks to retrieve"`
	Raw      bool   `help:"Return raw retrieved chunks without generation"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}
