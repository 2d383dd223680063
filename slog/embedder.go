// Package slog provides logging decorators for the domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sitekb/sitekb"
)

var _ sitekb.Embedder = (*Embedder)(nil)

// Embedder wraps a sitekb.Embedder with structured logging of batch sizes,
// durations, and failures.
type Embedder struct {
	embedder sitekb.Embedder
	logger   *slog.Logger
}

// NewEmbedder returns an Embedder logging to logger.
func NewEmbedder(embedder sitekb.Embedder, logger *slog.Logger) *Embedder {
	return &Embedder{embedder: embedder, logger: logger}
}

func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()
	vectors, err := e.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		e.logger.Error("embedding failed", "texts", len(texts), "duration", time.Since(start), "error", err)
		return nil, err
	}
	e.logger.Debug("embedded texts", "texts", len(texts), "duration", time.Since(start))
	return vectors, nil
}
