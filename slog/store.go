package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sitekb/sitekb"
)

var _ sitekb.VectorStore = (*VectorStore)(nil)

// VectorStore wraps a sitekb.VectorStore with structured logging of write
// batch sizes, query results, and durations.
type VectorStore struct {
	store  sitekb.VectorStore
	logger *slog.Logger
}

// NewVectorStore returns a VectorStore logging to logger.
func NewVectorStore(store sitekb.VectorStore, logger *slog.Logger) *VectorStore {
	return &VectorStore{store: store, logger: logger}
}

func (s *VectorStore) Upsert(ctx context.Context, ids []string, vectors [][]float32, texts []string, metas []sitekb.ChunkMetadata) error {
	start := time.Now()
	if err := s.store.Upsert(ctx, ids, vectors, texts, metas); err != nil {
		s.logger.Error("upsert failed", "chunks", len(ids), "duration", time.Since(start), "error", err)
		return err
	}
	s.logger.Debug("upserted chunks", "chunks", len(ids), "duration", time.Since(start))
	return nil
}

func (s *VectorStore) Query(ctx context.Context, vector []float32, k int) ([]sitekb.Match, error) {
	start := time.Now()
	matches, err := s.store.Query(ctx, vector, k)
	if err != nil {
		s.logger.Error("query failed", "k", k, "duration", time.Since(start), "error", err)
		return nil, err
	}
	s.logger.Debug("queried chunks", "k", k, "matches", len(matches), "duration", time.Since(start))
	return matches, nil
}

func (s *VectorStore) Stats(ctx context.Context) (*sitekb.CollectionStats, error) {
	return s.store.Stats(ctx)
}
