package mock

import (
	"context"

	"github.com/sitekb/sitekb"
)

var _ sitekb.VectorStore = (*VectorStore)(nil)

// VectorStore is a mock implementation of sitekb.VectorStore.
type VectorStore struct {
	UpsertFn func(ctx context.Context, ids []string, vectors [][]float32, texts []string, metadata []sitekb.ChunkMetadata) error
	QueryFn  func(ctx context.Context, vector []float32, k int) ([]sitekb.Match, error)
	StatsFn  func(ctx context.Context) (*sitekb.CollectionStats, error)
}

func (s *VectorStore) Upsert(ctx context.Context, ids []string, vectors [][]float32, texts []string, metadata []sitekb.ChunkMetadata) error {
	return s.UpsertFn(ctx, ids, vectors, texts, metadata)
}

func (s *VectorStore) Query(ctx context.Context, vector []float32, k int) ([]sitekb.Match, error) {
	return s.QueryFn(ctx, vector, k)
}

func (s *VectorStore) Stats(ctx context.Context) (*sitekb.CollectionStats, error) {
	return s.StatsFn(ctx)
}
