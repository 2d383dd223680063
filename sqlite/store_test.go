package sqlite_test

import (
	"context"
	"testing"

	"github.com/sitekb/sitekb"
	"github.com/sitekb/sitekb/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustOpenDB returns an open in-memory database, closed on test cleanup.
func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestChunkStore_Upsert(t *testing.T) {
	t.Parallel()

	t.Run("stores and counts chunks", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewChunkStore(mustOpenDB(t), "test")
		ctx := context.Background()

		err := store.Upsert(ctx,
			[]string{"a", "b"},
			[][]float32{{1, 0}, {0, 1}},
			[]string{"alpha text", "beta text"},
			[]sitekb.ChunkMetadata{
				{SourceURL: "https://example.com/a", Title: "A", ChunkID: "a"},
				{SourceURL: "https://example.com/b", Title: "B", ChunkID: "b"},
			},
		)
		require.NoError(t, err)

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.TotalDocuments)
	})

	t.Run("replaces existing ids instead of duplicating", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewChunkStore(mustOpenDB(t), "test")
		ctx := context.Background()

		ids := []string{"a"}
		vectors := [][]float32{{1, 0}}
		metas := []sitekb.ChunkMetadata{{SourceURL: "https://example.com", Title: "A", ChunkID: "a"}}

		require.NoError(t, store.Upsert(ctx, ids, vectors, []string{"first"}, metas))
		require.NoError(t, store.Upsert(ctx, ids, vectors, []string{"second"}, metas))

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalDocuments)

		matches, err := store.Query(ctx, []float32{1, 0}, 1)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "second", matches[0].Text)
	})

	t.Run("rejects mismatched batch lengths", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewChunkStore(mustOpenDB(t), "test")

		err := store.Upsert(context.Background(),
			[]string{"a"}, [][]float32{{1}}, []string{"x", "y"}, []sitekb.ChunkMetadata{{}})

		require.Error(t, err)
		assert.Equal(t, sitekb.EINVALID, sitekb.ErrorCode(err))
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewChunkStore(mustOpenDB(t), "test")
		require.NoError(t, store.Upsert(context.Background(), nil, nil, nil, nil))
	})
}

func TestChunkStore_Query(t *testing.T) {
	t.Parallel()

	t.Run("ranks by ascending cosine distance", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewChunkStore(mustOpenDB(t), "test")
		ctx := context.Background()

		err := store.Upsert(ctx,
			[]string{"exact", "close", "orthogonal"},
			[][]float32{{1, 0}, {0.9, 0.1}, {0, 1}},
			[]string{"exact match", "close match", "unrelated"},
			[]sitekb.ChunkMetadata{
				{SourceURL: "https://example.com/1", Title: "1", ChunkID: "exact"},
				{SourceURL: "https://example.com/2", Title: "2", ChunkID: "close"},
				{SourceURL: "https://example.com/3", Title: "3", ChunkID: "orthogonal"},
			},
		)
		require.NoError(t, err)

		matches, err := store.Query(ctx, []float32{1, 0}, 2)
		require.NoError(t, err)

		require.Len(t, matches, 2)
		assert.Equal(t, "exact", matches[0].ID)
		assert.Equal(t, "close", matches[1].ID)
		require.NotNil(t, matches[0].Distance)
		assert.InDelta(t, 0, *matches[0].Distance, 1e-6)
		assert.Greater(t, *matches[1].Distance, *matches[0].Distance)
		assert.InDelta(t, 1, matches[0].Similarity(), 1e-6)
	})

	t.Run("carries source metadata on matches", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewChunkStore(mustOpenDB(t), "test")
		ctx := context.Background()

		err := store.Upsert(ctx,
			[]string{"c1"},
			[][]float32{{1, 1}},
			[]string{"chunk text"},
			[]sitekb.ChunkMetadata{{SourceURL: "https://example.com/page", Title: "Page", ChunkID: "c1"}},
		)
		require.NoError(t, err)

		matches, err := store.Query(ctx, []float32{1, 1}, 5)
		require.NoError(t, err)

		require.Len(t, matches, 1)
		assert.Equal(t, "https://example.com/page", matches[0].Metadata.SourceURL)
		assert.Equal(t, "Page", matches[0].Metadata.Title)
		assert.Equal(t, "c1", matches[0].Metadata.ChunkID)
	})

	t.Run("returns no matches for an empty collection", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewChunkStore(mustOpenDB(t), "test")
		matches, err := store.Query(context.Background(), []float32{1, 0}, 5)

		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("non-positive k yields no matches", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewChunkStore(mustOpenDB(t), "test")
		matches, err := store.Query(context.Background(), []float32{1, 0}, 0)

		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("collections are isolated", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		first := sqlite.NewChunkStore(db, "first")
		second := sqlite.NewChunkStore(db, "second")
		ctx := context.Background()

		err := first.Upsert(ctx, []string{"a"}, [][]float32{{1}}, []string{"text"},
			[]sitekb.ChunkMetadata{{SourceURL: "https://example.com", ChunkID: "a"}})
		require.NoError(t, err)

		matches, err := second.Query(ctx, []float32{1}, 5)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestChunkStore_Reset(t *testing.T) {
	t.Parallel()

	store := sqlite.NewChunkStore(mustOpenDB(t), "test")
	ctx := context.Background()

	err := store.Upsert(ctx, []string{"a"}, [][]float32{{1}}, []string{"text"},
		[]sitekb.ChunkMetadata{{SourceURL: "https://example.com", ChunkID: "a"}})
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalDocuments)
}

func TestChunkStore_Stats(t *testing.T) {
	t.Parallel()

	store := sqlite.NewChunkStore(mustOpenDB(t), "")
	stats, err := store.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, sqlite.DefaultCollection, stats.CollectionName)
	assert.Equal(t, "cosine", stats.Metadata["space"])
}
