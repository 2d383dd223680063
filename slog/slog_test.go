package slog_test

import (
	"bytes"
	"context"
	stdslog "log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekb/sitekb"
	"github.com/sitekb/sitekb/mock"
	"github.com/sitekb/sitekb/slog"
)

func newLogger() (*stdslog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug})
	return stdslog.New(handler), &buf
}

func TestEmbedder(t *testing.T) {
	t.Parallel()

	t.Run("delegates and logs the batch size", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Embedder{
			EmbedTextsFn: func(_ context.Context, texts []string) ([][]float32, error) {
				return [][]float32{{1}, {2}}, nil
			},
		}
		logger, buf := newLogger()

		vectors, err := slog.NewEmbedder(inner, logger).EmbedTexts(context.Background(), []string{"a", "b"})
		require.NoError(t, err)
		assert.Len(t, vectors, 2)
		assert.Contains(t, buf.String(), "embedded texts")
		assert.Contains(t, buf.String(), "texts=2")
	})

	t.Run("logs failures and passes the error through", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Embedder{
			EmbedTextsFn: func(context.Context, []string) ([][]float32, error) {
				return nil, sitekb.Errorf(sitekb.EUNAVAILABLE, "quota exhausted")
			},
		}
		logger, buf := newLogger()

		_, err := slog.NewEmbedder(inner, logger).EmbedTexts(context.Background(), []string{"a"})
		require.Error(t, err)
		assert.Equal(t, sitekb.EUNAVAILABLE, sitekb.ErrorCode(err))
		assert.Contains(t, buf.String(), "embedding failed")
	})
}

func TestVectorStore(t *testing.T) {
	t.Parallel()

	t.Run("logs upserts and queries", func(t *testing.T) {
		t.Parallel()

		inner := &mock.VectorStore{
			UpsertFn: func(context.Context, []string, [][]float32, []string, []sitekb.ChunkMetadata) error {
				return nil
			},
			QueryFn: func(context.Context, []float32, int) ([]sitekb.Match, error) {
				return []sitekb.Match{{ID: "a"}}, nil
			},
		}
		logger, buf := newLogger()
		store := slog.NewVectorStore(inner, logger)

		require.NoError(t, store.Upsert(context.Background(), []string{"a"}, [][]float32{{1}}, []string{"t"}, []sitekb.ChunkMetadata{{}}))
		matches, err := store.Query(context.Background(), []float32{1}, 3)
		require.NoError(t, err)
		assert.Len(t, matches, 1)

		assert.Contains(t, buf.String(), "upserted chunks")
		assert.Contains(t, buf.String(), "queried chunks")
		assert.Contains(t, buf.String(), "matches=1")
	})
}
