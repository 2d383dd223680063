package sitekb_test

import (
	"strings"
	"testing"

	"github.com/sitekb/sitekb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkWithOverlap(t *testing.T) {
	t.Parallel()

	t.Run("returns nil for empty input", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, sitekb.ChunkWithOverlap("", 800, 100))
	})

	t.Run("returns nil for non-positive maxChars", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, sitekb.ChunkWithOverlap("some text", 0, 100))
		assert.Nil(t, sitekb.ChunkWithOverlap("some text", -1, 100))
	})

	t.Run("short text yields a single trimmed chunk", func(t *testing.T) {
		t.Parallel()

		chunks := sitekb.ChunkWithOverlap("  hello world  ", 800, 100)
		assert.Equal(t, []string{"hello world"}, chunks)
	})

	t.Run("every chunk length is at most maxChars", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("abcde ", 200)
		for _, chunk := range sitekb.ChunkWithOverlap(text, 50, 10) {
			assert.LessOrEqual(t, len(chunk), 50)
		}
	})

	t.Run("trailing overlap of a full chunk reappears in the next", func(t *testing.T) {
		t.Parallel()

		// Distinct characters so substring checks are unambiguous.
		text := "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
		chunks := sitekb.ChunkWithOverlap(text, 20, 5)
		require.Greater(t, len(chunks), 1)

		for i := 0; i < len(chunks)-1; i++ {
			if len(chunks[i]) < 20 {
				continue // trimmed or final short chunk
			}
			tail := chunks[i][len(chunks[i])-5:]
			assert.Contains(t, chunks[i+1][:min(len(chunks[i+1]), 20)], tail)
		}
	})

	t.Run("chunks cover the text in order", func(t *testing.T) {
		t.Parallel()

		text := "The quick brown fox jumps over the lazy dog and keeps on running through the field."
		chunks := sitekb.ChunkWithOverlap(text, 30, 10)
		require.NotEmpty(t, chunks)

		cursor := 0
		for _, chunk := range chunks {
			idx := strings.Index(text[cursor:], chunk)
			require.GreaterOrEqual(t, idx, 0, "chunk %q not found after offset %d", chunk, cursor)
			cursor += idx + 1
		}
	})

	t.Run("terminates when overlap meets or exceeds maxChars", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("x", 50)

		chunks := sitekb.ChunkWithOverlap(text, 10, 10)
		assert.NotEmpty(t, chunks)
		assert.LessOrEqual(t, len(chunks), len(text))

		chunks = sitekb.ChunkWithOverlap(text, 10, 100)
		assert.NotEmpty(t, chunks)
		assert.LessOrEqual(t, len(chunks), len(text))
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("determinism matters ", 100)
		first := sitekb.ChunkWithOverlap(text, 80, 20)
		second := sitekb.ChunkWithOverlap(text, 80, 20)
		assert.Equal(t, first, second)
	})

	t.Run("handles multibyte characters without splitting runes", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("żółć gęśla ", 30)
		for _, chunk := range sitekb.ChunkWithOverlap(text, 25, 5) {
			assert.True(t, strings.ToValidUTF8(chunk, "") == chunk)
		}
	})
}

func TestChunkText(t *testing.T) {
	t.Parallel()

	t.Run("splits without overlap", func(t *testing.T) {
		t.Parallel()

		chunks := sitekb.ChunkText("aaaabbbbcccc", 4)
		assert.Equal(t, []string{"aaaa", "bbbb", "cccc"}, chunks)
	})

	t.Run("returns nil for empty input or bad maxChars", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, sitekb.ChunkText("", 10))
		assert.Nil(t, sitekb.ChunkText("abc", 0))
	})
}

func TestChunkPage(t *testing.T) {
	t.Parallel()

	t.Run("assigns contiguous one-based indexes and totals", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("some page text ", 100)
		chunks := sitekb.ChunkPage(text, "https://example.com/a", "Example", 100, 20)
		require.NotEmpty(t, chunks)

		for i, chunk := range chunks {
			assert.Equal(t, i+1, chunk.Index)
			assert.Equal(t, len(chunks), chunk.Total)
			assert.Equal(t, "https://example.com/a", chunk.SourceURL)
			assert.Equal(t, "Example", chunk.Title)
			assert.Equal(t, len([]rune(chunk.Text)), chunk.CharLength)
		}
	})

	t.Run("assigns unique ids", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("repetitive content ", 100)
		chunks := sitekb.ChunkPage(text, "https://example.com", "t", 50, 10)

		seen := make(map[string]bool)
		for _, chunk := range chunks {
			assert.NotEmpty(t, chunk.ID)
			assert.False(t, seen[chunk.ID], "duplicate chunk ID %s", chunk.ID)
			seen[chunk.ID] = true
		}
	})

	t.Run("returns empty slice for empty text", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, sitekb.ChunkPage("", "https://example.com", "t", 800, 100))
	})
}
