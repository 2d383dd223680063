package sitekb_test

import (
	"testing"

	"github.com/sitekb/sitekb"
	"github.com/stretchr/testify/assert"
)

func TestJoinChunks(t *testing.T) {
	t.Parallel()

	t.Run("joins with blank line separators", func(t *testing.T) {
		t.Parallel()

		got := sitekb.JoinChunks([]string{"first", "second", "third"})
		assert.Equal(t, "first\n\nsecond\n\nthird", got)
	})

	t.Run("single chunk passes through", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "only", sitekb.JoinChunks([]string{"only"}))
	})

	t.Run("empty input yields empty string", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, sitekb.JoinChunks(nil))
	})
}

func TestMatchSimilarity(t *testing.T) {
	t.Parallel()

	t.Run("is one minus distance when defined", func(t *testing.T) {
		t.Parallel()

		d := 0.25
		m := sitekb.Match{Distance: &d}
		assert.InDelta(t, 0.75, m.Similarity(), 1e-9)
	})

	t.Run("is zero when distance missing", func(t *testing.T) {
		t.Parallel()

		m := sitekb.Match{}
		assert.Zero(t, m.Similarity())
	})
}
