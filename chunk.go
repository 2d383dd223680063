package sitekb

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Default chunking parameters used by the ingestion pipeline.
const (
	DefaultMaxChunkChars = 800
	DefaultChunkOverlap  = 100
)

// Chunk is the unit of embedding and retrieval: a bounded, possibly
// overlapping fragment of one page's text. Chunks are immutable after
// creation. Index runs 1..Total with no gaps within a page's chunk set.
type Chunk struct {
	ID         string `json:"chunkId"`
	SourceURL  string `json:"sourceUrl"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	Index      int    `json:"chunkIndex"`
	Total      int    `json:"totalChunks"`
	CharLength int    `json:"charLength"`
}

// ChunkText splits text into non-overlapping fragments of at most maxChars
// characters. Empty input or a non-positive maxChars yields nil.
func ChunkText(text string, maxChars int) []string {
	if text == "" || maxChars <= 0 {
		return nil
	}

	runes := []rune(text)
	var chunks []string
	for start := 0; start < len(runes); start += maxChars {
		end := min(start+maxChars, len(runes))
		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// ChunkWithOverlap splits text into fragments of at most maxChars characters
// where consecutive fragments share up to overlapChars trailing characters.
// The cursor advances by at least one character per emitted fragment, so the
// function terminates even when overlapChars >= maxChars. Fragments preserve
// document order and are trimmed of surrounding whitespace; fragments that
// trim to empty are dropped. Empty input or a non-positive maxChars yields
// nil.
func ChunkWithOverlap(text string, maxChars, overlapChars int) []string {
	if text == "" || maxChars <= 0 {
		return nil
	}

	runes := []rune(text)
	var chunks []string
	start := 0
	for start < len(runes) {
		end := min(start+maxChars, len(runes))
		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
		// The start+1 floor guarantees forward progress when the overlap
		// meets or exceeds the chunk size.
		start = max(start+1, end-overlapChars)
	}
	return chunks
}

// ChunkPage chunks one page's text with overlap and attaches retrieval
// metadata: a fresh unique ID per chunk, the source URL and title, a 1-based
// index, the total chunk count for the page, and the post-trim character
// length. IDs are opaque and random, not content-derived.
func ChunkPage(text, url, title string, maxChars, overlapChars int) []*Chunk {
	texts := ChunkWithOverlap(text, maxChars, overlapChars)

	chunks := make([]*Chunk, 0, len(texts))
	for i, t := range texts {
		chunks = append(chunks, &Chunk{
			ID:         uuid.New().String(),
			SourceURL:  url,
			Title:      title,
			Text:       t,
			Index:      i + 1,
			Total:      len(texts),
			CharLength: utf8.RuneCountInString(t),
		})
	}
	return chunks
}
