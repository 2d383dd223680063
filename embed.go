package sitekb

import "context"

// Embedder generates embedding vectors for texts. Implementations should
// embed the whole batch in a single remote call.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
