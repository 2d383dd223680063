// Package gemini implements the embedding and generation collaborators
// using the Google Gemini API.
package gemini

import (
	"context"

	"github.com/sitekb/sitekb"
	"google.golang.org/genai"
)

// DefaultEmbeddingModel is used when no embedding model is configured.
const DefaultEmbeddingModel = "gemini-embedding-001"

// Ensure Embedder implements sitekb.Embedder at compile time.
var _ sitekb.Embedder = (*Embedder)(nil)

// Embedder generates embeddings using the Gemini embedding API.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates a new Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client *genai.Client, model string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model}
}

// EmbedTexts embeds all texts in a single batched API call and returns one
// vector per input, in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, "user"))
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, sitekb.Errorf(sitekb.EUNAVAILABLE, "embedding request failed: %v", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, sitekb.Errorf(sitekb.EINTERNAL, "embedding response size mismatch: want %d", len(texts))
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, embedding := range result.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, sitekb.Errorf(sitekb.EINTERNAL, "empty embedding at index %d", i)
		}
		vectors[i] = embedding.Values
	}

	return vectors, nil
}
