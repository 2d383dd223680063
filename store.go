package sitekb

import "context"

// ChunkMetadata is the metadata persisted alongside each indexed chunk.
type ChunkMetadata struct {
	SourceURL string `json:"sourceUrl"`
	Title     string `json:"title"`
	ChunkID   string `json:"chunkId"`
}

// Match is one ranked result from a vector store query. Distance is nil for
// stores that do not report one; callers must tolerate a missing value.
type Match struct {
	ID       string
	Text     string
	Metadata ChunkMetadata
	Distance *float64
}

// Similarity converts the match distance to a similarity score:
// 1 - distance when the distance is defined, else 0.
func (m *Match) Similarity() float64 {
	if m.Distance == nil {
		return 0
	}
	return 1 - *m.Distance
}

// CollectionStats describes the indexed collection.
type CollectionStats struct {
	CollectionName string            `json:"collectionName"`
	TotalDocuments int               `json:"totalDocuments"`
	Metadata       map[string]string `json:"metadata"`
}

// VectorStore persists embedded chunks and serves similarity queries.
type VectorStore interface {
	// Upsert stores the given chunks. The four slices are parallel and must
	// have equal length. Upserting an existing ID replaces it, so retried
	// writes are idempotent.
	Upsert(ctx context.Context, ids []string, vectors [][]float32, texts []string, metas []ChunkMetadata) error

	// Query returns up to k matches ranked by ascending distance to vector.
	Query(ctx context.Context, vector []float32, k int) ([]Match, error)

	// Stats returns statistics about the collection.
	Stats(ctx context.Context) (*CollectionStats, error)
}
