package sqlite

import (
	"context"
	"encoding/hex"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sitekb/sitekb"
)

// DefaultCollection is the collection name used when none is configured.
const DefaultCollection = "documents"

// Compile-time interface verification.
var _ sitekb.VectorStore = (*ChunkStore)(nil)

// ChunkStore implements sitekb.VectorStore on SQLite. Embeddings are stored
// as float32 blobs and queries rank by cosine distance over a full
// collection scan, which is adequate at the crawler's bounded scale.
type ChunkStore struct {
	db         *DB
	collection string
}

// NewChunkStore creates a ChunkStore for the given collection. An empty
// collection selects DefaultCollection.
func NewChunkStore(db *DB, collection string) *ChunkStore {
	if collection == "" {
		collection = DefaultCollection
	}
	return &ChunkStore{db: db, collection: collection}
}

// hashText computes the xxHash of text as a hex string.
func hashText(text string) string {
	h := xxhash.Sum64String(text)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// Upsert stores the given chunks in one transaction. Existing IDs are
// replaced, so a retried ingestion never duplicates rows.
func (s *ChunkStore) Upsert(ctx context.Context, ids []string, vectors [][]float32, texts []string, metas []sitekb.ChunkMetadata) error {
	if len(ids) != len(vectors) || len(ids) != len(texts) || len(ids) != len(metas) {
		return sitekb.Errorf(sitekb.EINVALID, "mismatched upsert batch: %d ids, %d vectors, %d texts, %d metadatas",
			len(ids), len(vectors), len(texts), len(metas))
	}
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for i, id := range ids {
		if id == "" {
			return sitekb.Errorf(sitekb.EINVALID, "chunk ID required at index %d", i)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO chunks (id, collection, text, source_url, title, text_hash, embedding, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, s.collection, texts[i], metas[i].SourceURL, metas[i].Title, hashText(texts[i]), encodeVector(vectors[i]), now)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Query returns up to k matches ranked by ascending cosine distance.
func (s *ChunkStore) Query(ctx context.Context, vector []float32, k int) ([]sitekb.Match, error) {
	if k <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, source_url, title, embedding
		FROM chunks
		WHERE collection = ?
	`, s.collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []sitekb.Match
	for rows.Next() {
		var m sitekb.Match
		var embedding []byte
		if err := rows.Scan(&m.ID, &m.Text, &m.Metadata.SourceURL, &m.Metadata.Title, &embedding); err != nil {
			return nil, err
		}
		m.Metadata.ChunkID = m.ID

		distance := cosineDistance(vector, decodeVector(embedding))
		m.Distance = &distance
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return *matches[i].Distance < *matches[j].Distance
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Stats returns statistics about the collection.
func (s *ChunkStore) Stats(ctx context.Context) (*sitekb.CollectionStats, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM chunks WHERE collection = ?
	`, s.collection).Scan(&count)
	if err != nil {
		return nil, err
	}

	return &sitekb.CollectionStats{
		CollectionName: s.collection,
		TotalDocuments: count,
		Metadata:       map[string]string{"space": "cosine"},
	}, nil
}

// Reset removes every chunk in the collection.
func (s *ChunkStore) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE collection = ?`, s.collection)
	return err
}
