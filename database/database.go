package database

import (
	"context"

	"github.com/proposalops/docchat-be/types"
)

// VectorHit is one nearest-neighbor match from the vector index.
type VectorHit struct {
	DocumentID string
	Similarity float64
}

// VectorIndex is the nearest-neighbor store for document embeddings.
// Every search is scoped to a single owner; implementations must never
// return another user's documents.
type VectorIndex interface {
	UpsertEmbedding(ctx context.Context, doc *types.Document, vector []float32) error
	DeleteEmbedding(ctx context.Context, documentID string) error

	// SearchNearest returns hits whose cosine similarity (1 - distance)
	// exceeds threshold, best first, at most limit.
	SearchNearest(ctx context.Context, ownerID string, vector []float32, threshold float64, limit int) ([]VectorHit, error)
}
