package embedding

import "context"

// Embedder maps text to fixed-dimension dense vectors. Every vector
// produced by one instance has the same length (Dimension), and output
// is deterministic for identical input - stored chunk embeddings and
// query embeddings must come from the same instance/configuration.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error)
	Dimension() int
}
