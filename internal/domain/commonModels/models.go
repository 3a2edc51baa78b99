package commonModels

import (
	"context"
	"time"
)

type SourceKind string

// recognized document sources; anything else is rejected at upload time
const (
	SourcePDF         SourceKind = "PDF"
	SourceImage       SourceKind = "IMAGE"
	SourceWeb         SourceKind = "WEB"
	SourceDoc         SourceKind = "DOC" //docx, odt, rtf
	SourceUnsupported SourceKind = "UNSUPPORTED"
)

type Document struct {
	Id         string     `json:"document_id"`
	Name       string     `json:"doc_name"`
	IngestedAt time.Time  `json:"ingested_at"`
	SourceKind SourceKind `json:"source_kind"`
	NumChunks  int        `json:"num_chunks"`
}

// DocChunk is the retrieval unit: a positional slice of a document's
// words plus the embedding produced for it at ingestion time.
type DocChunk struct {
	DocumentId string    `json:"document_id"`
	Index      int       `json:"chunk_index"` //0-based, contiguous, gapless
	Text       string    `json:"content"`
	Embedding  []float32 `json:"embedding"`
}

// ChunkStore is the storage collaborator that persists chunk/embedding
// pairs per document. Retrieval always loads the full ordered list and
// rebuilds the in-memory index from it, so there is no staleness window.
type ChunkStore interface {
	SaveChunks(ctx context.Context, documentId string, chunks []DocChunk) error
	GetChunks(ctx context.Context, documentId string) ([]DocChunk, error)
	DeleteChunks(ctx context.Context, documentId string) error
}
