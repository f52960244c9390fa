package ingest

import (
	"context"

	"github.com/satark-ai/satark/internal/domain"
	"github.com/satark-ai/satark/internal/domain/chunk"
	"github.com/satark-ai/satark/internal/domain/document"
)

// Indexer persists chunks plus vectors into a collection.
type Indexer interface {
	UpsertChunks(
		ctx context.Context, collection string,
		doc document.Document, chunks []chunk.Chunk, vectors [][]float32,
	) ([]string, error)
}

// Chunker splits a document into retrieval units.
type Chunker interface {
	Chunk(doc document.Document) []chunk.Chunk
}

// SectionExtractor pulls normalized statute citations out of content.
type SectionExtractor interface {
	CitedSections(text string) []string
}

// Embedder vectorizes chunk texts in batch.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}
