// Package ingest turns incoming documents into indexed chunks: section
// extraction, chunking, batch embedding, and collection fan-out.
package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/satark-ai/satark/internal/domain"
	"github.com/satark-ai/satark/internal/domain/document"
	"github.com/satark-ai/satark/internal/metrics"
)

// Request is one document to ingest, as received at the transport boundary.
type Request struct {
	DocType       string
	Source        string
	Title         string
	Content       string
	Language      string
	CaseNumber    string
	Court         string
	District      string
	DatePublished time.Time
}

// Result describes what happened to one ingested document.
type Result struct {
	DocID       string   `json:"doc_id"`
	ChunkIDs    []string `json:"chunk_ids"`
	Collections []string `json:"collections"`
	Sections    []string `json:"sections_cited,omitempty"`
	Err         string   `json:"error,omitempty"`
}

// Stats aggregates a batch ingest.
type Stats struct {
	Ingested int      `json:"ingested"`
	Failed   int      `json:"failed"`
	Chunks   int      `json:"chunks"`
	Results  []Result `json:"results"`
}

// Service ingests documents into the vector index.
type Service struct {
	chunker  Chunker
	sections SectionExtractor
	embed    Embedder
	indexer  Indexer
	logger   *zap.Logger
}

// New creates an ingest service.
func New(
	chunker Chunker, sections SectionExtractor, embed Embedder, indexer Indexer,
	logger *zap.Logger,
) *Service {
	return &Service{
		chunker:  chunker,
		sections: sections,
		embed:    embed,
		indexer:  indexer,
		logger:   logger,
	}
}

// IngestBatch processes documents one by one; a failing document is recorded
// in the stats and does not abort the rest of the batch.
func (s *Service) IngestBatch(ctx context.Context, reqs []Request) Stats {
	stats := Stats{Results: make([]Result, 0, len(reqs))}

	for i, req := range reqs {
		res, err := s.Ingest(ctx, req)
		if err != nil {
			s.logger.Warn("document ingest failed",
				zap.Int("batch_index", i), zap.Error(err))
			metrics.DocumentsIngestedTotal.WithLabelValues(req.DocType, "error").Inc()
			stats.Failed++
			stats.Results = append(stats.Results, Result{Err: err.Error()})
			continue
		}
		metrics.DocumentsIngestedTotal.WithLabelValues(req.DocType, "success").Inc()
		stats.Ingested++
		stats.Chunks += len(res.ChunkIDs)
		stats.Results = append(stats.Results, res)
	}

	return stats
}

// Ingest processes a single document end to end. The chunk ids are derived
// from the content hash, so re-ingesting identical content overwrites the
// same index entries instead of duplicating them.
func (s *Service) Ingest(ctx context.Context, req Request) (Result, error) {
	doc, err := s.buildDocument(req)
	if err != nil {
		return Result{}, err
	}

	chunks := s.chunker.Chunk(doc)
	if len(chunks) == 0 {
		return Result{}, fmt.Errorf("document %s produced no chunks: %w",
			doc.ID(), domain.ErrMalformedDocument)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text()
	}

	embRes, err := s.embed.BatchEmbed(ctx, texts)
	if err != nil {
		return Result{}, fmt.Errorf("embed %d chunks: %w", len(chunks), err)
	}
	if len(embRes.Embeddings) != len(chunks) {
		return Result{}, fmt.Errorf(
			"embedder returned %d vectors for %d chunks: %w",
			len(embRes.Embeddings), len(chunks), domain.ErrEmbeddingProviderError,
		)
	}

	collections := targetCollections(doc)
	var chunkIDs []string
	for _, col := range collections {
		ids, err := s.indexer.UpsertChunks(ctx, col, doc, chunks, embRes.Embeddings)
		if err != nil {
			return Result{}, fmt.Errorf("index into %s: %w", col, err)
		}
		metrics.ChunksIndexedTotal.WithLabelValues(col).Add(float64(len(ids)))
		chunkIDs = ids
	}

	s.logger.Info("document ingested",
		zap.String("doc_id", doc.ID()),
		zap.String("doc_type", string(doc.DocType())),
		zap.Int("chunks", len(chunkIDs)),
		zap.Strings("collections", collections),
	)

	return Result{
		DocID:       doc.ID(),
		ChunkIDs:    chunkIDs,
		Collections: collections,
		Sections:    doc.SectionsCited(),
	}, nil
}

func (s *Service) buildDocument(req Request) (document.Document, error) {
	docType, err := document.ParseType(req.DocType)
	if err != nil {
		return document.Document{}, err
	}
	source, err := document.ParseSource(req.Source)
	if err != nil {
		return document.Document{}, err
	}
	language, err := document.ParseLanguage(req.Language)
	if err != nil {
		return document.Document{}, err
	}

	doc, err := document.New(docType, source, req.Title, req.Content, language)
	if err != nil {
		return document.Document{}, err
	}

	if req.CaseNumber != "" || req.Court != "" || req.District != "" || !req.DatePublished.IsZero() {
		doc = doc.WithCaseDetails(req.CaseNumber, req.Court, req.District, req.DatePublished)
	}

	if cited := s.sections.CitedSections(req.Content); len(cited) > 0 {
		doc = doc.WithSectionsCited(cited)
	}

	return doc, nil
}

// targetCollections returns the shared collection plus the type-specific one
// when the document type has a dedicated collection.
func targetCollections(doc document.Document) []string {
	collections := []string{domain.CollectionAll}
	if col := domain.CollectionForType(string(doc.DocType())); col != "" {
		collections = append(collections, col)
	}
	return collections
}
