// Package index is the vector index repository: it owns collection schemas,
// chunk key layout, and the translation between store search hits and domain
// results.
package index

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/satark-ai/satark/internal/db"
	"github.com/satark-ai/satark/internal/domain"
	"github.com/satark-ai/satark/internal/domain/chunk"
	"github.com/satark-ai/satark/internal/domain/document"
	"github.com/satark-ai/satark/internal/domain/search/filter"
	"github.com/satark-ai/satark/internal/domain/search/result"
)

// Hash field names reserved by the index layer. The double underscore keeps
// them clear of metadata field names.
const (
	fieldChunkText = "__chunk_text"
	fieldVector    = "__vector"
)

// idHashLen is how much of the document content hash goes into chunk ids.
const idHashLen = 16

// store is the consumer interface toward the database (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SupportsTextSearch(ctx context.Context) bool
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo implements the vector/keyword search and chunk persistence contracts.
type Repo struct {
	store     store
	vectorDim int
}

// New creates an index repository bound to a fixed embedding dimension.
func New(s store, vectorDim int) *Repo {
	return &Repo{store: s, vectorDim: vectorDim}
}

// EnsureCollections creates the FT index for every collection that does not
// exist yet. Existing indexes are left untouched.
func (r *Repo) EnsureCollections(ctx context.Context) error {
	for _, name := range domain.Collections() {
		exists, err := r.store.IndexExists(ctx, indexName(name))
		if err != nil {
			return fmt.Errorf("check index %s: %w", name, err)
		}
		if exists {
			continue
		}
		def := collectionDefinition(name, r.vectorDim)
		if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
			return fmt.Errorf("create index %s: %w", name, err)
		}
	}
	return nil
}

// UpsertChunks writes a document's chunks plus flattened metadata into a
// collection. Chunk ids are derived from the content hash and the chunk
// ordinal, so re-ingesting identical content overwrites in place.
func (r *Repo) UpsertChunks(
	ctx context.Context, collection string,
	doc document.Document, chunks []chunk.Chunk, vectors [][]float32,
) ([]string, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("chunks (%d) and vectors (%d) length mismatch", len(chunks), len(vectors))
	}

	meta := documentFields(doc)
	items := make([]db.HashSetItem, 0, len(chunks))
	ids := make([]string, 0, len(chunks))

	for i, c := range chunks {
		if len(vectors[i]) != r.vectorDim {
			return nil, fmt.Errorf(
				"chunk %d has dim %d, index expects %d: %w",
				i, len(vectors[i]), r.vectorDim, domain.ErrVectorDimMismatch,
			)
		}

		id := ChunkID(doc.ID(), c.Index())
		fields := make(map[string]string, len(meta)+6)
		for k, v := range meta {
			fields[k] = v
		}
		fields[fieldChunkText] = c.Text()
		fields[fieldVector] = vectorToBytes(vectors[i])
		fields["section_name"] = c.SectionName()
		fields["is_key_reasoning"] = boolTag(c.KeyReasoning())
		fields["chunk_index"] = strconv.Itoa(c.Index())
		fields["word_count"] = strconv.Itoa(c.WordCount())

		items = append(items, db.HashSetItem{Key: chunkKey(collection, id), Fields: fields})
		ids = append(ids, id)
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return nil, fmt.Errorf("upsert chunks %s: %w", collection, err)
	}
	return ids, nil
}

// DeleteDocument removes every chunk of a document from a collection and
// returns how many keys were deleted.
func (r *Repo) DeleteDocument(ctx context.Context, collection, docID string) (int, error) {
	pattern := chunkKey(collection, idPrefix(docID)+"_chunk_*")
	keys, err := r.store.Scan(ctx, pattern)
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", pattern, err)
	}
	for _, key := range keys {
		if err := r.store.Del(ctx, key); err != nil {
			return 0, fmt.Errorf("del %s: %w", key, err)
		}
	}
	return len(keys), nil
}

// SearchKNN runs vector similarity search. Scores come back as cosine
// similarity in [0,1], higher is more relevant.
func (r *Repo) SearchKNN(
	ctx context.Context, collection string,
	vector []float32, filters filter.Filters, topK int,
) ([]result.Result, error) {
	if len(vector) != r.vectorDim {
		return nil, fmt.Errorf(
			"query vector has dim %d, index expects %d: %w",
			len(vector), r.vectorDim, domain.ErrVectorDimMismatch,
		)
	}

	q := &db.KNNQuery{
		IndexName:    indexName(collection),
		Filters:      filters,
		Vector:       vector,
		K:            topK,
		ReturnFields: returnFields(),
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", collection, err)
	}
	return parseResults(sr, collection), nil
}

// SearchKeyword runs BM25 text search over chunk text. Raw BM25 scores are
// normalized into [0,1] by the top hit so they are comparable with vector
// similarity during the hybrid merge.
func (r *Repo) SearchKeyword(
	ctx context.Context, collection string,
	query string, filters filter.Filters, topK int,
) ([]result.Result, error) {
	if !r.store.SupportsTextSearch(ctx) {
		return nil, domain.ErrKeywordSearchNotSupported
	}

	q := &db.TextQuery{
		IndexName:    indexName(collection),
		Query:        query,
		Filters:      filters,
		TopK:         topK,
		ReturnFields: returnFields(),
	}

	sr, err := r.store.SearchBM25(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search bm25 %s: %w", collection, err)
	}

	results := parseResults(sr, collection)
	normalizeScores(results)
	return results, nil
}

// --- Schema ---

func collectionDefinition(name string, dim int) *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:     indexName(name),
		Prefixes: []string{keyPrefix(name)},
		Fields: []db.IndexField{
			{Name: fieldChunkText, Type: db.IndexFieldText},
			{
				Name: fieldVector, Type: db.IndexFieldVector,
				VectorDim: dim, VectorDistance: db.DistanceCosine,
				VectorM: 16, VectorEFConstruct: 200,
			},
			{Name: "doc_id", Type: db.IndexFieldTag},
			{Name: "doc_type", Type: db.IndexFieldTag},
			{Name: "source", Type: db.IndexFieldTag},
			{Name: "title", Type: db.IndexFieldText},
			{Name: "court", Type: db.IndexFieldTag},
			{Name: "district", Type: db.IndexFieldTag},
			{Name: "language", Type: db.IndexFieldTag},
			{Name: "case_number", Type: db.IndexFieldTag},
			{Name: "sections", Type: db.IndexFieldTag, TagSeparator: ","},
			{Name: "section_name", Type: db.IndexFieldTag},
			{Name: "is_key_reasoning", Type: db.IndexFieldTag},
			{Name: "date", Type: db.IndexFieldNumeric},
			{Name: "chunk_index", Type: db.IndexFieldNumeric},
			{Name: "word_count", Type: db.IndexFieldNumeric},
		},
	}
}

func returnFields() []string {
	return []string{
		fieldChunkText, "__vector_score",
		"doc_id", "doc_type", "source", "title", "court", "district",
		"language", "case_number", "sections", "section_name",
		"is_key_reasoning", "date", "chunk_index", "word_count",
	}
}

// documentFields flattens document metadata into hash fields shared by all
// of its chunks. Empty values are omitted so tag filters do not match them.
func documentFields(doc document.Document) map[string]string {
	fields := map[string]string{
		"doc_id":   doc.ID(),
		"doc_type": string(doc.DocType()),
		"source":   string(doc.Source()),
		"language": string(doc.Language()),
	}
	if doc.Title() != "" {
		fields["title"] = doc.Title()
	}
	if doc.Court() != "" {
		fields["court"] = doc.Court()
	}
	if doc.District() != "" {
		fields["district"] = doc.District()
	}
	if doc.CaseNumber() != "" {
		fields["case_number"] = doc.CaseNumber()
	}
	if !doc.DatePublished().IsZero() {
		fields["date"] = strconv.FormatFloat(filter.EpochDays(doc.DatePublished()), 'f', 0, 64)
	}
	if sections := doc.SectionsCited(); len(sections) > 0 {
		fields["sections"] = strings.Join(sections, ",")
	}
	return fields
}

// --- Key layout ---

// ChunkID builds the stable chunk identifier from a document id and ordinal.
func ChunkID(docID string, ordinal int) string {
	return idPrefix(docID) + "_chunk_" + strconv.Itoa(ordinal)
}

func idPrefix(docID string) string {
	if len(docID) > idHashLen {
		return docID[:idHashLen]
	}
	return docID
}

func keyPrefix(collection string) string {
	return domain.KeyPrefix + collection + ":"
}

func chunkKey(collection, id string) string {
	return keyPrefix(collection) + id
}

func indexName(collection string) string {
	return domain.KeyPrefix + collection + ":idx"
}

// --- Result conversion ---

func parseResults(sr *db.SearchResult, collection string) []result.Result {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	prefix := keyPrefix(collection)
	results := make([]result.Result, 0, len(sr.Entries))

	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, prefix)
		content := entry.Fields[fieldChunkText]
		delete(entry.Fields, fieldChunkText)
		delete(entry.Fields, fieldVector)
		results = append(results, result.New(id, entry.Score, content, entry.Fields))
	}

	return results
}

// normalizeScores divides every score by the maximum, mapping raw BM25 values
// into [0,1]. A zero or negative max leaves the scores untouched.
func normalizeScores(results []result.Result) {
	var maxScore float64
	for i := range results {
		if s := results[i].Score(); s > maxScore {
			maxScore = s
		}
	}
	if maxScore <= 0 {
		return
	}
	for i := range results {
		results[i] = results[i].WithScore(results[i].Score() / maxScore)
	}
}

func boolTag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
