// Package retrieval implements hybrid search: query expansion, parallel
// vector and keyword arms, and a weighted score merge.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/satark-ai/satark/internal/domain"
	"github.com/satark-ai/satark/internal/domain/search/filter"
	"github.com/satark-ai/satark/internal/domain/search/result"
	"github.com/satark-ai/satark/internal/metrics"
)

// fallbackIDLen is how much chunk text stands in for a missing id during the merge.
const fallbackIDLen = 50

// Service runs hybrid retrieval over a collection.
type Service struct {
	vector  VectorSearcher
	keyword KeywordSearcher
	embed   Embedder

	vectorWeight float64
	logger       *zap.Logger
}

// New creates a retrieval service. vectorWeight is the vector arm's share of
// the combined score, in [0,1].
func New(
	vector VectorSearcher, keyword KeywordSearcher, embed Embedder,
	vectorWeight float64, logger *zap.Logger,
) (*Service, error) {
	if vectorWeight < 0 || vectorWeight > 1 {
		return nil, fmt.Errorf("vector weight %v out of [0,1]", vectorWeight)
	}
	return &Service{
		vector:       vector,
		keyword:      keyword,
		embed:        embed,
		vectorWeight: vectorWeight,
		logger:       logger,
	}, nil
}

// Search runs the full hybrid pipeline and returns at most topK results
// ordered by combined score. A failed search arm degrades to empty results
// for that arm instead of failing the query; only embedding failure (which
// leaves no vector arm at all and no way to proceed) is returned as an error.
func (s *Service) Search(
	ctx context.Context, collection, query string,
	filters filter.Filters, topK int,
) ([]result.Result, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive")
	}

	start := time.Now()

	expanded := ExpandQuery(query)
	if expanded != query {
		s.logger.Debug("query expanded",
			zap.String("query", query),
			zap.String("expanded", expanded),
		)
	}

	vectorResults, err := s.searchVector(ctx, collection, expanded, filters, topK*2)
	if err != nil {
		metrics.RetrievalRequestsTotal.WithLabelValues(collection, "error").Inc()
		return nil, err
	}

	// Keyword arm runs on the raw query: BM25 rewards exact terms, and the
	// expansion synonyms would dilute them.
	keywordResults := s.searchKeywordArm(ctx, collection, query, filters, topK)

	merged := s.merge(vectorResults, keywordResults)
	if len(merged) > topK {
		merged = merged[:topK]
	}

	metrics.RetrievalRequestsTotal.WithLabelValues(collection, "success").Inc()
	metrics.RetrievalDuration.WithLabelValues(collection).Observe(time.Since(start).Seconds())

	return merged, nil
}

func (s *Service) searchVector(
	ctx context.Context, collection, query string,
	filters filter.Filters, k int,
) ([]result.Result, error) {
	embRes, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	results, err := s.vector.SearchKNN(ctx, collection, embRes.Embedding, filters, k)
	if err != nil {
		// Degrade to keyword-only rather than failing the query.
		metrics.RetrievalDegradedTotal.WithLabelValues("vector").Inc()
		s.logger.Warn("vector search arm failed",
			zap.String("collection", collection), zap.Error(err))
		return nil, nil
	}
	return results, nil
}

func (s *Service) searchKeywordArm(
	ctx context.Context, collection, query string,
	filters filter.Filters, topK int,
) []result.Result {
	results, err := s.keyword.SearchKeyword(ctx, collection, query, filters, topK)
	if err != nil {
		metrics.RetrievalDegradedTotal.WithLabelValues("keyword").Inc()
		if errors.Is(err, domain.ErrKeywordSearchNotSupported) {
			s.logger.Debug("keyword search not supported by store")
		} else {
			s.logger.Warn("keyword search arm failed",
				zap.String("collection", collection), zap.Error(err))
		}
		return nil
	}
	return results
}

// merge combines the two arms by weighted score:
//
//	combined = vector_score*w + keyword_score*(1-w)
//
// A chunk found by only one arm contributes zero from the other. Ties keep
// vector-arm-first insertion order (stable sort).
func (s *Service) merge(vectorResults, keywordResults []result.Result) []result.Result {
	keywordWeight := 1 - s.vectorWeight

	combined := make(map[string]result.Result, len(vectorResults)+len(keywordResults))
	order := make([]string, 0, len(vectorResults)+len(keywordResults))

	for _, r := range vectorResults {
		id := mergeID(r)
		combined[id] = r.WithScore(r.Score() * s.vectorWeight)
		order = append(order, id)
	}

	for _, r := range keywordResults {
		id := mergeID(r)
		if existing, ok := combined[id]; ok {
			combined[id] = existing.WithScore(existing.Score() + r.Score()*keywordWeight)
		} else {
			combined[id] = r.WithScore(r.Score() * keywordWeight)
			order = append(order, id)
		}
	}

	merged := make([]result.Result, 0, len(order))
	for _, id := range order {
		merged = append(merged, combined[id])
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score() > merged[j].Score()
	})
	return merged
}

// mergeID identifies a chunk across arms. Results without an id fall back to
// a content prefix so identical chunks still deduplicate.
func mergeID(r result.Result) string {
	if id := r.ID(); id != "" {
		return id
	}
	content := r.Content()
	if len(content) > fallbackIDLen {
		return content[:fallbackIDLen]
	}
	return content
}
