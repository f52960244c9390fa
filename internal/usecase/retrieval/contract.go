package retrieval

import (
	"context"

	"github.com/satark-ai/satark/internal/domain"
	"github.com/satark-ai/satark/internal/domain/search/filter"
	"github.com/satark-ai/satark/internal/domain/search/result"
)

// VectorSearcher runs KNN search over a collection.
type VectorSearcher interface {
	SearchKNN(
		ctx context.Context, collection string,
		vector []float32, filters filter.Filters, topK int,
	) ([]result.Result, error)
}

// KeywordSearcher runs BM25 search over a collection. Scores are expected
// normalized to [0,1].
type KeywordSearcher interface {
	SearchKeyword(
		ctx context.Context, collection string,
		query string, filters filter.Filters, topK int,
	) ([]result.Result, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
