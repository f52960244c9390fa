package rag

import (
	"context"

	"github.com/satark-ai/satark/internal/domain"
	"github.com/satark-ai/satark/internal/domain/search/filter"
	"github.com/satark-ai/satark/internal/domain/search/result"
)

// Retriever runs hybrid search and returns ranked chunks.
type Retriever interface {
	Search(
		ctx context.Context, collection, query string,
		filters filter.Filters, topK int,
	) ([]result.Result, error)
}

// Generator produces a completion for an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, params domain.GenerateParams) (string, error)
	HealthCheck(ctx context.Context) error
}
