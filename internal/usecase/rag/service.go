// Package rag orchestrates the full query pipeline: hybrid retrieval,
// context assembly with citations, prompt templating, and generation with
// graceful degradation when the LLM is unavailable.
package rag

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/satark-ai/satark/internal/domain"
	domrag "github.com/satark-ai/satark/internal/domain/rag"
	"github.com/satark-ai/satark/internal/domain/search/filter"
)

// Generation defaults, matching the low-temperature factual profile the
// prompts are written for.
const (
	defaultMaxAnswerTokens = 2048
	defaultTemperature     = 0.1
)

// Query is a single RAG request after transport-level validation.
type Query struct {
	Text       string
	UseCase    domrag.UseCase
	Collection string
	Filters    filter.Filters
	TopK       int
}

// Service runs the RAG pipeline.
type Service struct {
	retriever Retriever
	generator Generator

	vectorWeight     float64
	defaultTopK      int
	maxContextTokens int
	logger           *zap.Logger
}

// New creates a RAG service. defaultTopK applies to queries that do not set
// their own result count.
func New(
	retriever Retriever, generator Generator,
	vectorWeight float64, defaultTopK, maxContextTokens int, logger *zap.Logger,
) *Service {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &Service{
		retriever:        retriever,
		generator:        generator,
		vectorWeight:     vectorWeight,
		defaultTopK:      defaultTopK,
		maxContextTokens: maxContextTokens,
		logger:           logger,
	}
}

// Answer executes retrieve, assemble, generate for one query. Generation
// failures never fail the request: the response degrades to retrieved
// citations with a placeholder answer. Only retrieval failure is an error.
func (s *Service) Answer(ctx context.Context, q Query) (*domrag.Response, error) {
	if q.Collection == "" {
		q.Collection = domain.CollectionAll
	}
	if q.TopK <= 0 {
		q.TopK = s.defaultTopK
	}

	resp := &domrag.Response{
		Query:   q.Text,
		UseCase: q.UseCase,
		State:   domrag.StateReceived,
		Metadata: domrag.Metadata{
			VectorWeight:     s.vectorWeight,
			MaxContextTokens: s.maxContextTokens,
		},
	}

	s.logger.Info("rag query",
		zap.String("use_case", string(q.UseCase)),
		zap.String("collection", q.Collection),
		zap.Int("top_k", q.TopK),
	)

	resp.State = domrag.StateRetrieving
	results, err := s.retriever.Search(ctx, q.Collection, q.Text, q.Filters, q.TopK)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}
	resp.NumResults = len(results)

	contextStr, citations := assembleContext(results, s.maxContextTokens)
	resp.Context = contextStr
	resp.Citations = citations
	resp.State = domrag.StateContextAssembled

	if err := s.generator.HealthCheck(ctx); err != nil {
		s.logger.Warn("llm unavailable, returning retrieved context only", zap.Error(err))
		return s.degrade(resp, "llm unavailable", nil), nil
	}

	resp.State = domrag.StateGenerating
	prompt := BuildPrompt(q.UseCase, contextStr, q.Text)

	answer, err := s.generator.Generate(ctx, prompt, domain.GenerateParams{
		MaxTokens:   defaultMaxAnswerTokens,
		Temperature: defaultTemperature,
	})
	if err != nil {
		s.logger.Error("llm generation failed", zap.Error(err))
		return s.degrade(resp, "generation failed", err), nil
	}

	s.logger.Info("generated response", zap.Int("chars", len(answer)))
	resp.Answer = answer
	resp.State = domrag.StateCompleted
	return resp, nil
}

// degrade finalizes a response on the no-LLM path. Citations and context are
// kept so retrieval value is not lost. A non-nil cause is surfaced in the
// placeholder answer so the caller sees what the LLM actually failed with.
func (s *Service) degrade(resp *domrag.Response, reason string, cause error) *domrag.Response {
	label := "LLM unavailable"
	if cause != nil {
		label = "LLM error: " + cause.Error()
	}
	resp.Answer = fmt.Sprintf(
		"[%s] Retrieved %d relevant documents. See citations below.",
		label, resp.NumResults,
	)
	resp.State = domrag.StateDegraded
	resp.Metadata.DegradedReason = reason
	return resp
}
