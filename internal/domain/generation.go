package domain

import "context"

// GenerateParams tunes a single LLM completion call.
type GenerateParams struct {
	MaxTokens   int
	Temperature float32
	Stop        []string
}

// Generator is the shared text generation contract between layers.
type Generator interface {
	Generate(ctx context.Context, prompt string, params GenerateParams) (string, error)
}
