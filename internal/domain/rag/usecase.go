// Package rag holds the RAG pipeline value objects: use-case tags, pipeline
// states, and the structured response returned for every query.
package rag

import (
	"fmt"

	"github.com/satark-ai/satark/internal/domain"
)

// UseCase selects the prompt template for a query, closed set.
type UseCase string

// Use-case constants.
const (
	// UseCaseSOP suggests investigation steps from similar past cases.
	UseCaseSOP UseCase = "sop"
	// UseCaseChargesheet reviews a draft chargesheet for completeness.
	UseCaseChargesheet UseCase = "chargesheet"
	// UseCaseGeneral answers legal knowledge questions.
	UseCaseGeneral UseCase = "general"
)

// ParseUseCase validates a raw use-case tag. Unknown tags are a client error,
// never silently defaulted.
func ParseUseCase(s string) (UseCase, error) {
	switch UseCase(s) {
	case UseCaseSOP, UseCaseChargesheet, UseCaseGeneral:
		return UseCase(s), nil
	case "":
		return UseCaseGeneral, nil
	default:
		return "", fmt.Errorf("%q: %w", s, domain.ErrInvalidUseCase)
	}
}

// State is a stage of the RAG pipeline state machine.
type State string

// Pipeline states. Degraded is terminal alongside Completed.
const (
	StateReceived         State = "received"
	StateRetrieving       State = "retrieving"
	StateContextAssembled State = "context_assembled"
	StateGenerating       State = "generating"
	StateCompleted        State = "completed"
	StateDegraded         State = "degraded"
)
