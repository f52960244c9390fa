package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/satark-ai/satark/internal/domain"
)

// Error codes returned in JSON error responses.
const (
	codeBadRequest            = "bad_request"
	codeValidationFailed      = "validation_failed"
	codeNotFound              = "not_found"
	codeMappingNotFound       = "section_mapping_not_found"
	codeEmbeddingProvider     = "embedding_provider_error"
	codeKeywordNotSupported   = "keyword_search_not_supported"
	codeGenerationUnavailable = "generation_unavailable"
	codeInternalError         = "internal_error"
)

// errorResponse is the uniform JSON error payload.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// domainErrorHandlers maps sentinel errors to HTTP responses, in match order.
var domainErrorHandlers = []errorHandler{
	sentinelHandler(domain.ErrInvalidUseCase, http.StatusBadRequest, codeValidationFailed),
	sentinelHandler(domain.ErrUnknownDocumentType, http.StatusBadRequest, codeValidationFailed),
	sentinelHandler(domain.ErrUnknownSource, http.StatusBadRequest, codeValidationFailed),
	sentinelHandler(domain.ErrUnknownLanguage, http.StatusBadRequest, codeValidationFailed),
	sentinelHandler(domain.ErrUnknownFilterField, http.StatusBadRequest, codeValidationFailed),
	sentinelHandler(domain.ErrMalformedDocument, http.StatusBadRequest, codeValidationFailed),
	sentinelHandler(domain.ErrUnknownCode, http.StatusBadRequest, codeValidationFailed),
	sentinelHandler(domain.ErrVectorDimMismatch, http.StatusBadRequest, codeValidationFailed),
	sentinelHandler(domain.ErrMappingNotFound, http.StatusNotFound, codeMappingNotFound),
	sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
	sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProvider),
	sentinelHandler(domain.ErrKeywordSearchNotSupported, http.StatusNotImplemented, codeKeywordNotSupported),
	sentinelHandler(domain.ErrGenerationUnavailable, http.StatusServiceUnavailable, codeGenerationUnavailable),
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidUseCase,
		domain.ErrUnknownDocumentType,
		domain.ErrUnknownSource,
		domain.ErrUnknownLanguage,
		domain.ErrUnknownFilterField,
		domain.ErrMalformedDocument,
		domain.ErrUnknownCode,
		domain.ErrVectorDimMismatch,
		domain.ErrMappingNotFound,
		domain.ErrNotFound,
		domain.ErrEmbeddingProviderError,
		domain.ErrKeywordSearchNotSupported,
		domain.ErrGenerationUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range domainErrorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
