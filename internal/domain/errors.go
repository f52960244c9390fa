package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidUseCase signals an unrecognized RAG use-case tag.
	ErrInvalidUseCase = errors.New("invalid use case")
	// ErrMappingNotFound signals a section with no entry in the conversion table.
	ErrMappingNotFound = errors.New("section mapping not found")
	// ErrUnknownCode signals a legal code outside the supported set.
	ErrUnknownCode = errors.New("unknown legal code")
	// ErrMalformedDocument signals a document missing content or below the minimum length.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrUnknownDocumentType signals a document type outside the closed set.
	ErrUnknownDocumentType = errors.New("unknown document type")
	// ErrUnknownSource signals a source name outside the closed set.
	ErrUnknownSource = errors.New("unknown source")
	// ErrUnknownLanguage signals a language tag outside the closed set.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrUnknownFilterField signals a metadata filter key outside the closed set.
	ErrUnknownFilterField = errors.New("unknown filter field")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrGenerationUnavailable signals a generation backend failure or failed liveness check.
	ErrGenerationUnavailable = errors.New("generation unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrKeywordSearchNotSupported signals that the backend lacks keyword search.
	ErrKeywordSearchNotSupported = errors.New("keyword search not supported by backend")
)
