// Package chi is the HTTP transport: request decoding, filter parsing,
// domain-error to status mapping, and routing.
package chi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/satark-ai/satark/internal/domain"
	domrag "github.com/satark-ai/satark/internal/domain/rag"
	"github.com/satark-ai/satark/internal/domain/search/filter"
	"github.com/satark-ai/satark/internal/logger"
	"github.com/satark-ai/satark/internal/metrics"
	"github.com/satark-ai/satark/internal/statute"
	healthuc "github.com/satark-ai/satark/internal/usecase/health"
	ingestuc "github.com/satark-ai/satark/internal/usecase/ingest"
	raguc "github.com/satark-ai/satark/internal/usecase/rag"
)

const (
	maxBatchSize = 100
	maxTopK      = 50

	// dateLayout is the wire format for document dates.
	dateLayout = "2006-01-02"
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	rag        *raguc.Service
	ingest     *ingestuc.Service
	normalizer *statute.Normalizer
	health     *healthuc.Service
	logger     *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	rag *raguc.Service,
	ingest *ingestuc.Service,
	normalizer *statute.Normalizer,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		rag:        rag,
		ingest:     ingest,
		normalizer: normalizer,
		health:     health,
		logger:     logger,
	}
}

// Router builds the chi router with middleware and all routes.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogMiddleware(s.logger))
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/query", s.Query)
		r.Post("/documents", s.IngestDocuments)
		r.Post("/sections/convert", s.ConvertSection)
		r.Post("/sections/parse", s.ParseSections)
	})

	return r
}

// --- RAG query ---

type queryRequest struct {
	Query      string            `json:"query"`
	UseCase    string            `json:"use_case"`
	Collection string            `json:"collection"`
	Filters    map[string]string `json:"filters"`
	TopK       int               `json:"top_k"`
}

// Query handles POST /v1/query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	}
	if req.TopK < 0 || req.TopK > maxTopK {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			fmt.Sprintf("top_k must be between 1 and %d", maxTopK))
		return
	}

	useCase, err := domrag.ParseUseCase(req.UseCase)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	filters, err := filter.Parse(req.Filters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.rag.Answer(r.Context(), raguc.Query{
		Text:       req.Query,
		UseCase:    useCase,
		Collection: req.Collection,
		Filters:    filters,
		TopK:       req.TopK,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- Document ingest ---

type ingestDocument struct {
	DocType       string `json:"doc_type"`
	Source        string `json:"source"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Language      string `json:"language"`
	CaseNumber    string `json:"case_number"`
	Court         string `json:"court"`
	District      string `json:"district"`
	DatePublished string `json:"date_published"`
}

type ingestRequest struct {
	Documents []ingestDocument `json:"documents"`
}

// IngestDocuments handles POST /v1/documents.
func (s *Server) IngestDocuments(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Documents) == 0 || len(req.Documents) > maxBatchSize {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			fmt.Sprintf("documents count must be between 1 and %d", maxBatchSize))
		return
	}

	reqs := make([]ingestuc.Request, 0, len(req.Documents))
	for i, d := range req.Documents {
		var published time.Time
		if d.DatePublished != "" {
			t, err := time.Parse(dateLayout, d.DatePublished)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeValidationFailed,
					fmt.Sprintf("documents[%d].date_published %q: expected YYYY-MM-DD", i, d.DatePublished))
				return
			}
			published = t
		}
		reqs = append(reqs, ingestuc.Request{
			DocType:       d.DocType,
			Source:        d.Source,
			Title:         d.Title,
			Content:       d.Content,
			Language:      d.Language,
			CaseNumber:    d.CaseNumber,
			Court:         d.Court,
			District:      d.District,
			DatePublished: published,
		})
	}

	stats := s.ingest.IngestBatch(r.Context(), reqs)

	status := http.StatusOK
	if stats.Ingested == 0 && stats.Failed > 0 {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, stats)
}

// --- Section conversion ---

type convertRequest struct {
	Section string `json:"section"`
	Code    string `json:"code"`
}

type convertResponse struct {
	Source     sectionRef         `json:"source"`
	Equivalent statute.Conversion `json:"equivalent"`
}

type sectionRef struct {
	Code    string `json:"code"`
	Section string `json:"section"`
}

// ConvertSection handles POST /v1/sections/convert.
func (s *Server) ConvertSection(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Section == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "section and code are required")
		return
	}

	code, ok := statute.ParseCode(statute.NormalizeCodeName(req.Code))
	if !ok {
		s.handleDomainError(w, fmt.Errorf("%q: %w", req.Code, domain.ErrUnknownCode))
		return
	}

	conv, err := s.normalizer.Convert(req.Section, code)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{
		Source:     sectionRef{Code: string(code), Section: req.Section},
		Equivalent: conv,
	})
}

// --- Section parsing ---

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	References []statute.Reference `json:"references"`
}

// ParseSections handles POST /v1/sections/parse.
func (s *Server) ParseSections(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "text is required")
		return
	}

	refs := s.normalizer.ParseReferences(req.Text)
	if refs == nil {
		refs = []statute.Reference{}
	}

	writeJSON(w, http.StatusOK, parseResponse{References: refs})
}

// --- Health and metrics ---

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// --- Middleware ---

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogMiddleware emits a canonical log line per request and propagates X-Request-ID.
func requestLogMiddleware(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := log.With(zap.String("request_id", requestID))
			ctx := logger.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
