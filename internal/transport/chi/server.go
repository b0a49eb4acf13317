package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scentdex/internal/domain"
	healthuc "github.com/kailas-cloud/scentdex/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/scentdex/internal/usecase/recommend"
)

// Error response codes returned to clients.
const (
	codeBadRequest             = "bad_request"
	codeValidationFailed       = "validation_failed"
	codeUnknownStrategy        = "unknown_strategy"
	codeNoEmbeddingData        = "no_embedding_data"
	codeInsufficientCandidates = "insufficient_candidates"
	codeInternalError          = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the recommendation engine over HTTP.
type Server struct {
	recommendations *recommenduc.Service
	health          *healthuc.Service
	logger          *zap.Logger
	errorHandlers   []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	recommendations *recommenduc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		recommendations: recommendations,
		health:          health,
		logger:          logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyInput, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrUnknownStrategy, http.StatusBadRequest, codeUnknownStrategy),
		sentinelHandler(domain.ErrNoEmbeddingData, http.StatusServiceUnavailable, codeNoEmbeddingData),
		sentinelHandler(domain.ErrInsufficientCandidates,
			http.StatusUnprocessableEntity, codeInsufficientCandidates),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r gochi.Router) {
	r.Post("/v1/recommendations", s.Recommend)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Recommend handles POST /v1/recommendations.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	domReq, err := req.toDomainRequest()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	res, err := s.recommendations.Generate(r.Context(), &domReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultToResponse(res))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
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

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyInput,
		domain.ErrUnknownStrategy,
		domain.ErrNoEmbeddingData,
		domain.ErrInsufficientCandidates,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

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

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
