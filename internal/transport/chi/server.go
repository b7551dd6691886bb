package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/djinnsearch/internal/domain"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/profile"
	"github.com/kailas-cloud/djinnsearch/internal/logger"
	healthuc "github.com/kailas-cloud/djinnsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/djinnsearch/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Searcher runs a search submission.
type Searcher interface {
	Search(ctx context.Context, p searchuc.Params) (searchuc.Payload, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server serves the search HTTP API.
type Server struct {
	search        Searcher
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrUnauthenticated, http.StatusUnauthorized, ErrorResponseCodeUnauthorized),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrUnknownProfile, http.StatusNotFound, ErrorResponseCodeUnknownProfile),
		sentinelHandler(domain.ErrDirectoryUnavailable,
			http.StatusInternalServerError, ErrorResponseCodeDirectoryUnavailable),
		sentinelHandler(domain.ErrEngineUnavailable,
			http.StatusInternalServerError, ErrorResponseCodeSearchUnavailable),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/search", s.Search)
	r.Get("/groups/{group}/search", func(w http.ResponseWriter, r *http.Request) {
		group, err := bindGroupPath(chi.URLParam(r, "group"))
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
			return
		}
		s.SearchGroup(w, r, group)
	})
	r.Get("/users/{owner}/search", func(w http.ResponseWriter, r *http.Request) {
		owner, err := bindOwnerPath(chi.URLParam(r, "owner"))
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
			return
		}
		s.SearchUser(w, r, owner)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	s.runSearch(w, r, profile.Default(), "")
}

// SearchGroup handles GET /groups/{group}/search.
func (s *Server) SearchGroup(w http.ResponseWriter, r *http.Request, group string) {
	s.runSearch(w, r, profile.GroupContent(), group)
}

// SearchUser handles GET /users/{owner}/search.
func (s *Server) SearchUser(w http.ResponseWriter, r *http.Request, owner string) {
	s.runSearch(w, r, profile.UserContent(), owner)
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, prof profile.Profile, fixed string) {
	ajax := isAjax(r)

	params, bindErrs := bindSearchParams(r.URL.Query())
	if bindErrs != nil {
		writePayload(w, ajax, searchuc.NewPresenter().NoQuery(deref(params.Q), bindErrs))
		return
	}

	ctx := logger.WithFields(r.Context(), zap.String("profile", prof.Name()))
	payload, err := s.search.Search(ctx, searchuc.Params{
		Profile:  prof,
		Username: UserFromContext(r.Context()),
		Input:    params.toInput(),
		Fixed:    fixed,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writePayload(w, ajax, payload)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	// A degraded directory still serves public content.
	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// isAjax reports whether the request came from the page's own script.
func isAjax(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

// writePayload renders a search payload. Ajax callers get the same JSON as
// text/plain so the page script can insert it without content sniffing.
func writePayload(w http.ResponseWriter, ajax bool, p searchuc.Payload) {
	if ajax {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(payloadToResponse(p))
		return
	}
	writeJSON(w, http.StatusOK, payloadToResponse(p))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrUnauthenticated,
		domain.ErrInvalidQuery,
		domain.ErrUnknownProfile,
		domain.ErrDirectoryUnavailable,
		domain.ErrEngineUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func payloadToResponse(p searchuc.Payload) SearchResponse {
	hits := make([]SearchHit, len(p.Hits))
	for i, h := range p.Hits {
		hits[i] = SearchHit{ID: h.ID(), Score: h.Score(), Fields: h.Fields()}
	}

	facets := make(map[string][]FacetValue, len(p.Facets))
	for dim, values := range p.Facets {
		fv := make([]FacetValue, len(values))
		for i, v := range values {
			fv[i] = FacetValue{Value: v.Value, Count: v.Count}
		}
		facets[string(dim)] = fv
	}

	return SearchResponse{
		NoQuery:        p.NoQuery,
		Query:          p.Query,
		Total:          p.Total,
		Page:           p.Page,
		PerPage:        p.PerPage,
		HasNext:        p.HasNext,
		Hits:           hits,
		Facets:         facets,
		Suggestion:     p.Suggestion,
		IsTaintedAndOr: p.Tainted,
		Errors:         p.Errors,
	}
}
