package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/mapview"
	logpkg "github.com/kailas-cloud/nearby/internal/logger"
	healthuc "github.com/kailas-cloud/nearby/internal/usecase/health"
	searchuc "github.com/kailas-cloud/nearby/internal/usecase/search"
	viewuc "github.com/kailas-cloud/nearby/internal/usecase/view"
)

const (
	maxBodySize       = 1 << 16
	defaultKeepAlive  = 15 * time.Second
	queryParamAsync   = "async"
	pathParamIndex    = "index"
	pathParamMarkerID = "id"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the place search view over HTTP.
type Server struct {
	search        *searchuc.Service
	view          *viewuc.View
	health        *healthuc.Service
	logger        *zap.Logger
	keepAlive     time.Duration
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	view *viewuc.View,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		view:      view,
		health:    health,
		logger:    logger,
		keepAlive: defaultKeepAlive,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidCoordinates, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrPlaceNotFound, http.StatusNotFound, ErrorResponseCodePlaceNotFound),
		sentinelHandler(domain.ErrMarkerNotFound, http.StatusNotFound, ErrorResponseCodeMarkerNotFound),
		sentinelHandler(domain.ErrSuperseded, http.StatusConflict, ErrorResponseCodeSuperseded),
	}
	return s
}

// WithKeepAlive sets the interval of SSE keep-alive comments.
func (s *Server) WithKeepAlive(d time.Duration) *Server {
	if d > 0 {
		s.keepAlive = d
	}
	return s
}

// Routes mounts every handler on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/", s.Page)
	r.Post("/", s.PageAction)
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r gochi.Router) {
		r.Post("/search", s.Search)
		r.Get("/view", s.GetView)
		r.Get("/events", s.Events)
		r.Post("/places/{index}/select", s.SelectPlace)
		r.Post("/markers/{id}/click", s.ClickMarker)
		r.Post("/center/click", s.ClickCenter)
	})
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var async *bool
	if err := runtime.BindQueryParameter("form", true, false, queryParamAsync, r.URL.Query(), &async); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter async")
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if async != nil && *async {
		gen, err := s.search.Submit(r.Context(), req.Query)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusAccepted, SubmitResponse{Generation: gen})
		return
	}

	snap, err := s.search.Search(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToDTO(snap))
}

// GetView handles GET /api/v1/view.
func (s *Server) GetView(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, viewToDTO(s.view.Snapshot()))
}

// SelectPlace handles POST /api/v1/places/{index}/select (list click).
func (s *Server) SelectPlace(w http.ResponseWriter, r *http.Request) {
	var index int
	if err := bindPathParam(pathParamIndex, gochi.URLParam(r, pathParamIndex), &index); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter index")
		return
	}

	if err := s.view.ShowInfoAt(index); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToDTO(s.view.Snapshot()))
}

// ClickMarker handles POST /api/v1/markers/{id}/click.
func (s *Server) ClickMarker(w http.ResponseWriter, r *http.Request) {
	var id uint64
	if err := bindPathParam(pathParamMarkerID, gochi.URLParam(r, pathParamMarkerID), &id); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter id")
		return
	}

	if err := s.view.ShowInfo(mapview.MarkerID(id)); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToDTO(s.view.Snapshot()))
}

// ClickCenter handles POST /api/v1/center/click.
func (s *Server) ClickCenter(w http.ResponseWriter, r *http.Request) {
	if err := s.view.ShowCenterInfo(); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToDTO(s.view.Snapshot()))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

func bindPathParam(name, value string, dest any) error {
	//nolint:wrapcheck // callers map any binding error to 400
	return runtime.BindStyledParameterWithOptions("simple", name, value, dest, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
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

func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrInvalidCoordinates,
		domain.ErrPlaceNotFound,
		domain.ErrMarkerNotFound,
		domain.ErrSuperseded,
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
	log := logpkg.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}
