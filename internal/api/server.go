package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/banshee-data/formcheck/internal/exercise"
	"github.com/banshee-data/formcheck/internal/httputil"
	"github.com/banshee-data/formcheck/internal/i18n"
	"github.com/banshee-data/formcheck/internal/metrics"
	"github.com/banshee-data/formcheck/internal/monitoring"
	"github.com/banshee-data/formcheck/internal/pose"
	"github.com/banshee-data/formcheck/internal/session"
	"github.com/banshee-data/formcheck/internal/version"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	sessions *session.Registry
	metrics  *metrics.Manager
	gatherer prometheus.Gatherer
}

// NewServer returns a Server over the given registry. m and g may be nil,
// in which case request metrics and /metrics are disabled.
func NewServer(sessions *session.Registry, m *metrics.Manager, g prometheus.Gatherer) *Server {
	return &Server{
		sessions: sessions,
		metrics:  m,
		gatherer: g,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration, and
// records them as request metrics.
func (s *Server) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		elapsed := time.Since(start)
		s.metrics.ObserveRequest(r.Method, lrw.statusCode, elapsed)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(elapsed.Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/exercises", s.listExercises)
	mux.HandleFunc("/sessions", s.handleSessions)
	mux.HandleFunc("/sessions/", s.handleSessionByID)
	mux.HandleFunc("/healthz", s.healthz)
	mux.HandleFunc("/version", s.showVersion)
	if s.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	s.sessions.AttachAdminRoutes(mux)
	return mux
}

// ExerciseInfo describes one supported exercise.
type ExerciseInfo struct {
	Type exercise.Type `json:"type"`
	Kind exercise.Kind `json:"kind"`
}

func (s *Server) listExercises(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	types := exercise.Types()
	out := make([]ExerciseInfo, len(types))
	for i, t := range types {
		out[i] = ExerciseInfo{Type: t, Kind: t.Kind()}
	}
	httputil.WriteJSONOK(w, out)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, map[string]any{"status": "ok", "sessions": s.sessions.Len()})
}

func (s *Server) showVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, version.Get())
}

// writeSessionError maps registry errors onto HTTP status codes.
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		httputil.NotFound(w, err.Error())
	case errors.Is(err, session.ErrEnded):
		httputil.Conflict(w, err.Error())
	default:
		monitoring.Logf("session request failed: %v", err)
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

// StartRequest is the body of POST /sessions and PUT /sessions/:id/exercise.
type StartRequest struct {
	ExerciseType string `json:"exercise_type"`
}

// handleSessions handles GET/POST /sessions
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		httputil.WriteJSONOK(w, s.sessions.List())
	case http.MethodPost:
		var req StartRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
		if strings.TrimSpace(req.ExerciseType) == "" {
			httputil.BadRequest(w, "exercise_type is required")
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, s.sessions.Start(req.ExerciseType))
	default:
		httputil.MethodNotAllowed(w)
	}
}

// handleSessionByID handles /sessions/:id and its actions.
func (s *Server) handleSessionByID(w http.ResponseWriter, r *http.Request) {
	pathParts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/sessions/"), "/"), "/")
	if len(pathParts) == 0 || pathParts[0] == "" {
		httputil.BadRequest(w, "missing session ID")
		return
	}
	id := pathParts[0]

	action := ""
	if len(pathParts) > 1 {
		action = pathParts[1]
	}
	if len(pathParts) > 2 {
		httputil.NotFound(w, "unknown session route")
		return
	}

	switch action {
	case "":
		s.handleGetSession(w, r, id)
	case "frames":
		s.handleFrame(w, r, id)
	case "reset":
		s.handleReset(w, r, id)
	case "exercise":
		s.handleSwitch(w, r, id)
	case "end":
		s.handleEnd(w, r, id)
	default:
		httputil.NotFound(w, "unknown session route")
	}
}

// handleGetSession handles GET /sessions/:id
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	snap, err := s.sessions.Get(id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	httputil.WriteJSONOK(w, snap)
}

// FrameRequest is the body of POST /sessions/:id/frames.
type FrameRequest struct {
	Landmarks pose.Frame `json:"landmarks"`
}

// FrameResponse is the reply to POST /sessions/:id/frames.
type FrameResponse struct {
	Result  exercise.Result `json:"result"`
	Stats   session.Stats   `json:"stats"`
	Message string          `json:"message"`
}

// handleFrame handles POST /sessions/:id/frames
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	var req FrameRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if req.Landmarks == nil {
		httputil.BadRequest(w, "landmarks is required")
		return
	}

	res, stats, err := s.sessions.Analyze(id, req.Landmarks)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	httputil.WriteJSONOK(w, FrameResponse{
		Result:  res,
		Stats:   stats,
		Message: i18n.Message(i18n.ResolveTag(r), res.Feedback, res.DurationValue()),
	})
}

// handleReset handles POST /sessions/:id/reset
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	snap, err := s.sessions.Reset(id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	httputil.WriteJSONOK(w, snap)
}

// handleSwitch handles PUT /sessions/:id/exercise
func (s *Server) handleSwitch(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPut {
		httputil.MethodNotAllowed(w)
		return
	}
	var req StartRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.ExerciseType) == "" {
		httputil.BadRequest(w, "exercise_type is required")
		return
	}
	snap, err := s.sessions.Switch(id, req.ExerciseType)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	httputil.WriteJSONOK(w, snap)
}

// handleEnd handles POST /sessions/:id/end
func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	sum, err := s.sessions.End(id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	httputil.WriteJSONOK(w, sum)
}
