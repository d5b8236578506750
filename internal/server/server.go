// Package server exposes the suggest/report optimization protocol over HTTP.
// Each optimization run is a session: the caller creates one with the domain
// bounds, then alternates between fetching the next suggestion and reporting
// the observed objective value.
package server

import (
	"encoding/json"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simplexopt/simplexopt/internal/config"
	"github.com/simplexopt/simplexopt/internal/optimization"
	"github.com/simplexopt/simplexopt/internal/optimization/simplex"
)

// Server manages optimization sessions and serves the REST API around them.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *Metrics

	mu       sync.RWMutex
	sessions map[string]*session
}

// session is one optimization run. The optimizer itself is single-threaded,
// so every call into it happens under the session mutex.
type session struct {
	mu        sync.Mutex
	optimizer *simplex.Optimizer
	created   time.Time
}

// NewServer creates a server with the given config, logger and metrics.
func NewServer(cfg *config.Config, logger *zap.Logger, metrics *Metrics) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		sessions: make(map[string]*session),
	}
}

// RegisterRoutes mounts the session API on the given router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/{id}", s.handleStatus)
		r.Delete("/{id}", s.handleClose)
		r.Get("/{id}/suggestion", s.handleSuggestion)
		r.Post("/{id}/report", s.handleReport)
	})
}

type createRequest struct {
	Bounds           [][2]float64 `json:"bounds"`
	Minimize         bool         `json:"minimize"`
	ExplorationDepth *int         `json:"exploration_depth,omitempty"`
}

type createResponse struct {
	ID         string `json:"id"`
	Dimensions int    `json:"dimensions"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	depth := s.cfg.Optimizer.ExplorationDepth
	if req.ExplorationDepth != nil {
		if *req.ExplorationDepth < 0 {
			s.respondError(w, http.StatusBadRequest, "exploration_depth must be non-negative")
			return
		}
		depth = *req.ExplorationDepth
	}

	opt, err := simplex.New(req.Bounds, req.Minimize)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	opt.SetExplorationDepth(depth)

	id := uuid.NewString()

	s.mu.Lock()
	if len(s.sessions) >= s.cfg.Optimizer.MaxSessions {
		s.mu.Unlock()
		s.respondError(w, http.StatusServiceUnavailable, "session limit reached")
		return
	}
	s.sessions[id] = &session{optimizer: opt, created: time.Now()}
	s.mu.Unlock()

	s.metrics.SessionsCreated.Inc()
	s.metrics.SessionsOpen.Inc()
	s.logger.Info("session created",
		zap.String("session", id),
		zap.Int("dimensions", opt.Dimensions()),
		zap.Bool("minimize", req.Minimize),
		zap.Int("exploration_depth", depth),
	)

	s.respondJSON(w, http.StatusCreated, createResponse{ID: id, Dimensions: opt.Dimensions()})
}

type suggestionResponse struct {
	Coordinates []float64 `json:"coordinates"`
}

func (s *Server) handleSuggestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, ok := s.lookup(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "unknown session")
		return
	}

	sess.mu.Lock()
	coords := sess.optimizer.NextSuggestion()
	sess.mu.Unlock()

	s.metrics.Suggestions.Inc()
	s.respondJSON(w, http.StatusOK, suggestionResponse{Coordinates: coords})
}

type reportRequest struct {
	Value float64 `json:"value"`
}

type reportResponse struct {
	BestValue       float64   `json:"best_value"`
	BestCoordinates []float64 `json:"best_coordinates"`
	Evaluations     int       `json:"evaluations"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, ok := s.lookup(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "unknown session")
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if math.IsNaN(req.Value) || math.IsInf(req.Value, 0) {
		s.respondError(w, http.StatusBadRequest, "value must be finite")
		return
	}

	sess.mu.Lock()
	bestValue, bestCoords := sess.optimizer.Report(req.Value)
	evaluations := len(sess.optimizer.History())
	queued := sess.optimizer.QueueLen()
	sess.mu.Unlock()

	s.metrics.Reports.Inc()
	s.metrics.BestValue.WithLabelValues(id).Set(bestValue)
	s.metrics.QueueSize.WithLabelValues(id).Set(float64(queued))

	s.respondJSON(w, http.StatusOK, reportResponse{
		BestValue:       bestValue,
		BestCoordinates: bestCoords,
		Evaluations:     evaluations,
	})
}

type statusResponse struct {
	ID          string                 `json:"id"`
	Dimensions  int                    `json:"dimensions"`
	Minimize    bool                   `json:"minimize"`
	Evaluations int                    `json:"evaluations"`
	QueueSize   int                    `json:"queue_size"`
	Best        *optimization.Solution `json:"best,omitempty"`
	Created     time.Time              `json:"created"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, ok := s.lookup(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "unknown session")
		return
	}

	sess.mu.Lock()
	resp := statusResponse{
		ID:          id,
		Dimensions:  sess.optimizer.Dimensions(),
		Minimize:    sess.optimizer.Minimizing(),
		Evaluations: len(sess.optimizer.History()),
		QueueSize:   sess.optimizer.QueueLen(),
		Best:        sess.optimizer.BestSolution(),
		Created:     sess.created,
	}
	sess.mu.Unlock()

	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		s.respondError(w, http.StatusNotFound, "unknown session")
		return
	}

	s.metrics.SessionsClosed.Inc()
	s.metrics.SessionsOpen.Dec()
	s.metrics.BestValue.DeleteLabelValues(id)
	s.metrics.QueueSize.DeleteLabelValues(id)
	s.logger.Info("session closed", zap.String("session", id))

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookup(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
