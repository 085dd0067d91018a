// Package adminapi implements the Admin Surface (C6): a small chi.Router
// HTTP+WebSocket control plane over the three worker supervisors, grounded
// on internal/httpapi/server.go's routing and upgrader conventions stripped
// of session/turn-streaming concerns that are out of scope here.
package adminapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/antoniostano/turncore/internal/observability"
	"github.com/antoniostano/turncore/internal/workerchan"
)

// WorkerSupervisor is the subset of workerchan.Supervisor the admin surface
// needs for status snapshots, manual restarts, and draining.
type WorkerSupervisor interface {
	Status() workerchan.Status
	Restart(ctx context.Context) error
	Drain(grace time.Duration)
}

// Server is the C6 admin surface (spec.md §6's "control surface";
// SPEC_FULL.md §4.6).
type Server struct {
	workers       map[string]WorkerSupervisor
	metrics       *observability.Metrics
	drainGrace    time.Duration
	allowAnyOrigin bool
	upgrader      websocket.Upgrader
	draining      bool
}

// New builds a Server. workers is keyed by worker id (e.g. "emotion",
// "response", "tts") and is used both for status listing and for resolving
// POST /workers/{id}/restart.
func New(workers map[string]WorkerSupervisor, metrics *observability.Metrics, drainGrace time.Duration, allowAnyOrigin bool) *Server {
	if drainGrace <= 0 {
		drainGrace = 5 * time.Second
	}
	s := &Server{
		workers:        workers,
		metrics:        metrics,
		drainGrace:     drainGrace,
		allowAnyOrigin: allowAnyOrigin,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if s.allowAnyOrigin {
				return true
			}
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" {
				return true
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false
			}
			return strings.EqualFold(u.Host, r.Host)
		},
	}
	return s
}

// Router builds the admin HTTP surface (SPEC_FULL.md §4.6's route list).
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/workers", s.handleListWorkers)
	r.Post("/workers/{id}/restart", s.handleRestartWorker)
	r.Post("/drain", s.handleDrain)
	r.Get("/workers/stream", s.handleWorkerStream)
	r.Get("/workers/stages", s.handleWorkerStages)
	if s.metrics != nil {
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			observability.MetricsHandler().ServeHTTP(w, r)
		})
	}
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"draining": s.draining,
	})
}

func (s *Server) handleListWorkers(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) snapshot() []workerchan.Status {
	statuses := make([]workerchan.Status, 0, len(s.workers))
	for _, sup := range s.workers {
		statuses = append(statuses, sup.Status())
	}
	return statuses
}

func (s *Server) handleRestartWorker(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sup, ok := s.workers[id]
	if !ok {
		respondError(w, http.StatusNotFound, "worker_not_found", "no worker with id "+id)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	if err := sup.Restart(ctx); err != nil {
		respondError(w, http.StatusInternalServerError, "restart_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, sup.Status())
}

func (s *Server) handleDrain(w http.ResponseWriter, _ *http.Request) {
	s.draining = true
	if s.metrics != nil {
		s.metrics.ResetTurnStages()
	}
	go func() {
		for _, sup := range s.workers {
			sup.Drain(s.drainGrace)
		}
	}()
	respondJSON(w, http.StatusAccepted, map[string]any{"status": "draining"})
}

// handleWorkerStages exposes the per-stage latency percentile window
// (internal/observability's turn_stage_window.go) so operators can see
// p50/p95/p99 against each stage's soft deadline (spec.md §4.5) without
// scraping /metrics' raw histogram buckets.
func (s *Server) handleWorkerStages(w http.ResponseWriter, _ *http.Request) {
	if s.metrics == nil {
		respondJSON(w, http.StatusOK, observability.TurnStageSnapshot{})
		return
	}
	respondJSON(w, http.StatusOK, s.metrics.SnapshotTurnStages())
}

func (s *Server) handleWorkerStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(s.snapshot()); err != nil {
				return
			}
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
