// Package web is the HTTP presentation layer: a JSON chat API, a WebSocket
// chat stream, mood-trend and session-stat endpoints, health, and Prometheus
// metrics. It owns no conversation logic; every turn goes through the
// injected [Responder].
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/havenchat/haven/internal/health"
	"github.com/havenchat/haven/internal/observe"
	"github.com/havenchat/haven/pkg/dialogue"
	"github.com/havenchat/haven/pkg/history"
)

// Responder executes one chat turn. Implemented by the app turn loop.
type Responder interface {
	Respond(ctx context.Context, sessionID, channel, message string) (dialogue.Response, float64, error)
	Strategy(ctx context.Context, sessionID string) (string, error)
}

// Server is the Haven HTTP server.
type Server struct {
	addr      string
	certFile  string
	keyFile   string
	responder Responder
	store     history.Store
	metrics   *observe.Metrics
	checks    []health.Check
	handler   http.Handler
}

// ServerOption configures a [Server].
type ServerOption func(*Server)

// WithTLS serves HTTPS using the given certificate pair.
func WithTLS(certFile, keyFile string) ServerOption {
	return func(s *Server) {
		s.certFile = certFile
		s.keyFile = keyFile
	}
}

// WithHealthChecks adds readiness checks beyond the built-in history store
// probe.
func WithHealthChecks(checks ...health.Check) ServerOption {
	return func(s *Server) {
		s.checks = append(s.checks, checks...)
	}
}

// NewServer builds the full route table. store is used directly for the
// read-only mood and stats endpoints; chat turns go through responder.
func NewServer(addr string, responder Responder, store history.Store, metrics *observe.Metrics, opts ...ServerOption) *Server {
	s := &Server{
		addr:      addr,
		responder: responder,
		store:     store,
		metrics:   metrics,
	}
	for _, o := range opts {
		o(s)
	}

	mux := http.NewServeMux()
	health.New(append([]health.Check{health.StoreCheck(store)}, s.checks...)...).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/strategy", s.handleStrategy)
	mux.HandleFunc("GET /api/mood", s.handleMood)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /ws", s.handleWS)

	s.handler = observe.Middleware(metrics)(mux)
	return s
}

// Handler returns the fully wrapped route table. Exposed for tests.
func (s *Server) Handler() http.Handler { return s.handler }

// Serve blocks until ctx is cancelled or the listener fails, then shuts the
// server down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if s.certFile != "" {
			err = srv.ListenAndServeTLS(s.certFile, s.keyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// ── Handlers ─────────────────────────────────────────────────────────────────

// chatRequest is the JSON body for POST /api/chat.
type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// chatResponse is the JSON body returned from POST /api/chat and pushed over
// the WebSocket stream.
type chatResponse struct {
	Reply     string  `json:"reply"`
	Category  string  `json:"category"`
	Sentiment float64 `json:"sentiment"`
	Emotion   string  `json:"emotion,omitempty"`
	Stressor  string  `json:"stressor,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" || req.Message == "" {
		http.Error(w, "session_id and message are required", http.StatusBadRequest)
		return
	}

	resp, score, err := s.responder.Respond(r.Context(), req.SessionID, "web", req.Message)
	if err != nil {
		slog.Error("chat turn failed", "session", req.SessionID, "err", err)
		http.Error(w, "failed to process message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Reply:     resp.Text,
		Category:  string(resp.Category),
		Sentiment: score,
		Emotion:   string(resp.Emotion),
		Stressor:  string(resp.Stressor),
	})
}

// strategyRequest is the JSON body for POST /api/strategy.
type strategyRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleStrategy(w http.ResponseWriter, r *http.Request) {
	var req strategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	strategy, err := s.responder.Strategy(r.Context(), req.SessionID)
	if err != nil {
		slog.Error("strategy lookup failed", "session", req.SessionID, "err", err)
		http.Error(w, "failed to pick strategy", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"strategy": strategy})
}

// moodResponse is the JSON body returned from GET /api/mood.
type moodResponse struct {
	Points    []moodPoint `json:"points"`
	Average   float64     `json:"average"`
	Direction string      `json:"direction"`
}

type moodPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Score     float64   `json:"score"`
}

func (s *Server) handleMood(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	points, err := s.store.MoodHistory(r.Context(), sessionID, moodWindow)
	if err != nil {
		slog.Error("mood history failed", "session", sessionID, "err", err)
		http.Error(w, "failed to load mood history", http.StatusInternalServerError)
		return
	}

	resp := moodResponse{
		Points:    make([]moodPoint, 0, len(points)),
		Average:   averageScore(points),
		Direction: trendDirection(points),
	}
	for _, p := range points {
		resp.Points = append(resp.Points, moodPoint{Timestamp: p.Timestamp, Score: p.Score})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	n, err := s.store.ExchangeCount(r.Context(), sessionID)
	if err != nil {
		slog.Error("stats lookup failed", "session", sessionID, "err", err)
		http.Error(w, "failed to load stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"exchanges": n})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "err", err)
	}
}
