package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mikey/leads-agent/internal/config"
	"github.com/mikey/leads-agent/internal/core"
	"github.com/mikey/leads-agent/internal/prompt"
)

// eventEnvelope is the outer webhook payload
type eventEnvelope struct {
	Type      string             `json:"type"`
	Challenge string             `json:"challenge,omitempty"`
	Event     *core.InboundEvent `json:"event,omitempty"`
}

// Server receives chat platform webhooks and serves the runtime
// prompt-configuration endpoints.
type Server struct {
	serverCfg  config.ServerConfig
	slackCfg   config.SlackConfig
	dispatcher *Dispatcher
	holder     *prompt.Holder
	logger     *zap.Logger
	httpServer *http.Server
	now        func() time.Time
}

// NewServer creates a new webhook server
func NewServer(cfg *config.Config, dispatcher *Dispatcher, holder *prompt.Holder, logger *zap.Logger) *Server {
	s := &Server{
		serverCfg:  cfg.GetServer(),
		slackCfg:   cfg.GetSlack(),
		dispatcher: dispatcher,
		holder:     holder,
		logger:     logger,
		now:        time.Now,
	}
	s.httpServer = &http.Server{
		Addr:    s.serverCfg.ListenAddress,
		Handler: s.Routes(),
	}
	return s
}

// Routes builds the HTTP router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHealth)
	r.Post("/slack/events", s.handleEvents)
	r.Get("/config/prompt", s.handleGetPromptConfig)
	r.Put("/config/prompt", s.handleUpdatePromptConfig)

	return r
}

// Start begins serving and launches the dispatcher workers
func (s *Server) Start() error {
	s.dispatcher.Start()

	go func() {
		s.logger.Info("Webhook server listening",
			zap.String("address", s.serverCfg.ListenAddress))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop shuts down the HTTP server and drains the dispatcher
func (s *Server) Stop(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.dispatcher.Stop()
	return err
}

// handleHealth reports service liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "leads-agent",
	})
}

// handleEvents verifies, acknowledges and dispatches webhook events. The
// ack never waits on the pipeline: eligible events are queued and processed
// in the background.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}

	timestamp := r.Header.Get("X-Slack-Request-Timestamp")
	signature := r.Header.Get("X-Slack-Signature")
	if !VerifySignature(s.slackCfg.SigningSecret, timestamp, signature, body, s.now()) {
		s.logger.Warn("Rejected webhook with invalid signature",
			zap.String("timestamp", timestamp))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid request signature"})
		return
	}

	var envelope eventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	switch envelope.Type {
	case "url_verification":
		writeJSON(w, http.StatusOK, map[string]string{"challenge": envelope.Challenge})
	case "event_callback":
		if envelope.Event != nil {
			s.dispatcher.Enqueue(envelope.Event)
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	default:
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// handleGetPromptConfig returns the current prompt configuration
func (s *Server) handleGetPromptConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.holder.Get())
}

// handleUpdatePromptConfig atomically replaces the prompt configuration
func (s *Server) handleUpdatePromptConfig(w http.ResponseWriter, r *http.Request) {
	var cfg prompt.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid prompt config"})
		return
	}

	s.holder.Update(&cfg)
	s.logger.Info("Prompt configuration updated")
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
