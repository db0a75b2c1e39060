// Package server implements the backend chat endpoint the widget talks to.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/netutil"

	"github.com/diogo/tutorchat/internal/logging"
	"github.com/diogo/tutorchat/internal/models"
)

// maxRequestBytes bounds the accepted request body
const maxRequestBytes = 1 << 20

// Server serves the chat endpoint
type Server struct {
	addr      string
	chatPath  string
	generator Generator
	logger    zerolog.Logger
	maxConns  int

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the server logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logging.Component(l, "server")
	}
}

// WithChatPath overrides the chat route
func WithChatPath(path string) Option {
	return func(s *Server) {
		if path != "" {
			s.chatPath = path
		}
	}
}

// WithMaxConns caps simultaneous connections. Further clients wait in the
// accept queue. n <= 0 means no limit.
func WithMaxConns(n int) Option {
	return func(s *Server) {
		s.maxConns = n
	}
}

// New creates a server listening on addr. A nil generator makes every chat
// request fail with the missing API key error.
func New(addr string, gen Generator, opts ...Option) *Server {
	s := &Server{
		addr:      addr,
		chatPath:  models.ChatPath,
		generator: gen,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with all routes registered
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.chatPath, s.handleChat)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start begins serving in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	if s.maxConns > 0 {
		ln = netutil.LimitListener(ln, s.maxConns)
	}

	s.mu.Lock()
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.logger.Info().Str("addr", ln.Addr().String()).Str("path", s.chatPath).Int("max_conns", s.maxConns).Msg("chat endpoint started")

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("chat endpoint stopped")
		}
	}()
	return nil
}

// Addr returns the bound address once started, or the configured one
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.httpServer = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, models.ChatResponse{Error: models.ErrTextInvalidMethod})
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		s.logger.Warn().Err(err).Msg("invalid chat request body")
		writeJSON(w, http.StatusInternalServerError, models.ChatResponse{Error: err.Error()})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeJSON(w, http.StatusBadRequest, models.ChatResponse{Error: models.ErrTextNoMessage})
		return
	}

	if s.generator == nil {
		s.logger.Error().Msg("no generator configured, API key missing")
		writeJSON(w, http.StatusInternalServerError, models.ChatResponse{Error: models.ErrTextNoAPIKey})
		return
	}

	start := time.Now()
	reply, err := s.generator.Generate(r.Context(), message)
	if err != nil {
		s.logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("generation failed")
		writeJSON(w, http.StatusInternalServerError, models.ChatResponse{Error: err.Error()})
		return
	}

	s.logger.Debug().
		Int("message_len", len(message)).
		Int("reply_len", len(reply)).
		Dur("elapsed", time.Since(start)).
		Msg("chat reply sent")
	// Written as a map so an empty reply still carries the response field.
	writeJSON(w, http.StatusOK, map[string]string{"response": reply})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"generator": s.generator != nil,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
