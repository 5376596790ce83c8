// Package mock serves a stand-in for the application under test: every
// catalog endpoint answers, and individual paths can be made slow or
// failing.
package mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maxvaer/smokecheck/internal/catalog"
)

// SessionCookie is the cookie set by /api/csrf.
const SessionCookie = "smokecheck_session"

// Options configures the mock target.
type Options struct {
	Catalog catalog.Catalog          // routes to serve; empty = catalog.Default()
	Status  map[string]int           // forced status per path
	Delay   map[string]time.Duration // added latency per path
}

// Server is an http.Handler for the mock target.
type Server struct {
	opts   Options
	router chi.Router

	mu       sync.Mutex
	sessions map[string]string // session id -> csrf token
	requests []string
}

type statusResponse struct {
	OK        bool      `json:"ok"`
	Path      string    `json:"path"`
	Body      any       `json:"body,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// New builds the mock router.
func New(opts Options) *Server {
	if len(opts.Catalog.Groups) == 0 {
		opts.Catalog = catalog.Default()
	}
	s := &Server{opts: opts, sessions: make(map[string]string)}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Use(s.overrides)

	r.Get("/api/csrf", s.csrf)
	r.Get("/api/auth-status", s.authStatus)

	for _, e := range opts.Catalog.Entries() {
		if e.Method == http.MethodGet && (e.Path == "/api/csrf" || e.Path == "/api/auth-status") {
			continue
		}
		switch e.Method {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
			r.MethodFunc(e.Method, e.Path, s.endpoint)
		}
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Requests returns "METHOD /path" for every request served, in order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) overrides(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if d, ok := s.opts.Delay[r.URL.Path]; ok {
			select {
			case <-time.After(d):
			case <-r.Context().Done():
				return
			}
		}
		if code, ok := s.opts.Status[r.URL.Path]; ok {
			writeJSON(w, code, map[string]string{"error": http.StatusText(code)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) csrf(w http.ResponseWriter, r *http.Request) {
	sid := uuid.New().String()
	token := uuid.New().String()

	s.mu.Lock()
	s.sessions[sid] = token
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: sid, Path: "/", HttpOnly: true})
	writeJSON(w, http.StatusOK, map[string]string{"csrfToken": token})
}

func (s *Server) authStatus(w http.ResponseWriter, r *http.Request) {
	authenticated := false
	if c, err := r.Cookie(SessionCookie); err == nil {
		s.mu.Lock()
		token, ok := s.sessions[c.Value]
		s.mu.Unlock()
		authenticated = ok && token != "" && r.Header.Get("X-CSRF-Token") == token
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": authenticated})
}

func (s *Server) endpoint(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/dashboard") {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>%s</title></head><body></body></html>", r.URL.Path)
		return
	}

	resp := statusResponse{
		OK:        true,
		Path:      r.URL.Path,
		Timestamp: time.Now(),
		RequestID: uuid.New().String(),
	}

	code := http.StatusOK
	if r.Method == http.MethodPost || r.Method == http.MethodPut {
		var body any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		resp.Body = body
		code = http.StatusCreated
	}
	writeJSON(w, code, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// ListenAndServe runs the mock target on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, opts Options, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           New(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mock target listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("mock shutdown: %w", err)
	}
	logger.Info("mock target stopped")
	return nil
}
