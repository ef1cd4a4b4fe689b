package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rohmanhakim/flowmap/internal/scheduler"
	"github.com/rohmanhakim/flowmap/pkg/types"
	"github.com/rohmanhakim/flowmap/pkg/urlutil"
	"github.com/sirupsen/logrus"
)

const maxRequestBodyBytes = 1 << 20

// Mapper produces a flow map for one crawl request.
type Mapper interface {
	Map(ctx context.Context, req types.CrawlRequest) (types.MapResult, error)
}

// Server exposes the flow mapper over HTTP.
type Server struct {
	mapper          Mapper
	logger          *logrus.Logger
	allowedOrigin   string
	defaultMaxDepth int
	mux             *http.ServeMux
}

// NewServer wires handlers onto an HTTP mux. A nil logger discards output.
func NewServer(mapper Mapper, logger *logrus.Logger, allowedOrigin string, defaultMaxDepth int) *Server {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	s := &Server{
		mapper:          mapper,
		logger:          logger,
		allowedOrigin:   allowedOrigin,
		defaultMaxDepth: defaultMaxDepth,
		mux:             http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP satisfies the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.withCORS(s.mux).ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/status", s.handleHealth)
	s.mux.HandleFunc("/api/crawl", s.handleCrawl)
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("api server listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("api server shutting down")
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.allowedOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
			w.Header().Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleCrawl(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var body CrawlRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if !validSeed(body.URL) {
		writeError(w, http.StatusBadRequest, msgInvalidURL)
		return
	}
	maxDepth := s.defaultMaxDepth
	if body.MaxDepth != nil {
		maxDepth = *body.MaxDepth
	}
	if maxDepth < 0 {
		writeError(w, http.StatusBadRequest, msgInvalidDepth)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"seed_url":  body.URL,
		"max_depth": maxDepth,
		"auth":      body.Credentials.Complete(),
	}).Info("crawl requested")

	result, err := s.mapper.Map(r.Context(), types.CrawlRequest{
		SeedURL:     body.URL,
		MaxDepth:    maxDepth,
		Credentials: body.Credentials,
	})
	if err != nil {
		if scheduler.IsInvalidRequest(err) {
			writeError(w, http.StatusBadRequest, msgInvalidURL)
			return
		}
		s.logger.WithError(err).WithField("seed_url", body.URL).Error("mapping failed")
		writeError(w, http.StatusInternalServerError, msgMapFailed+err.Error())
		return
	}

	s.logger.WithFields(logrus.Fields{
		"crawl_id":    result.CrawlID,
		"total_pages": result.TotalPages,
		"global_nav":  len(result.GlobalNav),
	}).Info("crawl mapped")

	writeJSON(w, http.StatusOK, CrawlResponse{
		Success:   true,
		MapResult: result,
	})
}

// validSeed accepts absolute http(s) URLs with a host.
func validSeed(raw string) bool {
	seed, err := urlutil.ParseSeed(raw)
	if err != nil {
		return false
	}
	return urlutil.IsHTTP(seed)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
