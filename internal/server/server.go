// Package server provides the HTTP API for resume ingestion and profile
// updates.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobboard/internal/observability"
	"github.com/jonathan/jobboard/internal/profile"
	"github.com/jonathan/jobboard/internal/resume"
	"github.com/jonathan/jobboard/internal/server/middleware"
	"github.com/jonathan/jobboard/internal/server/ratelimit"
)

// DefaultMaxUploadBytes caps multipart uploads when Options leaves it unset.
const DefaultMaxUploadBytes = 10 << 20

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Deps are the collaborators the handlers call.
type Deps struct {
	Pipeline *resume.Pipeline
	Profiles *profile.Service
	JWT      *JWTService
	Logger   zerolog.Logger
	Checks   map[string]HealthCheck
}

// Options holds server settings.
type Options struct {
	Addr            string
	MaxUploadBytes  int64
	RateLimit       *ratelimit.Config // nil disables limiting
	ShutdownTimeout time.Duration
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	pipeline        *resume.Pipeline
	profiles        *profile.Service
	jwt             *JWTService
	log             zerolog.Logger
	checks          map[string]HealthCheck
	rateLimiter     *ratelimit.Limiter
	maxUpload       int64
	shutdownTimeout time.Duration
}

// New creates a new server instance
func New(deps Deps, opts Options) *Server {
	s := &Server{
		pipeline:        deps.Pipeline,
		profiles:        deps.Profiles,
		jwt:             deps.JWT,
		log:             deps.Logger,
		checks:          deps.Checks,
		maxUpload:       opts.MaxUploadBytes,
		shutdownTimeout: opts.ShutdownTimeout,
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUploadBytes
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 30 * time.Second
	}
	if opts.RateLimit != nil {
		s.rateLimiter = ratelimit.NewLimiter(opts.RateLimit)
	}

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      300 * time.Second, // OCR plus a model call
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the full middleware chain and routes.
func (s *Server) Handler() http.Handler {
	auth := middleware.AuthMiddleware(s.jwt.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Resume ingestion
	mux.Handle("POST /resume/process", protected(s.handleProcessResume))
	mux.Handle("POST /resume/process-profile", protected(s.handleProcessProfile))
	mux.Handle("PUT /resume/update-profile", protected(s.handleUpdateProfile))

	// Profile
	mux.Handle("GET /profile", protected(s.handleGetProfile))
	mux.Handle("POST /profile/skills", protected(s.handleAddSkill))
	mux.Handle("DELETE /profile/skills/{skill_id}", protected(s.handleRemoveSkill))
	mux.Handle("PUT /profile", protected(s.handleUpdateInfo))
	for _, section := range profile.Sections {
		mux.Handle("POST /profile/"+string(section), protected(s.handleAddEntry(section)))
		mux.Handle("DELETE /profile/"+string(section)+"/{entry_id}", protected(s.handleRemoveEntry(section)))
	}

	var h http.Handler = s.withCORS(mux)
	if s.rateLimiter != nil {
		h = s.withRateLimit(h)
	}
	return observability.RequestLogger(s.log)(h)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("server starting")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.log.Info().Msg("server stopped")
	return err
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth reports server and dependency health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	s.jsonResponse(w, status, map[string]any{"status": overall, "checks": checks})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse writes the failure envelope.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]any{"success": false, "message": message})
}

// failure maps err to a status and message, logging server-side faults
// with their cause. fallback is the opaque message used for 5xx.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := HTTPStatus(err)
	log := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	s.errorResponse(w, status, PublicMessage(err, fallback))
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; proxies are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds()+0.999)))
	}

	zerolog.Ctx(r.Context()).Warn().
		Str("client", s.extractClientID(r)).
		Int("limit", info.Limit).
		Time("reset", info.ResetTime).
		Msg("rate limit exceeded")

	s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
}
