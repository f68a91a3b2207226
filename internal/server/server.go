// Package server provides the HTTP REST API for the resume analyzer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/callen/resume-analyzer/internal/ats"
	"github.com/callen/resume-analyzer/internal/config"
	"github.com/callen/resume-analyzer/internal/dictionary"
	"github.com/callen/resume-analyzer/internal/llm"
	"github.com/callen/resume-analyzer/internal/matching"
	"github.com/callen/resume-analyzer/internal/parsing"
	"github.com/callen/resume-analyzer/internal/recommend"
	"github.com/callen/resume-analyzer/internal/server/ratelimit"
	"github.com/callen/resume-analyzer/internal/store"
)

// Server represents the HTTP server and the analysis pipeline it fronts.
type Server struct {
	httpServer      *http.Server
	store           store.Store
	parser          *parsing.Parser
	scorer          *ats.Scorer
	matcher         *matching.Matcher
	engine          *recommend.Engine
	llmClient       llm.Client
	rateLimiter     *ratelimit.Limiter
	tokens          *TokenService
	shutdownTimeout time.Duration
}

// Config holds server configuration.
type Config struct {
	Server *config.ServerConfig
	Store  *config.StoreConfig
	LLM    *config.LLMConfig
	// Auth enables bearer-token protection on mutating routes when non-nil.
	Auth *config.AuthConfig
}

// New creates a new server instance. The store backend, the enrichment
// client, and auth are all chosen from the configuration; only the store is
// required to come up.
func New(cfg Config) (*Server, error) {
	if cfg.Server == nil {
		cfg.Server = config.LoadServerFromEnv()
	}
	if err := cfg.Server.Validate(); err != nil {
		return nil, err
	}

	st, err := openStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	dict := dictionary.Default()
	s := &Server{
		store:           st,
		parser:          parsing.NewParser(dict),
		scorer:          ats.NewScorer(),
		matcher:         matching.NewMatcher(dict),
		engine:          recommend.NewEngine(),
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}

	if cfg.LLM != nil && cfg.LLM.Enabled() {
		client, err := llm.NewGeminiClient(context.Background(), nil, cfg.LLM.APIKey)
		if err != nil {
			log.Printf("LLM enrichment disabled: %v", err)
		} else {
			s.llmClient = client
			s.engine = recommend.NewEngineWithEnricher(llm.NewEnricher(client), cfg.LLM.EnrichTimeout)
		}
	}

	if cfg.Auth != nil {
		s.tokens = NewTokenService(cfg.Auth)
		log.Printf("Bearer auth enabled for mutating routes")
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.withRecovery(s.withRateLimit(s.withLogging(s.withCORS(s.routes())))),
		ReadTimeout:  cfg.Server.RequestTimeout,
		WriteTimeout: 2 * cfg.Server.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func openStore(cfg *config.StoreConfig) (store.Store, error) {
	if cfg == nil {
		cfg = config.LoadStoreFromEnv()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.UseMemory {
		log.Printf("Using in-memory store")
		return store.NewMemory(), nil
	}

	pg, err := store.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pg.EnsureSchema(context.Background()); err != nil {
		pg.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return pg, nil
}

// routes builds the request router.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// Resume CRUD and analysis
	mux.Handle("POST /api/v1/resumes", s.requireAuth(http.HandlerFunc(s.handleCreateResume)))
	mux.HandleFunc("GET /api/v1/resumes", s.handleListResumes)
	mux.HandleFunc("GET /api/v1/resumes/{id}", s.handleGetResume)
	mux.Handle("DELETE /api/v1/resumes/{id}", s.requireAuth(http.HandlerFunc(s.handleDeleteResume)))
	mux.HandleFunc("GET /api/v1/resumes/{id}/ats", s.handleATS)
	mux.HandleFunc("GET /api/v1/resumes/{id}/recommendations", s.handleRecommendations)
	mux.Handle("POST /api/v1/resumes/{id}/match", s.requireAuth(http.HandlerFunc(s.handleMatch)))
	mux.HandleFunc("GET /api/v1/resumes/{id}/matches", s.handleListMatches)

	// Aggregates and stateless analysis
	mux.HandleFunc("GET /api/v1/stats", s.handleStats)
	mux.HandleFunc("POST /api/v1/analyze", s.handleAnalyze)

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}

	s.store.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRecovery converts handler panics into 500 responses so one bad request
// cannot take the server down.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[panic] %s %s: %v", r.Method, r.URL.Path, rec)
				s.errorResponse(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status including store reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"store":  err.Error(),
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID derives the limiter key for a request. It uses the bare
// IP from RemoteAddr; a deployment behind a trusted proxy would want
// X-Forwarded-For instead.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders exposes the limiter state through the conventional
// X-RateLimit response headers.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit <= 0 {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
}

// rateLimitResponse writes the 429 body and Retry-After header.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	log.Printf("[rate-limit] Client over limit: limit=%d remaining=%d reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	body := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		body["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.jsonResponse(w, http.StatusTooManyRequests, body)
}
