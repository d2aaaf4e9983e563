// Package server provides the HTTP REST API for the FitRate card service.
package server

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitrate/fitrate/internal/scanlimit"
	"github.com/fitrate/fitrate/internal/server/ratelimit"
	"github.com/fitrate/fitrate/internal/store"
)

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	store       store.Store
	rateLimiter *ratelimit.Limiter
	tokens      *TokenService
	cards       *cardCache
	freePerDay  int
}

// Config holds server configuration.
type Config struct {
	Port        int
	DatabaseURL string // Postgres store when set
	SQLitePath  string // sqlite store when set and no Postgres
	TokenSecret string // HMAC secret for card retrieval tokens
	FreePerDay  int    // free daily scan allowance, 0 means default
	CardTTL     time.Duration
}

// New creates a new server instance.
func New(cfg Config) (*Server, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	secret := []byte(cfg.TokenSecret)
	if len(secret) == 0 {
		// Ephemeral secret: issued tokens die with the process.
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
		log.Println("[server] FITRATE_TOKEN_SECRET not set, using ephemeral secret")
	}

	cardTTL := cfg.CardTTL
	if cardTTL <= 0 {
		cardTTL = 10 * time.Minute
	}

	s := &Server{
		store:       st,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		tokens:      NewTokenService(secret, cardTTL),
		cards:       newCardCache(cardTTL),
		freePerDay:  cfg.FreePerDay,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Share cards
	mux.HandleFunc("POST /cards", s.handleCreateCard)
	mux.HandleFunc("GET /cards/{id}", s.handleGetCard)

	// Scan quotas
	mux.HandleFunc("GET /scans/{user_id}", s.handleGetScans)
	mux.HandleFunc("POST /scans/{user_id}/consume", s.handleConsumeScan)
	mux.HandleFunc("POST /scans/{user_id}/grant", s.handleGrantScans)

	// Client state passthrough (the localStorage surrogate)
	mux.HandleFunc("GET /state/{user_id}/{key}", s.handleGetState)
	mux.HandleFunc("PUT /state/{user_id}/{key}", s.handlePutState)
	mux.HandleFunc("DELETE /state/{user_id}/{key}", s.handleDeleteState)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// openStore picks the state backend: Postgres, then sqlite, then memory.
func openStore(cfg Config) (store.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch {
	case cfg.DatabaseURL != "":
		return store.ConnectPostgres(ctx, cfg.DatabaseURL)
	case cfg.SQLitePath != "":
		return store.OpenSQLite(ctx, cfg.SQLitePath)
	default:
		log.Println("[server] no database configured, client state is in-memory only")
		return store.NewMemory(), nil
	}
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	s.cards.Stop()
	if err := s.store.Close(); err != nil {
		log.Printf("Error closing store: %v", err)
	}
	log.Println("Server stopped")
	return nil
}

// limiter builds a scan limiter scoped to one user.
func (s *Server) limiter(userID string) *scanlimit.Limiter {
	return scanlimit.New(s.store, userID, s.freePerDay)
}

// withCORS adds CORS headers for the PWA origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

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

// withRateLimit adds rate limiting middleware.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
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

// extractClientID extracts the client identifier (IP) from the request.
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
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
