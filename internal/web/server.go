package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tablomester/tablomester/internal/config"
	"github.com/tablomester/tablomester/internal/web/handlers"
	"github.com/tablomester/tablomester/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config         *config.Config
	router         *chi.Mux
	httpServer     *http.Server
	sessionManager *middleware.SessionManager
	reviewManager  *handlers.ReviewManager
	cleanupCancel  context.CancelFunc
}

// NewServer creates a new web server. sessionRepo and reviewStore may be nil
// for memory-only operation.
func NewServer(cfg *config.Config, addr string, sessionRepo middleware.SessionRepository, reviewStore handlers.ReviewStore) *Server {
	r := chi.NewRouter()

	sessionManager := middleware.NewSessionManager(cfg.Server.SessionSecret, sessionRepo)
	reviewManager := handlers.NewReviewManager(reviewStore)

	s := &Server{
		config:         cfg,
		router:         r,
		sessionManager: sessionManager,
		reviewManager:  reviewManager,
	}

	// Set up middleware stack
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(5 * time.Minute))
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.SecurityHeaders())

	s.setupRoutes(sessionManager, reviewManager)

	cleanupCtx, cancel := context.WithCancel(context.Background())
	s.cleanupCancel = cancel
	sessionManager.StartCleanup(cleanupCtx)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // Long timeout for chunked uploads
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down web server...")

	if s.cleanupCancel != nil {
		s.cleanupCancel()
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing
func (s *Server) Router() *chi.Mux {
	return s.router
}
