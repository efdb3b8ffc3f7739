package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablomester/tablomester/internal/web/handlers"
	"github.com/tablomester/tablomester/internal/web/middleware"
)

func (s *Server) setupRoutes(sessionManager *middleware.SessionManager, reviewManager *handlers.ReviewManager) {
	// Create handlers
	authHandler := handlers.NewAuthHandler(s.config, sessionManager)
	albumsHandler := handlers.NewAlbumsHandler(s.config)
	personsHandler := handlers.NewPersonsHandler(s.config)
	matchHandler := handlers.NewMatchHandler(s.config)
	uploadHandler := handlers.NewUploadHandler(s.config)
	reviewHandler := handlers.NewReviewHandler(s.config, reviewManager)

	// Health check (no auth required)
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth routes (no gallery client needed for login)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/status", authHandler.Status)

		// All other routes require authentication and get a gallery client injected
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(sessionManager))
			r.Use(middleware.WithGalleryClient(s.config))

			// Albums
			r.Get("/albums", albumsHandler.List)
			r.Get("/albums/{albumId}", albumsHandler.Get)
			r.Get("/albums/{albumId}/photos", albumsHandler.GetPhotos)
			r.Delete("/albums/{albumId}/photos", albumsHandler.ClearPhotos)

			// Roster
			r.Get("/persons", personsHandler.List)

			// Upload & match
			r.Post("/albums/{albumId}/upload", uploadHandler.Upload)
			r.Post("/albums/{albumId}/match", matchHandler.Run)
			r.Post("/albums/{albumId}/match/layers", matchHandler.MatchLayers)

			// Review sessions
			r.Post("/reviews", reviewHandler.Create)
			r.Get("/reviews/{reviewId}", reviewHandler.Get)
			r.Post("/reviews/{reviewId}/assignments", reviewHandler.Assign)
			r.Post("/reviews/{reviewId}/drop", reviewHandler.Drop)
			r.Delete("/reviews/{reviewId}/persons/{personId}", reviewHandler.RemoveAssignment)
			r.Post("/reviews/{reviewId}/finalize", reviewHandler.Finalize)
			r.Delete("/reviews/{reviewId}", reviewHandler.Delete)
		})
	})

	// Placeholder page until a frontend is wired in
	s.router.Get("/", s.serveIndex)
}

// serveIndex serves a minimal landing page pointing at the API.
func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Tablómester</title>
    <style>
        body { font-family: system-ui, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background: #1a1a2e; color: #eee; }
        .container { text-align: center; }
        h1 { color: #00d9ff; }
        p { color: #aaa; }
        a { color: #00d9ff; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Tablómester</h1>
        <p>API is available at <a href="/api/v1/health">/api/v1/health</a></p>
    </div>
</body>
</html>`))
}
