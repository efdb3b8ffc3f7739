package middleware

import (
	"context"
	"net/http"

	"github.com/tablomester/tablomester/internal/config"
	"github.com/tablomester/tablomester/internal/gallery"
)

const galleryContextKey contextKey = "gallery"

// WithGalleryClient is middleware that creates a gallery client from the
// session's access token and adds it to the context. Should be used after
// RequireAuth middleware.
func WithGalleryClient(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := GetSessionFromContext(r.Context())

			if session == nil || session.Token == "" {
				http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
				return
			}

			client, err := gallery.NewClient(cfg.Gallery.URL, session.Token)
			if err != nil {
				http.Error(w, `{"error": "failed to connect to gallery"}`, http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), galleryContextKey, client)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetGalleryFromContext retrieves the gallery client from the request context.
// Returns nil if no client is available.
func GetGalleryFromContext(ctx context.Context) *gallery.Client {
	client, ok := ctx.Value(galleryContextKey).(*gallery.Client)
	if !ok {
		return nil
	}
	return client
}

// SetGalleryInContext adds a gallery client to the context.
// This is primarily for testing - use WithGalleryClient middleware in production.
func SetGalleryInContext(ctx context.Context, client *gallery.Client) context.Context {
	return context.WithValue(ctx, galleryContextKey, client)
}

// MustGetGallery retrieves the gallery client from context.
// If not available, writes an error response and returns nil.
// Handlers should return immediately after receiving nil.
func MustGetGallery(ctx context.Context, w http.ResponseWriter) *gallery.Client {
	client := GetGalleryFromContext(ctx)
	if client == nil {
		http.Error(w, `{"error": "gallery client not available"}`, http.StatusInternalServerError)
		return nil
	}
	return client
}
