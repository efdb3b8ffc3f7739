package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tablomester/tablomester/internal/config"
	"github.com/tablomester/tablomester/internal/constants"
	"github.com/tablomester/tablomester/internal/gallery"
	"github.com/tablomester/tablomester/internal/web/middleware"
)

// AlbumsHandler handles album endpoints.
type AlbumsHandler struct {
	config *config.Config
}

// NewAlbumsHandler creates a new albums handler.
func NewAlbumsHandler(cfg *config.Config) *AlbumsHandler {
	return &AlbumsHandler{config: cfg}
}

// List returns the composite albums of the programme.
func (h *AlbumsHandler) List(w http.ResponseWriter, r *http.Request) {
	client := middleware.MustGetGallery(r.Context(), w)
	if client == nil {
		return
	}

	albums, err := client.GetAlbums(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to list albums: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, albums)
}

// Get returns a single album.
func (h *AlbumsHandler) Get(w http.ResponseWriter, r *http.Request) {
	client := middleware.MustGetGallery(r.Context(), w)
	if client == nil {
		return
	}

	albumID := chi.URLParam(r, "albumId")
	album, err := client.GetAlbum(r.Context(), albumID)
	if err != nil {
		if gallery.IsNotFoundError(err) {
			respondError(w, http.StatusNotFound, "album not found")
			return
		}
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to get album: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, album)
}

// GetPhotos returns an album's pending (uploaded, unassigned) photos.
func (h *AlbumsHandler) GetPhotos(w http.ResponseWriter, r *http.Request) {
	client := middleware.MustGetGallery(r.Context(), w)
	if client == nil {
		return
	}

	albumID := chi.URLParam(r, "albumId")

	count := constants.DefaultHandlerPageSize
	if v := r.URL.Query().Get("count"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			count = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	photos, err := client.GetAlbumPhotos(r.Context(), albumID, count, offset)
	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to get album photos: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, photos)
}

// clearPhotosRequest selects pending photos to delete. Empty means all.
type clearPhotosRequest struct {
	MediaIDs []int `json:"mediaIds"`
}

// ClearPhotos deletes pending photos from an album.
func (h *AlbumsHandler) ClearPhotos(w http.ResponseWriter, r *http.Request) {
	client := middleware.MustGetGallery(r.Context(), w)
	if client == nil {
		return
	}

	albumID := chi.URLParam(r, "albumId")

	var req clearPhotosRequest
	if r.ContentLength > 0 {
		if err := parseJSONBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, errInvalidRequestBody)
			return
		}
	}

	if err := client.DeletePendingPhotos(r.Context(), albumID, req.MediaIDs); err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to delete pending photos: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
