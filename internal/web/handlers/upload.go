package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/tablomester/tablomester/internal/config"
	"github.com/tablomester/tablomester/internal/constants"
	"github.com/tablomester/tablomester/internal/review"
	"github.com/tablomester/tablomester/internal/uploader"
	"github.com/tablomester/tablomester/internal/web/middleware"
)

// UploadHandler handles batch photo uploads to an album.
type UploadHandler struct {
	config *config.Config
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(cfg *config.Config) *UploadHandler {
	return &UploadHandler{config: cfg}
}

// saveUploadedFiles saves multipart files to a temporary directory and returns their paths.
func saveUploadedFiles(files []*multipart.FileHeader, tempDir string) ([]string, error) {
	var filePaths []string
	for _, fileHeader := range files {
		if err := func() error {
			file, err := fileHeader.Open()
			if err != nil {
				return fmt.Errorf("failed to open file: %s", fileHeader.Filename)
			}
			defer file.Close()

			safeName := filepath.Base(fileHeader.Filename)
			tempPath := filepath.Join(tempDir, safeName)
			out, err := os.Create(tempPath) //nolint:gosec // filename sanitized via filepath.Base
			if err != nil {
				return errors.New("failed to create temp file")
			}

			if _, err := io.Copy(out, file); err != nil {
				out.Close()
				return errors.New("failed to save file")
			}
			out.Close()

			filePaths = append(filePaths, tempPath)
			return nil
		}(); err != nil {
			return nil, err
		}
	}
	return filePaths, nil
}

// Upload receives a multipart batch and pushes it to the gallery through the
// chunked pipeline. The response is the pipeline's final aggregate state.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	albumID := chi.URLParam(r, "albumId")

	client := middleware.MustGetGallery(r.Context(), w)
	if client == nil {
		return
	}

	tempDir, err := os.MkdirTemp("", "tablomester-upload-*")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create temp directory")
		return
	}
	defer os.RemoveAll(tempDir)

	files := r.MultipartForm.File["photos[]"]
	filePaths, err := saveUploadedFiles(files, tempDir)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pipeline := uploader.NewPipeline(func(ctx context.Context, chunk []string) ([]review.UploadedPhoto, error) {
		return client.UploadChunk(ctx, albumID, chunk)
	})
	pipeline.ChunkSize = h.config.Upload.ChunkSize

	var final uploader.Progress
	for progress := range pipeline.Run(r.Context(), filePaths) {
		final = progress
	}

	respondJSON(w, http.StatusOK, final)
}
