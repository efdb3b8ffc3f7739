package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tablomester/tablomester/internal/config"
	"github.com/tablomester/tablomester/internal/gallery"
	"github.com/tablomester/tablomester/internal/web/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	config         *config.Config
	sessionManager *middleware.SessionManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg *config.Config, sm *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{
		config:         cfg,
		sessionManager: sm,
	}
}

// loginRequest represents a login request
type loginRequest struct {
	token string
}

func (l *loginRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal login request: %w", err)
	}
	l.token = raw["token"]
	return nil
}

// LoginResponse represents a login response
type LoginResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Login exchanges a gallery access token for a session. The token is checked
// against the gallery with a cheap roster-independent call before a session
// is issued.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if req.token == "" {
		respondError(w, http.StatusBadRequest, "token is required")
		return
	}

	client, err := gallery.NewClient(h.config.Gallery.URL, req.token)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create gallery client")
		return
	}
	if _, err := client.GetAlbums(r.Context()); err != nil {
		respondJSON(w, http.StatusUnauthorized, LoginResponse{
			Success: false,
			Error:   "invalid token",
		})
		return
	}

	session, err := h.sessionManager.CreateSession(req.token)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	h.sessionManager.SetSessionCookie(w, session)

	respondJSON(w, http.StatusOK, LoginResponse{
		Success:   true,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt.Format("2006-01-02T15:04:05Z"),
	})
}

// Logout handles user logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := h.sessionManager.GetSessionFromRequest(r)
	if session != nil {
		h.sessionManager.DeleteSession(session.ID)
	}

	h.sessionManager.ClearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// StatusResponse represents the auth status response
type StatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	ExpiresAt     string `json:"expires_at,omitempty"`
}

// Status checks if the user is authenticated by validating the session.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	session := h.sessionManager.GetSessionFromRequest(r)
	if session == nil {
		respondJSON(w, http.StatusOK, StatusResponse{Authenticated: false})
		return
	}
	respondJSON(w, http.StatusOK, StatusResponse{
		Authenticated: true,
		ExpiresAt:     session.ExpiresAt.Format("2006-01-02T15:04:05Z"),
	})
}
