package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tablomester/tablomester/internal/config"
	"github.com/tablomester/tablomester/internal/constants"
	"github.com/tablomester/tablomester/internal/match"
	"github.com/tablomester/tablomester/internal/review"
	"github.com/tablomester/tablomester/internal/web/middleware"
)

// ReviewStore persists review session snapshots. Optional; with a nil store
// sessions live only in memory.
type ReviewStore interface {
	Save(ctx context.Context, id, albumID string, session *review.Session) error
	Get(ctx context.Context, id string) (*review.Session, error)
	GetByAlbum(ctx context.Context, albumID string) (string, error)
	Delete(ctx context.Context, id string) error
}

// reviewEntry pairs a live session with the album it reviews.
type reviewEntry struct {
	session *review.Session
	albumID string
}

// ReviewManager owns the active review sessions, keyed by generated id.
// A session has one logical owner; the mutex only guards the map and the
// snapshot consistency of each mutation.
type ReviewManager struct {
	mu       sync.Mutex
	sessions map[string]*reviewEntry
	store    ReviewStore
}

// NewReviewManager creates a review session manager with an optional store.
func NewReviewManager(store ReviewStore) *ReviewManager {
	return &ReviewManager{
		sessions: make(map[string]*reviewEntry),
		store:    store,
	}
}

// persist saves a snapshot if a store is configured. Persistence failures are
// logged, never surfaced: the in-memory session stays authoritative.
func (m *ReviewManager) persist(ctx context.Context, id string, entry *reviewEntry) {
	if m.store == nil {
		return
	}
	if err := m.store.Save(ctx, id, entry.albumID, entry.session); err != nil {
		log.Printf("could not persist review session %s: %v", sanitizeForLog(id), err)
	}
}

// get returns a live session, loading it from the store on miss.
func (m *ReviewManager) get(ctx context.Context, id string) *reviewEntry {
	if entry, ok := m.sessions[id]; ok {
		return entry
	}
	if m.store == nil {
		return nil
	}
	session, err := m.store.Get(ctx, id)
	if err != nil {
		log.Printf("could not load review session %s: %v", sanitizeForLog(id), err)
		return nil
	}
	if session == nil {
		return nil
	}
	entry := &reviewEntry{session: session}
	m.sessions[id] = entry
	return entry
}

// findByAlbum returns the most recent session reviewing an album, checking
// live sessions first and the store after. Returns empty id on no match.
func (m *ReviewManager) findByAlbum(ctx context.Context, albumID string) (string, *reviewEntry) {
	for id, entry := range m.sessions {
		if entry.albumID == albumID {
			return id, entry
		}
	}
	if m.store == nil {
		return "", nil
	}
	id, err := m.store.GetByAlbum(ctx, albumID)
	if err != nil {
		log.Printf("could not look up review session for album %s: %v", sanitizeForLog(albumID), err)
		return "", nil
	}
	if id == "" {
		return "", nil
	}
	entry := m.get(ctx, id)
	if entry == nil {
		return "", nil
	}
	entry.albumID = albumID
	return id, entry
}

// ReviewHandler handles review session endpoints.
type ReviewHandler struct {
	config  *config.Config
	manager *ReviewManager
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(cfg *config.Config, manager *ReviewManager) *ReviewHandler {
	return &ReviewHandler{config: cfg, manager: manager}
}

// createReviewRequest starts a review session over one album. With Resume
// set, an existing session for the album is picked up instead of starting
// fresh.
type createReviewRequest struct {
	AlbumID  string `json:"albumId"`
	RunMatch bool   `json:"runMatch"`
	Resume   bool   `json:"resume"`
}

// ReviewView is the presentation state of a review session.
type ReviewView struct {
	ID               string                   `json:"id"`
	Persons          []review.PersonWithPhoto `json:"persons"`
	UnassignedPhotos []review.UploadedPhoto   `json:"unassignedPhotos"`
	AssignedCount    int                      `json:"assignedCount"`
	MissingCount     int                      `json:"missingCount"`
	StudentStats     review.Stats             `json:"studentStats"`
	TeacherStats     review.Stats             `json:"teacherStats"`
	Matches          []match.FileMatchResult  `json:"matches,omitempty"`
}

// buildView assembles the filtered presentation state of a session. The
// counts describe the filtered person list, so a type or name filter narrows
// them along with Persons.
func buildView(id string, s *review.Session, filter review.Filter) ReviewView {
	filtered := review.FilterPersons(s.PersonsWithPhotos(), filter)
	return ReviewView{
		ID:               id,
		Persons:          filtered,
		UnassignedPhotos: s.UnassignedPhotos(),
		AssignedCount:    len(review.Paired(filtered)),
		MissingCount:     len(review.Missing(filtered)),
		StudentStats:     s.StatsByType(review.PersonTypeStudent),
		TeacherStats:     s.StatsByType(review.PersonTypeTeacher),
		Matches:          s.Matches,
	}
}

// Create starts a review session: loads the roster and the album's pending
// photos, optionally runs a matching pass to pre-fill assignments.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	client := middleware.MustGetGallery(r.Context(), w)
	if client == nil {
		return
	}

	var req createReviewRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.AlbumID == "" {
		respondError(w, http.StatusBadRequest, "albumId is required")
		return
	}

	if req.Resume {
		h.manager.mu.Lock()
		id, entry := h.manager.findByAlbum(r.Context(), req.AlbumID)
		if entry != nil {
			view := buildView(id, entry.session, review.Filter{})
			h.manager.mu.Unlock()
			respondJSON(w, http.StatusOK, view)
			return
		}
		h.manager.mu.Unlock()
	}

	persons, err := client.GetPersons(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to load roster: %v", err))
		return
	}
	photos, err := client.GetAlbumPhotos(r.Context(), req.AlbumID, constants.DefaultHandlerPageSize, 0)
	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to load album photos: %v", err))
		return
	}

	session := review.NewSession(persons, photos)
	if req.RunMatch {
		session.SeedFromMatches(buildMatchResponse(photos, persons).Results)
	}

	id := uuid.NewString()
	entry := &reviewEntry{session: session, albumID: req.AlbumID}

	h.manager.mu.Lock()
	h.manager.sessions[id] = entry
	h.manager.persist(r.Context(), id, entry)
	h.manager.mu.Unlock()

	respondJSON(w, http.StatusCreated, buildView(id, session, review.Filter{}))
}

// Get returns the session view, optionally filtered by type and name query.
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reviewId")

	filter := review.Filter{
		Type:  review.PersonType(r.URL.Query().Get("type")),
		Query: r.URL.Query().Get("q"),
	}

	h.manager.mu.Lock()
	defer h.manager.mu.Unlock()

	entry := h.manager.get(r.Context(), id)
	if entry == nil {
		respondError(w, http.StatusNotFound, "review session not found")
		return
	}

	respondJSON(w, http.StatusOK, buildView(id, entry.session, filter))
}

// assignRequest assigns one photo to one person.
type assignRequest struct {
	MediaID  int `json:"mediaId"`
	PersonID int `json:"personId"`
}

// Assign gives a photo to a person, reassigning the photo if needed.
func (h *ReviewHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reviewId")

	var req assignRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.MediaID <= 0 || req.PersonID <= 0 {
		respondError(w, http.StatusBadRequest, "mediaId and personId are required")
		return
	}

	h.manager.mu.Lock()
	defer h.manager.mu.Unlock()

	entry := h.manager.get(r.Context(), id)
	if entry == nil {
		respondError(w, http.StatusNotFound, "review session not found")
		return
	}

	entry.session.Assign(req.MediaID, req.PersonID)
	h.manager.persist(r.Context(), id, entry)

	respondJSON(w, http.StatusOK, buildView(id, entry.session, review.Filter{}))
}

// dropRequest is the wire form of a drag-drop action.
type dropRequest struct {
	Item struct {
		Kind string `json:"kind"` // "photo" or "person"
		ID   int    `json:"id"`
	} `json:"item"`
	Target struct {
		Kind     string `json:"kind"` // "person" or "unassigned"
		PersonID int    `json:"personId,omitempty"`
	} `json:"target"`
}

// Drop applies a drag-drop action to the session.
func (h *ReviewHandler) Drop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reviewId")

	var req dropRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	item, err := review.ParseDragItem(req.Item.Kind, req.Item.ID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.manager.mu.Lock()
	defer h.manager.mu.Unlock()

	entry := h.manager.get(r.Context(), id)
	if entry == nil {
		respondError(w, http.StatusNotFound, "review session not found")
		return
	}

	switch req.Target.Kind {
	case "person":
		if req.Target.PersonID <= 0 {
			respondError(w, http.StatusBadRequest, "target personId is required")
			return
		}
		entry.session.DropOnPerson(item, req.Target.PersonID)
	case "unassigned":
		entry.session.DropOnUnassigned(item)
	default:
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown drop target %q", sanitizeForLog(req.Target.Kind)))
		return
	}

	h.manager.persist(r.Context(), id, entry)

	respondJSON(w, http.StatusOK, buildView(id, entry.session, review.Filter{}))
}

// RemoveAssignment releases a person's photo back to the unassigned pool.
func (h *ReviewHandler) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reviewId")

	personID, err := parsePositiveIntParam(r, "personId")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.manager.mu.Lock()
	defer h.manager.mu.Unlock()

	entry := h.manager.get(r.Context(), id)
	if entry == nil {
		respondError(w, http.StatusNotFound, "review session not found")
		return
	}

	entry.session.Remove(personID)
	h.manager.persist(r.Context(), id, entry)

	respondJSON(w, http.StatusOK, buildView(id, entry.session, review.Filter{}))
}

// Finalize commits the session's assignments to the gallery. The assignment
// list is sent wholesale; resubmitting after a failure is safe.
func (h *ReviewHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	client := middleware.MustGetGallery(r.Context(), w)
	if client == nil {
		return
	}

	id := chi.URLParam(r, "reviewId")

	h.manager.mu.Lock()
	entry := h.manager.get(r.Context(), id)
	if entry == nil {
		h.manager.mu.Unlock()
		respondError(w, http.StatusNotFound, "review session not found")
		return
	}
	assignments := entry.session.Assignments
	h.manager.mu.Unlock()

	result, err := client.AssignPhotos(r.Context(), assignments)
	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to finalize assignments: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Delete discards a review session.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reviewId")

	h.manager.mu.Lock()
	defer h.manager.mu.Unlock()

	delete(h.manager.sessions, id)
	if h.manager.store != nil {
		if err := h.manager.store.Delete(r.Context(), id); err != nil {
			log.Printf("could not delete persisted review session %s: %v", sanitizeForLog(id), err)
		}
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
