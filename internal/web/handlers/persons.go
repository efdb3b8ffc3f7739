package handlers

import (
	"fmt"
	"net/http"

	"github.com/tablomester/tablomester/internal/config"
	"github.com/tablomester/tablomester/internal/review"
	"github.com/tablomester/tablomester/internal/web/middleware"
)

// PersonsHandler handles roster endpoints.
type PersonsHandler struct {
	config *config.Config
}

// NewPersonsHandler creates a new persons handler.
func NewPersonsHandler(cfg *config.Config) *PersonsHandler {
	return &PersonsHandler{config: cfg}
}

// List returns the roster, optionally filtered by person type.
func (h *PersonsHandler) List(w http.ResponseWriter, r *http.Request) {
	client := middleware.MustGetGallery(r.Context(), w)
	if client == nil {
		return
	}

	var persons []review.Person
	var err error

	switch t := r.URL.Query().Get("type"); t {
	case "":
		persons, err = client.GetPersons(r.Context())
	case string(review.PersonTypeStudent), string(review.PersonTypeTeacher):
		persons, err = client.GetPersonsByType(r.Context(), review.PersonType(t))
	default:
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown person type %q", sanitizeForLog(t)))
		return
	}
	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to list persons: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"persons": persons})
}
