package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablomester/tablomester/internal/config"
	"github.com/tablomester/tablomester/internal/constants"
	"github.com/tablomester/tablomester/internal/match"
	"github.com/tablomester/tablomester/internal/review"
	"github.com/tablomester/tablomester/internal/web/middleware"
)

// MatchHandler runs the filename matcher over an album's pending photos.
type MatchHandler struct {
	config *config.Config
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(cfg *config.Config) *MatchHandler {
	return &MatchHandler{config: cfg}
}

// MatchResponse is the result of one matching pass.
type MatchResponse struct {
	Results   []match.FileMatchResult `json:"results"`
	Matched   int                     `json:"matched"`
	Ambiguous int                     `json:"ambiguous"`
	Unmatched int                     `json:"unmatched"`
}

// Run matches an album's pending photos against the roster by filename.
func (h *MatchHandler) Run(w http.ResponseWriter, r *http.Request) {
	client := middleware.MustGetGallery(r.Context(), w)
	if client == nil {
		return
	}

	albumID := chi.URLParam(r, "albumId")

	persons, err := client.GetPersons(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to load roster: %v", err))
		return
	}

	photos, err := client.GetAlbumPhotos(r.Context(), albumID, constants.DefaultHandlerPageSize, 0)
	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to load album photos: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, buildMatchResponse(photos, persons))
}

type matchLayersRequest struct {
	LayerNames []string `json:"layerNames"`
}

// MatchLayersResponse pairs design-tool layers with an album's pending photos.
type MatchLayersResponse struct {
	Layers         []match.Layer   `json:"layers"`
	UnmatchedFiles []match.FileRef `json:"unmatchedFiles"`
	Matched        int             `json:"matched"`
}

// MatchLayers pairs exported design-tool layer names with an album's pending
// photos. Layer names follow the "slug---personId" convention; names outside
// it are ignored.
func (h *MatchHandler) MatchLayers(w http.ResponseWriter, r *http.Request) {
	client := middleware.MustGetGallery(r.Context(), w)
	if client == nil {
		return
	}

	var req matchLayersRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	layers := match.ParseLayerNames(req.LayerNames)
	if len(layers) == 0 {
		respondError(w, http.StatusBadRequest, "no layer names follow the slug---personId convention")
		return
	}

	albumID := chi.URLParam(r, "albumId")

	persons, err := client.GetPersons(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to load roster: %v", err))
		return
	}

	photos, err := client.GetAlbumPhotos(r.Context(), albumID, constants.DefaultHandlerPageSize, 0)
	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to load album photos: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, buildLayerMatchResponse(req.LayerNames, photos, persons))
}

// buildLayerMatchResponse runs the two-tier layer matcher and tallies the
// filled slots.
func buildLayerMatchResponse(layerNames []string, photos []review.UploadedPhoto, persons []review.Person) MatchLayersResponse {
	files := make([]match.FileRef, 0, len(photos))
	for _, p := range photos {
		files = append(files, match.FileRef{Name: p.Filename, MediaID: p.MediaID})
	}

	matchPersons := make([]match.Person, 0, len(persons))
	for _, p := range persons {
		matchPersons = append(matchPersons, p.MatchPerson())
	}

	layers := match.EnrichWithPersons(match.ParseLayerNames(layerNames), matchPersons)
	matched, unmatched := match.MatchFilesToLayers(files, layers, matchPersons)

	resp := MatchLayersResponse{Layers: matched, UnmatchedFiles: unmatched}
	for _, l := range matched {
		if l.File != nil {
			resp.Matched++
		}
	}
	return resp
}

// buildMatchResponse runs the matcher and tallies the outcome.
func buildMatchResponse(photos []review.UploadedPhoto, persons []review.Person) MatchResponse {
	files := make([]match.FileRef, 0, len(photos))
	for _, p := range photos {
		files = append(files, match.FileRef{Name: p.Filename, MediaID: p.MediaID})
	}

	matchPersons := make([]match.Person, 0, len(persons))
	for _, p := range persons {
		matchPersons = append(matchPersons, p.MatchPerson())
	}

	results := match.MatchFilesToPersons(files, matchPersons)

	resp := MatchResponse{Results: results}
	for _, res := range results {
		switch res.MatchType {
		case match.MatchTypeMatched:
			resp.Matched++
		case match.MatchTypeAmbiguous:
			resp.Ambiguous++
		case match.MatchTypeUnmatched:
			resp.Unmatched++
		}
	}
	return resp
}
