package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tablomester/tablomester/internal/review"
)

// fakeReviewStore is an in-memory ReviewStore for testing persistence wiring.
type fakeReviewStore struct {
	saved   map[string]*review.Session
	albums  map[string]string // session id -> album id
	deleted []string
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{
		saved:  make(map[string]*review.Session),
		albums: make(map[string]string),
	}
}

func (f *fakeReviewStore) Save(ctx context.Context, id, albumID string, session *review.Session) error {
	f.saved[id] = session
	f.albums[id] = albumID
	return nil
}

func (f *fakeReviewStore) Get(ctx context.Context, id string) (*review.Session, error) {
	return f.saved[id], nil
}

func (f *fakeReviewStore) GetByAlbum(ctx context.Context, albumID string) (string, error) {
	for id, album := range f.albums {
		if album == albumID {
			return id, nil
		}
	}
	return "", nil
}

func (f *fakeReviewStore) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.saved, id)
	delete(f.albums, id)
	return nil
}

// createReviewSession drives the Create handler and returns the new session view
func createReviewSession(t *testing.T, handler *ReviewHandler, server *httptest.Server, runMatch bool) ReviewView {
	t.Helper()

	client := createGalleryClient(t, server)
	body := bytes.NewBufferString(fmt.Sprintf(`{"albumId": "album-1", "runMatch": %t}`, runMatch))
	req := requestWithGallery(t, "POST", "/api/v1/reviews", body, client)
	recorder := httptest.NewRecorder()

	handler.Create(recorder, req)

	assertStatusCode(t, recorder, http.StatusCreated)

	var view ReviewView
	parseJSONResponse(t, recorder, &view)
	if view.ID == "" {
		t.Fatal("expected non-empty review session id")
	}
	return view
}

func TestReviewHandler_Create_WithMatch(t *testing.T) {
	server := setupMockGalleryServer(t, nil)
	defer server.Close()

	handler := NewReviewHandler(testConfig(), NewReviewManager(nil))
	view := createReviewSession(t, handler, server, true)

	if len(view.Persons) != 3 {
		t.Fatalf("expected 3 persons, got %d", len(view.Persons))
	}
	// kovacs_janos.jpg and nagy_peter.jpg match unambiguously, ismeretlen.jpg does not
	if view.AssignedCount != 2 {
		t.Errorf("expected 2 seeded assignments, got %d", view.AssignedCount)
	}
	if len(view.UnassignedPhotos) != 1 || view.UnassignedPhotos[0].MediaID != 30 {
		t.Errorf("expected media 30 left unassigned, got %v", view.UnassignedPhotos)
	}
	if view.StudentStats.Assigned != 2 {
		t.Errorf("expected 2 assigned students, got %d", view.StudentStats.Assigned)
	}
	if len(view.Matches) != 3 {
		t.Errorf("expected 3 match results, got %d", len(view.Matches))
	}
}

func TestReviewHandler_Create_WithoutMatch(t *testing.T) {
	server := setupMockGalleryServer(t, nil)
	defer server.Close()

	handler := NewReviewHandler(testConfig(), NewReviewManager(nil))
	view := createReviewSession(t, handler, server, false)

	if view.AssignedCount != 0 {
		t.Errorf("expected no assignments, got %d", view.AssignedCount)
	}
	if len(view.UnassignedPhotos) != 3 {
		t.Errorf("expected 3 unassigned photos, got %d", len(view.UnassignedPhotos))
	}
}

func TestReviewHandler_Create_MissingAlbumID(t *testing.T) {
	server := setupMockGalleryServer(t, nil)
	defer server.Close()

	handler := NewReviewHandler(testConfig(), NewReviewManager(nil))
	client := createGalleryClient(t, server)

	body := bytes.NewBufferString(`{}`)
	req := requestWithGallery(t, "POST", "/api/v1/reviews", body, client)
	recorder := httptest.NewRecorder()

	handler.Create(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertJSONError(t, recorder, "albumId is required")
}

func TestReviewHandler_Get_NotFound(t *testing.T) {
	handler := NewReviewHandler(testConfig(), NewReviewManager(nil))

	req := httptest.NewRequest("GET", "/api/v1/reviews/nope", nil)
	req = requestWithChiParams(req, map[string]string{"reviewId": "nope"})
	recorder := httptest.NewRecorder()

	handler.Get(recorder, req)

	assertStatusCode(t, recorder, http.StatusNotFound)
	assertJSONError(t, recorder, "review session not found")
}

func TestReviewHandler_Get_Filtered(t *testing.T) {
	server := setupMockGalleryServer(t, nil)
	defer server.Close()

	handler := NewReviewHandler(testConfig(), NewReviewManager(nil))
	created := createReviewSession(t, handler, server, true)

	req := httptest.NewRequest("GET", "/api/v1/reviews/"+created.ID+"?type=teacher", nil)
	req = requestWithChiParams(req, map[string]string{"reviewId": created.ID})
	recorder := httptest.NewRecorder()

	handler.Get(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var view ReviewView
	parseJSONResponse(t, recorder, &view)

	if len(view.Persons) != 1 {
		t.Fatalf("expected 1 teacher, got %d persons", len(view.Persons))
	}
	if view.Persons[0].Name != "Szabó Éva" {
		t.Errorf("expected 'Szabó Éva', got '%s'", view.Persons[0].Name)
	}

	// Counts follow the filter: both matched students are outside it, and the
	// only teacher has no photo.
	if view.AssignedCount != 0 {
		t.Errorf("expected 0 assigned among teachers, got %d", view.AssignedCount)
	}
	if view.MissingCount != 1 {
		t.Errorf("expected 1 missing among teachers, got %d", view.MissingCount)
	}
}

func TestReviewHandler_Assign(t *testing.T) {
	server := setupMockGalleryServer(t, nil)
	defer server.Close()

	handler := NewReviewHandler(testConfig(), NewReviewManager(nil))
	created := createReviewSession(t, handler, server, false)

	body := bytes.NewBufferString(`{"mediaId": 30, "personId": 2}`)
	req := httptest.NewRequest("POST", "/api/v1/reviews/"+created.ID+"/assignments", body)
	req = requestWithChiParams(req, map[string]string{"reviewId": created.ID})
	recorder := httptest.NewRecorder()

	handler.Assign(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var view ReviewView
	parseJSONResponse(t, recorder, &view)

	if view.AssignedCount != 1 {
		t.Errorf("expected 1 assignment, got %d", view.AssignedCount)
	}
	for _, p := range view.Persons {
		if p.ID == 2 {
			if p.AssignedPhoto == nil || p.AssignedPhoto.MediaID != 30 {
				t.Errorf("expected person 2 to hold media 30, got %+v", p.AssignedPhoto)
			}
		}
	}
}

func TestReviewHandler_Assign_InvalidBody(t *testing.T) {
	server := setupMockGalleryServer(t, nil)
	defer server.Close()

	handler := NewReviewHandler(testConfig(), NewReviewManager(nil))
	created := createReviewSession(t, handler, server, false)

	body := bytes.NewBufferString(`{"mediaId": 0, "personId": 2}`)
	req := httptest.NewRequest("POST", "/api/v1/reviews/"+created.ID+"/assignments", body)
	req = requestWithChiParams(req, map[string]string{"reviewId": created.ID})
	recorder := httptest.NewRecorder()

	handler.Assign(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
}

func TestReviewHandler_Drop_PhotoOnPerson(t *testing.T) {
	server := setupMockGalleryServer(t, nil)
	defer server.Close()

	handler := NewReviewHandler(testConfig(), NewReviewManager(nil))
	created := createReviewSession(t, handler, server, false)

	body := bytes.NewBufferString(`{"item": {"kind": "photo", "id": 10}, "target": {"kind": "person", "personId": 1}}`)
	req := httptest.NewRequest("POST", "/api/v1/reviews/"+created.ID+"/drop", body)
	req = requestWithChiParams(req, map[string]string{"reviewId": created.ID})
	recorder := httptest.NewRecorder()

	handler.Drop(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var view ReviewView
	parseJSONResponse(t, recorder, &view)

	if view.AssignedCount != 1 {
		t.Errorf("expected 1 assignment after drop, got %d", view.AssignedCount)
	}
}

func TestReviewHandler_Drop_PersonOnPerson(t *testing.T) {
	server := setupMockGalleryServer(t, nil)
	defer server.Close()

	handler := NewReviewHandler(testConfig(), NewReviewManager(nil))
	created := createReviewSession(t, handler, server, true)

	// person 1 holds media 10 after seeding; dragging person 1 onto person 3 moves it
	body := bytes.NewBufferString(`{"item": {"kind": "person", "id": 1}, "target": {"kind": "person", "personId": 3}}`)
	req := httptest.NewRequest("POST", "/api/v1/reviews/"+created.ID+"/drop", body)
	req = requestWithChiParams(req, map[string]string{"reviewId": created.ID})
	recorder := httptest.NewRecorder()

	handler.Drop(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var view ReviewView
	parseJSONResponse(t, recorder, &view)

	for _, p := range view.Persons {
		switch p.ID {
		case 1:
			if p.AssignedPhoto != nil {
				t.Errorf("expected person 1 empty after swap, got media %d", p.AssignedPhoto.MediaID)
			}
		case 3:
			if p.AssignedPhoto == nil || p.AssignedPhoto.MediaID != 10 {
				t.Errorf("expected person 3 to hold media 10, got %+v", p.AssignedPhoto)
			}
		}
	}
}

func TestReviewHandler_Drop_UnknownItemKind(t *testing.T) {
	server := setupMockGalleryServer(t, nil)
	defer server.Close()

	handler := NewReviewHandler(testConfig(), NewReviewManager(nil))
	created := createReviewSession(t, handler, server, false)

	body := bytes.NewBufferString(`{"item": {"kind": "album", "id": 1}, "target": {"kind": "person", "personId": 1}}`)
	req := httptest.NewRequest("POST", "/api/v1/reviews/"+created.ID+"/drop", body)
	req = requestWithChiParams(req, map[string]string{"reviewId": created.ID})
	recorder := httptest.NewRecorder()

	handler.Drop(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
}

func TestReviewHandler_RemoveAssignment(t *testing.T) {
	server := setupMockGalleryServer(t, nil)
	defer server.Close()

	handler := NewReviewHandler(testConfig(), NewReviewManager(nil))
	created := createReviewSession(t, handler, server, true)

	req := httptest.NewRequest("DELETE", "/api/v1/reviews/"+created.ID+"/persons/1", nil)
	req = requestWithChiParams(req, map[string]string{"reviewId": created.ID, "personId": "1"})
	recorder := httptest.NewRecorder()

	handler.RemoveAssignment(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var view ReviewView
	parseJSONResponse(t, recorder, &view)

	if view.AssignedCount != 1 {
		t.Errorf("expected 1 assignment left, got %d", view.AssignedCount)
	}
	// released photo is back in the unassigned pool
	found := false
	for _, p := range view.UnassignedPhotos {
		if p.MediaID == 10 {
			found = true
		}
	}
	if !found {
		t.Error("expected media 10 back in the unassigned pool")
	}
}

func TestReviewHandler_Finalize(t *testing.T) {
	var received struct {
		Assignments []review.PhotoAssignment `json:"assignments"`
	}

	server := setupMockGalleryServer(t, map[string]http.HandlerFunc{
		"/api/v1/photos/assign": func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
				http.Error(w, "bad body", http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"success":       true,
				"assignedCount": len(received.Assignments),
			})
		},
	})
	defer server.Close()

	handler := NewReviewHandler(testConfig(), NewReviewManager(nil))
	created := createReviewSession(t, handler, server, true)

	client := createGalleryClient(t, server)
	req := requestWithGallery(t, "POST", "/api/v1/reviews/"+created.ID+"/finalize", nil, client)
	req = requestWithChiParams(req, map[string]string{"reviewId": created.ID})
	recorder := httptest.NewRecorder()

	handler.Finalize(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	if len(received.Assignments) != 2 {
		t.Errorf("expected 2 assignments submitted, got %d", len(received.Assignments))
	}

	var result struct {
		Success       bool `json:"success"`
		AssignedCount int  `json:"assignedCount"`
	}
	parseJSONResponse(t, recorder, &result)
	if !result.Success || result.AssignedCount != 2 {
		t.Errorf("unexpected finalize result: %+v", result)
	}
}

func TestReviewHandler_Delete(t *testing.T) {
	server := setupMockGalleryServer(t, nil)
	defer server.Close()

	store := newFakeReviewStore()
	handler := NewReviewHandler(testConfig(), NewReviewManager(store))
	created := createReviewSession(t, handler, server, false)

	if _, ok := store.saved[created.ID]; !ok {
		t.Fatal("expected session persisted to store on create")
	}

	req := httptest.NewRequest("DELETE", "/api/v1/reviews/"+created.ID, nil)
	req = requestWithChiParams(req, map[string]string{"reviewId": created.ID})
	recorder := httptest.NewRecorder()

	handler.Delete(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	if len(store.deleted) != 1 || store.deleted[0] != created.ID {
		t.Errorf("expected store delete for %s, got %v", created.ID, store.deleted)
	}

	// gone from the manager as well
	getReq := httptest.NewRequest("GET", "/api/v1/reviews/"+created.ID, nil)
	getReq = requestWithChiParams(getReq, map[string]string{"reviewId": created.ID})
	getRecorder := httptest.NewRecorder()
	handler.Get(getRecorder, getReq)
	assertStatusCode(t, getRecorder, http.StatusNotFound)
}

func TestReviewManager_RestoreFromStore(t *testing.T) {
	store := newFakeReviewStore()
	session := review.NewSession(testRoster(), testPhotos())
	session.Assign(10, 1)
	store.saved["restored-id"] = session

	handler := NewReviewHandler(testConfig(), NewReviewManager(store))

	req := httptest.NewRequest("GET", "/api/v1/reviews/restored-id", nil)
	req = requestWithChiParams(req, map[string]string{"reviewId": "restored-id"})
	recorder := httptest.NewRecorder()

	handler.Get(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var view ReviewView
	parseJSONResponse(t, recorder, &view)

	if view.AssignedCount != 1 {
		t.Errorf("expected restored session with 1 assignment, got %d", view.AssignedCount)
	}
}

func TestReviewHandler_Create_ResumeExisting(t *testing.T) {
	server := setupMockGalleryServer(t, nil)
	defer server.Close()

	store := newFakeReviewStore()
	handler := NewReviewHandler(testConfig(), NewReviewManager(store))
	created := createReviewSession(t, handler, server, true)

	client := createGalleryClient(t, server)
	body := bytes.NewBufferString(`{"albumId": "album-1", "resume": true}`)
	req := requestWithGallery(t, "POST", "/api/v1/reviews", body, client)
	recorder := httptest.NewRecorder()

	handler.Create(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var view ReviewView
	parseJSONResponse(t, recorder, &view)

	if view.ID != created.ID {
		t.Errorf("expected resumed session %s, got %s", created.ID, view.ID)
	}
	if view.AssignedCount != created.AssignedCount {
		t.Errorf("expected %d assignments preserved, got %d", created.AssignedCount, view.AssignedCount)
	}
}

func TestReviewHandler_Create_ResumeFromStore(t *testing.T) {
	server := setupMockGalleryServer(t, nil)
	defer server.Close()

	// Seed the store directly: a restarted server holds no live sessions.
	store := newFakeReviewStore()
	session := review.NewSession(testRoster(), testPhotos())
	session.Assign(10, 1)
	store.saved["stored-id"] = session
	store.albums["stored-id"] = "album-1"

	handler := NewReviewHandler(testConfig(), NewReviewManager(store))

	client := createGalleryClient(t, server)
	body := bytes.NewBufferString(`{"albumId": "album-1", "resume": true}`)
	req := requestWithGallery(t, "POST", "/api/v1/reviews", body, client)
	recorder := httptest.NewRecorder()

	handler.Create(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var view ReviewView
	parseJSONResponse(t, recorder, &view)

	if view.ID != "stored-id" {
		t.Errorf("expected stored session resumed, got %s", view.ID)
	}
	if view.AssignedCount != 1 {
		t.Errorf("expected 1 assignment preserved, got %d", view.AssignedCount)
	}
}

func TestReviewHandler_Create_ResumeFallsBackToNew(t *testing.T) {
	server := setupMockGalleryServer(t, nil)
	defer server.Close()

	store := newFakeReviewStore()
	handler := NewReviewHandler(testConfig(), NewReviewManager(store))

	client := createGalleryClient(t, server)
	body := bytes.NewBufferString(`{"albumId": "album-1", "resume": true}`)
	req := requestWithGallery(t, "POST", "/api/v1/reviews", body, client)
	recorder := httptest.NewRecorder()

	handler.Create(recorder, req)

	// Nothing to resume, so a fresh session is created.
	assertStatusCode(t, recorder, http.StatusCreated)
}
