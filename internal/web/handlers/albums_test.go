package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tablomester/tablomester/internal/gallery"
	"github.com/tablomester/tablomester/internal/review"
)

func TestAlbumsHandler_List_Success(t *testing.T) {
	albumsData := `[
		{"id": "album-1", "title": "Diákok", "type": "students", "photoCount": 30, "pendingCount": 3},
		{"id": "album-2", "title": "Tanárok", "type": "teachers", "photoCount": 10, "pendingCount": 0}
	]`

	server := setupMockGalleryServer(t, map[string]http.HandlerFunc{
		"/api/v1/albums": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != "GET" {
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(albumsData))
		},
	})
	defer server.Close()

	client := createGalleryClient(t, server)
	handler := NewAlbumsHandler(testConfig())

	req := requestWithGallery(t, "GET", "/api/v1/albums", nil, client)
	recorder := httptest.NewRecorder()

	handler.List(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var albums []gallery.Album
	parseJSONResponse(t, recorder, &albums)

	if len(albums) != 2 {
		t.Fatalf("expected 2 albums, got %d", len(albums))
	}
	if albums[0].ID != "album-1" {
		t.Errorf("expected first album id 'album-1', got '%s'", albums[0].ID)
	}
	if albums[1].Type != gallery.AlbumTypeTeachers {
		t.Errorf("expected second album type 'teachers', got '%s'", albums[1].Type)
	}
}

func TestAlbumsHandler_List_NoClient(t *testing.T) {
	handler := NewAlbumsHandler(testConfig())

	req := httptest.NewRequest("GET", "/api/v1/albums", nil)
	recorder := httptest.NewRecorder()

	handler.List(recorder, req)

	assertStatusCode(t, recorder, http.StatusInternalServerError)
}

func TestAlbumsHandler_List_GalleryError(t *testing.T) {
	server := setupMockGalleryServer(t, map[string]http.HandlerFunc{
		"/api/v1/albums": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "internal error"}`))
		},
	})
	defer server.Close()

	client := createGalleryClient(t, server)
	handler := NewAlbumsHandler(testConfig())

	req := requestWithGallery(t, "GET", "/api/v1/albums", nil, client)
	recorder := httptest.NewRecorder()

	handler.List(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadGateway)
}

func TestAlbumsHandler_Get_Success(t *testing.T) {
	albumData := `{"id": "album-1", "title": "Diákok", "type": "students", "photoCount": 30, "pendingCount": 3}`

	server := setupMockGalleryServer(t, map[string]http.HandlerFunc{
		"/api/v1/albums/album-1": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(albumData))
		},
	})
	defer server.Close()

	client := createGalleryClient(t, server)
	handler := NewAlbumsHandler(testConfig())

	req := requestWithGallery(t, "GET", "/api/v1/albums/album-1", nil, client)
	req = requestWithChiParams(req, map[string]string{"albumId": "album-1"})
	recorder := httptest.NewRecorder()

	handler.Get(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var album gallery.Album
	parseJSONResponse(t, recorder, &album)

	if album.Title != "Diákok" {
		t.Errorf("expected album title 'Diákok', got '%s'", album.Title)
	}
}

func TestAlbumsHandler_Get_NotFound(t *testing.T) {
	server := setupMockGalleryServer(t, map[string]http.HandlerFunc{
		"/api/v1/albums/missing": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "no such album"}`))
		},
	})
	defer server.Close()

	client := createGalleryClient(t, server)
	handler := NewAlbumsHandler(testConfig())

	req := requestWithGallery(t, "GET", "/api/v1/albums/missing", nil, client)
	req = requestWithChiParams(req, map[string]string{"albumId": "missing"})
	recorder := httptest.NewRecorder()

	handler.Get(recorder, req)

	assertStatusCode(t, recorder, http.StatusNotFound)
	assertJSONError(t, recorder, "album not found")
}

func TestAlbumsHandler_GetPhotos_Success(t *testing.T) {
	server := setupMockGalleryServer(t, map[string]http.HandlerFunc{
		"/api/v1/albums/album-1/photos": func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			if query.Get("count") != "50" {
				t.Errorf("expected count=50, got %s", query.Get("count"))
			}
			if query.Get("offset") != "10" {
				t.Errorf("expected offset=10, got %s", query.Get("offset"))
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(testPhotos())
		},
	})
	defer server.Close()

	client := createGalleryClient(t, server)
	handler := NewAlbumsHandler(testConfig())

	req := requestWithGallery(t, "GET", "/api/v1/albums/album-1/photos?count=50&offset=10", nil, client)
	req = requestWithChiParams(req, map[string]string{"albumId": "album-1"})
	recorder := httptest.NewRecorder()

	handler.GetPhotos(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var photos []review.UploadedPhoto
	parseJSONResponse(t, recorder, &photos)

	if len(photos) != 3 {
		t.Fatalf("expected 3 photos, got %d", len(photos))
	}
	if photos[0].MediaID != 10 {
		t.Errorf("expected first photo media id 10, got %d", photos[0].MediaID)
	}
}

func TestAlbumsHandler_GetPhotos_DefaultPaging(t *testing.T) {
	server := setupMockGalleryServer(t, map[string]http.HandlerFunc{
		"/api/v1/albums/album-1/photos": func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			if query.Get("count") != "100" {
				t.Errorf("expected default count=100, got %s", query.Get("count"))
			}
			if query.Get("offset") != "0" {
				t.Errorf("expected default offset=0, got %s", query.Get("offset"))
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		},
	})
	defer server.Close()

	client := createGalleryClient(t, server)
	handler := NewAlbumsHandler(testConfig())

	req := requestWithGallery(t, "GET", "/api/v1/albums/album-1/photos", nil, client)
	req = requestWithChiParams(req, map[string]string{"albumId": "album-1"})
	recorder := httptest.NewRecorder()

	handler.GetPhotos(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
}

func TestAlbumsHandler_ClearPhotos(t *testing.T) {
	var received struct {
		MediaIDs []int `json:"mediaIds"`
	}

	server := setupMockGalleryServer(t, map[string]http.HandlerFunc{
		"/api/v1/albums/album-1/photos": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != "DELETE" {
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			}
			if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
				http.Error(w, "bad body", http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success": true}`))
		},
	})
	defer server.Close()

	client := createGalleryClient(t, server)
	handler := NewAlbumsHandler(testConfig())

	body := bytes.NewBufferString(`{"mediaIds": [10, 20]}`)
	req := requestWithGallery(t, "DELETE", "/api/v1/albums/album-1/photos", body, client)
	req = requestWithChiParams(req, map[string]string{"albumId": "album-1"})
	recorder := httptest.NewRecorder()

	handler.ClearPhotos(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	if len(received.MediaIDs) != 2 || received.MediaIDs[0] != 10 {
		t.Errorf("expected media ids [10 20] forwarded, got %v", received.MediaIDs)
	}
}
