package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tablomester/tablomester/internal/config"
	"github.com/tablomester/tablomester/internal/gallery"
	"github.com/tablomester/tablomester/internal/review"
	"github.com/tablomester/tablomester/internal/web/middleware"
)

// testConfig creates a minimal config for testing
func testConfig() *config.Config {
	return &config.Config{
		Gallery: config.GalleryConfig{
			URL: "http://localhost:9000",
		},
		Upload: config.UploadConfig{
			ChunkSize: 10,
		},
	}
}

// testRoster is the default roster served by the mock gallery
func testRoster() []review.Person {
	return []review.Person{
		{ID: 1, Name: "Kovács János", Type: review.PersonTypeStudent},
		{ID: 2, Name: "Nagy Péter", Type: review.PersonTypeStudent},
		{ID: 3, Name: "Szabó Éva", Type: review.PersonTypeTeacher},
	}
}

// testPhotos is the default pending photo pool served by the mock gallery
func testPhotos() []review.UploadedPhoto {
	return []review.UploadedPhoto{
		{MediaID: 10, Filename: "kovacs_janos.jpg", ThumbURL: "/t/10", FullURL: "/f/10"},
		{MediaID: 20, Filename: "nagy_peter.jpg", ThumbURL: "/t/20", FullURL: "/f/20"},
		{MediaID: 30, Filename: "ismeretlen.jpg", ThumbURL: "/t/30", FullURL: "/f/30"},
	}
}

// setupMockGalleryServer creates a mock gallery backend for handler tests.
// Custom handlers take precedence over the defaults.
func setupMockGalleryServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	registered := make(map[string]bool)
	for pattern, handler := range handlers {
		mux.HandleFunc(pattern, handler)
		registered[pattern] = true
	}

	if !registered["/api/v1/persons"] {
		mux.HandleFunc("/api/v1/persons", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"persons": testRoster()})
		})
	}
	if !registered["/api/v1/albums/album-1/photos"] {
		mux.HandleFunc("/api/v1/albums/album-1/photos", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(testPhotos())
		})
	}

	return httptest.NewServer(mux)
}

// createGalleryClient creates a gallery client connected to a mock server
func createGalleryClient(t *testing.T, server *httptest.Server) *gallery.Client {
	t.Helper()
	client, err := gallery.NewClient(server.URL, "test-token")
	if err != nil {
		t.Fatalf("failed to create gallery client: %v", err)
	}
	return client
}

// requestWithGallery creates a request with a gallery client in context
func requestWithGallery(t *testing.T, method, path string, body io.Reader, client *gallery.Client) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	ctx := middleware.SetGalleryInContext(req.Context(), client)
	return req.WithContext(ctx)
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}
