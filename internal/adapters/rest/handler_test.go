package rest

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/ewilliams-labs/moodmix/internal/core/ports"
	"github.com/ewilliams-labs/moodmix/internal/core/services"
)

// --- Mocks ---

// The handler depends on the concrete Assembler, so tests build a real one
// over a mock provider.
type mockProvider struct {
	tracks []ports.ProviderTrack
	err    error
	got    ports.RecommendationRequest
}

func (m *mockProvider) Recommendations(ctx context.Context, req ports.RecommendationRequest) (ports.RecommendationResponse, error) {
	m.got = req
	if m.err != nil {
		return ports.RecommendationResponse{}, m.err
	}
	return ports.RecommendationResponse{Tracks: m.tracks}, nil
}

type mockChecker struct {
	connected bool
	panics    bool
}

func (m *mockChecker) TestConnection(ctx context.Context) bool {
	if m.panics {
		panic("checker exploded")
	}
	return m.connected
}

func sampleTracks() []ports.ProviderTrack {
	return []ports.ProviderTrack{
		{
			Name:    "Song A",
			Artists: []ports.ProviderArtist{{Name: "X"}, {Name: "Y"}},
			Album:   ports.ProviderAlbum{Name: "Album A", Images: []ports.ProviderImage{{URL: "http://img/a"}}},
			URI:     "spotify:track:AAA",
			ID:      "AAA",
		},
		{
			Name:    "Song B",
			Artists: []ports.ProviderArtist{{Name: "Z"}},
			Album:   ports.ProviderAlbum{Name: "Album B"},
			URI:     "spotify:track:BBB",
			ID:      "BBB",
		},
	}
}

func newTestHandler(p *mockProvider, c ports.ConnectivityChecker, opts Options) *Handler {
	return NewHandler(services.NewAssembler(services.NewResolver(), p), c, opts)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

// --- Tests ---

func TestHandler_GeneratePlaylist(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		provider   *mockProvider
		wantStatus int
		wantError  string
		wantCode   string
	}{
		{
			name:       "Happy Path",
			body:       `{"mood":"Happy","activity":" WORKOUT ","time_of_day":"morning"}`,
			provider:   &mockProvider{tracks: sampleTracks()},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing field",
			body:       `{"mood":"happy","activity":"workout"}`,
			provider:   &mockProvider{tracks: sampleTracks()},
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing required parameters",
		},
		{
			name:       "Blank field",
			body:       `{"mood":"happy","activity":"   ","time_of_day":"night"}`,
			provider:   &mockProvider{tracks: sampleTracks()},
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing required parameters",
		},
		{
			name:       "Null body",
			body:       `null`,
			provider:   &mockProvider{tracks: sampleTracks()},
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing required parameters",
		},
		{
			name:       "Malformed JSON",
			body:       `{"mood":`,
			provider:   &mockProvider{tracks: sampleTracks()},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request body",
		},
		{
			name:       "Provider failure",
			body:       `{"mood":"sad","activity":"study","time_of_day":"night"}`,
			provider:   &mockProvider{err: errors.New("spotify adapter: status 503")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to generate playlist",
			wantCode:   errCodeProviderUnavailable,
		},
		{
			name:       "No recommendations",
			body:       `{"mood":"sad","activity":"study","time_of_day":"night"}`,
			provider:   &mockProvider{},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to generate playlist",
			wantCode:   errCodeNoRecommendations,
		},
		{
			name:       "Unknown categories still call provider",
			body:       `{"mood":"grumpy","activity":"juggling","time_of_day":"dusk"}`,
			provider:   &mockProvider{tracks: sampleTracks()},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(tt.provider, &mockChecker{connected: true}, Options{})

			req := httptest.NewRequest(http.MethodPost, "/api/generate-playlist", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type: got %q", ct)
			}

			body := decodeBody(t, rec)
			if tt.wantError != "" {
				if body["error"] != tt.wantError {
					t.Errorf("error: got %v, want %q", body["error"], tt.wantError)
				}
				if tt.wantCode != "" && body["code"] != tt.wantCode {
					t.Errorf("code: got %v, want %q", body["code"], tt.wantCode)
				}
				return
			}
			if body["success"] != true {
				t.Errorf("success: got %v", body["success"])
			}
		})
	}
}

func TestHandler_GeneratePlaylist_ResponseShape(t *testing.T) {
	p := &mockProvider{tracks: sampleTracks()}
	h := newTestHandler(p, nil, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/generate-playlist",
		strings.NewReader(`{"mood":"HAPPY","activity":"workout","time_of_day":" Morning"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success  bool `json:"success"`
		Playlist []struct {
			Name       string  `json:"name"`
			Artist     string  `json:"artist"`
			Image      *string `json:"image"`
			PreviewURL *string `json:"preview_url"`
		} `json:"playlist"`
		Metadata struct {
			Mood        string `json:"mood"`
			Activity    string `json:"activity"`
			TimeOfDay   string `json:"time_of_day"`
			TotalTracks int    `json:"total_tracks"`
			PlaylistURI string `json:"playlist_uri"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Metadata.Mood != "happy" || resp.Metadata.Activity != "workout" || resp.Metadata.TimeOfDay != "morning" {
		t.Errorf("metadata not normalized: %+v", resp.Metadata)
	}
	if resp.Metadata.TotalTracks != 2 {
		t.Errorf("total_tracks: got %d, want 2", resp.Metadata.TotalTracks)
	}
	if resp.Metadata.PlaylistURI != "spotify:tracks:AAA,BBB" {
		t.Errorf("playlist_uri: got %q", resp.Metadata.PlaylistURI)
	}
	if resp.Playlist[0].Artist != "X, Y" {
		t.Errorf("artist: got %q", resp.Playlist[0].Artist)
	}
	if resp.Playlist[1].Image != nil || resp.Playlist[1].PreviewURL != nil {
		t.Errorf("absent image/preview should encode as null")
	}
	if p.got.Limit != 25 || len(p.got.SeedGenres) != 5 {
		t.Errorf("provider request: got %+v", p.got)
	}
}

func TestHandler_HealthCheck(t *testing.T) {
	tests := []struct {
		name          string
		checker       ports.ConnectivityChecker
		wantStatus    int
		wantBody      string
		wantConnected any
	}{
		{"connected", &mockChecker{connected: true}, http.StatusOK, "healthy", true},
		{"disconnected", &mockChecker{connected: false}, http.StatusOK, "disconnected", false},
		{"no client", nil, http.StatusInternalServerError, "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&mockProvider{}, tt.checker, Options{})
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			body := decodeBody(t, rec)
			if body["status"] != tt.wantBody {
				t.Errorf("status field: got %v, want %q", body["status"], tt.wantBody)
			}
			if tt.wantConnected != nil && body["spotify_connected"] != tt.wantConnected {
				t.Errorf("spotify_connected: got %v, want %v", body["spotify_connected"], tt.wantConnected)
			}
			if tt.checker == nil && body["error"] == "" {
				t.Errorf("expected error message")
			}
		})
	}
}

func TestHandler_Fallbacks(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		checker    ports.ConnectivityChecker
		wantStatus int
		wantError  string
	}{
		{"unknown route", http.MethodGet, "/api/nope", &mockChecker{}, http.StatusNotFound, "Not found"},
		{"wrong method", http.MethodGet, "/api/generate-playlist", &mockChecker{}, http.StatusMethodNotAllowed, "Method not allowed"},
		{"panic", http.MethodGet, "/api/health", &mockChecker{panics: true}, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&mockProvider{}, tt.checker, Options{})
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if body := decodeBody(t, rec); body["error"] != tt.wantError {
				t.Errorf("error: got %v, want %q", body["error"], tt.wantError)
			}
		})
	}
}

func TestHandler_MetricsEndpoint(t *testing.T) {
	h := newTestHandler(&mockProvider{}, &mockChecker{connected: true}, Options{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "moodmix_api_requests_total") {
		t.Errorf("expected api request counter in exposition")
	}
}

func TestHandler_StaticDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>moodmix</h1>"), 0o600); err != nil {
		t.Fatal(err)
	}
	h := newTestHandler(&mockProvider{}, &mockChecker{}, Options{StaticDir: dir})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "moodmix") {
		t.Fatalf("index: got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing.js", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing asset: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("api routes must win over static: got %d", rec.Code)
	}
}
