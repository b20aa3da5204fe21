package rest

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ewilliams-labs/moodmix/internal/core/domain"
)

const (
	errCodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
	errCodeNoRecommendations   = "NO_RECOMMENDATIONS"
)

// generateRequest defines what the client sends us.
type generateRequest struct {
	Mood      string `json:"mood" validate:"required"`
	Activity  string `json:"activity" validate:"required"`
	TimeOfDay string `json:"time_of_day" validate:"required"`
}

func (r *generateRequest) normalize() {
	r.Mood = strings.ToLower(strings.TrimSpace(r.Mood))
	r.Activity = strings.ToLower(strings.TrimSpace(r.Activity))
	r.TimeOfDay = strings.ToLower(strings.TrimSpace(r.TimeOfDay))
}

type generateMetadata struct {
	Mood        string `json:"mood"`
	Activity    string `json:"activity"`
	TimeOfDay   string `json:"time_of_day"`
	TotalTracks int    `json:"total_tracks"`
	PlaylistURI string `json:"playlist_uri,omitempty"`
}

type generateResponse struct {
	Success  bool             `json:"success"`
	Playlist domain.Playlist  `json:"playlist"`
	Metadata generateMetadata `json:"metadata"`
}

// GeneratePlaylist handles POST /api/generate-playlist.
func (h *Handler) GeneratePlaylist(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.normalize()
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required parameters")
		return
	}

	out := h.svc.GenerateOutcome(r.Context(), req.Mood, req.Activity, req.TimeOfDay)
	if len(out.Playlist) == 0 {
		code := errCodeNoRecommendations
		if out.Failed() {
			code = errCodeProviderUnavailable
		}
		writeErrorWithCode(w, http.StatusInternalServerError, "Failed to generate playlist", code)
		return
	}

	uri, _ := h.svc.PlaylistURI(out.Playlist)
	writeJSON(w, http.StatusOK, generateResponse{
		Success:  true,
		Playlist: out.Playlist,
		Metadata: generateMetadata{
			Mood:        req.Mood,
			Activity:    req.Activity,
			TimeOfDay:   req.TimeOfDay,
			TotalTracks: len(out.Playlist),
			PlaylistURI: uri,
		},
	})
}
