package rest

import "net/http"

type healthResponse struct {
	Status           string `json:"status"`
	SpotifyConnected bool   `json:"spotify_connected"`
}

type healthErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// HealthCheck probes Spotify connectivity. An unreachable API is still a 200
// with status "disconnected".
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.checker == nil {
		writeJSON(w, http.StatusInternalServerError, healthErrorResponse{
			Status: "error",
			Error:  "spotify client not configured",
		})
		return
	}

	connected := h.checker.TestConnection(r.Context())
	status := "disconnected"
	if connected {
		status = "healthy"
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: status, SpotifyConnected: connected})
}
