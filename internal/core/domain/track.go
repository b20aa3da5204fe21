package domain

// Track is a recommended track reshaped for display.
type Track struct {
	Name         string            `json:"name"`
	Artist       string            `json:"artist"`
	Album        string            `json:"album"`
	Image        *string           `json:"image"`       // first album cover, if any
	PreviewURL   *string           `json:"preview_url"` // not every track has one
	ExternalURLs map[string]string `json:"external_urls"`
	URI          string            `json:"uri"`
	ID           string            `json:"id"`
	Popularity   int               `json:"popularity"`
	DurationMs   int               `json:"duration_ms"`
}
