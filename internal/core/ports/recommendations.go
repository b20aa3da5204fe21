package ports

import (
	"context"
	"errors"
)

// ErrProviderUnavailable indicates the provider is refusing calls, for
// example while a circuit breaker is open.
var ErrProviderUnavailable = errors.New("recommendation provider unavailable")

// RecommendationRequest carries the targets sent to the provider.
type RecommendationRequest struct {
	SeedGenres         []string
	TargetEnergy       float64
	TargetDanceability float64
	TargetValence      float64
	Limit              int
}

// ProviderArtist is a contributing artist as returned by the provider.
type ProviderArtist struct {
	Name string
}

// ProviderImage is one album image.
type ProviderImage struct {
	URL string
}

// ProviderAlbum is the album a track belongs to.
type ProviderAlbum struct {
	Name   string
	Images []ProviderImage
}

// ProviderTrack mirrors the provider's track record before reshaping.
type ProviderTrack struct {
	Name         string
	Artists      []ProviderArtist
	Album        ProviderAlbum
	PreviewURL   *string
	ExternalURLs map[string]string
	URI          string
	ID           string
	Popularity   int
	DurationMs   int
}

// RecommendationResponse is the provider's answer to one request.
type RecommendationResponse struct {
	Tracks []ProviderTrack
}

// RecommendationProvider returns tracks matching the requested targets.
// Implementations must be safe for concurrent use.
type RecommendationProvider interface {
	Recommendations(ctx context.Context, req RecommendationRequest) (RecommendationResponse, error)
}

// ConnectivityChecker probes whether the provider is reachable with the
// configured credentials.
type ConnectivityChecker interface {
	TestConnection(ctx context.Context) bool
}
