package spotify

import "github.com/ewilliams-labs/moodmix/internal/core/ports"

// mapTrackToPort converts a raw Spotify track to the provider-shaped record.
// Reshaping for display happens in the core.
func mapTrackToPort(st spotifyTrack) ports.ProviderTrack {
	artists := make([]ports.ProviderArtist, 0, len(st.Artists))
	for _, a := range st.Artists {
		artists = append(artists, ports.ProviderArtist{Name: a.Name})
	}

	images := make([]ports.ProviderImage, 0, len(st.Album.Images))
	for _, img := range st.Album.Images {
		images = append(images, ports.ProviderImage{URL: img.URL})
	}

	return ports.ProviderTrack{
		Name:         st.Name,
		Artists:      artists,
		Album:        ports.ProviderAlbum{Name: st.Album.Name, Images: images},
		PreviewURL:   st.PreviewURL,
		ExternalURLs: st.ExternalURLs,
		URI:          st.URI,
		ID:           st.ID,
		Popularity:   st.Popularity,
		DurationMs:   st.DurationMs,
	}
}

func mapRecommendationsToPort(body recommendationsResponse) ports.RecommendationResponse {
	tracks := make([]ports.ProviderTrack, 0, len(body.Tracks))
	for _, st := range body.Tracks {
		tracks = append(tracks, mapTrackToPort(st))
	}
	return ports.RecommendationResponse{Tracks: tracks}
}
