package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ewilliams-labs/moodmix/internal/core/domain"
	"github.com/ewilliams-labs/moodmix/internal/core/ports"
	"github.com/ewilliams-labs/moodmix/internal/logging"
	"github.com/ewilliams-labs/moodmix/internal/metrics"
)

// Assembler turns a mood/activity/time-of-day selection into a playlist by
// resolving parameters and issuing exactly one provider call.
type Assembler struct {
	resolver *Resolver
	provider ports.RecommendationProvider
}

// NewAssembler creates an Assembler. A nil resolver uses the built-in tables.
func NewAssembler(resolver *Resolver, provider ports.RecommendationProvider) *Assembler {
	if resolver == nil {
		resolver = NewResolver()
	}
	return &Assembler{
		resolver: resolver,
		provider: provider,
	}
}

// Generate returns the playlist for the selection. Provider failures are
// logged and yield an empty playlist.
func (a *Assembler) Generate(ctx context.Context, mood, activity, timeOfDay string) domain.Playlist {
	return a.GenerateOutcome(ctx, mood, activity, timeOfDay).Playlist
}

// GenerateOutcome is Generate with the failure reason and resolved
// parameters kept.
func (a *Assembler) GenerateOutcome(ctx context.Context, mood, activity, timeOfDay string) domain.Outcome {
	params := a.resolver.Resolve(mood, activity, timeOfDay)
	out := domain.Outcome{
		Parameters: params,
		Playlist:   domain.Playlist{},
	}

	req := ports.RecommendationRequest{
		SeedGenres:         params.SeedGenres,
		TargetEnergy:       params.Energy,
		TargetDanceability: params.Danceability,
		TargetValence:      params.Valence,
		Limit:              domain.PlaylistSize,
	}

	start := time.Now()
	resp, err := a.callProvider(ctx, req)
	metrics.ProviderRequestDuration.WithLabelValues("recommendations").Observe(time.Since(start).Seconds())

	if err != nil {
		logging.Ctx(ctx).Error().
			Err(err).
			Str("mood", mood).
			Str("activity", activity).
			Str("time_of_day", timeOfDay).
			Strs("seed_genres", params.SeedGenres).
			Msg("playlist generation failed")
		out.Status = domain.OutcomeProviderFailure
		out.Err = err
		metrics.PlaylistGenerations.WithLabelValues(string(out.Status)).Inc()
		return out
	}

	for _, t := range resp.Tracks {
		out.Playlist = append(out.Playlist, mapTrack(t))
	}

	if len(out.Playlist) == 0 {
		logging.Ctx(ctx).Warn().
			Str("mood", mood).
			Str("activity", activity).
			Str("time_of_day", timeOfDay).
			Msg("provider returned no recommendations")
		out.Status = domain.OutcomeNoMatches
	} else {
		out.Status = domain.OutcomeTracks
		metrics.PlaylistTracks.Observe(float64(len(out.Playlist)))
	}
	metrics.PlaylistGenerations.WithLabelValues(string(out.Status)).Inc()
	return out
}

// PlaylistURI returns the aggregated track URI, or false for an empty list.
func (a *Assembler) PlaylistURI(tracks []domain.Track) (string, bool) {
	return domain.PlaylistURI(tracks)
}

// callProvider converts a panicking provider into an error so a broken
// adapter still produces an empty playlist.
func (a *Assembler) callProvider(ctx context.Context, req ports.RecommendationRequest) (resp ports.RecommendationResponse, err error) {
	if a.provider == nil {
		return resp, fmt.Errorf("assembler: no recommendation provider configured: %w", ports.ErrProviderUnavailable)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("assembler: provider panic: %v", r)
		}
	}()
	return a.provider.Recommendations(ctx, req)
}

// mapTrack reshapes a provider track into the display record.
func mapTrack(t ports.ProviderTrack) domain.Track {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}

	var image *string
	if len(t.Album.Images) > 0 {
		url := t.Album.Images[0].URL
		image = &url
	}

	externalURLs := t.ExternalURLs
	if externalURLs == nil {
		externalURLs = map[string]string{}
	}

	return domain.Track{
		Name:         t.Name,
		Artist:       strings.Join(names, ", "),
		Album:        t.Album.Name,
		Image:        image,
		PreviewURL:   t.PreviewURL,
		ExternalURLs: externalURLs,
		URI:          t.URI,
		ID:           t.ID,
		Popularity:   t.Popularity,
		DurationMs:   t.DurationMs,
	}
}
