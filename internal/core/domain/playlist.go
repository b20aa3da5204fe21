package domain

import "strings"

// PlaylistSize is the number of tracks requested per playlist.
const PlaylistSize = 25

// playlistURIScheme prefixes the aggregated track ID list.
const playlistURIScheme = "spotify:tracks:"

// Playlist is the ordered result of one generation request.
type Playlist []Track

// PlaylistURI joins the trailing ID segment of every track URI under the
// spotify:tracks: scheme. The second return is false for an empty list.
func PlaylistURI(tracks []Track) (string, bool) {
	if len(tracks) == 0 {
		return "", false
	}

	ids := make([]string, 0, len(tracks))
	for _, t := range tracks {
		ids = append(ids, lastURISegment(t.URI))
	}
	return playlistURIScheme + strings.Join(ids, ","), true
}

func lastURISegment(uri string) string {
	if idx := strings.LastIndex(uri, ":"); idx != -1 {
		return uri[idx+1:]
	}
	return uri
}

// OutcomeStatus classifies a generation attempt.
type OutcomeStatus string

const (
	OutcomeTracks          OutcomeStatus = "tracks"
	OutcomeNoMatches       OutcomeStatus = "no_matches"
	OutcomeProviderFailure OutcomeStatus = "provider_failure"
)

// Outcome separates "the provider returned nothing" from "the provider
// failed". Err is set only for OutcomeProviderFailure.
type Outcome struct {
	Status     OutcomeStatus
	Playlist   Playlist
	Parameters ResolvedParameters
	Err        error
}

// Failed reports whether the provider call failed.
func (o Outcome) Failed() bool {
	return o.Status == OutcomeProviderFailure
}
