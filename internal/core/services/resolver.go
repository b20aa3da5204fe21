package services

import (
	"strings"

	"github.com/ewilliams-labs/moodmix/internal/core/domain"
)

// Resolver merges the mood, activity and time-of-day tables into one
// parameter set. It only reads its tables and is safe for concurrent use.
type Resolver struct {
	moods      domain.ProfileTable
	activities domain.ProfileTable
	times      domain.ProfileTable
}

// NewResolver returns a Resolver over the built-in tables.
func NewResolver() *Resolver {
	return NewResolverWithTables(domain.MoodProfiles(), domain.ActivityProfiles(), domain.TimeOfDayProfiles())
}

// NewResolverWithTables returns a Resolver over caller-supplied tables.
// Table keys must be lower-case.
func NewResolverWithTables(moods, activities, times domain.ProfileTable) *Resolver {
	return &Resolver{
		moods:      moods,
		activities: activities,
		times:      times,
	}
}

// Resolve applies mood, then activity, then time of day. Unknown keys
// contribute nothing; the result is always fully populated.
func (r *Resolver) Resolve(mood, activity, timeOfDay string) domain.ResolvedParameters {
	params := domain.DefaultParameters()
	genres := domain.NewGenreSet()

	// Mood sets energy, danceability and valence.
	if p, ok := r.moods.Lookup(normalizeKey(mood)); ok {
		overwrite(&params.Energy, p.Energy)
		overwrite(&params.Danceability, p.Danceability)
		overwrite(&params.Valence, p.Valence)
		genres.Add(p.Genres...)
	}

	// Activity only touches energy and danceability.
	if p, ok := r.activities.Lookup(normalizeKey(activity)); ok {
		overwrite(&params.Energy, p.Energy)
		overwrite(&params.Danceability, p.Danceability)
		genres.Add(p.Genres...)
	}

	if p, ok := r.times.Lookup(normalizeKey(timeOfDay)); ok {
		params.Energy = domain.Clamp01(params.Energy + p.EnergyBoost)
		genres.Add(p.Genres...)
	}

	params.SeedGenres = genres.First(domain.MaxSeedGenres)
	return params
}

func overwrite(dst *float64, v *float64) {
	if v != nil {
		*dst = domain.Clamp01(*v)
	}
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
