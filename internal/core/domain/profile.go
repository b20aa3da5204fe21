package domain

// Profile holds the target characteristics and seed genres attached to one
// mood, activity or time-of-day key. Nil numeric fields mean "not set".
type Profile struct {
	Energy       *float64
	Danceability *float64
	Valence      *float64
	Acousticness *float64
	EnergyBoost  float64
	Genres       []string
}

// ProfileTable maps a lower-case category key to its profile.
type ProfileTable map[string]Profile

// Lookup returns the profile for key. Keys are stored lower-case.
func (t ProfileTable) Lookup(key string) (Profile, bool) {
	p, ok := t[key]
	return p, ok
}

func target(v float64) *float64 { return &v }

// MoodProfiles returns the built-in mood table.
func MoodProfiles() ProfileTable {
	return ProfileTable{
		"happy": {
			Energy:       target(0.7),
			Danceability: target(0.7),
			Valence:      target(0.85),
			Genres:       []string{"pop", "dance", "feel-good"},
		},
		"sad": {
			Energy:       target(0.3),
			Danceability: target(0.3),
			Valence:      target(0.2),
			Genres:       []string{"indie", "alternative", "soul"},
		},
		"energetic": {
			Energy:       target(0.9),
			Danceability: target(0.8),
			Valence:      target(0.6),
			Genres:       []string{"edm", "electronic", "hip-hop"},
		},
		"calm": {
			Energy:       target(0.2),
			Danceability: target(0.2),
			Valence:      target(0.5),
			Genres:       []string{"ambient", "acoustic", "indie"},
		},
		"party": {
			Energy:       target(0.85),
			Danceability: target(0.85),
			Valence:      target(0.75),
			Genres:       []string{"dance", "electronic", "pop"},
		},
	}
}

// ActivityProfiles returns the built-in activity table.
// Valence on "sleep" is carried but never applied: activities only set
// energy and danceability.
func ActivityProfiles() ProfileTable {
	return ProfileTable{
		"workout": {
			Energy: target(0.8),
			Genres: []string{"electronic", "hip-hop", "pop"},
		},
		"study": {
			Energy:       target(0.4),
			Danceability: target(0.3),
			Genres:       []string{"lo-fi", "ambient", "indie"},
		},
		"party": {
			Energy:       target(0.85),
			Danceability: target(0.85),
			Genres:       []string{"dance", "electronic", "hip-hop"},
		},
		"sleep": {
			Energy:       target(0.1),
			Danceability: target(0.1),
			Valence:      target(0.3),
			Genres:       []string{"ambient", "acoustic", "classical"},
		},
	}
}

// TimeOfDayProfiles returns the built-in time-of-day table.
func TimeOfDayProfiles() ProfileTable {
	return ProfileTable{
		"morning": {
			EnergyBoost: 0.1,
			Genres:      []string{"indie", "pop", "acoustic"},
		},
		"afternoon": {
			EnergyBoost: 0.0,
			Genres:      []string{"pop", "rock", "indie"},
		},
		"evening": {
			EnergyBoost: -0.1,
			Genres:      []string{"soul", "indie", "alternative"},
		},
		"night": {
			EnergyBoost: -0.2,
			Genres:      []string{"ambient", "electronic", "indie"},
		},
	}
}
