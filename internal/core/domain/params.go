package domain

const (
	// DefaultTarget is the neutral value for every target characteristic.
	DefaultTarget = 0.5
	// MaxSeedGenres is the provider limit on seed genres per request.
	MaxSeedGenres = 5
)

// ResolvedParameters is the merged recommendation input for one selection.
type ResolvedParameters struct {
	Energy       float64  `json:"energy"`
	Danceability float64  `json:"danceability"`
	Valence      float64  `json:"valence"`
	Acousticness float64  `json:"acousticness"`
	SeedGenres   []string `json:"seed_genres"`
}

// DefaultParameters returns the parameters used when no profile applies.
func DefaultParameters() ResolvedParameters {
	return ResolvedParameters{
		Energy:       DefaultTarget,
		Danceability: DefaultTarget,
		Valence:      DefaultTarget,
		Acousticness: DefaultTarget,
		SeedGenres:   []string{},
	}
}

// GenreSet accumulates genre tags in first-seen order without duplicates.
type GenreSet struct {
	order []string
	seen  map[string]struct{}
}

// NewGenreSet returns an empty accumulator.
func NewGenreSet() *GenreSet {
	return &GenreSet{seen: make(map[string]struct{})}
}

// Add appends every tag not already present.
func (g *GenreSet) Add(tags ...string) {
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := g.seen[tag]; ok {
			continue
		}
		g.seen[tag] = struct{}{}
		g.order = append(g.order, tag)
	}
}

// Len reports the number of distinct tags.
func (g *GenreSet) Len() int {
	return len(g.order)
}

// First returns a copy of at most n tags in insertion order.
func (g *GenreSet) First(n int) []string {
	if n > len(g.order) {
		n = len(g.order)
	}
	if n < 0 {
		n = 0
	}
	out := make([]string, n)
	copy(out, g.order[:n])
	return out
}

// Clamp01 bounds v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
