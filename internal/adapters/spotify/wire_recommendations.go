package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ewilliams-labs/moodmix/internal/core/ports"
)

// Recommendations calls GET /recommendations with the seed genres and
// target characteristics.
func (c *Client) Recommendations(ctx context.Context, r ports.RecommendationRequest) (ports.RecommendationResponse, error) {
	recURL, err := url.Parse(c.baseURL + "/recommendations")
	if err != nil {
		return ports.RecommendationResponse{}, fmt.Errorf("spotify adapter: invalid recommendations url: %w", err)
	}

	query := recURL.Query()
	if len(r.SeedGenres) > 0 {
		query.Set("seed_genres", strings.Join(r.SeedGenres, ","))
	}
	query.Set("target_energy", formatTarget(r.TargetEnergy))
	query.Set("target_danceability", formatTarget(r.TargetDanceability))
	query.Set("target_valence", formatTarget(r.TargetValence))
	if r.Limit > 0 {
		query.Set("limit", strconv.Itoa(r.Limit))
	}
	if c.market != "" {
		query.Set("market", c.market)
	}
	recURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, recURL.String(), nil)
	if err != nil {
		return ports.RecommendationResponse{}, fmt.Errorf("spotify adapter: failed to create recommendations request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return ports.RecommendationResponse{}, classify("recommendations", err, 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.RecommendationResponse{}, classify("recommendations", nil, resp.StatusCode)
	}

	var body recommendationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.RecommendationResponse{}, fmt.Errorf("spotify adapter: recommendations decode error: %w", err)
	}

	return mapRecommendationsToPort(body), nil
}

func formatTarget(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
