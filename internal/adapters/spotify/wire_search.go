package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/ewilliams-labs/moodmix/internal/logging"
)

// TestConnection reports whether a minimal track search succeeds with the
// configured credentials. Any failure yields false.
func (c *Client) TestConnection(ctx context.Context) bool {
	if _, err := c.searchTracks(ctx, "track:test", 1); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("spotify connectivity check failed")
		return false
	}
	return true
}

func (c *Client) searchTracks(ctx context.Context, q string, limit int) ([]spotifyTrack, error) {
	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: invalid search url: %w", err)
	}

	query := searchURL.Query()
	query.Set("q", q)
	query.Set("type", "track")
	query.Set("limit", fmt.Sprintf("%d", limit))
	searchURL.RawQuery = query.Encode()

	logging.Ctx(ctx).Debug().Str("url", searchURL.String()).Msg("spotify adapter: search request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: failed to create search request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, classify("search", err, 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classify("search", nil, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("spotify adapter: search decode error: %w", err)
	}
	return body.Tracks.Items, nil
}
