package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/ewilliams-labs/moodmix/internal/core/ports"
)

const (
	DefaultBaseURL  = "https://api.spotify.com/v1"
	DefaultTokenURL = "https://accounts.spotify.com/api/token"
	defaultTimeout  = 10 * time.Second
)

// ErrUnauthorized is returned when Spotify rejects the client credentials.
var ErrUnauthorized = errors.New("spotify adapter: unauthorized")

// StatusError reports a non-success HTTP status from the Web API.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spotify adapter: %s status %d", e.Op, e.StatusCode)
}

// Config configures a Client.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	Market       string
}

// Client is an HTTP client for the Spotify adapter. It is safe for
// concurrent use.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	market      string
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertions
var (
	_ ports.RecommendationProvider = (*Client)(nil)
	_ ports.ConnectivityChecker    = (*Client)(nil)
)

// NewClient constructs a Spotify client authenticated with the client
// credentials flow. Tokens are fetched lazily and refreshed on expiry.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.ClientID) == "" || strings.TrimSpace(cfg.ClientSecret) == "" {
		return nil, fmt.Errorf("spotify adapter: client id and secret are required: %w", ErrUnauthorized)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}

	// The token endpoint shares the API timeout.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: timeout})
	httpClient := cc.Client(ctx)
	httpClient.Timeout = timeout

	c := NewClientWithBaseURL(httpClient, baseURL)
	c.market = cfg.Market
	if cfg.MaxRetries > 0 {
		c.maxRetries = cfg.MaxRetries
	}
	if cfg.RetryBackoff > 0 {
		c.baseBackoff = cfg.RetryBackoff
	}
	return c, nil
}

// NewClientWithBaseURL wraps an already-authenticated HTTP client.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  defaultMaxRetries,
		baseBackoff: time.Duration(defaultBackoffMs) * time.Millisecond,
	}
}

// classify maps transport failures and statuses onto the adapter's errors.
func classify(op string, err error, status int) error {
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			return fmt.Errorf("spotify adapter: %s: token request rejected: %w: %w", op, ErrUnauthorized, err)
		}
		return fmt.Errorf("spotify adapter: %s: %w", op, err)
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return fmt.Errorf("%w: %w", ErrUnauthorized, &StatusError{Op: op, StatusCode: status})
	}
	return &StatusError{Op: op, StatusCode: status}
}
