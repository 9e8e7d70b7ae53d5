// Package cloud provides the client for the Meridian Cloud API.
//
// All portfolio, analytics, benchmark and insight data is computed by the
// backend; this client attaches the stored bearer token to every request,
// refreshes the token once on a 401 and replays the failed request, and
// surfaces ErrSessionExpired when the refresh itself is rejected.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mwhite-io/meridian/internal/common"
	"github.com/mwhite-io/meridian/internal/interfaces"
	"github.com/mwhite-io/meridian/internal/session"
)

const (
	DefaultBaseURL   = "https://api.meridian.finance"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

var (
	// ErrNotAuthenticated is returned when no session is stored. The caller
	// must log in before using authenticated endpoints.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired is returned when a token refresh is rejected by the
	// backend. All stored session state has been cleared; the caller must
	// log in again. This is the headless analogue of the dashboard's
	// redirect to the login page.
	ErrSessionExpired = errors.New("session expired")
)

// Client implements the CloudClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
	sessions   interfaces.SessionStore

	// refreshMu serialises token refreshes. A request that loses the race
	// re-reads the store and proceeds with the fresh token instead of
	// refreshing again.
	refreshMu sync.Mutex
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Meridian Cloud API client backed by the given
// session store.
func NewClient(sessions interfaces.SessionStore, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter:  rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:   common.NewSilentLogger(),
		sessions: sessions,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a backend error response
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Meridian API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// apiErrorFrom builds an APIError from a non-2xx response body. The backend
// sends {"error": "..."}; anything else is passed through raw.
func apiErrorFrom(resp *http.Response, endpoint string) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	msg := string(body)
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		msg = envelope.Error
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    msg,
		Endpoint:   endpoint,
	}
}

// roundTrip executes one HTTP request. token may be empty for public
// endpoints. The body is passed as bytes so a 401 replay can resend it.
func (c *Client) roundTrip(ctx context.Context, method, path string, body []byte, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	return resp, nil
}

// do executes an authenticated request with the full session contract:
// bearer attach, refresh-on-401, single replay, ErrSessionExpired on refresh
// failure. result may be nil for requests without a response body.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	sess, err := c.sessions.Load()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return ErrNotAuthenticated
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	token := sess.Tokens.AccessToken

	// Proactive refresh: a token already past its exp claim is a guaranteed
	// 401, so skip the wasted round trip.
	if tokenExpired(token) {
		c.logger.Debug().Str("path", path).Msg("Access token expired, refreshing before request")
		token, err = c.refreshToken(ctx, token)
		if err != nil {
			return err
		}
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("Meridian API request")

	resp, err := c.roundTrip(ctx, method, path, payload, token)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		newToken, err := c.refreshToken(ctx, token)
		if err != nil {
			return err
		}

		// Replay the original request exactly once with the new token.
		resp, err = c.roundTrip(ctx, method, path, payload, newToken)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFrom(resp, path)
	}

	if result == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// doPublic executes an unauthenticated request (login, register, refresh).
func (c *Client) doPublic(ctx context.Context, method, path string, body, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	resp, err := c.roundTrip(ctx, method, path, payload, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFrom(resp, path)
	}

	if result == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// get performs an authenticated GET request
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// Ensure Client implements CloudClient
var _ interfaces.CloudClient = (*Client)(nil)
