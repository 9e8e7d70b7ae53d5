package cloud

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mwhite-io/meridian/internal/models"
	"github.com/mwhite-io/meridian/internal/session"
)

// expiryLeeway treats tokens expiring within this window as already expired,
// absorbing clock skew between client and backend.
const expiryLeeway = 10 * time.Second

// tokenExpired inspects the access token's exp claim without verifying the
// signature (the client never holds the signing secret). Opaque or malformed
// tokens are assumed live; the 401 path handles them.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().Add(expiryLeeway).After(exp.Time)
}

// refreshToken obtains a fresh access token. staleToken is the token the
// caller just used; if the store already holds a different one, another
// request refreshed first and that token is returned as-is.
//
// On refresh failure all stored session state is cleared and
// ErrSessionExpired is returned.
func (c *Client) refreshToken(ctx context.Context, staleToken string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	sess, err := c.sessions.Load()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return "", ErrSessionExpired
		}
		return "", fmt.Errorf("failed to load session: %w", err)
	}

	// Lost the refresh race: someone already stored a new token.
	if sess.Tokens.AccessToken != staleToken {
		return sess.Tokens.AccessToken, nil
	}

	if sess.Tokens.RefreshToken == "" {
		c.sessions.Clear()
		return "", ErrSessionExpired
	}

	c.logger.Debug().Msg("Refreshing access token")

	var resp struct {
		Data models.TokenPair `json:"data"`
	}
	req := map[string]string{"refresh_token": sess.Tokens.RefreshToken}
	if err := c.doPublic(ctx, http.MethodPost, "/v1/auth/refresh", req, &resp); err != nil {
		c.logger.Warn().Err(err).Msg("Token refresh rejected, clearing session")
		if cerr := c.sessions.Clear(); cerr != nil {
			c.logger.Error().Err(cerr).Msg("Failed to clear session after refresh failure")
		}
		return "", fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}
	if resp.Data.AccessToken == "" {
		c.sessions.Clear()
		return "", ErrSessionExpired
	}

	sess.Tokens = resp.Data
	sess.SavedAt = time.Now()
	if err := c.sessions.Save(sess); err != nil {
		return "", fmt.Errorf("failed to persist refreshed session: %w", err)
	}

	return resp.Data.AccessToken, nil
}

type sessionResponse struct {
	Data struct {
		Tokens models.TokenPair `json:"tokens"`
		User   models.User      `json:"user"`
	} `json:"data"`
}

// Login authenticates with email/password and persists the resulting session.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	var resp sessionResponse
	if err := c.doPublic(ctx, http.MethodPost, "/v1/auth/login", creds, &resp); err != nil {
		return nil, err
	}

	sess := &models.Session{
		Tokens:  resp.Data.Tokens,
		User:    resp.Data.User,
		SavedAt: time.Now(),
	}
	if err := c.sessions.Save(sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	c.logger.Info().Str("user", sess.User.Email).Msg("Logged in")
	return sess, nil
}

// Register creates a new account and persists the resulting session.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp sessionResponse
	if err := c.doPublic(ctx, http.MethodPost, "/v1/auth/register", req, &resp); err != nil {
		return nil, err
	}

	sess := &models.Session{
		Tokens:  resp.Data.Tokens,
		User:    resp.Data.User,
		SavedAt: time.Now(),
	}
	if err := c.sessions.Save(sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	c.logger.Info().Str("user", sess.User.Email).Msg("Registered")
	return sess, nil
}

// Logout revokes the session on the backend (best effort) and clears local
// state. Local state is cleared even when the revoke call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
	if err != nil && !errors.Is(err, ErrNotAuthenticated) && !errors.Is(err, ErrSessionExpired) {
		c.logger.Warn().Err(err).Msg("Backend logout failed, clearing local session anyway")
	}
	return c.sessions.Clear()
}

// CurrentUser returns the authenticated account.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var resp struct {
		Data models.User `json:"data"`
	}
	if err := c.get(ctx, "/v1/auth/me", &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
