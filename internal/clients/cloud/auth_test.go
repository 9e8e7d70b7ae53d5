package cloud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhite-io/meridian/internal/models"
	"github.com/mwhite-io/meridian/internal/session"
)

func TestLogin_PersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "test@example.com", creds.Email)

		writeData(w, map[string]interface{}{
			"tokens": models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1", ExpiresIn: 900},
			"user":   models.User{ID: "u_1", Email: creds.Email, Name: "Test"},
		})
	}))
	defer srv.Close()

	store := newTestStore(t, "", "")
	client := NewClient(store, WithBaseURL(srv.URL))

	sess, err := client.Login(context.Background(), models.Credentials{Email: "test@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "access-1", sess.Tokens.AccessToken)
	assert.Equal(t, "u_1", sess.User.ID)

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", stored.Tokens.RefreshToken)
}

func TestLogin_InvalidCredentialsRejectedLocally(t *testing.T) {
	client := NewClient(newTestStore(t, "", ""))
	_, err := client.Login(context.Background(), models.Credentials{Email: "", Password: "x"})
	assert.ErrorContains(t, err, "email is required")
}

func TestLogin_BackendRejectionPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))
	defer srv.Close()

	store := newTestStore(t, "", "")
	client := NewClient(store, WithBaseURL(srv.URL))

	_, err := client.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "wrong"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid credentials", apiErr.Message)

	// A failed login must not leave a session behind
	_, err = store.Load()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestRegister_ValidatesInput(t *testing.T) {
	client := NewClient(newTestStore(t, "", ""))
	_, err := client.Register(context.Background(), models.RegisterRequest{Email: "a@b.c", Password: "short", Name: "A"})
	assert.ErrorContains(t, err, "at least 8 characters")
}

func TestLogout_ClearsLocalSessionEvenWhenBackendFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "revocation failed"})
	}))
	defer srv.Close()

	store := newTestStore(t, "access-1", "refresh-1")
	client := NewClient(store, WithBaseURL(srv.URL))

	require.NoError(t, client.Logout(context.Background()))

	_, err := store.Load()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestCurrentUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/auth/me", r.URL.Path)
		writeData(w, models.User{ID: "u_1", Email: "test@example.com", BaseCurrency: "AUD"})
	}))
	defer srv.Close()

	client := NewClient(newTestStore(t, "access-1", "refresh-1"), WithBaseURL(srv.URL))
	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AUD", user.BaseCurrency)
}
