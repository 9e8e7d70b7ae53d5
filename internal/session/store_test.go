package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhite-io/meridian/internal/models"
)

func testSession() *models.Session {
	return &models.Session{
		Tokens: models.TokenPair{
			AccessToken:  "access-abc",
			RefreshToken: "refresh-xyz",
			ExpiresIn:    900,
		},
		User: models.User{ID: "u_1", Email: "test@example.com", Name: "Test"},
	}
}

func TestStore_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path, "")

	// Nothing stored yet
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Save(testSession()))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "access-abc", loaded.Tokens.AccessToken)
	assert.Equal(t, "refresh-xyz", loaded.Tokens.RefreshToken)
	assert.Equal(t, "u_1", loaded.User.ID)
	assert.False(t, loaded.SavedAt.IsZero())

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	// Clearing twice is fine
	assert.NoError(t, store.Clear())
}

func TestStore_PlaintextFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path, "")
	require.NoError(t, store.Save(testSession()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// Plaintext file should contain the token in the clear
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "access-abc")
}

func TestStore_EncryptedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.bin")
	store := NewStore(path, "correct horse battery staple")
	require.NoError(t, store.Save(testSession()))

	// Tokens must not appear on disk
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "access-abc")
	assert.Equal(t, "MERS1", string(data[:5]))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "access-abc", loaded.Tokens.AccessToken)
}

func TestStore_WrongKeyFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.bin")
	require.NoError(t, NewStore(path, "key-one").Save(testSession()))

	_, err := NewStore(path, "key-two").Load()
	assert.ErrorContains(t, err, "decrypt")
}

func TestStore_EncryptedWithoutKeyFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.bin")
	require.NoError(t, NewStore(path, "secret").Save(testSession()))

	_, err := NewStore(path, "").Load()
	assert.ErrorContains(t, err, "no key is configured")
}
