package interfaces

import "github.com/mwhite-io/meridian/internal/models"

// SessionStore persists the authentication session between runs. It is the
// client-side storage of the auth contract: tokens are read on every request,
// replaced after a refresh, and cleared when a refresh fails.
type SessionStore interface {
	// Load returns the stored session, or ErrNoSession when none exists.
	Load() (*models.Session, error)
	// Save persists the session atomically.
	Save(session *models.Session) error
	// Clear removes all stored session state.
	Clear() error
}
