// Package session persists the authentication session to disk.
//
// The store is the local analogue of the dashboard's browser storage: a
// single JSON document holding the access/refresh token pair and the user it
// belongs to. When an encryption key is configured the document is sealed
// with ChaCha20-Poly1305 before it touches disk.
package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/mwhite-io/meridian/internal/interfaces"
	"github.com/mwhite-io/meridian/internal/models"
)

// ErrNoSession is returned by Load when no session has been stored.
var ErrNoSession = errors.New("no stored session")

// magic prefixes encrypted session files so Load can tell the formats apart.
var magic = []byte("MERS1")

// Store is a file-backed SessionStore.
type Store struct {
	mu   sync.Mutex
	path string
	key  []byte // nil when encryption is disabled
}

// NewStore creates a session store at path. key may be empty, in which case
// the session file is stored as plain JSON with 0600 permissions.
func NewStore(path, key string) *Store {
	s := &Store{path: path}
	if key != "" {
		sum := sha256.Sum256([]byte(key))
		s.key = sum[:]
	}
	return s
}

// Load returns the stored session, or ErrNoSession when none exists.
func (s *Store) Load() (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if len(data) > len(magic) && string(data[:len(magic)]) == string(magic) {
		if s.key == nil {
			return nil, fmt.Errorf("session file is encrypted but no key is configured")
		}
		data, err = s.open(data[len(magic):])
		if err != nil {
			return nil, err
		}
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if sess.Tokens.AccessToken == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Save persists the session atomically (write to temp file, then rename).
func (s *Store) Save(sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.SavedAt.IsZero() {
		sess.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if s.key != nil {
		sealed, err := s.seal(data)
		if err != nil {
			return err
		}
		data = append(append([]byte{}, magic...), sealed...)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set session file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Clear removes all stored session state.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// seal encrypts plaintext with a random nonce prepended to the ciphertext.
func (s *Store) seal(plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// open decrypts data produced by seal.
func (s *Store) open(data []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}
	if len(data) < aead.NonceSize() {
		return nil, fmt.Errorf("session file truncated")
	}
	nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt session file: %w", err)
	}
	return plaintext, nil
}

// Ensure Store implements SessionStore
var _ interfaces.SessionStore = (*Store)(nil)
