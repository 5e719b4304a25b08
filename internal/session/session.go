// Package session keeps a login token between CLI invocations. The token is
// the only persisted state; identity is re-derived from its claims on every
// load, so a stale or tampered file simply reads as "not logged in".
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/solara-studio/backoffice/internal/auth"
	"github.com/solara-studio/backoffice/internal/domain/user"
	"github.com/solara-studio/backoffice/pkg/logger"
)

// Verifier optionally validates tokens cryptographically. Without one the
// holder still rejects malformed and expired tokens, but cannot check the
// signature; the gateway remains the authority either way.
type Verifier interface {
	VerifyToken(token string) (auth.Claims, error)
}

// Holder owns the persisted session file.
type Holder struct {
	mu       sync.Mutex
	path     string
	verifier Verifier
	log      *logger.Logger

	token  string
	claims auth.Claims
	loaded bool
}

type sessionFile struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// New creates a holder persisting to path. An empty path selects
// $HOME/.backoffice/session.json.
func New(path string, verifier Verifier, log *logger.Logger) (*Holder, error) {
	if log == nil {
		log = logger.NewDefault("session")
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("session: resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".backoffice", "session.json")
	}
	return &Holder{path: path, verifier: verifier, log: log}, nil
}

// Save stores the token and refreshes the in-memory identity.
func (h *Holder) Save(token string) error {
	claims, err := h.parse(token)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return fmt.Errorf("session: create directory: %w", err)
	}
	payload, err := json.Marshal(sessionFile{Token: token, SavedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := os.WriteFile(h.path, payload, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", h.path, err)
	}

	h.token = token
	h.claims = claims
	h.loaded = true
	return nil
}

// Restore loads the persisted token. A missing file or an invalid token is
// not an error; the holder just stays unauthenticated.
func (h *Holder) Restore() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.loaded {
		return nil
	}
	h.loaded = true

	raw, err := os.ReadFile(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("session: read %s: %w", h.path, err)
	}

	var file sessionFile
	if err := json.Unmarshal(raw, &file); err != nil {
		h.log.WithError(err).Debug("discarding unreadable session file")
		return nil
	}
	claims, err := h.parse(file.Token)
	if err != nil {
		h.log.WithError(err).Debug("discarding invalid session token")
		return nil
	}

	h.token = file.Token
	h.claims = claims
	return nil
}

// Clear forgets the session and removes the file.
func (h *Holder) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.token = ""
	h.claims = auth.Claims{}
	h.loaded = true
	if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: remove %s: %w", h.path, err)
	}
	return nil
}

// Token returns the current token, or "" when unauthenticated. It satisfies
// the gateway client's token source.
func (h *Holder) Token() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.token
}

// IsAuthenticated reports whether a usable token is held.
func (h *Holder) IsAuthenticated() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.token != ""
}

// IsAdmin reports whether the held identity carries the admin role.
func (h *Holder) IsAdmin() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.token != "" && h.claims.Role == user.RoleAdmin
}

// Claims returns the identity claims of the held token.
func (h *Holder) Claims() auth.Claims {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.claims
}

func (h *Holder) parse(token string) (auth.Claims, error) {
	if h.verifier != nil {
		return h.verifier.VerifyToken(token)
	}

	var claims auth.Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return auth.Claims{}, fmt.Errorf("session: parse token: %w", err)
	}
	if claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time) {
		return auth.Claims{}, fmt.Errorf("session: token expired")
	}
	return claims, nil
}
