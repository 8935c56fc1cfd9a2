package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	storageKey = "sanctuary_session"
	sessionTTL = 30 * 24 * time.Hour

	// GuestUserID scopes per-user storage when nobody is logged in.
	GuestUserID = "guest"
)

var ErrNoSession = errors.New("no session")

// Session is the logged-in account state.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Remember  bool      `json:"remember"`
	Timestamp time.Time `json:"timestamp"`
}

type sessionClaims struct {
	UserID   string `json:"uid"`
	Email    string `json:"email"`
	Remember bool   `json:"remember"`
	jwt.RegisteredClaims
}

// Store is the persisted slot sessions live in.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Delete(key string) error
}

// Manager persists the session as a signed token. Earlier releases stored
// plain JSON; those values are still accepted on read and upgraded to the
// signed form. Any value that neither verifies nor parses counts as no
// session, never as an error.
type Manager struct {
	store     Store
	secretKey []byte
}

func NewManager(store Store, secretKey []byte) *Manager {
	return &Manager{store: store, secretKey: secretKey}
}

// Save signs and persists the session.
func (manager *Manager) Save(session Session) error {
	if session.Timestamp.IsZero() {
		session.Timestamp = time.Now()
	}

	now := time.Now()
	claims := sessionClaims{
		UserID:   session.UserID,
		Email:    session.Email,
		Remember: session.Remember,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(session.Timestamp),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(manager.secretKey)
	if err != nil {
		return err
	}
	return manager.store.Set(storageKey, token)
}

// Load returns the current session, upgrading legacy plain-JSON values to
// the signed form on the way.
func (manager *Manager) Load() (Session, error) {
	raw, found, err := manager.store.Get(storageKey)
	if err != nil || !found || strings.TrimSpace(raw) == "" {
		return Session{}, ErrNoSession
	}

	if strings.HasPrefix(strings.TrimSpace(raw), "{") {
		return manager.loadLegacy(raw)
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return manager.secretKey, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return Session{}, ErrNoSession
	}

	session := Session{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Remember: claims.Remember,
	}
	if claims.IssuedAt != nil {
		session.Timestamp = claims.IssuedAt.Time
	}
	return session, nil
}

func (manager *Manager) loadLegacy(raw string) (Session, error) {
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil || session.UserID == "" {
		return Session{}, ErrNoSession
	}
	// Upgrade in place; a failed write just means another upgrade next load.
	_ = manager.Save(session)
	return session, nil
}

// Clear removes the persisted session.
func (manager *Manager) Clear() error {
	return manager.store.Delete(storageKey)
}

// UserIDOrGuest returns the logged-in user id, or the guest id when no
// session exists.
func (manager *Manager) UserIDOrGuest() string {
	session, err := manager.Load()
	if err != nil {
		return GuestUserID
	}
	return session.UserID
}
