package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"pokedex-server/internal/logger"
)

// maxIDAttempts bounds how many fresh ids Resolve tries before giving up.
// With 256-bit ids a second attempt already means something is broken.
const maxIDAttempts = 5

var ErrIDExhausted = errors.New("session: could not allocate a unique id")

// IDFunc produces candidate session identifiers.
type IDFunc func() (string, error)

// RandomID returns 256 bits from crypto/rand, base64url encoded.
func RandomID() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("session: generate id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b[:]), nil
}

// Manager resolves the session for a request and persists changes.
type Manager struct {
	store Store
	ttl   time.Duration
	newID IDFunc
	now   func() time.Time
}

// NewManager wires a Manager to store. A zero ttl issues sessions that
// never expire.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{
		store: store,
		ttl:   ttl,
		newID: RandomID,
		now:   time.Now,
	}
}

// Resolve returns the live session named by the session_id cookie, or
// creates and stores a new one. A new id is never handed out while a live
// session holds it: Create is insert-if-absent and Resolve retries on
// ErrIDTaken.
func (m *Manager) Resolve(ctx context.Context, cookies map[string]string) (*Session, error) {
	if id := cookies[CookieName]; id != "" {
		s, err := m.store.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("session: lookup: %w", err)
		}
		if s != nil {
			return s, nil
		}
	}

	return m.create(ctx)
}

func (m *Manager) create(ctx context.Context) (*Session, error) {
	now := m.now()

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := m.newID()
		if err != nil {
			return nil, err
		}

		s := &Session{
			ID:        id,
			Data:      make(map[string]any),
			CreatedAt: now,
		}
		if m.ttl > 0 {
			s.ExpiresAt = now.Add(m.ttl)
		}

		err = m.store.Create(ctx, s)
		if errors.Is(err, ErrIDTaken) {
			logger.Warn("session id collision", map[string]any{
				"attempt": attempt + 1,
			})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("session: create: %w", err)
		}

		logger.Debug("session created", nil)
		return s, nil
	}

	return nil, ErrIDExhausted
}

// Save persists handler changes to s. It fails with ErrNotFound when the
// session was destroyed after it was resolved.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	return m.store.Update(ctx, s)
}

// Destroy removes the server-side state for sessionID.
func (m *Manager) Destroy(ctx context.Context, sessionID string) error {
	return m.store.Delete(ctx, sessionID)
}

// Count reports how many sessions the store holds.
func (m *Manager) Count(ctx context.Context) (int, error) {
	return m.store.Len(ctx)
}
