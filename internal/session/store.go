package session

import (
	"context"
	"errors"
	"maps"
	"time"
)

// Keys handlers store in Session.Data.
const (
	KeyLoggedIn = "isLoggedIn"
	KeyName     = "name"
)

var (
	ErrIDTaken  = errors.New("session: id already in use")
	ErrNotFound = errors.New("session: not found")
)

// Session is server-side state tied to one browser by its cookie.
type Session struct {
	ID        string         `json:"id"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"` // zero means no expiry
}

func (s *Session) Set(key string, value any) {
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

func (s *Session) Bool(key string) bool {
	v, _ := s.Data[key].(bool)
	return v
}

func (s *Session) String(key string) string {
	v, _ := s.Data[key].(string)
	return v
}

// LoggedIn reports whether the login handler has marked this session.
func (s *Session) LoggedIn() bool {
	return s.Bool(KeyLoggedIn)
}

func (s *Session) expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

func (s *Session) clone() *Session {
	c := *s
	c.Data = maps.Clone(s.Data)
	if c.Data == nil {
		c.Data = make(map[string]any)
	}
	return &c
}

// Store defines how sessions are stored and retrieved.
// Get returns nil, nil when the session is absent or expired.
// Create must fail with ErrIDTaken rather than overwrite a live session,
// and Update must fail with ErrNotFound rather than revive a deleted one.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, sessionID string) error
	Len(ctx context.Context) (int, error)
}
