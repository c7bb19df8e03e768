package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
	"github.com/ricardo-aragon/ticashop-desk/internal/persistence"
)

// ErrSessionNotFound signals an expired or revoked session.
var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "desk:session:"

// Session binds a desk login to its upstream credentials. UpstreamToken is
// only ever read server-side; callers hold a JWT naming the session ID.
type Session struct {
	ID            string      `json:"id"`
	UpstreamToken string      `json:"upstreamToken"`
	User          domain.User `json:"user"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// SessionStore persists sessions in Redis with a sliding TTL.
type SessionStore struct {
	redis *persistence.Redis
	ttl   time.Duration
}

// NewSessionStore builds a store.
func NewSessionStore(redis *persistence.Redis, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &SessionStore{redis: redis, ttl: ttl}
}

// Create mints a new session for a successful upstream login.
func (s *SessionStore) Create(ctx context.Context, upstreamToken string, user domain.User) (*Session, error) {
	session := &Session{
		ID:            uuid.NewString(),
		UpstreamToken: upstreamToken,
		User:          user,
		CreatedAt:     time.Now(),
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads a session and refreshes its TTL.
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := s.redis.Client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	_ = s.redis.Client.Expire(ctx, sessionKeyPrefix+id, s.ttl).Err()
	return &session, nil
}

// Update rewrites a session in place, keeping its ID.
func (s *SessionStore) Update(ctx context.Context, session *Session) error {
	return s.save(ctx, session)
}

// Delete revokes a session. Deleting an absent session is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) save(ctx context.Context, session *Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.redis.Client.Set(ctx, sessionKeyPrefix+session.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}
