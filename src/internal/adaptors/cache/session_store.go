package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aangsquared/Events-Planner/src/internal/core"
	"github.com/go-redis/redis/v8"
)

// SessionStore keeps session records in Redis so logout can revoke an
// access token before its JWT expiry. Records expire with the token.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (s *SessionStore) CreateSession(session core.Session) error {
	ctx := context.Background()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *SessionStore) GetSession(id string) (core.Session, error) {
	ctx := context.Background()
	data, err := s.client.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return core.Session{}, fmt.Errorf("%w: session expired or revoked", core.ErrUnauthorized)
	} else if err != nil {
		return core.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	var session core.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return core.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session, nil
}

func (s *SessionStore) DeleteSession(id string) error {
	return s.client.Del(context.Background(), sessionKey(id)).Err()
}
