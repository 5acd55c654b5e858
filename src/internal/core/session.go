package core

import "time"

// Session is the server-side record backing an issued access token. It
// lives in Redis under its TTL so logout can revoke a token before its
// JWT expiry.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	IssuedAt  time.Time `json:"issued_at"`
}

// SessionStore defines the session persistence operations.
type SessionStore interface {
	CreateSession(session Session) error
	GetSession(id string) (Session, error)
	DeleteSession(id string) error
}
