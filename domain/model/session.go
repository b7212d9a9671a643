package model

import "time"

// SessionTTL bounds the lifetime of a server-side session.
const SessionTTL = 24 * time.Hour

// Session binds an opaque id to the local account and its linked Instagram id.
type Session struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	InstagramID string    `json:"instagram_id"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
