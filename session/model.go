package session

import "time"

// UserProfile is the cached profile record stored alongside the token. It mirrors the
// profile JSON returned by the auth endpoints and is refreshed on every successful
// validation.
type UserProfile struct {
	ID       int    `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Session defines a public type used by goLedger APIs.
//
// Session instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Session struct {
	Token string
	User  UserProfile

	CreatedAt int64
	ExpiresAt int64
}

// Expired reports whether the session's lifetime has elapsed at the given instant.
// A zero ExpiresAt means the session never expires client-side.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return s.ExpiresAt > 0 && now.Unix() >= s.ExpiresAt
}
