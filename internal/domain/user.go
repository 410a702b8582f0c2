package domain

import "time"

// Session is the authenticated-session capability handed to every call that
// needs the user's credentials. It is built per request and never stored globally.
//
// Subject, Role and ExpiresAt come from the token claims. Verified is set only
// when the token signature was checked against the configured key; unverified
// claims are hints and must not gate access to data the portal serves itself.
type Session struct {
	Token     string
	Subject   string
	Role      string
	ExpiresAt time.Time
	Verified  bool
}

// Valid reports whether the session carries a token that has not expired.
func (s Session) Valid(now time.Time) bool {
	if s.Token == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// HasRole reports whether the session is valid, verified and carries role.
func (s Session) HasRole(role string, now time.Time) bool {
	return s.Verified && s.Valid(now) && role != "" && s.Role == role
}

// AuthorizationHeader returns the bearer header value for outbound requests.
func (s Session) AuthorizationHeader() string {
	return "Bearer " + s.Token
}
