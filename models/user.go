package models

import "time"

const (
	RoleUser  = "user"
	RoleGuest = "guest"
)

// Session is the signed-in identity the client works for. Guests get a
// generated id prefixed with "guest_" and no email.
type Session struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email,omitempty"`
	Role         string    `json:"role"`
	Token        string    `json:"token"`
	IDToken      string    `json:"id_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s Session) IsGuest() bool { return s.Role == RoleGuest }

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
