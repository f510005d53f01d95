package entities

import "time"

// RefreshToken is a persisted, single-use session credential. The token
// string itself is a signed JWT; the row is the revocation handle.
type RefreshToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
