package entities

import (
	"time"

	"taskforge/internal/shared/access"
)

// User is the account record owned by the session service. A user belongs
// to exactly one organization for its lifetime.
type User struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	PasswordHash   string      `json:"-"`
	FullName       string      `json:"full_name"`
	Role           access.Role `json:"role"`
	OrganizationID string      `json:"organization_id"`
	Active         bool        `json:"active"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
