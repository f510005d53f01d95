// Package access is the shared kernel for authentication and authorization
// types that cross context boundaries. Cross-context ports are declared in
// terms of these types (plus stdlib types only) so that one module's
// application service can satisfy another module's port structurally without
// importing it.
package access

import "time"

// Role is the closed set of organization-wide capability levels.
type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

var roleRank = map[Role]int{
	RoleMember:  1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r sits at or above required in the ordered
// hierarchy member < manager < admin. Unknown roles never qualify.
func (r Role) AtLeast(required Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	want, ok := roleRank[required]
	if !ok {
		return false
	}
	return have >= want
}

// Identity is an authenticated caller. Role and OrganizationID come from the
// user store at authentication time, not from token claims, so role changes
// and deactivation take effect on the next request.
type Identity struct {
	UserID         string
	OrganizationID string
	Role           Role
	Email          string
}

// TokenClaims is the decoded content of a signed token. Access tokens carry
// an empty TokenType; refresh tokens carry TokenType "refresh".
type TokenClaims struct {
	Subject   string
	Role      Role
	TokenType string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RefreshTokenType is the claim value distinguishing refresh tokens from
// access tokens.
const RefreshTokenType = "refresh"

// UserRecord is the cross-context read model for a user.
type UserRecord struct {
	ID             string
	Email          string
	FullName       string
	Role           Role
	OrganizationID string
	Active         bool
}

// ProjectRef is the cross-context read model for tenancy-scoped project
// checks.
type ProjectRef struct {
	ID             string
	OrganizationID string
}

// OrganizationRecord is the cross-context read model for a tenant.
type OrganizationRecord struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
