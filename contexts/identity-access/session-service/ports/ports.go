package ports

import (
	"context"
	"time"

	"taskforge/contexts/identity-access/session-service/domain/entities"
	"taskforge/internal/shared/access"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for new users and organizations.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Users is the account persistence boundary.
type Users interface {
	CreateUser(ctx context.Context, user entities.User) error
	FindUserByEmail(ctx context.Context, email string) (entities.User, bool, error)
	FindUserByID(ctx context.Context, id string) (entities.User, bool, error)
}

// Organizations covers the tenant rows the register flow touches.
type Organizations interface {
	CreateOrganization(ctx context.Context, org access.OrganizationRecord) error
	FindOrganizationByID(ctx context.Context, id string) (access.OrganizationRecord, bool, error)
}

// CredentialHasher is the opaque one-way hash/verify capability.
type CredentialHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

// TokenManager is satisfied by the token-service application service. The
// signatures use only shared-kernel and stdlib types so the dependency stays
// structural.
type TokenManager interface {
	IssueAccessToken(userID string, role access.Role) (string, time.Time, error)
	IssueTokenPair(ctx context.Context, userID string, role access.Role) (string, string, time.Time, error)
	RotateRefreshToken(ctx context.Context, oldToken string) (string, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	DecodeToken(token string) (access.TokenClaims, error)
}
