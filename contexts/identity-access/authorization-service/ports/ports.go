package ports

import (
	"context"

	"taskforge/internal/shared/access"
)

// TokenDecoder verifies and decodes a signed token. Satisfied by the token
// manager application service.
type TokenDecoder interface {
	DecodeToken(token string) (access.TokenClaims, error)
}

// UserDirectory resolves accounts into shared-kernel records. Satisfied by
// the session service adapters.
type UserDirectory interface {
	LookupUser(ctx context.Context, id string) (access.UserRecord, bool, error)
}

// ProjectDirectory resolves projects and membership edges. Satisfied by the
// workspace service adapters.
type ProjectDirectory interface {
	LookupProject(ctx context.Context, projectID string) (access.ProjectRef, bool, error)
	IsProjectMember(ctx context.Context, projectID string, userID string) (bool, error)
}
