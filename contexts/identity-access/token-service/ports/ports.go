package ports

import (
	"context"
	"time"

	"taskforge/contexts/identity-access/token-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// RefreshTokenRepository is the persistence boundary for refresh token rows.
//
// Replace and Rotate must each be a single transactional unit: a concurrent
// caller must never observe both the old and the new token live, nor both
// absent.
type RefreshTokenRepository interface {
	// Replace deletes every refresh row for the token's user and inserts the
	// fresh one atomically.
	Replace(ctx context.Context, fresh entities.RefreshToken) error
	// Rotate deletes the row identified by oldToken and inserts the fresh
	// one atomically.
	Rotate(ctx context.Context, oldToken string, fresh entities.RefreshToken) error
	FindByToken(ctx context.Context, token string) (entities.RefreshToken, bool, error)
	// DeleteByToken removes the row if present; absence is not an error.
	DeleteByToken(ctx context.Context, token string) error
	// DeleteExpired purges rows with expires_at at or before now and returns
	// the number removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
