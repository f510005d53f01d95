package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"taskforge/contexts/identity-access/token-service/domain/entities"
	domainerrors "taskforge/contexts/identity-access/token-service/domain/errors"
	"taskforge/contexts/identity-access/token-service/ports"
	"taskforge/internal/shared/access"
)

// Service is the token manager. Access token issuance and decode are pure
// signature operations; refresh token operations go through the repository
// so that revocation and the single-session invariant hold.
type Service struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Tokens     ports.RefreshTokenRepository
	Clock      ports.Clock
	Logger     *slog.Logger
}

type signedClaims struct {
	Role      string `json:"role,omitempty"`
	TokenType string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// IssueAccessToken signs a stateless access token for the subject. No side
// effects; a signing failure is a configuration error, not a caller error.
func (s Service) IssueAccessToken(userID string, role access.Role) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.accessTTL())
	token, err := s.sign(userID, string(role), "", now, expiresAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// IssueTokenPair issues a fresh access/refresh pair for a login or register
// path. All prior refresh rows for the user are replaced in the same
// transaction as the insert, so at most one refresh token is ever live per
// user.
func (s Service) IssueTokenPair(ctx context.Context, userID string, role access.Role) (string, string, time.Time, error) {
	accessToken, accessExpiresAt, err := s.IssueAccessToken(userID, role)
	if err != nil {
		return "", "", time.Time{}, err
	}

	refresh, err := s.mintRefreshToken(userID)
	if err != nil {
		return "", "", time.Time{}, err
	}
	if err := s.Tokens.Replace(ctx, refresh); err != nil {
		return "", "", time.Time{}, fmt.Errorf("replace refresh token: %w", err)
	}

	ResolveLogger(s.Logger).Info("token pair issued",
		"event", "token_pair_issued",
		"module", "identity-access/token-service",
		"layer", "application",
		"user_id", userID,
	)
	return accessToken, refresh.Token, accessExpiresAt, nil
}

// RotateRefreshToken consumes the presented refresh token and returns its
// replacement. The operation is single-use: a second presentation of the
// same token fails with ErrTokenRevoked. An expired row is purged as a side
// effect of detection so stale rows do not accumulate.
func (s Service) RotateRefreshToken(ctx context.Context, oldToken string) (string, error) {
	row, found, err := s.Tokens.FindByToken(ctx, oldToken)
	if err != nil {
		return "", fmt.Errorf("find refresh token: %w", err)
	}
	if !found {
		return "", domainerrors.ErrTokenRevoked
	}

	now := s.now()
	if !row.ExpiresAt.After(now) {
		if err := s.Tokens.DeleteByToken(ctx, oldToken); err != nil {
			return "", fmt.Errorf("purge expired refresh token: %w", err)
		}
		return "", domainerrors.ErrTokenExpired
	}

	fresh, err := s.mintRefreshToken(row.UserID)
	if err != nil {
		return "", err
	}
	if err := s.Tokens.Rotate(ctx, oldToken, fresh); err != nil {
		return "", fmt.Errorf("rotate refresh token: %w", err)
	}

	ResolveLogger(s.Logger).Info("refresh token rotated",
		"event", "refresh_token_rotated",
		"module", "identity-access/token-service",
		"layer", "application",
		"user_id", row.UserID,
	)
	return fresh.Token, nil
}

// RevokeRefreshToken deletes the presented refresh token. Idempotent: an
// absent token is not an error.
func (s Service) RevokeRefreshToken(ctx context.Context, token string) error {
	if err := s.Tokens.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// DecodeToken verifies signature and expiry and returns the claims. Expired
// and invalid tokens fail distinctly so callers can prompt re-auth versus
// reject outright.
func (s Service) DecodeToken(token string) (access.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &signedClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return access.TokenClaims{}, domainerrors.ErrTokenExpired
		}
		return access.TokenClaims{}, fmt.Errorf("%w: %s", domainerrors.ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*signedClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return access.TokenClaims{}, domainerrors.ErrTokenInvalid
	}

	out := access.TokenClaims{
		Subject:   claims.Subject,
		Role:      access.Role(claims.Role),
		TokenType: claims.TokenType,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func (s Service) mintRefreshToken(userID string) (entities.RefreshToken, error) {
	now := s.now()
	expiresAt := now.Add(s.refreshTTL())
	token, err := s.sign(userID, "", access.RefreshTokenType, now, expiresAt)
	if err != nil {
		return entities.RefreshToken{}, err
	}
	return entities.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}, nil
}

func (s Service) sign(subject, role, tokenType string, issuedAt, expiresAt time.Time) (string, error) {
	claims := signedClaims{
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti keeps two tokens minted within the same second distinct.
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domainerrors.ErrSigningFailed, err)
	}
	return signed, nil
}

func (s Service) accessTTL() time.Duration {
	if s.AccessTTL <= 0 {
		return 15 * time.Minute
	}
	return s.AccessTTL
}

func (s Service) refreshTTL() time.Duration {
	if s.RefreshTTL <= 0 {
		return 30 * 24 * time.Hour
	}
	return s.RefreshTTL
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
