package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskforge/contexts/identity-access/session-service/domain/entities"
	domainerrors "taskforge/contexts/identity-access/session-service/domain/errors"
	"taskforge/contexts/identity-access/session-service/ports"
	"taskforge/internal/shared/access"
)

// Service orchestrates the session lifecycle: register, login, refresh,
// logout. Token semantics (rotation, single-session replacement, revocation)
// live in the token manager; this service owns credential verification and
// the organization join-or-create rule.
type Service struct {
	Users         ports.Users
	Organizations ports.Organizations
	Hasher        ports.CredentialHasher
	Tokens        ports.TokenManager
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

// RegisterCommand carries the register payload. OrganizationID joins an
// existing tenant as member; otherwise OrganizationName creates a new tenant
// with the registrant as admin.
type RegisterCommand struct {
	Email                   string
	Password                string
	FullName                string
	OrganizationID          string
	OrganizationName        string
	OrganizationDescription string
}

// AuthTokens is the session credential pair produced by register, login and
// refresh.
type AuthTokens struct {
	AccessToken     string
	RefreshToken    string
	TokenType       string
	AccessExpiresAt time.Time
}

func (s Service) Register(ctx context.Context, cmd RegisterCommand) (AuthTokens, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return AuthTokens{}, domainerrors.ErrInvalidInput
	}

	if _, exists, err := s.Users.FindUserByEmail(ctx, email); err != nil {
		return AuthTokens{}, fmt.Errorf("lookup email: %w", err)
	} else if exists {
		return AuthTokens{}, domainerrors.ErrEmailTaken
	}

	organizationID, role, err := s.resolveOrganization(ctx, cmd)
	if err != nil {
		return AuthTokens{}, err
	}

	hash, err := s.Hasher.Hash(cmd.Password)
	if err != nil {
		return AuthTokens{}, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return AuthTokens{}, err
	}
	now := s.now()
	user := entities.User{
		ID:             userID,
		Email:          email,
		PasswordHash:   hash,
		FullName:       strings.TrimSpace(cmd.FullName),
		Role:           role,
		OrganizationID: organizationID,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		return AuthTokens{}, fmt.Errorf("create user: %w", err)
	}

	resolveLogger(s.Logger).Info("user registered",
		"event", "session_user_registered",
		"module", "identity-access/session-service",
		"layer", "application",
		"user_id", user.ID,
		"organization_id", organizationID,
		"role", string(role),
	)
	return s.issuePair(ctx, user)
}

func (s Service) Login(ctx context.Context, email string, password string) (AuthTokens, error) {
	user, found, err := s.Users.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return AuthTokens{}, fmt.Errorf("lookup email: %w", err)
	}
	// Identical failure for unknown email and wrong password.
	if !found || !s.Hasher.Verify(user.PasswordHash, password) {
		return AuthTokens{}, domainerrors.ErrInvalidCredentials
	}
	if !user.Active {
		return AuthTokens{}, domainerrors.ErrUserDeactivated
	}

	resolveLogger(s.Logger).Info("user logged in",
		"event", "session_user_logged_in",
		"module", "identity-access/session-service",
		"layer", "application",
		"user_id", user.ID,
	)
	return s.issuePair(ctx, user)
}

// Refresh consumes a refresh token and produces a fresh pair. The presented
// token is revoked when the subject no longer exists or is deactivated, so a
// dead account cannot keep a session alive.
func (s Service) Refresh(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.Tokens.DecodeToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}
	if claims.TokenType != access.RefreshTokenType {
		return AuthTokens{}, domainerrors.ErrNotRefreshToken
	}

	user, found, err := s.Users.FindUserByID(ctx, claims.Subject)
	if err != nil {
		return AuthTokens{}, fmt.Errorf("lookup user: %w", err)
	}
	if !found {
		_ = s.Tokens.RevokeRefreshToken(ctx, refreshToken)
		return AuthTokens{}, domainerrors.ErrUnauthorized
	}
	if !user.Active {
		_ = s.Tokens.RevokeRefreshToken(ctx, refreshToken)
		return AuthTokens{}, domainerrors.ErrUserDeactivated
	}

	newRefresh, err := s.Tokens.RotateRefreshToken(ctx, refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}
	accessToken, expiresAt, err := s.Tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:     accessToken,
		RefreshToken:    newRefresh,
		TokenType:       "bearer",
		AccessExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the presented refresh token. Always succeeds; revoking an
// unknown token is a no-op.
func (s Service) Logout(ctx context.Context, refreshToken string) error {
	if err := s.Tokens.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return err
	}
	resolveLogger(s.Logger).Info("user logged out",
		"event", "session_user_logged_out",
		"module", "identity-access/session-service",
		"layer", "application",
	)
	return nil
}

// Profile returns the account behind an authenticated identity.
func (s Service) Profile(ctx context.Context, userID string) (entities.User, error) {
	user, found, err := s.Users.FindUserByID(ctx, userID)
	if err != nil {
		return entities.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if !found {
		return entities.User{}, domainerrors.ErrUnauthorized
	}
	return user, nil
}

func (s Service) resolveOrganization(ctx context.Context, cmd RegisterCommand) (string, access.Role, error) {
	if id := strings.TrimSpace(cmd.OrganizationID); id != "" {
		if _, found, err := s.Organizations.FindOrganizationByID(ctx, id); err != nil {
			return "", "", fmt.Errorf("lookup organization: %w", err)
		} else if !found {
			return "", "", domainerrors.ErrOrganizationNotFound
		}
		return id, access.RoleMember, nil
	}

	name := strings.TrimSpace(cmd.OrganizationName)
	if name == "" {
		return "", "", domainerrors.ErrOrganizationNameNeeded
	}
	orgID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return "", "", err
	}
	org := access.OrganizationRecord{
		ID:          orgID,
		Name:        name,
		Description: strings.TrimSpace(cmd.OrganizationDescription),
		CreatedAt:   s.now(),
	}
	if err := s.Organizations.CreateOrganization(ctx, org); err != nil {
		return "", "", fmt.Errorf("create organization: %w", err)
	}
	return orgID, access.RoleAdmin, nil
}

func (s Service) issuePair(ctx context.Context, user entities.User) (AuthTokens, error) {
	accessToken, refreshToken, expiresAt, err := s.Tokens.IssueTokenPair(ctx, user.ID, user.Role)
	if err != nil {
		return AuthTokens{}, err
	}
	return AuthTokens{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		TokenType:       "bearer",
		AccessExpiresAt: expiresAt,
	}, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
