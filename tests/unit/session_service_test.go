package unit

import (
	"context"
	"errors"
	"testing"

	sessionapp "taskforge/contexts/identity-access/session-service/application"
	sessionerrors "taskforge/contexts/identity-access/session-service/domain/errors"
	tokenerrors "taskforge/contexts/identity-access/token-service/domain/errors"
	"taskforge/internal/shared/access"
)

func TestRegisterFoundsOrganizationAsAdmin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, identity := env.registerAdmin(t, ctx, "founder@acme.test", "Acme")

	if identity.Role != access.RoleAdmin {
		t.Fatalf("expected founder to be admin, got %q", identity.Role)
	}
	if identity.OrganizationID == "" {
		t.Fatalf("expected an organization to be created")
	}

	orgs, err := env.sessions.Store.ListOrganizations(ctx)
	if err != nil {
		t.Fatalf("list organizations: %v", err)
	}
	if len(orgs) != 1 || orgs[0].Name != "Acme" {
		t.Fatalf("expected one organization named Acme, got %+v", orgs)
	}
}

func TestRegisterJoinsExistingOrganizationAsMember(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, admin := env.registerAdmin(t, ctx, "founder@acme.test", "Acme")
	_, member := env.registerMember(t, ctx, "dev@acme.test", admin.OrganizationID)

	if member.Role != access.RoleMember {
		t.Fatalf("expected joiner to be member, got %q", member.Role)
	}
	if member.OrganizationID != admin.OrganizationID {
		t.Fatalf("expected joiner in org %s, got %s", admin.OrganizationID, member.OrganizationID)
	}
}

func TestRegisterUnknownOrganization(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.sessions.Service.Register(ctx, sessionapp.RegisterCommand{
		Email:          "dev@acme.test",
		Password:       "s3cret-pass",
		OrganizationID: "no-such-org",
	})
	if !errors.Is(err, sessionerrors.ErrOrganizationNotFound) {
		t.Fatalf("expected organization not found, got %v", err)
	}
}

func TestRegisterRequiresOrganizationNameOrID(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.sessions.Service.Register(ctx, sessionapp.RegisterCommand{
		Email:    "dev@acme.test",
		Password: "s3cret-pass",
	})
	if !errors.Is(err, sessionerrors.ErrOrganizationNameNeeded) {
		t.Fatalf("expected organization name needed, got %v", err)
	}
}

func TestRegisterRejectsEmptyCredentials(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.sessions.Service.Register(ctx, sessionapp.RegisterCommand{
		Email:            "  ",
		Password:         "s3cret-pass",
		OrganizationName: "Acme",
	})
	if !errors.Is(err, sessionerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank email, got %v", err)
	}

	_, err = env.sessions.Service.Register(ctx, sessionapp.RegisterCommand{
		Email:            "dev@acme.test",
		OrganizationName: "Acme",
	})
	if !errors.Is(err, sessionerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty password, got %v", err)
	}
}

func TestRegisterDuplicateEmailIsCaseInsensitive(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.registerAdmin(t, ctx, "Founder@Acme.test", "Acme")

	_, err := env.sessions.Service.Register(ctx, sessionapp.RegisterCommand{
		Email:            "founder@acme.test",
		Password:         "another-pass",
		OrganizationName: "Other",
	})
	if !errors.Is(err, sessionerrors.ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.registerAdmin(t, ctx, "founder@acme.test", "Acme")

	if _, err := env.sessions.Service.Login(ctx, "founder@acme.test", "wrong-pass"); !errors.Is(err, sessionerrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for wrong password, got %v", err)
	}
	if _, err := env.sessions.Service.Login(ctx, "nobody@acme.test", "s3cret-pass"); !errors.Is(err, sessionerrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
}

func TestLoginNormalizesEmailAndIssuesPair(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.registerAdmin(t, ctx, "founder@acme.test", "Acme")

	tokens, err := env.sessions.Service.Login(ctx, "  FOUNDER@acme.test ", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tokens.TokenType != "bearer" {
		t.Fatalf("expected bearer token type, got %q", tokens.TokenType)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected a full token pair")
	}
}

func TestLoginDeactivatedUser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, identity := env.registerAdmin(t, ctx, "founder@acme.test", "Acme")
	env.sessions.Store.SetActive(identity.UserID, false)

	if _, err := env.sessions.Service.Login(ctx, "founder@acme.test", "s3cret-pass"); !errors.Is(err, sessionerrors.ErrUserDeactivated) {
		t.Fatalf("expected deactivated, got %v", err)
	}
}

func TestRefreshRotatesAndRejectsAccessToken(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tokens, _ := env.registerAdmin(t, ctx, "founder@acme.test", "Acme")

	if _, err := env.sessions.Service.Refresh(ctx, tokens.AccessToken); !errors.Is(err, sessionerrors.ErrNotRefreshToken) {
		t.Fatalf("expected not-refresh-token for access token, got %v", err)
	}

	fresh, err := env.sessions.Service.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if fresh.RefreshToken == tokens.RefreshToken {
		t.Fatalf("refresh must rotate the refresh token")
	}

	// The consumed token is dead.
	if _, err := env.sessions.Service.Refresh(ctx, tokens.RefreshToken); !errors.Is(err, tokenerrors.ErrTokenRevoked) {
		t.Fatalf("expected revoked for consumed token, got %v", err)
	}
}

func TestRefreshDeactivatedUserRevokesSession(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tokens, identity := env.registerAdmin(t, ctx, "founder@acme.test", "Acme")
	env.sessions.Store.SetActive(identity.UserID, false)

	if _, err := env.sessions.Service.Refresh(ctx, tokens.RefreshToken); !errors.Is(err, sessionerrors.ErrUserDeactivated) {
		t.Fatalf("expected deactivated, got %v", err)
	}

	// Reactivation does not resurrect the revoked token.
	env.sessions.Store.SetActive(identity.UserID, true)
	if _, err := env.sessions.Service.Refresh(ctx, tokens.RefreshToken); !errors.Is(err, tokenerrors.ErrTokenRevoked) {
		t.Fatalf("expected revoked after reactivation, got %v", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tokens, _ := env.registerAdmin(t, ctx, "founder@acme.test", "Acme")

	if err := env.sessions.Service.Logout(ctx, tokens.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := env.sessions.Service.Logout(ctx, tokens.RefreshToken); err != nil {
		t.Fatalf("second logout must be a no-op, got %v", err)
	}
	if _, err := env.sessions.Service.Refresh(ctx, tokens.RefreshToken); !errors.Is(err, tokenerrors.ErrTokenRevoked) {
		t.Fatalf("expected revoked after logout, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, identity := env.registerAdmin(t, ctx, "founder@acme.test", "Acme")

	user, err := env.sessions.Service.Profile(ctx, identity.UserID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if user.Email != "founder@acme.test" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if _, err := env.sessions.Service.Profile(ctx, "no-such-user"); !errors.Is(err, sessionerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for unknown user, got %v", err)
	}
}
