package unit

import (
	"context"
	"errors"
	"testing"

	autherrors "taskforge/contexts/identity-access/authorization-service/domain/errors"
	tokenerrors "taskforge/contexts/identity-access/token-service/domain/errors"
	"taskforge/internal/shared/access"
)

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	for _, token := range []string{"", "   "} {
		if _, err := env.authz.Service.Authenticate(ctx, token); !errors.Is(err, autherrors.ErrUnauthorized) {
			t.Fatalf("expected unauthorized for token %q, got %v", token, err)
		}
	}
}

func TestAuthenticateRejectsMalformedToken(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.authz.Service.Authenticate(ctx, "not-a-jwt"); !errors.Is(err, tokenerrors.ErrTokenInvalid) {
		t.Fatalf("expected token invalid, got %v", err)
	}
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tokens, _ := env.registerAdmin(t, ctx, "founder@acme.test", "Acme")

	if _, err := env.authz.Service.Authenticate(ctx, tokens.RefreshToken); !errors.Is(err, autherrors.ErrUnauthorized) {
		t.Fatalf("refresh tokens must never authorize requests, got %v", err)
	}
}

func TestAuthenticateRejectsUnknownSubject(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// A validly signed token whose subject never registered.
	accessToken, _, err := env.tokens.Service.IssueAccessToken("ghost", access.RoleAdmin)
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}
	if _, err := env.authz.Service.Authenticate(ctx, accessToken); !errors.Is(err, autherrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for unknown subject, got %v", err)
	}
}

func TestAuthenticateRejectsDeactivatedUser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tokens, identity := env.registerAdmin(t, ctx, "founder@acme.test", "Acme")
	env.sessions.Store.SetActive(identity.UserID, false)

	if _, err := env.authz.Service.Authenticate(ctx, tokens.AccessToken); !errors.Is(err, autherrors.ErrUserDeactivated) {
		t.Fatalf("expected deactivated, got %v", err)
	}
}

func TestAuthenticateUsesDirectoryRoleNotTokenClaim(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, admin := env.registerAdmin(t, ctx, "founder@acme.test", "Acme")
	_, member := env.registerMember(t, ctx, "dev@acme.test", admin.OrganizationID)

	// Token claims admin for a user the directory holds as member. The
	// directory row wins so stale tokens cannot keep old privileges.
	staleToken, _, err := env.tokens.Service.IssueAccessToken(member.UserID, access.RoleAdmin)
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}
	identity, err := env.authz.Service.Authenticate(ctx, staleToken)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if identity.Role != access.RoleMember {
		t.Fatalf("expected directory role member, got %q", identity.Role)
	}
}

func TestRequireRoleRespectsHierarchy(t *testing.T) {
	env := newTestEnv()

	cases := []struct {
		held     access.Role
		required access.Role
		allowed  bool
	}{
		{access.RoleMember, access.RoleMember, true},
		{access.RoleMember, access.RoleManager, false},
		{access.RoleMember, access.RoleAdmin, false},
		{access.RoleManager, access.RoleMember, true},
		{access.RoleManager, access.RoleManager, true},
		{access.RoleManager, access.RoleAdmin, false},
		{access.RoleAdmin, access.RoleAdmin, true},
		{access.Role("intern"), access.RoleMember, false},
	}
	for _, tc := range cases {
		err := env.authz.Service.RequireRole(access.Identity{UserID: "u", Role: tc.held}, tc.required)
		if tc.allowed && err != nil {
			t.Fatalf("%s requiring %s: unexpected %v", tc.held, tc.required, err)
		}
		if !tc.allowed && !errors.Is(err, autherrors.ErrForbidden) {
			t.Fatalf("%s requiring %s: expected forbidden, got %v", tc.held, tc.required, err)
		}
	}
}

func TestRequireProjectAccessTenancy(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, adminA := env.registerAdmin(t, ctx, "founder@acme.test", "Acme")
	_, adminB := env.registerAdmin(t, ctx, "founder@globex.test", "Globex")

	project, err := env.workspace.Service.CreateProject(ctx, adminA, "Launch", "")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	// Absence and a foreign organization read the same.
	if err := env.authz.Service.RequireProjectAccess(ctx, adminA, "no-such-project"); !errors.Is(err, autherrors.ErrProjectNotFound) {
		t.Fatalf("expected not found for missing project, got %v", err)
	}
	if err := env.authz.Service.RequireProjectAccess(ctx, adminB, project.ID); !errors.Is(err, autherrors.ErrProjectNotFound) {
		t.Fatalf("expected not found for foreign org, got %v", err)
	}
}

func TestRequireProjectAccessMemberNeedsEdge(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, admin := env.registerAdmin(t, ctx, "founder@acme.test", "Acme")
	_, member := env.registerMember(t, ctx, "dev@acme.test", admin.OrganizationID)

	project, err := env.workspace.Service.CreateProject(ctx, admin, "Launch", "")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	if err := env.authz.Service.RequireProjectAccess(ctx, member, project.ID); !errors.Is(err, autherrors.ErrForbidden) {
		t.Fatalf("expected forbidden for member without edge, got %v", err)
	}

	// Managers and admins pass on tenancy alone.
	if err := env.authz.Service.RequireProjectAccess(ctx, asManager(member), project.ID); err != nil {
		t.Fatalf("manager access: %v", err)
	}
	if err := env.authz.Service.RequireProjectAccess(ctx, admin, project.ID); err != nil {
		t.Fatalf("admin access: %v", err)
	}

	if err := env.workspace.Service.AddMember(ctx, admin, project.ID, member.UserID); err != nil {
		t.Fatalf("add member: %v", err)
	}
	if err := env.authz.Service.RequireProjectAccess(ctx, member, project.ID); err != nil {
		t.Fatalf("member with edge: %v", err)
	}
}
