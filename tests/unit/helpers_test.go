package unit

import (
	"context"
	"io"
	"log/slog"
	"testing"

	notificationservice "taskforge/contexts/engagement/notification-service"
	authorization "taskforge/contexts/identity-access/authorization-service"
	sessionservice "taskforge/contexts/identity-access/session-service"
	sessionapp "taskforge/contexts/identity-access/session-service/application"
	tokenservice "taskforge/contexts/identity-access/token-service"
	taskservice "taskforge/contexts/work-tracking/task-service"
	workspaceservice "taskforge/contexts/work-tracking/workspace-service"
	"taskforge/internal/shared/access"
)

// testEnv wires all modules over in-memory adapters the same way the
// composition root wires them over postgres.
type testEnv struct {
	tokens        tokenservice.Module
	sessions      sessionservice.Module
	authz         authorization.Module
	workspace     workspaceservice.Module
	tasks         taskservice.Module
	notifications notificationservice.Module
}

func newTestEnv() testEnv {
	logger := discardLogger()
	tokens := tokenservice.NewInMemoryModule(logger)
	sessions := sessionservice.NewInMemoryModule(tokens.Service, logger)
	workspace := workspaceservice.NewInMemoryModule(sessions.Store, sessions.Store, logger)
	authz := authorization.NewModule(authorization.Dependencies{
		Decoder:  tokens.Service,
		Users:    sessions.Store,
		Projects: workspace.Store,
		Logger:   logger,
	})
	notifications := notificationservice.NewInMemoryModule(logger)
	tasks := taskservice.NewInMemoryModule(authz.Service, workspace.Store, notifications.Service, logger)

	return testEnv{
		tokens:        tokens,
		sessions:      sessions,
		authz:         authz,
		workspace:     workspace,
		tasks:         tasks,
		notifications: notifications,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// registerAdmin creates an account founding a new organization, which makes
// the registrant its admin.
func (e testEnv) registerAdmin(t *testing.T, ctx context.Context, email string, orgName string) (sessionapp.AuthTokens, access.Identity) {
	t.Helper()
	return e.register(t, ctx, sessionapp.RegisterCommand{
		Email:            email,
		Password:         "s3cret-pass",
		FullName:         "Test Admin",
		OrganizationName: orgName,
	})
}

// registerMember creates an account joining an existing organization as a
// member.
func (e testEnv) registerMember(t *testing.T, ctx context.Context, email string, orgID string) (sessionapp.AuthTokens, access.Identity) {
	t.Helper()
	return e.register(t, ctx, sessionapp.RegisterCommand{
		Email:          email,
		Password:       "s3cret-pass",
		FullName:       "Test Member",
		OrganizationID: orgID,
	})
}

func (e testEnv) register(t *testing.T, ctx context.Context, cmd sessionapp.RegisterCommand) (sessionapp.AuthTokens, access.Identity) {
	t.Helper()
	tokens, err := e.sessions.Service.Register(ctx, cmd)
	if err != nil {
		t.Fatalf("register %s: %v", cmd.Email, err)
	}
	identity, err := e.authz.Service.Authenticate(ctx, tokens.AccessToken)
	if err != nil {
		t.Fatalf("authenticate %s: %v", cmd.Email, err)
	}
	return tokens, identity
}

// asManager returns a copy of identity promoted to the manager role. The
// services trust the identity they are handed, so tests can exercise
// manager-level checks without a dedicated promotion flow.
func asManager(identity access.Identity) access.Identity {
	identity.Role = access.RoleManager
	return identity
}
