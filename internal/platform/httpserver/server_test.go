package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	notificationservice "taskforge/contexts/engagement/notification-service"
	authorization "taskforge/contexts/identity-access/authorization-service"
	sessionservice "taskforge/contexts/identity-access/session-service"
	sessionhttp "taskforge/contexts/identity-access/session-service/transport/http"
	tokenservice "taskforge/contexts/identity-access/token-service"
	taskservice "taskforge/contexts/work-tracking/task-service"
	workspaceservice "taskforge/contexts/work-tracking/workspace-service"
	"taskforge/internal/platform/metrics"
)

func newTestServer(t *testing.T, ratePerMin int, burst int) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

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

	registry := prometheus.NewRegistry()
	return New(Options{
		Tokens:            tokens,
		Sessions:          sessions,
		Authorization:     authz,
		Workspace:         workspace,
		Tasks:             tasks,
		Notifications:     notifications,
		AuthRatePerMinute: ratePerMin,
		AuthRateBurst:     burst,
		Collector:         metrics.NewCollector(registry),
		MetricsRoute:      metrics.Handler(registry),
		Logger:            logger,
	})
}

func doJSON(t *testing.T, handler http.Handler, method string, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func registerViaHTTP(t *testing.T, handler http.Handler, email string, orgName string, orgID string) sessionhttp.TokenPairResponse {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/auth/v1/register", sessionhttp.RegisterRequest{
		Email:            email,
		Password:         "s3cret-pass",
		FullName:         "HTTP Test",
		OrganizationName: orgName,
		OrganizationID:   orgID,
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (%s)", email, rec.Code, rec.Body.String())
	}
	var resp sessionhttp.TokenPairResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t, 1000, 1000)
	rec := doJSON(t, server.Handler(), http.MethodGet, "/healthz", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRegisterLoginAndMe(t *testing.T) {
	server := newTestServer(t, 1000, 1000)
	handler := server.Handler()

	pair := registerViaHTTP(t, handler, "alice@acme.test", "Acme", "")
	if pair.Status != "success" || pair.Data.AccessToken == "" {
		t.Fatalf("unexpected register payload: %+v", pair)
	}
	if pair.Data.TokenType != "bearer" {
		t.Fatalf("expected bearer token type, got %q", pair.Data.TokenType)
	}

	rec := doJSON(t, handler, http.MethodGet, "/api/auth/v1/me", nil, pair.Data.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var me sessionhttp.MeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	if me.Data.Email != "alice@acme.test" || me.Data.Role != "admin" {
		t.Fatalf("unexpected profile: %+v", me.Data)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/v1/login", sessionhttp.LoginRequest{
		Email:    "alice@acme.test",
		Password: "wrong",
	}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", rec.Code)
	}
}

func TestRefreshEndpointRotates(t *testing.T) {
	server := newTestServer(t, 1000, 1000)
	handler := server.Handler()

	pair := registerViaHTTP(t, handler, "alice@acme.test", "Acme", "")

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/v1/refresh", sessionhttp.RefreshRequest{
		RefreshToken: pair.Data.RefreshToken,
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	// The consumed token is rejected.
	rec = doJSON(t, handler, http.MethodPost, "/api/auth/v1/refresh", sessionhttp.RefreshRequest{
		RefreshToken: pair.Data.RefreshToken,
	}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("stale refresh: expected 401, got %d", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server := newTestServer(t, 1000, 1000)
	handler := server.Handler()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/v1/me"},
		{http.MethodGet, "/api/workspace/v1/projects"},
		{http.MethodGet, "/api/notifications/v1/notifications"},
	}
	for _, p := range paths {
		rec := doJSON(t, handler, p.method, p.path, nil, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: expected 401, got %d", p.method, p.path, rec.Code)
		}
		rec = doJSON(t, handler, p.method, p.path, nil, "garbage-token")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s with garbage token: expected 401, got %d", p.method, p.path, rec.Code)
		}
	}
}

func TestMemberCannotCreateProject(t *testing.T) {
	server := newTestServer(t, 1000, 1000)
	handler := server.Handler()

	admin := registerViaHTTP(t, handler, "alice@acme.test", "Acme", "")

	var me sessionhttp.MeResponse
	rec := doJSON(t, handler, http.MethodGet, "/api/auth/v1/me", nil, admin.Data.AccessToken)
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	member := registerViaHTTP(t, handler, "bob@acme.test", "", me.Data.OrganizationID)

	rec = doJSON(t, handler, http.MethodPost, "/api/workspace/v1/projects", map[string]string{
		"name": "Apollo",
	}, member.Data.AccessToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("member create project: expected 403, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/workspace/v1/projects", map[string]string{
		"name": "Apollo",
	}, admin.Data.AccessToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin create project: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestUnknownProjectReadsNotFound(t *testing.T) {
	server := newTestServer(t, 1000, 1000)
	handler := server.Handler()

	admin := registerViaHTTP(t, handler, "alice@acme.test", "Acme", "")

	rec := doJSON(t, handler, http.MethodGet, "/api/tasks/v1/projects/no-such-project/tasks", nil, admin.Data.AccessToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown project, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestAuthEndpointsAreRateLimited(t *testing.T) {
	server := newTestServer(t, 1, 1)
	handler := server.Handler()

	registerViaHTTP(t, handler, "alice@acme.test", "Acme", "")

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/v1/login", sessionhttp.LoginRequest{
		Email:    "alice@acme.test",
		Password: "s3cret-pass",
	}, "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected a Retry-After header")
	}

	// Authenticated routes are not throttled by the auth limiter.
	rec = doJSON(t, handler, http.MethodGet, "/healthz", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz must not be rate limited, got %d", rec.Code)
	}
}

func TestMetricsEndpointExposesRequestCounters(t *testing.T) {
	server := newTestServer(t, 1000, 1000)
	handler := server.Handler()

	registerViaHTTP(t, handler, "alice@acme.test", "Acme", "")

	rec := doJSON(t, handler, http.MethodGet, "/metrics", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "taskforge_http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}
