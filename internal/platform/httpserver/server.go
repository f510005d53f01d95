package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	notificationservice "taskforge/contexts/engagement/notification-service"
	authorization "taskforge/contexts/identity-access/authorization-service"
	sessionservice "taskforge/contexts/identity-access/session-service"
	tokenservice "taskforge/contexts/identity-access/token-service"
	taskservice "taskforge/contexts/work-tracking/task-service"
	workspaceservice "taskforge/contexts/work-tracking/workspace-service"
	"taskforge/internal/platform/metrics"
	"taskforge/internal/shared/access"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	limiter       *authRateLimiter
	collector     *metrics.Collector
	metricsRoute  http.Handler
	tokens        tokenservice.Module
	sessions      sessionservice.Module
	authorization authorization.Module
	workspace     workspaceservice.Module
	tasks         taskservice.Module
	notifications notificationservice.Module
}

type Options struct {
	Tokens        tokenservice.Module
	Sessions      sessionservice.Module
	Authorization authorization.Module
	Workspace     workspaceservice.Module
	Tasks         taskservice.Module
	Notifications notificationservice.Module

	AuthRatePerMinute int
	AuthRateBurst     int

	Collector *metrics.Collector
	MetricsRoute  http.Handler
	Logger        *slog.Logger
	Addr          string
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	addr := opts.Addr
	if addr == "" {
		addr = ":8080"
	}
	limiter := newAuthRateLimiter(opts.AuthRatePerMinute, opts.AuthRateBurst)

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		limiter:       limiter,
		collector:     opts.Collector,
		metricsRoute:  opts.MetricsRoute,
		tokens:        opts.Tokens,
		sessions:      opts.Sessions,
		authorization: opts.Authorization,
		workspace:     opts.Workspace,
		tasks:         opts.Tasks,
		notifications: opts.Notifications,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.route("POST /api/auth/v1/register", s.rateLimited(s.handleRegister))
	s.route("POST /api/auth/v1/login", s.rateLimited(s.handleLogin))
	s.route("POST /api/auth/v1/refresh", s.rateLimited(s.handleRefresh))
	s.route("POST /api/auth/v1/logout", s.rateLimited(s.handleLogout))
	s.route("GET /api/auth/v1/me", s.handleMe)

	s.route("GET /api/workspace/v1/organizations", s.handleListOrganizations)
	s.route("POST /api/workspace/v1/projects", s.handleCreateProject)
	s.route("GET /api/workspace/v1/projects", s.handleListProjects)
	s.route("DELETE /api/workspace/v1/projects/{project_id}", s.handleDeleteProject)
	s.route("GET /api/workspace/v1/projects/{project_id}/members", s.handleListMembers)
	s.route("POST /api/workspace/v1/projects/{project_id}/members/{user_id}", s.handleAddMember)
	s.route("DELETE /api/workspace/v1/projects/{project_id}/members/{user_id}", s.handleRemoveMember)

	s.route("POST /api/tasks/v1/projects/{project_id}/tasks", s.handleCreateTask)
	s.route("GET /api/tasks/v1/projects/{project_id}/tasks", s.handleListTasks)
	s.route("GET /api/tasks/v1/tasks/{task_id}", s.handleGetTask)
	s.route("PATCH /api/tasks/v1/tasks/{task_id}", s.handleUpdateTask)
	s.route("DELETE /api/tasks/v1/tasks/{task_id}", s.handleDeleteTask)
	s.route("POST /api/tasks/v1/tasks/{task_id}/comments", s.handleAddComment)
	s.route("GET /api/tasks/v1/tasks/{task_id}/comments", s.handleListComments)
	s.route("PUT /api/tasks/v1/tasks/{task_id}/comments/{comment_id}", s.handleUpdateComment)
	s.route("DELETE /api/tasks/v1/tasks/{task_id}/comments/{comment_id}", s.handleDeleteComment)

	s.route("GET /api/notifications/v1/notifications", s.handleListNotifications)
	s.route("POST /api/notifications/v1/notifications/{notification_id}/read", s.handleMarkNotificationRead)

	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	if s.metricsRoute != nil {
		s.mux.Handle("GET /metrics", s.metricsRoute)
	}
}

// route registers a pattern with request metrics attached.
func (s *Server) route(pattern string, handler http.HandlerFunc) {
	s.mux.HandleFunc(pattern, s.instrument(pattern, handler))
}

func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.collector == nil {
			next(w, r)
			return
		}
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r)
		s.collector.RecordHTTPRequest(route, r.Method, recorder.status, time.Since(started))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// authenticate resolves the bearer token into a live identity.
func (s *Server) authenticate(r *http.Request) (access.Identity, error) {
	identity, err := s.authorization.Service.Authenticate(r.Context(), resolveBearerToken(r))
	if err != nil && s.collector != nil {
		s.collector.RecordAuthFailure()
	}
	return identity, err
}

func resolveBearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
