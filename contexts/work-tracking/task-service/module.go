// Package taskservice owns the task lifecycle: creation, the forward-only
// status state machine, assignment, comments, and the notification side
// effects those mutations emit.
package taskservice

import (
	"log/slog"

	httpadapter "taskforge/contexts/work-tracking/task-service/adapters/http"
	"taskforge/contexts/work-tracking/task-service/adapters/memory"
	"taskforge/contexts/work-tracking/task-service/application"
	"taskforge/contexts/work-tracking/task-service/ports"
)

// Module is the task-service composition root exposed to runtime wiring.
type Module struct {
	Service application.Service
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Tasks       ports.Tasks
	Policy      ports.AccessPolicy
	Members     ports.MembershipDirectory
	Notifier    ports.Notifier
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Tasks:       deps.Tasks,
		Policy:      deps.Policy,
		Members:     deps.Members,
		Notifier:    deps.Notifier,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	return Module{
		Service: service,
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with an in-memory
// task store. Policy, membership and notifier come from the caller so the
// module can share the other modules' in-memory wiring.
func NewInMemoryModule(policy ports.AccessPolicy, members ports.MembershipDirectory, notifier ports.Notifier, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Tasks:       store,
		Policy:      policy,
		Members:     members,
		Notifier:    notifier,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
