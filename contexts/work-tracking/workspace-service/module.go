// Package workspaceservice owns organizations listing, project lifecycle
// and project membership edges for one tenant.
package workspaceservice

import (
	"log/slog"

	httpadapter "taskforge/contexts/work-tracking/workspace-service/adapters/http"
	"taskforge/contexts/work-tracking/workspace-service/adapters/memory"
	"taskforge/contexts/work-tracking/workspace-service/application"
	"taskforge/contexts/work-tracking/workspace-service/ports"
)

// Module is the workspace-service composition root exposed to runtime
// wiring.
type Module struct {
	Service application.Service
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Projects      ports.Projects
	Organizations ports.OrganizationCatalog
	Users         ports.UserDirectory
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Projects:      deps.Projects,
		Organizations: deps.Organizations,
		Users:         deps.Users,
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGenerator,
		Logger:        deps.Logger,
	}
	return Module{
		Service: service,
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. Catalog and directory reads come from the caller so the module
// can share the session store.
func NewInMemoryModule(orgs ports.OrganizationCatalog, users ports.UserDirectory, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Projects:      store,
		Organizations: orgs,
		Users:         users,
		Clock:         store,
		IDGenerator:   store,
		Logger:        logger,
	})
	module.Store = store
	return module
}
