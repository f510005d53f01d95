// Package notificationservice records notification events emitted by task
// mutations and serves per-user lists through an advisory TTL cache.
package notificationservice

import (
	"log/slog"
	"time"

	httpadapter "taskforge/contexts/engagement/notification-service/adapters/http"
	"taskforge/contexts/engagement/notification-service/adapters/memory"
	"taskforge/contexts/engagement/notification-service/application"
	"taskforge/contexts/engagement/notification-service/ports"
)

// Module is the notification-service composition root exposed to runtime
// wiring.
type Module struct {
	Service application.Service
	Handler httpadapter.Handler
	Store   *memory.Store
	Cache   *memory.Cache
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Notifications ports.Notifications
	Cache         ports.Cache
	CacheTTL      time.Duration
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Notifications: deps.Notifications,
		Cache:         deps.Cache,
		CacheTTL:      deps.CacheTTL,
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
// adapters and the default 60 second cache TTL.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	cache := memory.NewCache()
	module := NewModule(Dependencies{
		Notifications: store,
		Cache:         cache,
		CacheTTL:      60 * time.Second,
		Clock:         store,
		IDGenerator:   store,
		Logger:        logger,
	})
	module.Store = store
	module.Cache = cache
	return module
}
