// Package sessionservice owns user accounts, credentials and the
// register/login/refresh/logout flows. Token minting and rotation are
// delegated to the token manager through the TokenManager port.
package sessionservice

import (
	"log/slog"

	"taskforge/contexts/identity-access/session-service/adapters/crypto"
	httpadapter "taskforge/contexts/identity-access/session-service/adapters/http"
	"taskforge/contexts/identity-access/session-service/adapters/memory"
	"taskforge/contexts/identity-access/session-service/application"
	"taskforge/contexts/identity-access/session-service/ports"
)

// Module is the session-service composition root exposed to runtime wiring.
type Module struct {
	Service application.Service
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Users         ports.Users
	Organizations ports.Organizations
	Hasher        ports.CredentialHasher
	Tokens        ports.TokenManager
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Users:         deps.Users,
		Organizations: deps.Organizations,
		Hasher:        deps.Hasher,
		Tokens:        deps.Tokens,
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
// adapters. The cheap bcrypt cost keeps test suites fast.
func NewInMemoryModule(tokens ports.TokenManager, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Users:         store,
		Organizations: store,
		Hasher:        crypto.BcryptHasher{Cost: 4},
		Tokens:        tokens,
		Clock:         store,
		IDGenerator:   store,
		Logger:        logger,
	})
	module.Store = store
	return module
}
