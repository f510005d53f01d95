package tokenservice

import (
	"log/slog"
	"time"

	"taskforge/contexts/identity-access/token-service/adapters/memory"
	"taskforge/contexts/identity-access/token-service/application"
	"taskforge/contexts/identity-access/token-service/application/workers"
	"taskforge/contexts/identity-access/token-service/ports"
)

// Module is the token-service composition root exposed to runtime wiring.
type Module struct {
	Service application.Service
	Sweeper workers.RefreshTokenSweeper
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Tokens     ports.RefreshTokenRepository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Secret:     deps.Secret,
		AccessTTL:  deps.AccessTTL,
		RefreshTTL: deps.RefreshTTL,
		Tokens:     deps.Tokens,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	return Module{
		Service: service,
		Sweeper: workers.RefreshTokenSweeper{
			Tokens: deps.Tokens,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters and short, deterministic defaults.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Secret:     []byte("taskforge-test-secret"),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 30 * 24 * time.Hour,
		Tokens:     store,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
