package authorization

import (
	"log/slog"

	"taskforge/contexts/identity-access/authorization-service/application"
	"taskforge/contexts/identity-access/authorization-service/ports"
)

// Module is the authorization-service composition root exposed to runtime
// wiring.
type Module struct {
	Service application.Service
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Decoder  ports.TokenDecoder
	Users    ports.UserDirectory
	Projects ports.ProjectDirectory
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Service: application.Service{
			Decoder:  deps.Decoder,
			Users:    deps.Users,
			Projects: deps.Projects,
			Logger:   deps.Logger,
		},
	}
}
