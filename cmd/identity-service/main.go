package main

import (
	httptransport "github.com/spec-kit/clinic-services/internal/api/http"
	"github.com/spec-kit/clinic-services/internal/api/http/handlers"
	"github.com/spec-kit/clinic-services/internal/config"
	"github.com/spec-kit/clinic-services/internal/repository"
	"github.com/spec-kit/clinic-services/internal/server"
	"github.com/spec-kit/clinic-services/internal/service"
)

func main() {
	server.Run(config.ServiceIdentity, func(d server.Deps) httptransport.RouteConfig {
		identity := service.NewIdentityService(
			repository.NewUserRepository(d.Pool),
			d.Tokens,
			d.Config.Auth.BcryptCost,
			d.Logger,
		)
		return httptransport.RouteConfig{Identity: handlers.NewIdentityHandler(identity)}
	})
}
