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
	server.Run(config.ServiceAppointment, func(d server.Deps) httptransport.RouteConfig {
		appointments := service.NewAppointmentService(service.AppointmentDependencies{
			AppointmentRepo: repository.NewAppointmentRepository(d.Pool),
			Validator:       d.Validator,
			Dispatcher:      d.Dispatcher,
			Logger:          d.Logger,
		})
		return httptransport.RouteConfig{Appointments: handlers.NewAppointmentsHandler(appointments)}
	})
}
