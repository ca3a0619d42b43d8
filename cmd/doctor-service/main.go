package main

import (
	httptransport "github.com/spec-kit/clinic-services/internal/api/http"
	"github.com/spec-kit/clinic-services/internal/api/http/handlers"
	"github.com/spec-kit/clinic-services/internal/config"
	"github.com/spec-kit/clinic-services/internal/peer"
	"github.com/spec-kit/clinic-services/internal/repository"
	"github.com/spec-kit/clinic-services/internal/server"
	"github.com/spec-kit/clinic-services/internal/service"
)

func main() {
	server.Run(config.ServiceDoctor, func(d server.Deps) httptransport.RouteConfig {
		doctors := service.NewDoctorService(service.DoctorDependencies{
			DoctorRepo: repository.NewDoctorRepository(d.Pool),
			Validator:  d.Validator,
			Patients:   peer.NewPatientDirectory(d.Config.Peers.PatientServiceURL, d.Config.Peers.Timeout()),
			Dispatcher: d.Dispatcher,
			Logger:     d.Logger,
		})
		return httptransport.RouteConfig{Doctors: handlers.NewDoctorsHandler(doctors)}
	})
}
