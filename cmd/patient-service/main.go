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
	server.Run(config.ServicePatient, func(d server.Deps) httptransport.RouteConfig {
		patients := service.NewPatientService(service.PatientDependencies{
			PatientRepo: repository.NewPatientRepository(d.Pool),
			HistoryRepo: repository.NewMedicalHistoryRepository(d.Pool),
			Validator:   d.Validator,
			Dispatcher:  d.Dispatcher,
			Logger:      d.Logger,
		})
		return httptransport.RouteConfig{Patients: handlers.NewPatientsHandler(patients)}
	})
}
