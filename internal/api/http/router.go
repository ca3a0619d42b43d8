package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-services/internal/api/http/handlers"
	"github.com/spec-kit/clinic-services/internal/auth"
	"github.com/spec-kit/clinic-services/internal/domain"
)

// RouteConfig bundles handlers for route registration. Only the handlers of
// the service being started are set; nil groups are skipped.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Identity     *handlers.IdentityHandler
	Doctors      *handlers.DoctorsHandler
	Patients     *handlers.PatientsHandler
	Appointments *handlers.AppointmentsHandler
}

// RegisterRoutes wires HTTP routes. Role requirements are declared here, per
// route; routes without one are public.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
		app.Get("/health/metrics", cfg.Health.Metrics)
	}

	api := app.Group("/api")
	if cfg.Identity != nil {
		registerIdentityRoutes(api, cfg.Identity)
	}
	if cfg.Doctors != nil {
		registerDoctorRoutes(api, cfg.Doctors)
	}
	if cfg.Patients != nil {
		registerPatientRoutes(api, cfg.Patients)
	}
	if cfg.Appointments != nil {
		registerAppointmentRoutes(api, cfg.Appointments)
	}
}

func registerIdentityRoutes(api fiber.Router, h *handlers.IdentityHandler) {
	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Register)
	authGroup.Post("/login", h.Login)
	authGroup.Get("/me", auth.RequireAuthenticated(), h.Me)

	users := api.Group("/users")
	users.Get("/username/:username", h.GetByUsername)
	users.Get("/validate/:userId", h.Validate)
	users.Get("/:id", h.GetUser)
}

func registerDoctorRoutes(api fiber.Router, h *handlers.DoctorsHandler) {
	doctorOnly := auth.RequireRoles(domain.RoleDoctor)

	doctors := api.Group("/doctors")
	doctors.Get("/", h.List)
	doctors.Post("/", doctorOnly, h.Create)
	doctors.Get("/specialty/:specialty", h.BySpecialty)
	doctors.Get("/me", doctorOnly, h.Me)
	doctors.Put("/me", doctorOnly, h.UpdateMe)
	doctors.Get("/me/patients", h.Patients)
	doctors.Get("/me/patients/history", h.PatientsWithHistory)
	doctors.Get("/:id", h.Get)
}

func registerPatientRoutes(api fiber.Router, h *handlers.PatientsHandler) {
	patientOnly := auth.RequireRoles(domain.RolePatient)

	patients := api.Group("/patients")
	patients.Post("/", patientOnly, h.Create)
	patients.Get("/me", patientOnly, h.Me)
	patients.Put("/me", patientOnly, h.UpdateMe)
	patients.Post("/me/medical-history", patientOnly, h.AddMedicalHistory)
	patients.Get("/me/medical-history", patientOnly, h.MedicalHistory)
	patients.Post("/me/emergency-contact", patientOnly, h.UpdateEmergencyContact)
	patients.Get("/me/patients", h.List)
	patients.Get("/all-with-history", h.ListWithHistory)
	patients.Get("/doctor/summary", auth.RequireRoles(domain.RoleDoctor), h.Summary)
}

func registerAppointmentRoutes(api fiber.Router, h *handlers.AppointmentsHandler) {
	participants := auth.RequireRoles(domain.RolePatient, domain.RoleDoctor)

	appointments := api.Group("/appointments")
	appointments.Post("/", auth.RequireRoles(domain.RolePatient), h.Book)
	appointments.Get("/me", participants, h.Mine)
	appointments.Get("/doctor/:doctorId", h.ForDoctor)
	appointments.Get("/:id", participants, h.Get)
	appointments.Put("/:id", participants, h.Update)
}
