package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-services/internal/api/dto"
	"github.com/spec-kit/clinic-services/internal/auth"
	"github.com/spec-kit/clinic-services/internal/service"
)

// DoctorsHandler exposes doctor profile endpoints.
type DoctorsHandler struct {
	doctors *service.DoctorService
}

// NewDoctorsHandler constructs handler.
func NewDoctorsHandler(doctors *service.DoctorService) *DoctorsHandler {
	return &DoctorsHandler{doctors: doctors}
}

// Create handles POST /api/doctors.
func (h *DoctorsHandler) Create(c *fiber.Ctx) error {
	var req dto.DoctorProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	identity := auth.IdentityFromContext(c)
	doctor, err := h.doctors.CreateProfile(c.UserContext(), identity, req.ToDomain(identity.UserID))
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewDoctorResponse(doctor))
}

// Me handles GET /api/doctors/me.
func (h *DoctorsHandler) Me(c *fiber.Ctx) error {
	doctor, err := h.doctors.GetProfile(c.UserContext(), auth.IdentityFromContext(c))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewDoctorResponse(doctor))
}

// UpdateMe handles PUT /api/doctors/me.
func (h *DoctorsHandler) UpdateMe(c *fiber.Ctx) error {
	var req dto.DoctorProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	identity := auth.IdentityFromContext(c)
	doctor, err := h.doctors.UpdateProfile(c.UserContext(), identity, req.ToDomain(identity.UserID))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewDoctorResponse(doctor))
}

// Get handles GET /api/doctors/:id.
func (h *DoctorsHandler) Get(c *fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	doctor, err := h.doctors.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewDoctorResponse(doctor))
}

// List handles GET /api/doctors.
func (h *DoctorsHandler) List(c *fiber.Ctx) error {
	doctors, err := h.doctors.List(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewDoctorResponses(doctors))
}

// BySpecialty handles GET /api/doctors/specialty/:specialty.
func (h *DoctorsHandler) BySpecialty(c *fiber.Ctx) error {
	doctors, err := h.doctors.BySpecialty(c.UserContext(), c.Params("specialty"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewDoctorResponses(doctors))
}

// Patients handles GET /api/doctors/me/patients.
func (h *DoctorsHandler) Patients(c *fiber.Ctx) error {
	patients, err := h.doctors.Patients(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, patients)
}

// PatientsWithHistory handles GET /api/doctors/me/patients/history.
func (h *DoctorsHandler) PatientsWithHistory(c *fiber.Ctx) error {
	patients, err := h.doctors.PatientsWithHistory(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, patients)
}
