package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-services/internal/api/dto"
	"github.com/spec-kit/clinic-services/internal/auth"
	"github.com/spec-kit/clinic-services/internal/service"
)

// PatientsHandler exposes patient profile endpoints.
type PatientsHandler struct {
	patients *service.PatientService
}

// NewPatientsHandler constructs handler.
func NewPatientsHandler(patients *service.PatientService) *PatientsHandler {
	return &PatientsHandler{patients: patients}
}

// Create handles POST /api/patients.
func (h *PatientsHandler) Create(c *fiber.Ctx) error {
	var req dto.PatientProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	identity := auth.IdentityFromContext(c)
	patient, err := h.patients.CreateProfile(c.UserContext(), identity, req.ToDomain(identity.UserID))
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewPatientResponse(patient))
}

// Me handles GET /api/patients/me.
func (h *PatientsHandler) Me(c *fiber.Ctx) error {
	patient, err := h.patients.GetProfile(c.UserContext(), auth.IdentityFromContext(c))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewPatientResponse(patient))
}

// UpdateMe handles PUT /api/patients/me.
func (h *PatientsHandler) UpdateMe(c *fiber.Ctx) error {
	var req dto.PatientProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	identity := auth.IdentityFromContext(c)
	patient, err := h.patients.UpdateProfile(c.UserContext(), identity, req.ToDomain(identity.UserID))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewPatientResponse(patient))
}

// AddMedicalHistory handles POST /api/patients/me/medical-history.
func (h *PatientsHandler) AddMedicalHistory(c *fiber.Ctx) error {
	var req dto.MedicalHistoryRequest
	if err := bindBodyOrQuery(c, &req); err != nil {
		return err
	}
	entry, err := h.patients.AddMedicalHistory(c.UserContext(), auth.IdentityFromContext(c), req.Description)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewMedicalHistoryResponse(entry))
}

// MedicalHistory handles GET /api/patients/me/medical-history.
func (h *PatientsHandler) MedicalHistory(c *fiber.Ctx) error {
	entries, err := h.patients.MedicalHistory(c.UserContext(), auth.IdentityFromContext(c))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewMedicalHistoryResponses(entries))
}

// UpdateEmergencyContact handles POST /api/patients/me/emergency-contact.
func (h *PatientsHandler) UpdateEmergencyContact(c *fiber.Ctx) error {
	var req dto.EmergencyContactRequest
	if err := bindBodyOrQuery(c, &req); err != nil {
		return err
	}
	patient, err := h.patients.UpdateEmergencyContact(c.UserContext(), auth.IdentityFromContext(c), req.Name, req.Number)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewPatientResponse(patient))
}

// Summary handles GET /api/patients/doctor/summary?patientId=.
func (h *PatientsHandler) Summary(c *fiber.Ctx) error {
	patientID, err := int64Query(c, "patientId")
	if err != nil {
		return err
	}
	summary, err := h.patients.Summary(c.UserContext(), auth.IdentityFromContext(c), patientID)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewPatientResponse(summary))
}

// List handles GET /api/patients/me/patients.
func (h *PatientsHandler) List(c *fiber.Ctx) error {
	patients, err := h.patients.List(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewPatientResponses(patients))
}

// ListWithHistory handles GET /api/patients/all-with-history.
func (h *PatientsHandler) ListWithHistory(c *fiber.Ctx) error {
	patients, err := h.patients.ListWithHistory(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewPatientWithHistoryResponses(patients))
}
