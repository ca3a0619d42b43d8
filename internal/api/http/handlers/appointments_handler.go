package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-services/internal/api/dto"
	"github.com/spec-kit/clinic-services/internal/auth"
	"github.com/spec-kit/clinic-services/internal/domain"
	"github.com/spec-kit/clinic-services/internal/service"
)

// AppointmentsHandler exposes booking endpoints.
type AppointmentsHandler struct {
	appointments *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointments *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{appointments: appointments}
}

// Book handles POST /api/appointments.
func (h *AppointmentsHandler) Book(c *fiber.Ctx) error {
	var req dto.BookAppointmentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	appointment, err := h.appointments.Book(c.UserContext(), auth.IdentityFromContext(c), service.BookingInput{
		DoctorID:        req.DoctorID,
		AppointmentTime: req.AppointmentTime,
		Notes:           req.Notes,
	})
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewAppointmentResponse(appointment))
}

// Mine handles GET /api/appointments/me.
func (h *AppointmentsHandler) Mine(c *fiber.Ctx) error {
	list, err := h.appointments.ListMine(c.UserContext(), auth.IdentityFromContext(c))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewAppointmentResponses(list))
}

// Get handles GET /api/appointments/:id.
func (h *AppointmentsHandler) Get(c *fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	appointment, err := h.appointments.Get(c.UserContext(), auth.IdentityFromContext(c), id)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewAppointmentResponse(appointment))
}

// Update handles PUT /api/appointments/:id.
func (h *AppointmentsHandler) Update(c *fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAppointmentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	appointment, err := h.appointments.Update(c.UserContext(), auth.IdentityFromContext(c), id, service.AppointmentUpdate{
		AppointmentTime: req.AppointmentTime,
		Status:          domain.AppointmentStatus(req.Status),
		Notes:           req.Notes,
	})
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewAppointmentResponse(appointment))
}

// ForDoctor handles GET /api/appointments/doctor/:doctorId.
func (h *AppointmentsHandler) ForDoctor(c *fiber.Ctx) error {
	doctorID, err := int64Param(c, "doctorId")
	if err != nil {
		return err
	}
	list, err := h.appointments.ListForDoctor(c.UserContext(), doctorID)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewAppointmentResponses(list))
}
