package dto

import (
	"time"

	"github.com/spec-kit/clinic-services/internal/domain"
)

// BookAppointmentRequest books with a doctor. The patient is always the caller
// and the status is always SCHEDULED, so neither is accepted here.
type BookAppointmentRequest struct {
	DoctorID        int64     `json:"doctorId" validate:"required,gt=0"`
	AppointmentTime time.Time `json:"appointmentTime" validate:"required"`
	Notes           string    `json:"notes" validate:"max=2000"`
}

// UpdateAppointmentRequest replaces time, status and notes.
type UpdateAppointmentRequest struct {
	AppointmentTime time.Time `json:"appointmentTime" validate:"required"`
	Status          string    `json:"status" validate:"required,oneof=SCHEDULED COMPLETED CANCELLED"`
	Notes           string    `json:"notes" validate:"max=2000"`
}

// AppointmentResponse is the wire view of an appointment.
type AppointmentResponse struct {
	ID              int64                    `json:"id"`
	PatientID       int64                    `json:"patientId"`
	DoctorID        int64                    `json:"doctorId"`
	AppointmentTime time.Time                `json:"appointmentTime"`
	Status          domain.AppointmentStatus `json:"status"`
	Notes           string                   `json:"notes,omitempty"`
}

func NewAppointmentResponse(a *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              a.ID,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		AppointmentTime: a.AppointmentTime,
		Status:          a.Status,
		Notes:           a.Notes,
	}
}

func NewAppointmentResponses(appointments []domain.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		out = append(out, NewAppointmentResponse(&appointments[i]))
	}
	return out
}
