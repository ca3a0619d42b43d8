package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/clinic-services/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAppointmentBooked     EventType = "appointment_booked"
	EventAppointmentUpdated    EventType = "appointment_updated"
	EventDoctorProfileCreated  EventType = "doctor_profile_created"
	EventPatientProfileCreated EventType = "patient_profile_created"
)

// Actor identifies the authenticated caller that caused an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	SubjectID int64       `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, source string, subjectID int64, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    source,
		SubjectID: subjectID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// AppointmentBookedPayload payload.
type AppointmentBookedPayload struct {
	PatientID       int64     `json:"patient_id"`
	DoctorID        int64     `json:"doctor_id"`
	AppointmentTime time.Time `json:"appointment_time"`
}

// AppointmentUpdatedPayload payload.
type AppointmentUpdatedPayload struct {
	OldStatus domain.AppointmentStatus `json:"old_status"`
	NewStatus domain.AppointmentStatus `json:"new_status"`
	OldTime   time.Time                `json:"old_time"`
	NewTime   time.Time                `json:"new_time"`
}

// ProfileCreatedPayload payload, shared by doctor and patient profiles.
type ProfileCreatedPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Specialty string `json:"specialty,omitempty"`
}
