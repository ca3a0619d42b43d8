package domain

import "time"

// AppointmentStatus represents lifecycle states for an appointment.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	default:
		return false
	}
}

// Appointment links a patient user to a doctor user.
type Appointment struct {
	ID              int64
	PatientID       int64
	DoctorID        int64
	AppointmentTime time.Time
	Status          AppointmentStatus
	Notes           string
}

// OwnerIDs implements auth.OwnedResource.
func (a *Appointment) OwnerIDs() []int64 {
	return []int64{a.PatientID, a.DoctorID}
}
