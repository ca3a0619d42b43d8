package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-services/internal/auth"
	"github.com/spec-kit/clinic-services/internal/config"
	"github.com/spec-kit/clinic-services/internal/domain"
	"github.com/spec-kit/clinic-services/internal/events"
	"github.com/spec-kit/clinic-services/internal/peer"
	"github.com/spec-kit/clinic-services/internal/repository"
	apperrors "github.com/spec-kit/clinic-services/pkg/util"
)

// BookingInput carries the caller-supplied fields of a booking.
type BookingInput struct {
	DoctorID        int64
	AppointmentTime time.Time
	Notes           string
}

// AppointmentUpdate carries the fields an owner may change.
type AppointmentUpdate struct {
	AppointmentTime time.Time
	Status          domain.AppointmentStatus
	Notes           string
}

// AppointmentService books and manages appointments.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	validator    ReferenceValidator
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// AppointmentDependencies encapsulates collaborators for the appointment service.
type AppointmentDependencies struct {
	AppointmentRepo repository.AppointmentRepository
	Validator       ReferenceValidator
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// NewAppointmentService builds the service.
func NewAppointmentService(deps AppointmentDependencies) *AppointmentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentService{
		appointments: deps.AppointmentRepo,
		validator:    deps.Validator,
		dispatcher:   deps.Dispatcher,
		logger:       logger,
	}
}

// Book creates a SCHEDULED appointment for the calling patient. Both the
// patient and the doctor are confirmed with their owning services, in that
// order, before anything is written.
func (s *AppointmentService) Book(ctx context.Context, identity auth.Identity, input BookingInput) (*domain.Appointment, error) {
	if err := auth.Enforce(identity, domain.RolePatient); err != nil {
		return nil, err
	}
	patientID := identity.UserID
	s.logger.Info("booking appointment",
		zap.Int64("patient_id", patientID),
		zap.Int64("doctor_id", input.DoctorID))

	if err := s.validator.ValidateExists(ctx, peer.KindUser, patientID); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateExists(ctx, peer.KindDoctor, input.DoctorID); err != nil {
		return nil, err
	}

	appointment := &domain.Appointment{
		PatientID:       patientID,
		DoctorID:        input.DoctorID,
		AppointmentTime: input.AppointmentTime,
		Status:          domain.AppointmentStatusScheduled,
		Notes:           input.Notes,
	}
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, storeError("save appointment", err)
	}
	s.logger.Info("appointment booked", zap.Int64("appointment_id", appointment.ID))

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventAppointmentBooked, config.ServiceAppointment,
		appointment.ID, actorOf(identity), events.AppointmentBookedPayload{
			PatientID:       appointment.PatientID,
			DoctorID:        appointment.DoctorID,
			AppointmentTime: appointment.AppointmentTime,
		}))
	return appointment, nil
}

// ListMine returns the caller's appointments: as patient for PATIENT callers,
// as doctor for DOCTOR callers.
func (s *AppointmentService) ListMine(ctx context.Context, identity auth.Identity) ([]domain.Appointment, error) {
	if err := auth.Enforce(identity, domain.RolePatient, domain.RoleDoctor); err != nil {
		return nil, err
	}
	var (
		list []domain.Appointment
		err  error
	)
	if identity.Role == domain.RoleDoctor {
		list, err = s.appointments.FindByDoctorID(ctx, identity.UserID)
	} else {
		list, err = s.appointments.FindByPatientID(ctx, identity.UserID)
	}
	if err != nil {
		return nil, storeError("list appointments", err)
	}
	return list, nil
}

// Get loads an appointment by id for any patient or doctor.
func (s *AppointmentService) Get(ctx context.Context, identity auth.Identity, id int64) (*domain.Appointment, error) {
	if err := auth.Enforce(identity, domain.RolePatient, domain.RoleDoctor); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// Update changes time, status and notes. Only the appointment's patient or
// doctor may do so, whatever their role.
func (s *AppointmentService) Update(ctx context.Context, identity auth.Identity, id int64, update AppointmentUpdate) (*domain.Appointment, error) {
	if err := auth.Enforce(identity, domain.RolePatient, domain.RoleDoctor); err != nil {
		return nil, err
	}
	if !update.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid payload", map[string]any{"status": "oneof"})
	}
	appointment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckOwnership(identity, appointment); err != nil {
		return nil, err
	}

	payload := events.AppointmentUpdatedPayload{
		OldStatus: appointment.Status,
		NewStatus: update.Status,
		OldTime:   appointment.AppointmentTime,
		NewTime:   update.AppointmentTime,
	}
	appointment.AppointmentTime = update.AppointmentTime
	appointment.Status = update.Status
	appointment.Notes = update.Notes
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, storeError("save appointment", err)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventAppointmentUpdated, config.ServiceAppointment,
		appointment.ID, actorOf(identity), payload))
	return appointment, nil
}

// ListForDoctor returns a doctor's appointments after confirming the doctor exists.
func (s *AppointmentService) ListForDoctor(ctx context.Context, doctorID int64) ([]domain.Appointment, error) {
	if err := s.validator.ValidateExists(ctx, peer.KindDoctor, doctorID); err != nil {
		return nil, err
	}
	list, err := s.appointments.FindByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, storeError("list appointments", err)
	}
	return list, nil
}

func (s *AppointmentService) load(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "appointment", id)
	}
	return appointment, nil
}
