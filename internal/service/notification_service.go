package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-services/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAppointmentBooked, n.handleAppointmentBooked)
	n.dispatcher.Subscribe(events.EventAppointmentUpdated, n.handleAppointmentUpdated)
	n.dispatcher.Subscribe(events.EventDoctorProfileCreated, n.handleProfileCreated)
	n.dispatcher.Subscribe(events.EventPatientProfileCreated, n.handleProfileCreated)
}

func (n *NotificationService) handleAppointmentBooked(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.AppointmentBookedPayload)
	n.logger.Info("AppointmentBooked",
		zap.Int64("appointment_id", event.SubjectID),
		zap.Int64("patient_id", payload.PatientID),
		zap.Int64("doctor_id", payload.DoctorID),
		zap.Time("appointment_time", payload.AppointmentTime))
	return nil
}

func (n *NotificationService) handleAppointmentUpdated(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.AppointmentUpdatedPayload)
	n.logger.Info("AppointmentUpdated",
		zap.Int64("appointment_id", event.SubjectID),
		zap.Int64("actor_id", event.Actor.UserID),
		zap.String("old_status", string(payload.OldStatus)),
		zap.String("new_status", string(payload.NewStatus)))
	return nil
}

func (n *NotificationService) handleProfileCreated(_ context.Context, event events.Event) error {
	n.logger.Info("ProfileCreated",
		zap.String("event_type", string(event.Type)),
		zap.Int64("user_id", event.SubjectID),
		zap.Any("payload", event.Payload))
	return nil
}
