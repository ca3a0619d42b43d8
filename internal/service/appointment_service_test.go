package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-services/internal/auth"
	"github.com/spec-kit/clinic-services/internal/domain"
	"github.com/spec-kit/clinic-services/internal/events"
	"github.com/spec-kit/clinic-services/internal/peer"
	apperrors "github.com/spec-kit/clinic-services/pkg/util"
)

type appointmentFixture struct {
	svc        *AppointmentService
	store      *memAppointments
	validator  *fakeValidator
	dispatcher *recordingDispatcher
}

func newAppointmentFixture() appointmentFixture {
	f := appointmentFixture{
		store:      newMemAppointments(),
		validator:  newFakeValidator(),
		dispatcher: &recordingDispatcher{},
	}
	f.svc = NewAppointmentService(AppointmentDependencies{
		AppointmentRepo: f.store,
		Validator:       f.validator,
		Dispatcher:      f.dispatcher,
	})
	return f
}

var slot = time.Date(2025, 4, 2, 14, 30, 0, 0, time.UTC)

func TestBookAppointment(t *testing.T) {
	f := newAppointmentFixture()
	f.validator.allow(peer.KindUser, 1).allow(peer.KindDoctor, 2)

	appt, err := f.svc.Book(context.Background(), patient(1), BookingInput{DoctorID: 2, AppointmentTime: slot, Notes: "checkup"})
	require.NoError(t, err)
	assert.NotZero(t, appt.ID)
	assert.Equal(t, int64(1), appt.PatientID)
	assert.Equal(t, int64(2), appt.DoctorID)
	assert.Equal(t, domain.AppointmentStatusScheduled, appt.Status)
	assert.Len(t, f.store.byID, 1)

	assert.Equal(t, []validationCall{{peer.KindUser, 1}, {peer.KindDoctor, 2}}, f.validator.calls)
	assert.Equal(t, []events.EventType{events.EventAppointmentBooked}, f.dispatcher.types())
}

func TestBookAppointmentUnknownDoctorWritesNothing(t *testing.T) {
	f := newAppointmentFixture()
	f.validator.allow(peer.KindUser, 1)

	_, err := f.svc.Book(context.Background(), patient(1), BookingInput{DoctorID: 999, AppointmentTime: slot})
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeNotFound, de.Code)
	assert.Equal(t, "doctor not found", de.Message)
	assert.Empty(t, f.store.byID)
	assert.Empty(t, f.dispatcher.published)
}

func TestBookAppointmentUnknownPatientStopsBeforeDoctor(t *testing.T) {
	f := newAppointmentFixture()
	f.validator.allow(peer.KindDoctor, 2)

	_, err := f.svc.Book(context.Background(), patient(1), BookingInput{DoctorID: 2, AppointmentTime: slot})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Equal(t, []validationCall{{peer.KindUser, 1}}, f.validator.calls)
	assert.Empty(t, f.store.byID)
}

func TestBookAppointmentRequiresPatientRole(t *testing.T) {
	f := newAppointmentFixture()
	f.validator.allow(peer.KindUser, 1, 2).allow(peer.KindDoctor, 2)

	_, err := f.svc.Book(context.Background(), doctor(2), BookingInput{DoctorID: 2, AppointmentTime: slot})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	_, err = f.svc.Book(context.Background(), auth.Anonymous, BookingInput{DoctorID: 2, AppointmentTime: slot})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))

	assert.Empty(t, f.validator.calls, "no peer call before the role check passes")
	assert.Empty(t, f.store.byID)
}

func seedAppointment(f appointmentFixture, patientID, doctorID int64) int64 {
	a := &domain.Appointment{PatientID: patientID, DoctorID: doctorID, AppointmentTime: slot, Status: domain.AppointmentStatusScheduled}
	_ = f.store.Save(context.Background(), a)
	return a.ID
}

func TestUpdateAppointmentOwnership(t *testing.T) {
	f := newAppointmentFixture()
	id := seedAppointment(f, 10, 20)
	update := AppointmentUpdate{AppointmentTime: slot.Add(time.Hour), Status: domain.AppointmentStatusCompleted, Notes: "done"}

	for _, outsider := range []auth.Identity{patient(30), doctor(30), admin(30)} {
		_, err := f.svc.Update(context.Background(), outsider, id, update)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeForbidden, apperrors.ToDomainError(err).Code, "role %s", outsider.Role)
	}
	assert.Equal(t, domain.AppointmentStatusScheduled, f.store.byID[id].Status)

	updated, err := f.svc.Update(context.Background(), doctor(20), id, update)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentStatusCompleted, updated.Status)
	assert.Equal(t, "done", f.store.byID[id].Notes)

	_, err = f.svc.Update(context.Background(), patient(10), id, AppointmentUpdate{AppointmentTime: slot, Status: domain.AppointmentStatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentStatusCancelled, f.store.byID[id].Status)

	assert.Equal(t, []events.EventType{events.EventAppointmentUpdated, events.EventAppointmentUpdated}, f.dispatcher.types())
}

func TestUpdateAppointmentEdgeCases(t *testing.T) {
	f := newAppointmentFixture()
	id := seedAppointment(f, 10, 20)

	_, err := f.svc.Update(context.Background(), patient(10), id, AppointmentUpdate{AppointmentTime: slot, Status: "LOST"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))

	_, err = f.svc.Update(context.Background(), patient(10), 404, AppointmentUpdate{AppointmentTime: slot, Status: domain.AppointmentStatusCompleted})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	_, err = f.svc.Update(context.Background(), auth.Anonymous, id, AppointmentUpdate{AppointmentTime: slot, Status: domain.AppointmentStatusCompleted})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestListMineByRole(t *testing.T) {
	f := newAppointmentFixture()
	seedAppointment(f, 10, 20)
	seedAppointment(f, 10, 21)
	seedAppointment(f, 11, 20)

	mine, err := f.svc.ListMine(context.Background(), patient(10))
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	mine, err = f.svc.ListMine(context.Background(), doctor(20))
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = f.svc.ListMine(context.Background(), admin(1))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
}

func TestGetAppointment(t *testing.T) {
	f := newAppointmentFixture()
	id := seedAppointment(f, 10, 20)

	appt, err := f.svc.Get(context.Background(), doctor(20), id)
	require.NoError(t, err)
	assert.Equal(t, id, appt.ID)

	_, err = f.svc.Get(context.Background(), patient(10), id+100)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestListForDoctorValidatesDoctor(t *testing.T) {
	f := newAppointmentFixture()
	seedAppointment(f, 10, 20)
	f.validator.allow(peer.KindDoctor, 20)

	list, err := f.svc.ListForDoctor(context.Background(), 20)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.svc.ListForDoctor(context.Background(), 999)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
