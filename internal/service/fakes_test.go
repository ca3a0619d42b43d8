package service

import (
	"context"
	"sort"
	"sync"

	"github.com/spec-kit/clinic-services/internal/api/dto"
	"github.com/spec-kit/clinic-services/internal/auth"
	"github.com/spec-kit/clinic-services/internal/domain"
	"github.com/spec-kit/clinic-services/internal/events"
	"github.com/spec-kit/clinic-services/internal/peer"
	"github.com/spec-kit/clinic-services/internal/repository"
	apperrors "github.com/spec-kit/clinic-services/pkg/util"
)

func patient(id int64) auth.Identity {
	return auth.Identity{UserID: id, Role: domain.RolePatient, Subject: "patient", Authenticated: true}
}

func doctor(id int64) auth.Identity {
	return auth.Identity{UserID: id, Role: domain.RoleDoctor, Subject: "doctor", Authenticated: true}
}

func admin(id int64) auth.Identity {
	return auth.Identity{UserID: id, Role: domain.RoleAdmin, Subject: "admin", Authenticated: true}
}

type validationCall struct {
	kind peer.Kind
	id   int64
}

// fakeValidator knows which ids exist per kind and records every call.
type fakeValidator struct {
	mu       sync.Mutex
	existing map[peer.Kind]map[int64]bool
	calls    []validationCall
}

func newFakeValidator() *fakeValidator {
	return &fakeValidator{existing: map[peer.Kind]map[int64]bool{}}
}

func (v *fakeValidator) allow(kind peer.Kind, ids ...int64) *fakeValidator {
	if v.existing[kind] == nil {
		v.existing[kind] = map[int64]bool{}
	}
	for _, id := range ids {
		v.existing[kind][id] = true
	}
	return v
}

func (v *fakeValidator) ValidateExists(_ context.Context, kind peer.Kind, id int64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, validationCall{kind: kind, id: id})
	if v.existing[kind][id] {
		return nil
	}
	if kind == peer.KindDoctor {
		return apperrors.NewNotFound("doctor", nil)
	}
	return apperrors.NewNotFound("user", nil)
}

type memUsers struct {
	nextID int64
	byID   map[int64]domain.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[int64]domain.User{}} }

func (m *memUsers) Create(ctx context.Context, user *domain.User) error {
	if taken, _ := m.ExistsByUsername(ctx, user.Username); taken {
		return repository.ErrDuplicate
	}
	m.nextID++
	user.ID = m.nextID
	m.byID[user.ID] = *user
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}

func (m *memUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.FindByUsername(ctx, username)
	return err == nil, nil
}

type memDoctors struct {
	byID map[int64]domain.DoctorProfile
}

func newMemDoctors() *memDoctors { return &memDoctors{byID: map[int64]domain.DoctorProfile{}} }

func (m *memDoctors) FindByID(_ context.Context, id int64) (*domain.DoctorProfile, error) {
	d, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (m *memDoctors) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}

func (m *memDoctors) Create(_ context.Context, d *domain.DoctorProfile) error {
	if _, ok := m.byID[d.UserID]; ok {
		return repository.ErrDuplicate
	}
	m.byID[d.UserID] = *d
	return nil
}

func (m *memDoctors) Save(_ context.Context, d *domain.DoctorProfile) error {
	m.byID[d.UserID] = *d
	return nil
}

func (m *memDoctors) List(_ context.Context) ([]domain.DoctorProfile, error) {
	var out []domain.DoctorProfile
	for _, d := range m.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (m *memDoctors) FindBySpecialty(ctx context.Context, specialty string) ([]domain.DoctorProfile, error) {
	all, _ := m.List(ctx)
	var out []domain.DoctorProfile
	for _, d := range all {
		if d.Specialty == specialty {
			out = append(out, d)
		}
	}
	return out, nil
}

type memPatients struct {
	byID map[int64]domain.PatientProfile
}

func newMemPatients() *memPatients { return &memPatients{byID: map[int64]domain.PatientProfile{}} }

func (m *memPatients) FindByID(_ context.Context, id int64) (*domain.PatientProfile, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *memPatients) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}

func (m *memPatients) Create(_ context.Context, p *domain.PatientProfile) error {
	if _, ok := m.byID[p.UserID]; ok {
		return repository.ErrDuplicate
	}
	m.byID[p.UserID] = *p
	return nil
}

func (m *memPatients) Save(_ context.Context, p *domain.PatientProfile) error {
	m.byID[p.UserID] = *p
	return nil
}

func (m *memPatients) List(_ context.Context) ([]domain.PatientProfile, error) {
	var out []domain.PatientProfile
	for _, p := range m.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type memHistory struct {
	nextID  int64
	entries []domain.MedicalHistory
}

func (m *memHistory) Create(_ context.Context, entry *domain.MedicalHistory) error {
	m.nextID++
	entry.ID = m.nextID
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memHistory) FindByPatientID(_ context.Context, patientID int64) ([]domain.MedicalHistory, error) {
	var out []domain.MedicalHistory
	for _, e := range m.entries {
		if e.PatientID == patientID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memAppointments struct {
	nextID int64
	byID   map[int64]domain.Appointment
}

func newMemAppointments() *memAppointments {
	return &memAppointments{byID: map[int64]domain.Appointment{}}
}

func (m *memAppointments) FindByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (m *memAppointments) Save(_ context.Context, a *domain.Appointment) error {
	if a.ID == 0 {
		m.nextID++
		a.ID = m.nextID
	} else if _, ok := m.byID[a.ID]; !ok {
		return repository.ErrNotFound
	}
	m.byID[a.ID] = *a
	return nil
}

func (m *memAppointments) FindByPatientID(_ context.Context, id int64) ([]domain.Appointment, error) {
	return m.filter(func(a domain.Appointment) bool { return a.PatientID == id }), nil
}

func (m *memAppointments) FindByDoctorID(_ context.Context, id int64) ([]domain.Appointment, error) {
	return m.filter(func(a domain.Appointment) bool { return a.DoctorID == id }), nil
}

func (m *memAppointments) filter(keep func(domain.Appointment) bool) []domain.Appointment {
	var out []domain.Appointment
	for _, a := range m.byID {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type staticPatients struct {
	list    []dto.PatientResponse
	history []dto.PatientWithHistoryResponse
	err     error
}

func (s staticPatients) ListPatients(context.Context) ([]dto.PatientResponse, error) {
	return s.list, s.err
}

func (s staticPatients) ListPatientsWithHistory(context.Context) ([]dto.PatientWithHistoryResponse, error) {
	return s.history, s.err
}

// recordingDispatcher keeps published events in order.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}

// The racing stores hide committed rows from the existence check, as when a
// concurrent create lands between the check and the insert.
type racingUsers struct{ *memUsers }

func (racingUsers) ExistsByUsername(context.Context, string) (bool, error) { return false, nil }

type racingDoctors struct{ *memDoctors }

func (racingDoctors) ExistsByID(context.Context, int64) (bool, error) { return false, nil }

type racingPatients struct{ *memPatients }

func (racingPatients) ExistsByID(context.Context, int64) (bool, error) { return false, nil }
