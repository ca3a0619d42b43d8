package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-services/internal/api/dto"
	"github.com/spec-kit/clinic-services/internal/auth"
	"github.com/spec-kit/clinic-services/internal/config"
	"github.com/spec-kit/clinic-services/internal/domain"
	"github.com/spec-kit/clinic-services/internal/events"
	"github.com/spec-kit/clinic-services/internal/peer"
	"github.com/spec-kit/clinic-services/internal/repository"
)

// PatientLister reads patient listings from the patient service.
type PatientLister interface {
	ListPatients(ctx context.Context) ([]dto.PatientResponse, error)
	ListPatientsWithHistory(ctx context.Context) ([]dto.PatientWithHistoryResponse, error)
}

// DoctorService manages doctor profiles.
type DoctorService struct {
	doctors    repository.DoctorRepository
	validator  ReferenceValidator
	patients   PatientLister
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// DoctorDependencies encapsulates collaborators for the doctor service.
type DoctorDependencies struct {
	DoctorRepo repository.DoctorRepository
	Validator  ReferenceValidator
	Patients   PatientLister
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewDoctorService builds the service.
func NewDoctorService(deps DoctorDependencies) *DoctorService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DoctorService{
		doctors:    deps.DoctorRepo,
		validator:  deps.Validator,
		patients:   deps.Patients,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateProfile stores the caller's doctor profile once. The caller's account
// must exist in the identity service.
func (s *DoctorService) CreateProfile(ctx context.Context, identity auth.Identity, profile domain.DoctorProfile) (*domain.DoctorProfile, error) {
	if err := auth.Enforce(identity, domain.RoleDoctor); err != nil {
		return nil, err
	}
	if err := auth.CheckUniqueCreate(ctx, identity.UserID, s.doctors.ExistsByID); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateExists(ctx, peer.KindUser, identity.UserID); err != nil {
		return nil, err
	}

	profile.UserID = identity.UserID
	if err := s.doctors.Create(ctx, &profile); err != nil {
		return nil, createError("create doctor profile", err, "profile already exists", map[string]any{"user_id": profile.UserID})
	}
	s.logger.Info("doctor profile created", zap.Int64("user_id", profile.UserID))

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventDoctorProfileCreated, config.ServiceDoctor,
		profile.UserID, actorOf(identity), events.ProfileCreatedPayload{
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Specialty: profile.Specialty,
		}))
	return &profile, nil
}

// GetProfile returns the caller's own profile.
func (s *DoctorService) GetProfile(ctx context.Context, identity auth.Identity) (*domain.DoctorProfile, error) {
	if err := auth.Enforce(identity, domain.RoleDoctor); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, identity.UserID)
}

// UpdateProfile replaces the caller's editable profile fields.
func (s *DoctorService) UpdateProfile(ctx context.Context, identity auth.Identity, update domain.DoctorProfile) (*domain.DoctorProfile, error) {
	if err := auth.Enforce(identity, domain.RoleDoctor); err != nil {
		return nil, err
	}
	existing, err := s.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckOwnership(identity, existing); err != nil {
		return nil, err
	}

	existing.FirstName = update.FirstName
	existing.LastName = update.LastName
	existing.Specialty = update.Specialty
	existing.ConsultationFee = update.ConsultationFee
	existing.Availability = update.Availability
	existing.LicenseNumber = update.LicenseNumber
	existing.Qualifications = update.Qualifications
	existing.YearsOfExperience = update.YearsOfExperience
	if err := s.doctors.Save(ctx, existing); err != nil {
		return nil, storeError("save doctor profile", err)
	}
	return existing, nil
}

// GetByID loads any doctor profile. Peers use it as the existence endpoint.
func (s *DoctorService) GetByID(ctx context.Context, userID int64) (*domain.DoctorProfile, error) {
	doctor, err := s.doctors.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "doctor", userID)
	}
	return doctor, nil
}

// List returns every doctor profile.
func (s *DoctorService) List(ctx context.Context) ([]domain.DoctorProfile, error) {
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, storeError("list doctors", err)
	}
	return doctors, nil
}

// BySpecialty filters profiles by exact specialty.
func (s *DoctorService) BySpecialty(ctx context.Context, specialty string) ([]domain.DoctorProfile, error) {
	doctors, err := s.doctors.FindBySpecialty(ctx, specialty)
	if err != nil {
		return nil, storeError("list doctors by specialty", err)
	}
	return doctors, nil
}

// Patients proxies the patient listing of the patient service.
func (s *DoctorService) Patients(ctx context.Context) ([]dto.PatientResponse, error) {
	return s.patients.ListPatients(ctx)
}

// PatientsWithHistory proxies the patient listing including medical history.
func (s *DoctorService) PatientsWithHistory(ctx context.Context) ([]dto.PatientWithHistoryResponse, error) {
	return s.patients.ListPatientsWithHistory(ctx)
}
