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

// PatientService manages patient profiles and their medical history.
type PatientService struct {
	patients   repository.PatientRepository
	history    repository.MedicalHistoryRepository
	validator  ReferenceValidator
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// PatientDependencies encapsulates collaborators for the patient service.
type PatientDependencies struct {
	PatientRepo repository.PatientRepository
	HistoryRepo repository.MedicalHistoryRepository
	Validator   ReferenceValidator
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewPatientService builds the service.
func NewPatientService(deps PatientDependencies) *PatientService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PatientService{
		patients:   deps.PatientRepo,
		history:    deps.HistoryRepo,
		validator:  deps.Validator,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateProfile stores the caller's patient profile once.
func (s *PatientService) CreateProfile(ctx context.Context, identity auth.Identity, profile domain.PatientProfile) (*domain.PatientProfile, error) {
	if err := auth.Enforce(identity, domain.RolePatient); err != nil {
		return nil, err
	}
	if err := auth.CheckUniqueCreate(ctx, identity.UserID, s.patients.ExistsByID); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateExists(ctx, peer.KindUser, identity.UserID); err != nil {
		return nil, err
	}

	profile.UserID = identity.UserID
	if err := s.patients.Create(ctx, &profile); err != nil {
		return nil, createError("create patient profile", err, "profile already exists", map[string]any{"user_id": profile.UserID})
	}
	s.logger.Info("patient profile created", zap.Int64("user_id", profile.UserID))

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventPatientProfileCreated, config.ServicePatient,
		profile.UserID, actorOf(identity), events.ProfileCreatedPayload{
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
		}))
	return &profile, nil
}

// GetProfile returns the caller's own full profile.
func (s *PatientService) GetProfile(ctx context.Context, identity auth.Identity) (*domain.PatientProfile, error) {
	if err := auth.Enforce(identity, domain.RolePatient); err != nil {
		return nil, err
	}
	return s.load(ctx, identity.UserID)
}

// UpdateProfile replaces the caller's editable fields. Emergency contact has
// its own operation and is left untouched.
func (s *PatientService) UpdateProfile(ctx context.Context, identity auth.Identity, update domain.PatientProfile) (*domain.PatientProfile, error) {
	existing, err := s.ownProfile(ctx, identity)
	if err != nil {
		return nil, err
	}

	existing.FirstName = update.FirstName
	existing.LastName = update.LastName
	existing.DateOfBirth = update.DateOfBirth
	existing.Gender = update.Gender
	existing.ContactNumber = update.ContactNumber
	existing.Address = update.Address
	existing.BloodType = update.BloodType
	existing.InsuranceProvider = update.InsuranceProvider
	existing.InsurancePolicyNumber = update.InsurancePolicyNumber
	if err := s.patients.Save(ctx, existing); err != nil {
		return nil, storeError("save patient profile", err)
	}
	return existing, nil
}

// UpdateEmergencyContact sets the caller's emergency contact.
func (s *PatientService) UpdateEmergencyContact(ctx context.Context, identity auth.Identity, name, number string) (*domain.PatientProfile, error) {
	existing, err := s.ownProfile(ctx, identity)
	if err != nil {
		return nil, err
	}
	existing.EmergencyContactName = name
	existing.EmergencyContactNumber = number
	if err := s.patients.Save(ctx, existing); err != nil {
		return nil, storeError("save emergency contact", err)
	}
	return existing, nil
}

// AddMedicalHistory appends an entry to the caller's history.
func (s *PatientService) AddMedicalHistory(ctx context.Context, identity auth.Identity, description string) (*domain.MedicalHistory, error) {
	profile, err := s.ownProfile(ctx, identity)
	if err != nil {
		return nil, err
	}
	entry := &domain.MedicalHistory{
		PatientID:   profile.UserID,
		Description: description,
		RecordedAt:  s.now().UTC(),
	}
	if err := s.history.Create(ctx, entry); err != nil {
		return nil, storeError("save medical history", err)
	}
	return entry, nil
}

// MedicalHistory lists the caller's history. An empty history is NOT_FOUND.
func (s *PatientService) MedicalHistory(ctx context.Context, identity auth.Identity) ([]domain.MedicalHistory, error) {
	if err := auth.Enforce(identity, domain.RolePatient); err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, identity.UserID); err != nil {
		return nil, err
	}
	entries, err := s.history.FindByPatientID(ctx, identity.UserID)
	if err != nil {
		return nil, storeError("list medical history", err)
	}
	if len(entries) == 0 {
		return nil, apperrors.NewNotFound("medical history", map[string]any{"patient_id": identity.UserID})
	}
	return entries, nil
}

// Summary gives a doctor the reduced view of a patient.
func (s *PatientService) Summary(ctx context.Context, identity auth.Identity, patientID int64) (*domain.PatientProfile, error) {
	if err := auth.Enforce(identity, domain.RoleDoctor); err != nil {
		return nil, err
	}
	profile, err := s.load(ctx, patientID)
	if err != nil {
		return nil, err
	}
	summary := profile.Summary()
	return &summary, nil
}

// List returns every patient profile.
func (s *PatientService) List(ctx context.Context) ([]domain.PatientProfile, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, storeError("list patients", err)
	}
	return patients, nil
}

// ListWithHistory returns every patient profile with its history entries.
func (s *PatientService) ListWithHistory(ctx context.Context) ([]domain.PatientWithHistory, error) {
	patients, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.PatientWithHistory, 0, len(patients))
	for _, p := range patients {
		entries, err := s.history.FindByPatientID(ctx, p.UserID)
		if err != nil {
			return nil, storeError("list medical history", err)
		}
		result = append(result, domain.PatientWithHistory{PatientProfile: p, MedicalHistory: entries})
	}
	return result, nil
}

func (s *PatientService) ownProfile(ctx context.Context, identity auth.Identity) (*domain.PatientProfile, error) {
	if err := auth.Enforce(identity, domain.RolePatient); err != nil {
		return nil, err
	}
	profile, err := s.load(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckOwnership(identity, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *PatientService) load(ctx context.Context, userID int64) (*domain.PatientProfile, error) {
	profile, err := s.patients.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "patient", userID)
	}
	return profile, nil
}
