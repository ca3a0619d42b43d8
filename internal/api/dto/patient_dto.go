package dto

import (
	"time"

	"github.com/spec-kit/clinic-services/internal/domain"
)

const dateLayout = "2006-01-02"

// PatientProfileRequest is used for create and update.
type PatientProfileRequest struct {
	FirstName             string  `json:"firstName" validate:"required,max=100"`
	LastName              string  `json:"lastName" validate:"required,max=100"`
	DateOfBirth           *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender                *string `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	ContactNumber         string  `json:"contactNumber" validate:"max=32"`
	Address               string  `json:"address" validate:"max=255"`
	BloodType             string  `json:"bloodType" validate:"max=8"`
	InsuranceProvider     string  `json:"insuranceProvider" validate:"max=100"`
	InsurancePolicyNumber string  `json:"insurancePolicyNumber" validate:"max=64"`
	// Emergency contact fields are only honoured on create; updates go through
	// the dedicated emergency-contact operation.
	EmergencyContactName   string `json:"emergencyContactName" validate:"max=100"`
	EmergencyContactNumber string `json:"emergencyContactNumber" validate:"max=32"`
}

// ToDomain builds a profile for userID. Call Validate first; dates are assumed well formed.
func (r PatientProfileRequest) ToDomain(userID int64) domain.PatientProfile {
	profile := domain.PatientProfile{
		UserID:                 userID,
		FirstName:              r.FirstName,
		LastName:               r.LastName,
		ContactNumber:          r.ContactNumber,
		Address:                r.Address,
		BloodType:              r.BloodType,
		EmergencyContactName:   r.EmergencyContactName,
		EmergencyContactNumber: r.EmergencyContactNumber,
		InsuranceProvider:      r.InsuranceProvider,
		InsurancePolicyNumber:  r.InsurancePolicyNumber,
	}
	if r.DateOfBirth != nil {
		if dob, err := time.Parse(dateLayout, *r.DateOfBirth); err == nil {
			profile.DateOfBirth = &dob
		}
	}
	if r.Gender != nil {
		gender := domain.Gender(*r.Gender)
		profile.Gender = &gender
	}
	return profile
}

// PatientResponse is the wire view of a patient profile.
type PatientResponse struct {
	UserID                 int64          `json:"userId"`
	FirstName              string         `json:"firstName"`
	LastName               string         `json:"lastName"`
	DateOfBirth            *string        `json:"dateOfBirth,omitempty"`
	Gender                 *domain.Gender `json:"gender,omitempty"`
	ContactNumber          string         `json:"contactNumber,omitempty"`
	Address                string         `json:"address,omitempty"`
	BloodType              string         `json:"bloodType,omitempty"`
	EmergencyContactName   string         `json:"emergencyContactName,omitempty"`
	EmergencyContactNumber string         `json:"emergencyContactNumber,omitempty"`
	InsuranceProvider      string         `json:"insuranceProvider,omitempty"`
	InsurancePolicyNumber  string         `json:"insurancePolicyNumber,omitempty"`
}

func NewPatientResponse(p *domain.PatientProfile) PatientResponse {
	resp := PatientResponse{
		UserID:                 p.UserID,
		FirstName:              p.FirstName,
		LastName:               p.LastName,
		Gender:                 p.Gender,
		ContactNumber:          p.ContactNumber,
		Address:                p.Address,
		BloodType:              p.BloodType,
		EmergencyContactName:   p.EmergencyContactName,
		EmergencyContactNumber: p.EmergencyContactNumber,
		InsuranceProvider:      p.InsuranceProvider,
		InsurancePolicyNumber:  p.InsurancePolicyNumber,
	}
	if p.DateOfBirth != nil {
		dob := p.DateOfBirth.Format(dateLayout)
		resp.DateOfBirth = &dob
	}
	return resp
}

func NewPatientResponses(patients []domain.PatientProfile) []PatientResponse {
	out := make([]PatientResponse, 0, len(patients))
	for i := range patients {
		out = append(out, NewPatientResponse(&patients[i]))
	}
	return out
}

// MedicalHistoryRequest adds a history entry. Accepted as JSON or form values.
type MedicalHistoryRequest struct {
	Description string `json:"description" form:"description" query:"description" validate:"required,max=2000"`
}

// MedicalHistoryResponse is the wire view of a history entry.
type MedicalHistoryResponse struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patientId"`
	Description string    `json:"description"`
	RecordedAt  time.Time `json:"recordedAt"`
}

func NewMedicalHistoryResponse(h *domain.MedicalHistory) MedicalHistoryResponse {
	return MedicalHistoryResponse{
		ID:          h.ID,
		PatientID:   h.PatientID,
		Description: h.Description,
		RecordedAt:  h.RecordedAt,
	}
}

func NewMedicalHistoryResponses(entries []domain.MedicalHistory) []MedicalHistoryResponse {
	out := make([]MedicalHistoryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, NewMedicalHistoryResponse(&entries[i]))
	}
	return out
}

// EmergencyContactRequest replaces the patient's emergency contact.
type EmergencyContactRequest struct {
	Name   string `json:"name" form:"name" query:"name" validate:"required,max=100"`
	Number string `json:"number" form:"number" query:"number" validate:"required,max=32"`
}

// PatientWithHistoryResponse bundles a profile and its history.
type PatientWithHistoryResponse struct {
	PatientResponse
	MedicalHistory []MedicalHistoryResponse `json:"medicalHistory"`
}

func NewPatientWithHistoryResponses(items []domain.PatientWithHistory) []PatientWithHistoryResponse {
	out := make([]PatientWithHistoryResponse, 0, len(items))
	for i := range items {
		out = append(out, PatientWithHistoryResponse{
			PatientResponse: NewPatientResponse(&items[i].PatientProfile),
			MedicalHistory:  NewMedicalHistoryResponses(items[i].MedicalHistory),
		})
	}
	return out
}
