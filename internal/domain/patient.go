package domain

import "time"

// Gender values accepted on patient profiles.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// PatientProfile is keyed by the owning user's id.
type PatientProfile struct {
	UserID                 int64
	FirstName              string
	LastName               string
	DateOfBirth            *time.Time
	Gender                 *Gender
	ContactNumber          string
	Address                string
	BloodType              string
	EmergencyContactName   string
	EmergencyContactNumber string
	InsuranceProvider      string
	InsurancePolicyNumber  string
}

// OwnerIDs implements auth.OwnedResource.
func (p *PatientProfile) OwnerIDs() []int64 {
	return []int64{p.UserID}
}

// Summary returns the reduced view doctors are allowed to read.
func (p *PatientProfile) Summary() PatientProfile {
	return PatientProfile{
		UserID:                 p.UserID,
		FirstName:              p.FirstName,
		LastName:               p.LastName,
		BloodType:              p.BloodType,
		EmergencyContactName:   p.EmergencyContactName,
		EmergencyContactNumber: p.EmergencyContactNumber,
	}
}

// MedicalHistory is a free-text entry recorded against a patient.
type MedicalHistory struct {
	ID          int64
	PatientID   int64
	Description string
	RecordedAt  time.Time
}

// PatientWithHistory bundles a profile with its history entries.
type PatientWithHistory struct {
	PatientProfile
	MedicalHistory []MedicalHistory
}
