package dto

import "github.com/spec-kit/clinic-services/internal/domain"

// DoctorProfileRequest is used for both create and full update.
type DoctorProfileRequest struct {
	FirstName         string   `json:"firstName" validate:"max=100"`
	LastName          string   `json:"lastName" validate:"max=100"`
	Specialty         string   `json:"specialty" validate:"max=100"`
	ConsultationFee   *float64 `json:"consultationFee" validate:"omitempty,gte=0"`
	Availability      string   `json:"availability" validate:"max=255"`
	LicenseNumber     string   `json:"licenseNumber" validate:"max=64"`
	Qualifications    string   `json:"qualifications" validate:"max=500"`
	YearsOfExperience *int     `json:"yearsOfExperience" validate:"omitempty,gte=0,lte=80"`
}

// ToDomain builds a profile for userID; the id always comes from the caller's identity.
func (r DoctorProfileRequest) ToDomain(userID int64) domain.DoctorProfile {
	return domain.DoctorProfile{
		UserID:            userID,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Specialty:         r.Specialty,
		ConsultationFee:   r.ConsultationFee,
		Availability:      r.Availability,
		LicenseNumber:     r.LicenseNumber,
		Qualifications:    r.Qualifications,
		YearsOfExperience: r.YearsOfExperience,
	}
}

// DoctorResponse is the wire view of a doctor profile.
type DoctorResponse struct {
	UserID            int64    `json:"userId"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	Specialty         string   `json:"specialty"`
	ConsultationFee   *float64 `json:"consultationFee,omitempty"`
	Availability      string   `json:"availability,omitempty"`
	LicenseNumber     string   `json:"licenseNumber,omitempty"`
	Qualifications    string   `json:"qualifications,omitempty"`
	YearsOfExperience *int     `json:"yearsOfExperience,omitempty"`
}

func NewDoctorResponse(d *domain.DoctorProfile) DoctorResponse {
	return DoctorResponse{
		UserID:            d.UserID,
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		Specialty:         d.Specialty,
		ConsultationFee:   d.ConsultationFee,
		Availability:      d.Availability,
		LicenseNumber:     d.LicenseNumber,
		Qualifications:    d.Qualifications,
		YearsOfExperience: d.YearsOfExperience,
	}
}

func NewDoctorResponses(doctors []domain.DoctorProfile) []DoctorResponse {
	out := make([]DoctorResponse, 0, len(doctors))
	for i := range doctors {
		out = append(out, NewDoctorResponse(&doctors[i]))
	}
	return out
}
