package domain

// DoctorProfile is keyed by the owning user's id.
type DoctorProfile struct {
	UserID            int64
	FirstName         string
	LastName          string
	Specialty         string
	ConsultationFee   *float64
	Availability      string
	LicenseNumber     string
	Qualifications    string
	YearsOfExperience *int
}

// OwnerIDs implements auth.OwnedResource.
func (d *DoctorProfile) OwnerIDs() []int64 {
	return []int64{d.UserID}
}
