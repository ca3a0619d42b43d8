package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-services/internal/domain"
)

// PatientRepository handles persistence for patient profiles keyed by user id.
type PatientRepository interface {
	FindByID(ctx context.Context, userID int64) (*domain.PatientProfile, error)
	ExistsByID(ctx context.Context, userID int64) (bool, error)
	Create(ctx context.Context, patient *domain.PatientProfile) error
	Save(ctx context.Context, patient *domain.PatientProfile) error
	List(ctx context.Context) ([]domain.PatientProfile, error)
}

type patientRepository struct {
	pool *pgxpool.Pool
}

// NewPatientRepository instantiates the repository.
func NewPatientRepository(pool *pgxpool.Pool) PatientRepository {
	return &patientRepository{pool: pool}
}

const patientColumns = `user_id, first_name, last_name, date_of_birth, gender, contact_number, address,
        blood_type, emergency_contact_name, emergency_contact_number, insurance_provider, insurance_policy_number`

func (r *patientRepository) FindByID(ctx context.Context, userID int64) (*domain.PatientProfile, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+patientColumns+` FROM patients WHERE user_id=$1`, userID)
	patient, err := scanPatient(row)
	if err != nil {
		return nil, notFound(err)
	}
	return patient, nil
}

func (r *patientRepository) ExistsByID(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM patients WHERE user_id=$1)`, userID).Scan(&exists)
	return exists, err
}

// Create inserts a new profile and returns ErrDuplicate when one already
// exists for the user.
func (r *patientRepository) Create(ctx context.Context, patient *domain.PatientProfile) error {
	const query = `
        INSERT INTO patients (` + patientColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        ON CONFLICT (user_id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		patient.UserID,
		patient.FirstName,
		patient.LastName,
		patient.DateOfBirth,
		patient.Gender,
		patient.ContactNumber,
		patient.Address,
		patient.BloodType,
		patient.EmergencyContactName,
		patient.EmergencyContactNumber,
		patient.InsuranceProvider,
		patient.InsurancePolicyNumber,
	)
	if err != nil {
		return duplicate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDuplicate
	}
	return nil
}

// Save upserts by user id.
func (r *patientRepository) Save(ctx context.Context, patient *domain.PatientProfile) error {
	const query = `
        INSERT INTO patients (` + patientColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        ON CONFLICT (user_id) DO UPDATE SET
            first_name=EXCLUDED.first_name,
            last_name=EXCLUDED.last_name,
            date_of_birth=EXCLUDED.date_of_birth,
            gender=EXCLUDED.gender,
            contact_number=EXCLUDED.contact_number,
            address=EXCLUDED.address,
            blood_type=EXCLUDED.blood_type,
            emergency_contact_name=EXCLUDED.emergency_contact_name,
            emergency_contact_number=EXCLUDED.emergency_contact_number,
            insurance_provider=EXCLUDED.insurance_provider,
            insurance_policy_number=EXCLUDED.insurance_policy_number`

	_, err := r.pool.Exec(ctx, query,
		patient.UserID,
		patient.FirstName,
		patient.LastName,
		patient.DateOfBirth,
		patient.Gender,
		patient.ContactNumber,
		patient.Address,
		patient.BloodType,
		patient.EmergencyContactName,
		patient.EmergencyContactNumber,
		patient.InsuranceProvider,
		patient.InsurancePolicyNumber,
	)
	return err
}

func (r *patientRepository) List(ctx context.Context) ([]domain.PatientProfile, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+patientColumns+` FROM patients ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PatientProfile
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *patient)
	}
	return result, rows.Err()
}

func scanPatient(row pgx.Row) (*domain.PatientProfile, error) {
	var patient domain.PatientProfile
	if err := row.Scan(
		&patient.UserID,
		&patient.FirstName,
		&patient.LastName,
		&patient.DateOfBirth,
		&patient.Gender,
		&patient.ContactNumber,
		&patient.Address,
		&patient.BloodType,
		&patient.EmergencyContactName,
		&patient.EmergencyContactNumber,
		&patient.InsuranceProvider,
		&patient.InsurancePolicyNumber,
	); err != nil {
		return nil, err
	}
	return &patient, nil
}
