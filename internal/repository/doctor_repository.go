package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-services/internal/domain"
)

// DoctorRepository handles persistence for doctor profiles keyed by user id.
type DoctorRepository interface {
	FindByID(ctx context.Context, userID int64) (*domain.DoctorProfile, error)
	ExistsByID(ctx context.Context, userID int64) (bool, error)
	Create(ctx context.Context, doctor *domain.DoctorProfile) error
	Save(ctx context.Context, doctor *domain.DoctorProfile) error
	List(ctx context.Context) ([]domain.DoctorProfile, error)
	FindBySpecialty(ctx context.Context, specialty string) ([]domain.DoctorProfile, error)
}

type doctorRepository struct {
	pool *pgxpool.Pool
}

// NewDoctorRepository instantiates the repository.
func NewDoctorRepository(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepository{pool: pool}
}

const doctorColumns = `user_id, first_name, last_name, specialty, consultation_fee, availability,
        license_number, qualifications, years_of_experience`

func (r *doctorRepository) FindByID(ctx context.Context, userID int64) (*domain.DoctorProfile, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE user_id=$1`, userID)
	doctor, err := scanDoctor(row)
	if err != nil {
		return nil, notFound(err)
	}
	return doctor, nil
}

func (r *doctorRepository) ExistsByID(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM doctors WHERE user_id=$1)`, userID).Scan(&exists)
	return exists, err
}

// Create inserts a new profile and returns ErrDuplicate when one already
// exists for the user.
func (r *doctorRepository) Create(ctx context.Context, doctor *domain.DoctorProfile) error {
	const query = `
        INSERT INTO doctors (` + doctorColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (user_id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		doctor.UserID,
		doctor.FirstName,
		doctor.LastName,
		doctor.Specialty,
		doctor.ConsultationFee,
		doctor.Availability,
		doctor.LicenseNumber,
		doctor.Qualifications,
		doctor.YearsOfExperience,
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
func (r *doctorRepository) Save(ctx context.Context, doctor *domain.DoctorProfile) error {
	const query = `
        INSERT INTO doctors (` + doctorColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (user_id) DO UPDATE SET
            first_name=EXCLUDED.first_name,
            last_name=EXCLUDED.last_name,
            specialty=EXCLUDED.specialty,
            consultation_fee=EXCLUDED.consultation_fee,
            availability=EXCLUDED.availability,
            license_number=EXCLUDED.license_number,
            qualifications=EXCLUDED.qualifications,
            years_of_experience=EXCLUDED.years_of_experience`

	_, err := r.pool.Exec(ctx, query,
		doctor.UserID,
		doctor.FirstName,
		doctor.LastName,
		doctor.Specialty,
		doctor.ConsultationFee,
		doctor.Availability,
		doctor.LicenseNumber,
		doctor.Qualifications,
		doctor.YearsOfExperience,
	)
	return err
}

func (r *doctorRepository) List(ctx context.Context) ([]domain.DoctorProfile, error) {
	return r.query(ctx, `SELECT `+doctorColumns+` FROM doctors ORDER BY user_id`)
}

func (r *doctorRepository) FindBySpecialty(ctx context.Context, specialty string) ([]domain.DoctorProfile, error) {
	return r.query(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE specialty=$1 ORDER BY user_id`, specialty)
}

func (r *doctorRepository) query(ctx context.Context, query string, args ...any) ([]domain.DoctorProfile, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DoctorProfile
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *doctor)
	}
	return result, rows.Err()
}

func scanDoctor(row pgx.Row) (*domain.DoctorProfile, error) {
	var doctor domain.DoctorProfile
	if err := row.Scan(
		&doctor.UserID,
		&doctor.FirstName,
		&doctor.LastName,
		&doctor.Specialty,
		&doctor.ConsultationFee,
		&doctor.Availability,
		&doctor.LicenseNumber,
		&doctor.Qualifications,
		&doctor.YearsOfExperience,
	); err != nil {
		return nil, err
	}
	return &doctor, nil
}
