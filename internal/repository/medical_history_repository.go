package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-services/internal/domain"
)

// MedicalHistoryRepository stores history entries for patients.
type MedicalHistoryRepository interface {
	Create(ctx context.Context, entry *domain.MedicalHistory) error
	FindByPatientID(ctx context.Context, patientID int64) ([]domain.MedicalHistory, error)
}

type medicalHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewMedicalHistoryRepository instantiates the repository.
func NewMedicalHistoryRepository(pool *pgxpool.Pool) MedicalHistoryRepository {
	return &medicalHistoryRepository{pool: pool}
}

func (r *medicalHistoryRepository) Create(ctx context.Context, entry *domain.MedicalHistory) error {
	const query = `
        INSERT INTO medical_history (patient_id, description, recorded_at)
        VALUES ($1, $2, $3)
        RETURNING id`

	return r.pool.QueryRow(ctx, query, entry.PatientID, entry.Description, entry.RecordedAt).Scan(&entry.ID)
}

func (r *medicalHistoryRepository) FindByPatientID(ctx context.Context, patientID int64) ([]domain.MedicalHistory, error) {
	const query = `
        SELECT id, patient_id, description, recorded_at
        FROM medical_history WHERE patient_id=$1 ORDER BY recorded_at, id`

	rows, err := r.pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MedicalHistory
	for rows.Next() {
		var entry domain.MedicalHistory
		if err := rows.Scan(&entry.ID, &entry.PatientID, &entry.Description, &entry.RecordedAt); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
