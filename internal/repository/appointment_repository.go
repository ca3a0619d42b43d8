package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-services/internal/domain"
)

// AppointmentRepository handles persistence for appointments.
type AppointmentRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// Save inserts when ID is zero and updates by ID otherwise.
	Save(ctx context.Context, appointment *domain.Appointment) error
	FindByPatientID(ctx context.Context, patientID int64) ([]domain.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID int64) ([]domain.Appointment, error)
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository instantiates the repository.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

const appointmentColumns = `id, patient_id, doctor_id, appointment_time, status, notes`

func (r *appointmentRepository) FindByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id=$1`, id)
	appointment, err := scanAppointment(row)
	if err != nil {
		return nil, notFound(err)
	}
	return appointment, nil
}

func (r *appointmentRepository) Save(ctx context.Context, appointment *domain.Appointment) error {
	if appointment.ID == 0 {
		const insert = `
            INSERT INTO appointments (patient_id, doctor_id, appointment_time, status, notes)
            VALUES ($1,$2,$3,$4,$5)
            RETURNING id`
		return r.pool.QueryRow(ctx, insert,
			appointment.PatientID,
			appointment.DoctorID,
			appointment.AppointmentTime,
			appointment.Status,
			appointment.Notes,
		).Scan(&appointment.ID)
	}

	const update = `
        UPDATE appointments
        SET patient_id=$1, doctor_id=$2, appointment_time=$3, status=$4, notes=$5
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, update,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.AppointmentTime,
		appointment.Status,
		appointment.Notes,
		appointment.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, patientID int64) ([]domain.Appointment, error) {
	return r.query(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE patient_id=$1 ORDER BY appointment_time`, patientID)
}

func (r *appointmentRepository) FindByDoctorID(ctx context.Context, doctorID int64) ([]domain.Appointment, error) {
	return r.query(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE doctor_id=$1 ORDER BY appointment_time`, doctorID)
}

func (r *appointmentRepository) query(ctx context.Context, query string, args ...any) ([]domain.Appointment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *appointment)
	}
	return result, rows.Err()
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appointment domain.Appointment
	if err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.DoctorID,
		&appointment.AppointmentTime,
		&appointment.Status,
		&appointment.Notes,
	); err != nil {
		return nil, err
	}
	return &appointment, nil
}
