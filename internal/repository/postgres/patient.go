package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/swasthya/subcenter-api/internal/model"
	"github.com/swasthya/subcenter-api/internal/repository"
)

const patientColumns = `
	id, first_name, last_name, age, gender, is_covid19_positive,
	phone_number, diagnosis, treatment, other_info,
	treated_by_staff_id AS "treated_by.staff_id",
	treated_by_staff_name AS "treated_by.staff_name",
	treated_by_phc_name AS "treated_by.phc_name",
	treated_by_subcenter_name AS "treated_by.subcenter_name",
	created_at, updated_at`

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, first_name, last_name, age, gender, is_covid19_positive,
			phone_number, diagnosis, treatment, other_info,
			treated_by_staff_id, treated_by_staff_name,
			treated_by_phc_name, treated_by_subcenter_name,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.FirstName,
		patient.LastName,
		patient.Age,
		patient.Gender,
		patient.IsCovid19Positive,
		patient.PhoneNumber,
		patient.Diagnosis,
		patient.Treatment,
		patient.OtherInfo,
		patient.TreatedBy.StaffID,
		patient.TreatedBy.StaffName,
		patient.TreatedBy.PHCName,
		patient.TreatedBy.SubcenterName,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT` + patientColumns + ` FROM patients WHERE id = $1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetByPhone(ctx context.Context, phone string) (*model.Patient, error) {
	query := `SELECT` + patientColumns + ` FROM patients WHERE phone_number = $1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, phone); err != nil {
		return nil, fmt.Errorf("failed to get patient by phone: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT` + patientColumns + ` FROM patients ORDER BY created_at DESC`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]*model.Patient, error) {
	query := `SELECT` + patientColumns + ` FROM patients WHERE treated_by_staff_id = $1 ORDER BY created_at DESC`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, staffID); err != nil {
		return nil, fmt.Errorf("failed to list patients by staff: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients SET
			first_name = $2, last_name = $3, age = $4, gender = $5,
			is_covid19_positive = $6, phone_number = $7, diagnosis = $8,
			treatment = $9, other_info = $10, updated_at = $11
		WHERE id = $1
	`
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.FirstName,
		patient.LastName,
		patient.Age,
		patient.Gender,
		patient.IsCovid19Positive,
		patient.PhoneNumber,
		patient.Diagnosis,
		patient.Treatment,
		patient.OtherInfo,
		patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Revisits go with the patient (ON DELETE CASCADE).
	query := `DELETE FROM patients WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *patientRepository) PhoneInUse(ctx context.Context, phone string, excludeID *uuid.UUID) (bool, error) {
	var query string
	var args []interface{}

	if excludeID != nil {
		query = `SELECT EXISTS (SELECT 1 FROM patients WHERE phone_number = $1 AND id <> $2)`
		args = []interface{}{phone, *excludeID}
	} else {
		query = `SELECT EXISTS (SELECT 1 FROM patients WHERE phone_number = $1)`
		args = []interface{}{phone}
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("failed to check patient phone: %w", err)
	}
	return exists, nil
}

func (r *patientRepository) MonthlyCounts(ctx context.Context, year int) ([]*model.MonthlyPatientCount, error) {
	query := `
		SELECT EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*)::int AS count
		FROM patients
		WHERE EXTRACT(YEAR FROM created_at) = $1
		GROUP BY month
		ORDER BY month
	`
	var counts []*model.MonthlyPatientCount
	if err := r.db.SelectContext(ctx, &counts, query, year); err != nil {
		return nil, fmt.Errorf("failed to count patients by month: %w", err)
	}
	return counts, nil
}

func (r *patientRepository) CountByStaff(ctx context.Context) ([]*model.StaffEntryCount, error) {
	query := `
		SELECT treated_by_staff_id AS staff_id,
		       treated_by_staff_name AS staff_name,
		       COUNT(*)::int AS count
		FROM patients
		GROUP BY treated_by_staff_id, treated_by_staff_name
		ORDER BY count DESC
	`
	var counts []*model.StaffEntryCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to count patients by staff: %w", err)
	}
	return counts, nil
}
