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

const revisitColumns = `
	id, patient_id, diagnosis, treatment, other_info,
	treated_by_staff_id AS "treated_by.staff_id",
	treated_by_staff_name AS "treated_by.staff_name",
	treated_by_phc_name AS "treated_by.phc_name",
	treated_by_subcenter_name AS "treated_by.subcenter_name",
	created_at, updated_at`

type revisitRepository struct {
	db *sqlx.DB
}

func NewRevisitRepository(db *sqlx.DB) repository.RevisitRepository {
	return &revisitRepository{db: db}
}

func (r *revisitRepository) Create(ctx context.Context, revisit *model.Revisit) error {
	query := `
		INSERT INTO revisits (
			id, patient_id, diagnosis, treatment, other_info,
			treated_by_staff_id, treated_by_staff_name,
			treated_by_phc_name, treated_by_subcenter_name,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	revisit.CreatedAt = time.Now()
	revisit.UpdatedAt = revisit.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		revisit.ID,
		revisit.PatientID,
		revisit.Diagnosis,
		revisit.Treatment,
		revisit.OtherInfo,
		revisit.TreatedBy.StaffID,
		revisit.TreatedBy.StaffName,
		revisit.TreatedBy.PHCName,
		revisit.TreatedBy.SubcenterName,
		revisit.CreatedAt,
		revisit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create revisit: %w", err)
	}
	return nil
}

func (r *revisitRepository) Get(ctx context.Context, patientID, revisitID uuid.UUID) (*model.Revisit, error) {
	query := `SELECT` + revisitColumns + ` FROM revisits WHERE id = $1 AND patient_id = $2`
	var revisit model.Revisit
	if err := r.db.GetContext(ctx, &revisit, query, revisitID, patientID); err != nil {
		return nil, fmt.Errorf("failed to get revisit: %w", err)
	}
	return &revisit, nil
}

func (r *revisitRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Revisit, error) {
	query := `SELECT` + revisitColumns + ` FROM revisits WHERE patient_id = $1 ORDER BY created_at DESC`
	var revisits []*model.Revisit
	if err := r.db.SelectContext(ctx, &revisits, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list revisits: %w", err)
	}
	return revisits, nil
}

func (r *revisitRepository) ListAll(ctx context.Context) ([]*model.Revisit, error) {
	query := `SELECT` + revisitColumns + ` FROM revisits ORDER BY created_at DESC`
	var revisits []*model.Revisit
	if err := r.db.SelectContext(ctx, &revisits, query); err != nil {
		return nil, fmt.Errorf("failed to list all revisits: %w", err)
	}
	return revisits, nil
}

func (r *revisitRepository) Update(ctx context.Context, revisit *model.Revisit) error {
	query := `
		UPDATE revisits
		SET diagnosis = $3, treatment = $4, other_info = $5, updated_at = $6
		WHERE id = $1 AND patient_id = $2
	`
	revisit.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		revisit.ID,
		revisit.PatientID,
		revisit.Diagnosis,
		revisit.Treatment,
		revisit.OtherInfo,
		revisit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update revisit: %w", err)
	}
	return nil
}

func (r *revisitRepository) Delete(ctx context.Context, patientID, revisitID uuid.UUID) error {
	query := `DELETE FROM revisits WHERE id = $1 AND patient_id = $2`
	_, err := r.db.ExecContext(ctx, query, revisitID, patientID)
	return err
}
