package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/swasthya/subcenter-api/internal/model"
	"github.com/swasthya/subcenter-api/internal/repository"
)

const staffColumns = `
	id, full_name, age, gender, phone_number, aadhar_id, role,
	phc_name, phc_id, subcenter_name, subcenter_id, gmail,
	password_hash, created_at, updated_at`

type staffRepository struct {
	db *sqlx.DB
}

func NewStaffRepository(db *sqlx.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	query := `
		INSERT INTO staff (
			id, full_name, age, gender, phone_number, aadhar_id, role,
			phc_name, phc_id, subcenter_name, subcenter_id, gmail,
			password_hash, created_at, updated_at
		) VALUES (
			:id, :full_name, :age, :gender, :phone_number, :aadhar_id, :role,
			:phc_name, :phc_id, :subcenter_name, :subcenter_id, :gmail,
			:password_hash, :created_at, :updated_at
		)
	`
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = staff.CreatedAt

	if _, err := r.db.NamedExecContext(ctx, query, staff); err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

func (r *staffRepository) Get(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	query := `SELECT` + staffColumns + ` FROM staff WHERE id = $1`
	var staff model.Staff
	if err := r.db.GetContext(ctx, &staff, query, id); err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) GetByPhone(ctx context.Context, phone string) (*model.Staff, error) {
	query := `SELECT` + staffColumns + ` FROM staff WHERE phone_number = $1`
	var staff model.Staff
	if err := r.db.GetContext(ctx, &staff, query, phone); err != nil {
		return nil, fmt.Errorf("failed to get staff by phone: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context) ([]*model.Staff, error) {
	query := `SELECT` + staffColumns + ` FROM staff ORDER BY created_at DESC`
	var staff []*model.Staff
	if err := r.db.SelectContext(ctx, &staff, query); err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *model.Staff) error {
	query := `
		UPDATE staff SET
			full_name = :full_name,
			age = :age,
			gender = :gender,
			phone_number = :phone_number,
			aadhar_id = :aadhar_id,
			role = :role,
			phc_name = :phc_name,
			phc_id = :phc_id,
			subcenter_name = :subcenter_name,
			subcenter_id = :subcenter_id,
			gmail = :gmail,
			password_hash = :password_hash,
			updated_at = :updated_at
		WHERE id = :id
	`
	staff.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, staff); err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
	}
	return nil
}

func (r *staffRepository) DeleteByPhone(ctx context.Context, phone string) error {
	query := `DELETE FROM staff WHERE phone_number = $1`
	_, err := r.db.ExecContext(ctx, query, phone)
	return err
}

func (r *staffRepository) Exists(ctx context.Context, field repository.StaffField, value string, excludeID *uuid.UUID) (bool, error) {
	var query string
	var args []interface{}

	// field comes from the fixed StaffField constants, never from input.
	// Gmail comparisons are case-insensitive to match the unique index.
	column := string(field)
	if field == repository.StaffFieldGmail {
		column = "lower(gmail)"
		value = strings.ToLower(value)
	}

	if excludeID != nil {
		query = fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM staff WHERE %s = $1 AND id <> $2)`, column)
		args = []interface{}{value, *excludeID}
	} else {
		query = fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM staff WHERE %s = $1)`, column)
		args = []interface{}{value}
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("failed to check staff existence: %w", err)
	}
	return exists, nil
}

func (r *staffRepository) AnyIdentityTaken(ctx context.Context, phone, aadhar, gmail string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM staff
			WHERE phone_number = $1 OR aadhar_id = $2 OR lower(gmail) = lower($3)
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, phone, aadhar, gmail); err != nil {
		return false, fmt.Errorf("failed to check staff identity: %w", err)
	}
	return exists, nil
}
