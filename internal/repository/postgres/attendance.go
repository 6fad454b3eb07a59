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

const attendanceColumns = `
	id, staff_id, date, login_time, logout_time, status, latitude,
	longitude, work_hours, work_minutes, leave_reason, created_at, updated_at`

type attendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) repository.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// InsertOnce relies on the unique (staff_id, date) index so two
// concurrent calls for the same day cannot both append a record.
func (r *attendanceRepository) InsertOnce(ctx context.Context, rec *model.AttendanceRecord) (bool, error) {
	query := `
		INSERT INTO attendance_records (
			id, staff_id, date, login_time, logout_time, status, latitude,
			longitude, work_hours, work_minutes, leave_reason, created_at, updated_at
		) VALUES (
			:id, :staff_id, :date, :login_time, :logout_time, :status, :latitude,
			:longitude, :work_hours, :work_minutes, :leave_reason, :created_at, :updated_at
		)
		ON CONFLICT (staff_id, date) DO NOTHING
	`
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt

	res, err := r.db.NamedExecContext(ctx, query, rec)
	if err != nil {
		return false, fmt.Errorf("failed to insert attendance record: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	return rows > 0, nil
}

func (r *attendanceRepository) GetForDate(ctx context.Context, staffID uuid.UUID, date string) (*model.AttendanceRecord, error) {
	query := `SELECT` + attendanceColumns + ` FROM attendance_records WHERE staff_id = $1 AND date = $2`
	var rec model.AttendanceRecord
	if err := r.db.GetContext(ctx, &rec, query, staffID, date); err != nil {
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return &rec, nil
}

// CloseSession is a single conditional update; the WHERE clause is the
// state-machine guard, so a lost race shows up as zero affected rows
// instead of a silent overwrite.
func (r *attendanceRepository) CloseSession(ctx context.Context, staffID uuid.UUID, date, logoutTime string, hours, minutes int) (bool, error) {
	query := `
		UPDATE attendance_records
		SET logout_time = $3, work_hours = $4, work_minutes = $5, updated_at = $6
		WHERE staff_id = $1 AND date = $2
		  AND login_time IS NOT NULL
		  AND logout_time IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, staffID, date, logoutTime, hours, minutes, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to close attendance session: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return rows > 0, nil
}

func (r *attendanceRepository) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]*model.AttendanceRecord, error) {
	query := `SELECT` + attendanceColumns + ` FROM attendance_records WHERE staff_id = $1 ORDER BY date DESC`
	var records []*model.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, staffID); err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return records, nil
}

func (r *attendanceRepository) CountByStatus(ctx context.Context, staffID uuid.UUID, status model.AttendanceStatus) (int, error) {
	query := `SELECT COUNT(*) FROM attendance_records WHERE staff_id = $1 AND status = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, staffID, status); err != nil {
		return 0, fmt.Errorf("failed to count attendance records: %w", err)
	}
	return count, nil
}
