package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/swasthya/subcenter-api/internal/model"
)

// StaffField names a uniquely-indexed staff column usable in existence
// checks.
type StaffField string

const (
	StaffFieldPhone  StaffField = "phone_number"
	StaffFieldAadhar StaffField = "aadhar_id"
	StaffFieldGmail  StaffField = "gmail"
)

type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	Get(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	GetByPhone(ctx context.Context, phone string) (*model.Staff, error)
	List(ctx context.Context) ([]*model.Staff, error)
	Update(ctx context.Context, staff *model.Staff) error
	DeleteByPhone(ctx context.Context, phone string) error
	// Exists reports whether any staff row has the given value in the
	// given field; excludeID (when non-nil) skips one row, for edits.
	Exists(ctx context.Context, field StaffField, value string, excludeID *uuid.UUID) (bool, error)
	// AnyIdentityTaken checks phone, Aadhar and Gmail in one query.
	AnyIdentityTaken(ctx context.Context, phone, aadhar, gmail string) (bool, error)
}

type AttendanceRepository interface {
	// InsertOnce appends the record unless one already exists for the
	// same staff and date; it reports whether the insert happened.
	InsertOnce(ctx context.Context, rec *model.AttendanceRecord) (bool, error)
	GetForDate(ctx context.Context, staffID uuid.UUID, date string) (*model.AttendanceRecord, error)
	// CloseSession sets the logout time and duration with a conditional
	// update guarded on an open login; it reports whether a row changed.
	CloseSession(ctx context.Context, staffID uuid.UUID, date, logoutTime string, hours, minutes int) (bool, error)
	ListByStaff(ctx context.Context, staffID uuid.UUID) ([]*model.AttendanceRecord, error)
	CountByStatus(ctx context.Context, staffID uuid.UUID, status model.AttendanceStatus) (int, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	GetByPhone(ctx context.Context, phone string) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
	ListByStaff(ctx context.Context, staffID uuid.UUID) ([]*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	PhoneInUse(ctx context.Context, phone string, excludeID *uuid.UUID) (bool, error)
	MonthlyCounts(ctx context.Context, year int) ([]*model.MonthlyPatientCount, error)
	CountByStaff(ctx context.Context) ([]*model.StaffEntryCount, error)
}

type RevisitRepository interface {
	Create(ctx context.Context, revisit *model.Revisit) error
	Get(ctx context.Context, patientID, revisitID uuid.UUID) (*model.Revisit, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Revisit, error)
	ListAll(ctx context.Context) ([]*model.Revisit, error)
	Update(ctx context.Context, revisit *model.Revisit) error
	Delete(ctx context.Context, patientID, revisitID uuid.UUID) error
}

type LocationRepository interface {
	Create(ctx context.Context, loc *model.TargetLocation) error
	List(ctx context.Context) ([]*model.TargetLocation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	LocationIDTaken(ctx context.Context, locationID string) (bool, error)
	Coordinates(ctx context.Context) ([]*model.Coordinates, error)
}

// TokenRepository is the access-token revocation list consulted by the
// auth middleware after a logout.
type TokenRepository interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
