package attendance

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasthya/subcenter-api/internal/email"
	"github.com/swasthya/subcenter-api/internal/model"
	"github.com/swasthya/subcenter-api/internal/repository"
	apperrors "github.com/swasthya/subcenter-api/pkg/errors"
	"github.com/swasthya/subcenter-api/pkg/logger"
)

type fakeStaffRepo struct {
	byID map[uuid.UUID]*model.Staff
}

func (r *fakeStaffRepo) Create(_ context.Context, staff *model.Staff) error {
	r.byID[staff.ID] = staff
	return nil
}

func (r *fakeStaffRepo) Get(_ context.Context, id uuid.UUID) (*model.Staff, error) {
	staff, ok := r.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return staff, nil
}

func (r *fakeStaffRepo) GetByPhone(_ context.Context, phone string) (*model.Staff, error) {
	for _, s := range r.byID {
		if s.PhoneNumber == phone {
			return s, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeStaffRepo) List(context.Context) ([]*model.Staff, error) { return nil, nil }

func (r *fakeStaffRepo) Update(_ context.Context, staff *model.Staff) error {
	r.byID[staff.ID] = staff
	return nil
}

func (r *fakeStaffRepo) DeleteByPhone(context.Context, string) error { return nil }

func (r *fakeStaffRepo) Exists(context.Context, repository.StaffField, string, *uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeStaffRepo) AnyIdentityTaken(context.Context, string, string, string) (bool, error) {
	return false, nil
}

type fakeAttendanceRepo struct {
	records map[string]*model.AttendanceRecord
}

func key(staffID uuid.UUID, date string) string { return staffID.String() + "|" + date }

func (r *fakeAttendanceRepo) InsertOnce(_ context.Context, rec *model.AttendanceRecord) (bool, error) {
	k := key(rec.StaffID, rec.Date)
	if _, exists := r.records[k]; exists {
		return false, nil
	}
	clone := *rec
	r.records[k] = &clone
	return true, nil
}

func (r *fakeAttendanceRepo) GetForDate(_ context.Context, staffID uuid.UUID, date string) (*model.AttendanceRecord, error) {
	rec, ok := r.records[key(staffID, date)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *rec
	return &clone, nil
}

func (r *fakeAttendanceRepo) CloseSession(_ context.Context, staffID uuid.UUID, date, logoutTime string, hours, minutes int) (bool, error) {
	rec, ok := r.records[key(staffID, date)]
	if !ok || rec.LoginTime == nil || rec.LogoutTime != nil {
		return false, nil
	}
	rec.LogoutTime = &logoutTime
	rec.WorkHours = &hours
	rec.WorkMinutes = &minutes
	return true, nil
}

func (r *fakeAttendanceRepo) ListByStaff(_ context.Context, staffID uuid.UUID) ([]*model.AttendanceRecord, error) {
	var out []*model.AttendanceRecord
	for _, rec := range r.records {
		if rec.StaffID == staffID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) CountByStatus(_ context.Context, staffID uuid.UUID, status model.AttendanceStatus) (int, error) {
	count := 0
	for _, rec := range r.records {
		if rec.StaffID == staffID && rec.Status == status {
			count++
		}
	}
	return count, nil
}

type fixedCoords struct {
	coords []*model.Coordinates
}

func (f fixedCoords) Coordinates(context.Context) ([]*model.Coordinates, error) {
	return f.coords, nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "h:" + password, nil }

func (plainHasher) Compare(hashed, password string) error {
	if hashed != "h:"+password {
		return assert.AnError
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
}

func newTestService(t *testing.T, cfg Config, coords []*model.Coordinates) (*Service, uuid.UUID) {
	t.Helper()

	staffID := uuid.New()
	staffRepo := &fakeStaffRepo{byID: map[uuid.UUID]*model.Staff{
		staffID: {
			Base:         model.Base{ID: staffID},
			FullName:     "Asha Kumari",
			PhoneNumber:  "9876543210",
			PasswordHash: "h:secret123",
		},
	}}
	recordRepo := &fakeAttendanceRepo{records: make(map[string]*model.AttendanceRecord)}

	svc := NewService(staffRepo, recordRepo, fixedCoords{coords: coords}, plainHasher{}, email.NewNoop(), cfg, testLogger())
	return svc, staffID
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", value)
	require.NoError(t, err)
	return ts
}

func TestLoginCreatesPresentRecord(t *testing.T) {
	svc, staffID := newTestService(t, Config{}, nil)
	svc.now = func() time.Time { return at(t, "2026-03-02 09:00:00") }

	rec, err := svc.Login(context.Background(), staffID, &model.AttendanceLoginRequest{Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, model.AttendancePresent, rec.Status)
	assert.Equal(t, "2026-03-02", rec.Date)
	require.NotNil(t, rec.LoginTime)
	assert.Equal(t, "09:00:00", *rec.LoginTime)
	assert.Nil(t, rec.LogoutTime)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, staffID := newTestService(t, Config{}, nil)

	_, err := svc.Login(context.Background(), staffID, &model.AttendanceLoginRequest{Password: "wrong-password"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}

func TestLoginTwiceSameDayConflicts(t *testing.T) {
	svc, staffID := newTestService(t, Config{}, nil)
	svc.now = func() time.Time { return at(t, "2026-03-02 09:00:00") }

	_, err := svc.Login(context.Background(), staffID, &model.AttendanceLoginRequest{Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), staffID, &model.AttendanceLoginRequest{Password: "secret123"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestLoginAllowedNextDay(t *testing.T) {
	svc, staffID := newTestService(t, Config{}, nil)

	svc.now = func() time.Time { return at(t, "2026-03-02 09:00:00") }
	_, err := svc.Login(context.Background(), staffID, &model.AttendanceLoginRequest{Password: "secret123"})
	require.NoError(t, err)

	svc.now = func() time.Time { return at(t, "2026-03-03 09:05:00") }
	_, err = svc.Login(context.Background(), staffID, &model.AttendanceLoginRequest{Password: "secret123"})
	require.NoError(t, err)
}

func TestLogoutWithoutLoginConflicts(t *testing.T) {
	svc, staffID := newTestService(t, Config{}, nil)
	svc.now = func() time.Time { return at(t, "2026-03-02 17:00:00") }

	_, err := svc.Logout(context.Background(), staffID, &model.AttendanceLogoutRequest{Password: "secret123"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
	assert.Contains(t, err.Error(), "haven't logged in")
}

func TestLogoutComputesDurationServerSide(t *testing.T) {
	svc, staffID := newTestService(t, Config{}, nil)

	svc.now = func() time.Time { return at(t, "2026-03-02 09:00:00") }
	_, err := svc.Login(context.Background(), staffID, &model.AttendanceLoginRequest{Password: "secret123"})
	require.NoError(t, err)

	svc.now = func() time.Time { return at(t, "2026-03-02 17:30:00") }
	// The client hint disagrees with the stored login time and must be
	// ignored.
	hint := &model.WorkDuration{Hours: 1, Minutes: 0}
	rec, err := svc.Logout(context.Background(), staffID, &model.AttendanceLogoutRequest{Password: "secret123", WorkHours: hint})
	require.NoError(t, err)

	require.NotNil(t, rec.WorkHours)
	require.NotNil(t, rec.WorkMinutes)
	assert.Equal(t, 8, *rec.WorkHours)
	assert.Equal(t, 30, *rec.WorkMinutes)
	require.NotNil(t, rec.LogoutTime)
	assert.Equal(t, "17:30:00", *rec.LogoutTime)
}

func TestLogoutTwiceConflicts(t *testing.T) {
	svc, staffID := newTestService(t, Config{}, nil)

	svc.now = func() time.Time { return at(t, "2026-03-02 09:00:00") }
	_, err := svc.Login(context.Background(), staffID, &model.AttendanceLoginRequest{Password: "secret123"})
	require.NoError(t, err)

	svc.now = func() time.Time { return at(t, "2026-03-02 17:00:00") }
	_, err = svc.Logout(context.Background(), staffID, &model.AttendanceLogoutRequest{Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Logout(context.Background(), staffID, &model.AttendanceLogoutRequest{Password: "secret123"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
	assert.Contains(t, err.Error(), "already logged out")
}

func TestLeaveBlocksLoginForTheDay(t *testing.T) {
	svc, staffID := newTestService(t, Config{}, nil)
	svc.now = func() time.Time { return at(t, "2026-03-02 08:00:00") }

	rec, err := svc.RequestLeave(context.Background(), staffID, "medical appointment")
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceOnLeave, rec.Status)
	require.NotNil(t, rec.LeaveReason)
	assert.Equal(t, "medical appointment", *rec.LeaveReason)

	_, err = svc.Login(context.Background(), staffID, &model.AttendanceLoginRequest{Password: "secret123"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestPresentCountExcludesLeaveDays(t *testing.T) {
	svc, staffID := newTestService(t, Config{}, nil)

	days := []string{"2026-03-02 09:00:00", "2026-03-03 09:00:00", "2026-03-04 09:00:00"}
	for _, d := range days {
		d := d
		svc.now = func() time.Time { return at(t, d) }
		_, err := svc.Login(context.Background(), staffID, &model.AttendanceLoginRequest{Password: "secret123"})
		require.NoError(t, err)
	}

	svc.now = func() time.Time { return at(t, "2026-03-05 09:00:00") }
	_, err := svc.RequestLeave(context.Background(), staffID, "family function")
	require.NoError(t, err)

	count, err := svc.PresentCount(context.Background(), staffID)
	require.NoError(t, err)
	assert.Equal(t, 3, count.PresentDays)
	assert.Equal(t, staffID, count.StaffID)
}

func TestGeofenceRejectsFarLogin(t *testing.T) {
	// Target is Bangalore; the caller reports Mumbai.
	targets := []*model.Coordinates{{Latitude: 12.9716, Longitude: 77.5946}}
	svc, staffID := newTestService(t, Config{GeofenceRadiusMeters: 500}, targets)

	lat, lng := 19.0760, 72.8777
	_, err := svc.Login(context.Background(), staffID, &model.AttendanceLoginRequest{
		Password: "secret123",
		Latitude: &lat, Longitude: &lng,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrForbidden))
}

func TestGeofenceAcceptsNearbyLogin(t *testing.T) {
	targets := []*model.Coordinates{{Latitude: 12.9716, Longitude: 77.5946}}
	svc, staffID := newTestService(t, Config{GeofenceRadiusMeters: 500}, targets)

	// Roughly 100 m north of the target.
	lat, lng := 12.9725, 77.5946
	_, err := svc.Login(context.Background(), staffID, &model.AttendanceLoginRequest{
		Password: "secret123",
		Latitude: &lat, Longitude: &lng,
	})
	require.NoError(t, err)
}

func TestGeofenceSkippedWithoutCoordinates(t *testing.T) {
	targets := []*model.Coordinates{{Latitude: 12.9716, Longitude: 77.5946}}
	svc, staffID := newTestService(t, Config{GeofenceRadiusMeters: 500}, targets)

	_, err := svc.Login(context.Background(), staffID, &model.AttendanceLoginRequest{Password: "secret123"})
	require.NoError(t, err)
}

func TestComputeDuration(t *testing.T) {
	tests := []struct {
		name    string
		login   string
		logout  string
		hours   int
		minutes int
	}{
		{"full day", "09:00:00", "17:30:00", 8, 30},
		{"under an hour", "09:00:00", "09:45:00", 0, 45},
		{"same instant", "09:00:00", "09:00:00", 0, 0},
		{"clock skew clamps to zero", "17:00:00", "09:00:00", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dur, err := ComputeDuration(tt.login, tt.logout)
			require.NoError(t, err)
			assert.Equal(t, tt.hours, dur.Hours)
			assert.Equal(t, tt.minutes, dur.Minutes)
		})
	}
}

func TestComputeDurationRejectsBadInput(t *testing.T) {
	_, err := ComputeDuration("nine o'clock", "17:00:00")
	assert.Error(t, err)
}
