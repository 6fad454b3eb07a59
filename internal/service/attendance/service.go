package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/swasthya/subcenter-api/internal/email"
	"github.com/swasthya/subcenter-api/internal/model"
	"github.com/swasthya/subcenter-api/internal/repository"
	apperrors "github.com/swasthya/subcenter-api/pkg/errors"
	"github.com/swasthya/subcenter-api/pkg/geo"
	"github.com/swasthya/subcenter-api/pkg/logger"
	"github.com/swasthya/subcenter-api/pkg/security"
)

type AttendanceService interface {
	Login(ctx context.Context, staffID uuid.UUID, req *model.AttendanceLoginRequest) (*model.AttendanceRecord, error)
	Logout(ctx context.Context, staffID uuid.UUID, req *model.AttendanceLogoutRequest) (*model.AttendanceRecord, error)
	RequestLeave(ctx context.Context, staffID uuid.UUID, reason string) (*model.AttendanceRecord, error)
	History(ctx context.Context, staffID uuid.UUID) ([]*model.AttendanceRecord, error)
	PresentCount(ctx context.Context, staffID uuid.UUID) (*model.AttendanceCountResponse, error)
}

// CoordinateSource yields the geofence targets. Satisfied by the
// location service so attendance reads go through its cache.
type CoordinateSource interface {
	Coordinates(ctx context.Context) ([]*model.Coordinates, error)
}

// Config carries the attendance-specific settings.
type Config struct {
	// GeofenceRadiusMeters bounds how far from a target location a
	// login may be marked. Zero disables the geofence.
	GeofenceRadiusMeters float64 `mapstructure:"geofence_radius_meters"`
	// SupervisorEmail receives leave notices when set.
	SupervisorEmail string `mapstructure:"supervisor_email"`
}

type Service struct {
	staffRepo  repository.StaffRepository
	recordRepo repository.AttendanceRepository
	coords     CoordinateSource
	hasher     security.PasswordHasher
	mailer     email.Service
	cfg        Config
	log        *logger.Logger
	now        func() time.Time
}

func NewService(
	staffRepo repository.StaffRepository,
	recordRepo repository.AttendanceRepository,
	coords CoordinateSource,
	hasher security.PasswordHasher,
	mailer email.Service,
	cfg Config,
	log *logger.Logger,
) *Service {
	return &Service{
		staffRepo:  staffRepo,
		recordRepo: recordRepo,
		coords:     coords,
		hasher:     hasher,
		mailer:     mailer,
		cfg:        cfg,
		log:        log,
		now:        time.Now,
	}
}

// authenticate re-validates the caller's password against the stored
// hash on every attendance call; the session token alone is not
// trusted for attendance mutations.
func (s *Service) authenticate(ctx context.Context, staffID uuid.UUID, password string) (*model.Staff, error) {
	staff, err := s.staffRepo.Get(ctx, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("staff", err)
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.hasher.Compare(staff.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized("invalid password")
	}
	return staff, nil
}

func (s *Service) Login(ctx context.Context, staffID uuid.UUID, req *model.AttendanceLoginRequest) (*model.AttendanceRecord, error) {
	if _, err := s.authenticate(ctx, staffID, req.Password); err != nil {
		return nil, err
	}

	if err := s.checkGeofence(ctx, req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	now := s.now()
	loginTime := now.Format(model.TimeLayout)
	rec := &model.AttendanceRecord{
		ID:        uuid.New(),
		StaffID:   staffID,
		Date:      now.Format(model.DateLayout),
		LoginTime: &loginTime,
		Status:    model.AttendancePresent,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	inserted, err := s.recordRepo.InsertOnce(ctx, rec)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !inserted {
		return nil, apperrors.Conflict("attendance already marked for today")
	}
	return rec, nil
}

func (s *Service) Logout(ctx context.Context, staffID uuid.UUID, req *model.AttendanceLogoutRequest) (*model.AttendanceRecord, error) {
	if _, err := s.authenticate(ctx, staffID, req.Password); err != nil {
		return nil, err
	}

	now := s.now()
	date := now.Format(model.DateLayout)

	rec, err := s.recordRepo.GetForDate(ctx, staffID, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Conflict("you haven't logged in today")
		}
		return nil, apperrors.Internal(err)
	}

	if rec.LoginTime == nil {
		return nil, apperrors.Conflict("you haven't logged in today")
	}
	if rec.LogoutTime != nil {
		return nil, apperrors.Conflict("you have already logged out for today")
	}

	logoutTime := now.Format(model.TimeLayout)
	dur, err := ComputeDuration(*rec.LoginTime, logoutTime)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	// A client-supplied duration is only a hint; the stored value is
	// always the server's computation.
	if req.WorkHours != nil && *req.WorkHours != dur {
		s.log.WithFields(map[string]interface{}{
			"staff_id": staffID.String(),
			"client":   fmt.Sprintf("%dh%dm", req.WorkHours.Hours, req.WorkHours.Minutes),
			"server":   fmt.Sprintf("%dh%dm", dur.Hours, dur.Minutes),
		}).Warn("client work duration ignored")
	}

	closed, err := s.recordRepo.CloseSession(ctx, staffID, date, logoutTime, dur.Hours, dur.Minutes)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !closed {
		// Lost a race against another logout for the same day.
		return nil, apperrors.Conflict("you have already logged out for today")
	}

	rec.LogoutTime = &logoutTime
	rec.WorkHours = &dur.Hours
	rec.WorkMinutes = &dur.Minutes
	return rec, nil
}

func (s *Service) RequestLeave(ctx context.Context, staffID uuid.UUID, reason string) (*model.AttendanceRecord, error) {
	staff, err := s.staffRepo.Get(ctx, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("staff", err)
		}
		return nil, apperrors.Internal(err)
	}

	now := s.now()
	rec := &model.AttendanceRecord{
		ID:          uuid.New(),
		StaffID:     staffID,
		Date:        now.Format(model.DateLayout),
		Status:      model.AttendanceOnLeave,
		LeaveReason: &reason,
	}

	inserted, err := s.recordRepo.InsertOnce(ctx, rec)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !inserted {
		return nil, apperrors.Conflict("attendance already marked for today")
	}

	if s.cfg.SupervisorEmail != "" {
		if err := s.mailer.SendLeaveNotice(ctx, s.cfg.SupervisorEmail, staff.FullName, rec.Date, reason); err != nil {
			s.log.Error(err, "failed to send leave notice")
		}
	}
	return rec, nil
}

func (s *Service) History(ctx context.Context, staffID uuid.UUID) ([]*model.AttendanceRecord, error) {
	if _, err := s.staffRepo.Get(ctx, staffID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("staff", err)
		}
		return nil, apperrors.Internal(err)
	}

	records, err := s.recordRepo.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return records, nil
}

// PresentCount counts only records whose status is exactly Present;
// leave and absent days are excluded.
func (s *Service) PresentCount(ctx context.Context, staffID uuid.UUID) (*model.AttendanceCountResponse, error) {
	if _, err := s.staffRepo.Get(ctx, staffID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("staff", err)
		}
		return nil, apperrors.Internal(err)
	}

	count, err := s.recordRepo.CountByStatus(ctx, staffID, model.AttendancePresent)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.AttendanceCountResponse{
		StaffID:     staffID,
		PresentDays: count,
	}, nil
}

// checkGeofence passes when no coordinates were sent or no targets are
// configured, mirroring the lenient behavior of the original client.
func (s *Service) checkGeofence(ctx context.Context, lat, lng *float64) error {
	if s.cfg.GeofenceRadiusMeters <= 0 || lat == nil || lng == nil {
		return nil
	}

	coords, err := s.coords.Coordinates(ctx)
	if err != nil {
		return apperrors.Internal(err)
	}
	if len(coords) == 0 {
		return nil
	}

	targets := make([]geo.Point, 0, len(coords))
	for _, c := range coords {
		targets = append(targets, geo.Point{Latitude: c.Latitude, Longitude: c.Longitude})
	}

	here := geo.Point{Latitude: *lat, Longitude: *lng}
	if !geo.WithinRadius(here, targets, s.cfg.GeofenceRadiusMeters) {
		return apperrors.Forbidden("outside the permitted attendance area")
	}
	return nil
}

// ComputeDuration returns the minute-level difference between two
// time-of-day values on the same calendar date.
func ComputeDuration(loginTime, logoutTime string) (model.WorkDuration, error) {
	in, err := time.Parse(model.TimeLayout, loginTime)
	if err != nil {
		return model.WorkDuration{}, fmt.Errorf("bad login time %q: %w", loginTime, err)
	}
	out, err := time.Parse(model.TimeLayout, logoutTime)
	if err != nil {
		return model.WorkDuration{}, fmt.Errorf("bad logout time %q: %w", logoutTime, err)
	}

	minutes := int(out.Sub(in).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return model.WorkDuration{
		Hours:   minutes / 60,
		Minutes: minutes % 60,
	}, nil
}
