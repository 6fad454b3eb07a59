package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus enumerates the state of one day's record.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceOnLeave AttendanceStatus = "On Leave"
	AttendanceNA      AttendanceStatus = "NA"
)

// Date and time-of-day layouts used throughout attendance records.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// WorkDuration is the elapsed work time computed at logout.
type WorkDuration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// AttendanceRecord is one staff member's entry for one calendar date.
// The store enforces at most one record per (staff, date).
type AttendanceRecord struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	StaffID     uuid.UUID        `db:"staff_id" json:"staffId"`
	Date        string           `db:"date" json:"date"`
	LoginTime   *string          `db:"login_time" json:"loginTime,omitempty"`
	LogoutTime  *string          `db:"logout_time" json:"logoutTime,omitempty"`
	Status      AttendanceStatus `db:"status" json:"status"`
	Latitude    *float64         `db:"latitude" json:"latitude,omitempty"`
	Longitude   *float64         `db:"longitude" json:"longitude,omitempty"`
	WorkHours   *int             `db:"work_hours" json:"workHours,omitempty"`
	WorkMinutes *int             `db:"work_minutes" json:"workMinutes,omitempty"`
	LeaveReason *string          `db:"leave_reason" json:"leaveReason,omitempty"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updatedAt"`
}

// Duration returns the stored work duration, if the session is closed.
func (r *AttendanceRecord) Duration() *WorkDuration {
	if r.WorkHours == nil || r.WorkMinutes == nil {
		return nil
	}
	return &WorkDuration{Hours: *r.WorkHours, Minutes: *r.WorkMinutes}
}

type AttendanceLoginRequest struct {
	Password  string   `json:"password" binding:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// AttendanceLogoutRequest carries an optional client-computed duration.
// The server treats it as a hint only and always recomputes from the
// stored login time.
type AttendanceLogoutRequest struct {
	Password  string        `json:"password" binding:"required"`
	WorkHours *WorkDuration `json:"workHours"`
}

type LeaveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type AttendanceCountResponse struct {
	StaffID     uuid.UUID `json:"staffId"`
	PresentDays int       `json:"presentDays"`
}
