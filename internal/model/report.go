package model

import "github.com/google/uuid"

// MonthlyPatientCount is one month's intake total for the yearly chart.
type MonthlyPatientCount struct {
	Month int `db:"month" json:"month"`
	Count int `db:"count" json:"count"`
}

// StaffEntryCount is the number of patient entries attributed to one
// staff member.
type StaffEntryCount struct {
	StaffID   uuid.UUID `db:"staff_id" json:"staffId"`
	StaffName string    `db:"staff_name" json:"staffName"`
	Count     int       `db:"count" json:"count"`
}
