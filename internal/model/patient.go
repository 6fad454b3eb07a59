package model

import "github.com/google/uuid"

// TreatedBy attributes a patient entry or revisit to the staff member
// who recorded it.
type TreatedBy struct {
	StaffID       uuid.UUID `db:"staff_id" json:"staffId"`
	StaffName     string    `db:"staff_name" json:"staffName"`
	PHCName       string    `db:"phc_name" json:"phcName"`
	SubcenterName string    `db:"subcenter_name" json:"subcenterName"`
}

// Patient is a single intake entry, identified by a unique phone
// number, owning zero or more revisits.
type Patient struct {
	Base
	FirstName         string     `db:"first_name" json:"firstName"`
	LastName          string     `db:"last_name" json:"lastName,omitempty"`
	Age               int        `db:"age" json:"age"`
	Gender            string     `db:"gender" json:"gender"`
	IsCovid19Positive bool       `db:"is_covid19_positive" json:"isCovid19Positive"`
	PhoneNumber       string     `db:"phone_number" json:"phoneNumber"`
	Diagnosis         string     `db:"diagnosis" json:"diagnosis,omitempty"`
	Treatment         string     `db:"treatment" json:"treatment,omitempty"`
	OtherInfo         string     `db:"other_info" json:"otherInfo,omitempty"`
	TreatedBy         TreatedBy  `db:"treated_by" json:"treatedBy"`
	Revisits          []*Revisit `db:"-" json:"revisits,omitempty"`
}

type PatientEntryRequest struct {
	FirstName         string `json:"firstName" binding:"required"`
	LastName          string `json:"lastName"`
	Age               int    `json:"age" binding:"required,gt=0"`
	Gender            string `json:"gender" binding:"required"`
	IsCovid19Positive bool   `json:"isCovid19Positive"`
	PhoneNumber       string `json:"phoneNumber" binding:"required,phone10"`
	Diagnosis         string `json:"diagnosis"`
	Treatment         string `json:"treatment"`
	OtherInfo         string `json:"otherInfo"`
}

// UpdatePatientRequest mirrors the original full-document edit; it is
// not subject to the time window.
type UpdatePatientRequest struct {
	FirstName         string `json:"firstName" binding:"required"`
	LastName          string `json:"lastName"`
	Age               int    `json:"age" binding:"required,gt=0"`
	Gender            string `json:"gender" binding:"required"`
	IsCovid19Positive bool   `json:"isCovid19Positive"`
	PhoneNumber       string `json:"phoneNumber" binding:"required,phone10"`
	Diagnosis         string `json:"diagnosis"`
	Treatment         string `json:"treatment"`
	OtherInfo         string `json:"otherInfo"`
}
