package model

import (
	"time"

	"github.com/google/uuid"
)

// Revisit is a follow-up clinical note attached to a patient. Its
// CreatedAt drives the edit/delete window for revisit mutations.
type Revisit struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patientId"`
	Diagnosis string    `db:"diagnosis" json:"diagnosis,omitempty"`
	Treatment string    `db:"treatment" json:"treatment,omitempty"`
	OtherInfo string    `db:"other_info" json:"otherInfo,omitempty"`
	TreatedBy TreatedBy `db:"treated_by" json:"treatedBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type RevisitRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required,phone10"`
	Diagnosis   string `json:"diagnosis"`
	Treatment   string `json:"treatment"`
	OtherInfo   string `json:"otherInfo"`
}

// UpdateRevisitRequest keeps the original's merge semantics: nil
// fields leave the stored value untouched.
type UpdateRevisitRequest struct {
	Diagnosis *string `json:"diagnosis"`
	Treatment *string `json:"treatment"`
	OtherInfo *string `json:"otherInfo"`
}
