package model

import (
	"time"

	"github.com/google/uuid"
)

// Base holds the columns shared by every top-level record. CreatedAt
// is stored explicitly and is the only input to the edit/delete window
// rule; nothing is ever derived from identifier bytes.
type Base struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
