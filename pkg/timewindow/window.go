// Package timewindow implements the edit/delete eligibility window
// applied to patient and revisit mutations.
package timewindow

import (
	"time"

	apperrors "github.com/swasthya/subcenter-api/pkg/errors"
)

// Op identifies a mutating operation subject to the window policy.
type Op int

const (
	PatientEdit Op = iota
	PatientDelete
	RevisitEdit
	RevisitDelete
)

func (o Op) String() string {
	switch o {
	case PatientEdit:
		return "patient edit"
	case PatientDelete:
		return "patient delete"
	case RevisitEdit:
		return "revisit edit"
	case RevisitDelete:
		return "revisit delete"
	default:
		return "unknown"
	}
}

// DefaultWindow is how long a record stays mutable after creation.
const DefaultWindow = 48 * time.Hour

// gated is the explicit policy table. Patient edits are deliberately
// ungated while patient deletes and all revisit mutations are gated;
// the asymmetry is a product decision, not an omission.
var gated = map[Op]bool{
	PatientEdit:   false,
	PatientDelete: true,
	RevisitEdit:   true,
	RevisitDelete: true,
}

// Policy evaluates the window rule for gated operations.
type Policy struct {
	window time.Duration
}

func NewPolicy(window time.Duration) Policy {
	if window <= 0 {
		window = DefaultWindow
	}
	return Policy{window: window}
}

// Gated reports whether the operation is subject to the window rule.
func (Policy) Gated(op Op) bool {
	return gated[op]
}

// Check returns a Forbidden error when a gated operation is attempted
// strictly after the window has elapsed. A record exactly at the
// boundary is still mutable.
func (p Policy) Check(op Op, createdAt, now time.Time) error {
	if !gated[op] {
		return nil
	}
	if now.Sub(createdAt) > p.window {
		return apperrors.Forbidden("edit/delete window expired")
	}
	return nil
}
