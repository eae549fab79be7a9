package booking

import (
	"fmt"
	"time"

	"github.com/lapangankita/field-booking/internal/models"
)

// ===============================
// Conflict detection
// ===============================

// Interval is a half-open [Start, End) booking window.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the candidate interval collides with an
// existing [bs, be) window. Touching endpoints are not a collision: a
// booking ending at 18:00 does not block one starting at 18:00.
func (iv Interval) Overlaps(bs, be time.Time) bool {
	cs, ce := iv.Start, iv.End

	// candidate start falls inside existing
	if !cs.Before(bs) && cs.Before(be) {
		return true
	}

	// candidate end falls inside existing
	if ce.After(bs) && !ce.After(be) {
		return true
	}

	// candidate fully contains existing
	if !cs.After(bs) && !ce.Before(be) {
		return true
	}

	return false
}

// Conflict pairs the candidate that collided with the booking already
// holding the slot.
type Conflict struct {
	Candidate Interval       `json:"candidate"`
	Existing  models.Booking `json:"existing"`
}

// FindConflicts checks every candidate against every existing booking.
// Callers are expected to pass only active (PENDING/APPROVED) bookings.
func FindConflicts(existing []models.Booking, candidates []Interval) []Conflict {
	var conflicts []Conflict

	for _, cand := range candidates {
		for _, b := range existing {
			if cand.Overlaps(b.StartTime, b.EndTime) {
				conflicts = append(conflicts, Conflict{
					Candidate: cand,
					Existing:  b,
				})
			}
		}
	}

	return conflicts
}

// ConflictError carries the first collision so callers can tell the
// user which slot is taken.
type ConflictError struct {
	Conflict Conflict
}

func (e ConflictError) Error() string {
	return fmt.Sprintf(
		"time_conflict: %s - %s already booked",
		e.Conflict.Candidate.Start.Format("2006-01-02 15:04"),
		e.Conflict.Candidate.End.Format("15:04"),
	)
}
