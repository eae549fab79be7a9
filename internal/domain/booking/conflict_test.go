package booking

import (
	"testing"
	"time"

	"github.com/lapangankita/field-booking/internal/models"
)

func at(h, m int) time.Time {
	return time.Date(2025, time.January, 11, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	// existing booking holds [16:00, 18:00)
	bs, be := at(16, 0), at(18, 0)

	cases := []struct {
		name string
		iv   Interval
		want bool
	}{
		{"identical", Interval{at(16, 0), at(18, 0)}, true},
		{"start inside existing", Interval{at(17, 0), at(19, 0)}, true},
		{"end inside existing", Interval{at(15, 0), at(17, 0)}, true},
		{"candidate contains existing", Interval{at(15, 0), at(19, 0)}, true},
		{"existing contains candidate", Interval{at(16, 30), at(17, 30)}, true},
		{"touches at existing end", Interval{at(18, 0), at(20, 0)}, false},
		{"touches at existing start", Interval{at(14, 0), at(16, 0)}, false},
		{"fully before", Interval{at(10, 0), at(12, 0)}, false},
		{"fully after", Interval{at(20, 0), at(22, 0)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.iv.Overlaps(bs, be); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}

			// The three explicit cases must agree with the simplified
			// general test cs < be && ce > bs.
			general := tc.iv.Start.Before(be) && tc.iv.End.After(bs)
			if got := tc.iv.Overlaps(bs, be); got != general {
				t.Errorf("three-case test disagrees with cs < be && ce > bs")
			}
		})
	}
}

func TestFindConflictsReportsPairs(t *testing.T) {
	existing := []models.Booking{
		{ID: 1, StartTime: at(10, 0), EndTime: at(12, 0)},
		{ID: 2, StartTime: at(16, 0), EndTime: at(18, 0)},
	}

	candidates := []Interval{
		{at(12, 0), at(14, 0)}, // free: touches booking 1
		{at(17, 0), at(19, 0)}, // collides with booking 2
	}

	conflicts := FindConflicts(existing, candidates)
	if len(conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(conflicts))
	}

	if conflicts[0].Existing.ID != 2 {
		t.Errorf("conflict reported against booking %d, want 2", conflicts[0].Existing.ID)
	}
	if !conflicts[0].Candidate.Start.Equal(at(17, 0)) {
		t.Errorf("conflict candidate start = %v, want 17:00", conflicts[0].Candidate.Start)
	}
}

func TestFindConflictsNone(t *testing.T) {
	existing := []models.Booking{
		{ID: 1, StartTime: at(16, 0), EndTime: at(18, 0)},
	}

	if got := FindConflicts(existing, []Interval{{at(18, 0), at(20, 0)}}); len(got) != 0 {
		t.Fatalf("adjacent slot flagged as conflict: %+v", got)
	}
}
