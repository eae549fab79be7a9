package tariff

import (
	"fmt"
	"math"
	"time"
)

// Price computes the cost of booking [start, end) on the given date by
// overlaying the request against the day's tariff blocks. Times are
// "HH:MM" on a 24h clock, same calendar day.
//
// Overlap duration is truncated to whole hour-of-day boundaries, so a
// request starting at 16:30 prices the same as one starting at 16:00.
// Existing bookings were priced under this rule; keep it unless they
// are ever migrated.
//
// Returns 0 when no tariff block overlaps the request. Callers must
// treat 0 as "slot not bookable", never as free.
func (s *Schedule) Price(date time.Time, start, end string) (int, error) {
	reqStart, err := ParseClock(start)
	if err != nil {
		return 0, err
	}

	reqEnd, err := ParseClock(end)
	if err != nil {
		return 0, err
	}

	if reqEnd <= reqStart {
		return 0, fmt.Errorf("invalid range %s - %s", start, end)
	}

	entries := s.Entries(Classify(date))

	var sum float64
	for _, e := range entries {
		if reqStart >= e.End || reqEnd <= e.Start {
			continue
		}

		overlapStart := max(reqStart, e.Start)
		overlapEnd := min(reqEnd, e.End)

		overlapHours := overlapEnd/60 - overlapStart/60
		if overlapHours <= 0 {
			continue
		}

		blockHours := e.End/60 - e.Start/60
		if blockHours <= 0 {
			continue
		}

		hourlyRate := float64(e.Price) / float64(blockHours)
		sum += hourlyRate * float64(overlapHours)
	}

	return int(math.Round(sum)), nil
}

// Deposit is the upfront share of a deposit booking; the remainder is
// due on-site.
const DepositRate = 0.30

func DepositAmount(fullPrice int) int {
	return int(math.Round(float64(fullPrice) * DepositRate))
}
