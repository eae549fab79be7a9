package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lapangankita/field-booking/internal/audit"
	domain "github.com/lapangankita/field-booking/internal/domain/booking"
	"github.com/lapangankita/field-booking/internal/httperr"
	"github.com/lapangankita/field-booking/internal/models"
	"github.com/lapangankita/field-booking/internal/tariff"
	"github.com/lapangankita/field-booking/internal/timezone"
)

func testSchedule(t *testing.T) *tariff.Schedule {
	t.Helper()

	s, err := tariff.Parse([]byte(`{
		"Sabtu": [
			{ "jam": "16.00 - 18.00", "harga": 300000 },
			{ "jam": "18.00 - 23.00", "harga": 950000 }
		]
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

func nopDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil))
}

// nextSaturday returns the next Saturday strictly after today, so
// afternoon slots on it are always in the future.
func nextSaturday() string {
	d := timezone.Now().AddDate(0, 0, 1)
	for d.Weekday() != time.Saturday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func seedActive(repo *fakeRepo, date string, startHM, endHM string, status domain.Status) {
	loc := timezone.Location("")
	day, _ := time.ParseInLocation("2006-01-02", date, loc)

	startMin, _ := tariff.ParseClock(startHM)
	endMin, _ := tariff.ParseClock(endHM)

	repo.seed(&models.Booking{
		UserID:    99,
		FieldID:   1,
		Date:      date,
		StartTime: day.Add(time.Duration(startMin) * time.Minute),
		EndTime:   day.Add(time.Duration(endMin) * time.Minute),
		Status:    string(status),
	})
}

func createInput(date string, slots ...Slot) CreateBookingInput {
	return CreateBookingInput{
		UserID:      7,
		FieldID:     1,
		Date:        date,
		Slots:       slots,
		PaymentType: "FULL",
		TeamName:    "Garuda FC",
		Contact:     "081234567890",
	}
}

func TestCreateFullPayment(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, testSchedule(t), nopDispatcher())

	result, err := uc.Execute(context.Background(), createInput(nextSaturday(), Slot{"16:00", "18:00"}))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.TotalAmount != 300000 {
		t.Errorf("TotalAmount = %d, want 300000", result.TotalAmount)
	}
	if result.AmountPaid != 300000 {
		t.Errorf("AmountPaid = %d, want 300000", result.AmountPaid)
	}
	if result.AmountDue != 0 {
		t.Errorf("AmountDue = %d, want 0", result.AmountDue)
	}

	if len(result.Bookings) != 1 {
		t.Fatalf("got %d bookings, want 1", len(result.Bookings))
	}

	b := result.Bookings[0]
	if b.Status != string(domain.StatusPending) {
		t.Errorf("status = %s, want PENDING", b.Status)
	}
	if b.AmountPaid != 300000 {
		t.Errorf("booking amount = %d, want 300000", b.AmountPaid)
	}
}

func TestCreateDeposit(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, testSchedule(t), nopDispatcher())

	in := createInput(nextSaturday(), Slot{"16:00", "18:00"})
	in.PaymentType = "DEPOSIT"

	result, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.AmountPaid != 90000 {
		t.Errorf("AmountPaid = %d, want 90000 (30%% of 300000)", result.AmountPaid)
	}
	if result.AmountDue != 210000 {
		t.Errorf("AmountDue = %d, want 210000", result.AmountDue)
	}
}

func TestCreateWalkInIsApproved(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, testSchedule(t), nopDispatcher())

	in := createInput(nextSaturday(), Slot{"16:00", "18:00"})
	in.AsWalkIn = true

	result, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Bookings[0].Status != string(domain.StatusApproved) {
		t.Errorf("walk-in status = %s, want APPROVED", result.Bookings[0].Status)
	}
}

func TestCreateSlotNotInSchedule(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, testSchedule(t), nopDispatcher())

	_, err := uc.Execute(context.Background(), createInput(nextSaturday(), Slot{"05:00", "06:00"}))
	if !httperr.IsBusiness(err, "slot_not_in_schedule") {
		t.Fatalf("got %v, want slot_not_in_schedule", err)
	}

	if repo.count() != 0 {
		t.Error("rejected request must not create bookings")
	}
}

func TestCreateValidation(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, testSchedule(t), nopDispatcher())
	sat := nextSaturday()

	cases := []struct {
		name string
		in   CreateBookingInput
		code string
	}{
		{"no slots", createInput(sat), "missing_slots"},
		{
			"missing team",
			func() CreateBookingInput {
				in := createInput(sat, Slot{"16:00", "18:00"})
				in.TeamName = "  "
				return in
			}(),
			"missing_team_or_contact",
		},
		{
			"bad payment type",
			func() CreateBookingInput {
				in := createInput(sat, Slot{"16:00", "18:00"})
				in.PaymentType = "INSTALLMENTS"
				return in
			}(),
			"invalid_payment_type",
		},
		{
			"bad date",
			createInput("11-01-2025", Slot{"16:00", "18:00"}),
			"invalid_date",
		},
		{
			"bad time",
			createInput(sat, Slot{"16.00", "18:00"}),
			"invalid_time",
		},
		{
			"unknown field",
			func() CreateBookingInput {
				in := createInput(sat, Slot{"16:00", "18:00"})
				in.FieldID = 42
				return in
			}(),
			"field_not_found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.in)
			if !httperr.IsBusiness(err, tc.code) {
				t.Errorf("got %v, want %s", err, tc.code)
			}
		})
	}

	if repo.count() != 0 {
		t.Error("validation failures must not create bookings")
	}
}

func TestCreateRejectsPastBooking(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, testSchedule(t), nopDispatcher())

	yesterday := timezone.Now().AddDate(0, 0, -1).Format("2006-01-02")

	_, err := uc.Execute(context.Background(), createInput(yesterday, Slot{"16:00", "18:00"}))
	if !httperr.IsBusiness(err, "booking_in_past") {
		t.Fatalf("got %v, want booking_in_past", err)
	}
}

func TestCreateConflictRejected(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, testSchedule(t), nopDispatcher())

	sat := nextSaturday()
	seedActive(repo, sat, "16:00", "18:00", domain.StatusApproved)

	_, err := uc.Execute(context.Background(), createInput(sat, Slot{"17:00", "18:00"}))

	var ce domain.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want ConflictError", err)
	}

	if repo.count() != 1 {
		t.Errorf("conflicting request created bookings: %d rows", repo.count())
	}
}

func TestCreateIgnoresInactiveBookings(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, testSchedule(t), nopDispatcher())

	sat := nextSaturday()
	seedActive(repo, sat, "16:00", "18:00", domain.StatusCancelled)
	seedActive(repo, sat, "16:00", "18:00", domain.StatusRejected)

	if _, err := uc.Execute(context.Background(), createInput(sat, Slot{"16:00", "18:00"})); err != nil {
		t.Fatalf("cancelled/rejected bookings must not reserve the slot: %v", err)
	}
}

func TestCreateAdjacentSlotAllowed(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, testSchedule(t), nopDispatcher())

	sat := nextSaturday()
	seedActive(repo, sat, "16:00", "18:00", domain.StatusApproved)

	// Touches the existing booking at 18:00; not a conflict.
	if _, err := uc.Execute(context.Background(), createInput(sat, Slot{"18:00", "19:00"})); err != nil {
		t.Fatalf("adjacent slot rejected: %v", err)
	}
}

func TestCreateMultiSlot(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, testSchedule(t), nopDispatcher())

	result, err := uc.Execute(context.Background(), createInput(
		nextSaturday(),
		Slot{"16:00", "18:00"}, // 300000
		Slot{"18:00", "20:00"}, // 2h of the 18-23 block at 190000/h
	))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.TotalAmount != 680000 {
		t.Errorf("TotalAmount = %d, want 680000", result.TotalAmount)
	}
	if len(result.Bookings) != 2 {
		t.Fatalf("got %d bookings, want 2", len(result.Bookings))
	}

	if result.Bookings[0].TeamName != result.Bookings[1].TeamName {
		t.Error("slots must share the team metadata")
	}
}

func TestCreateMultiSlotAllOrNothing(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, testSchedule(t), nopDispatcher())

	sat := nextSaturday()
	seedActive(repo, sat, "18:00", "19:00", domain.StatusPending)

	// First slot is free, second collides. Nothing may commit.
	_, err := uc.Execute(context.Background(), createInput(
		sat,
		Slot{"16:00", "18:00"},
		Slot{"18:00", "20:00"},
	))

	var ce domain.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want ConflictError", err)
	}

	if repo.count() != 1 {
		t.Errorf("partial commit: %d rows, want only the seeded one", repo.count())
	}
}

func TestCreateOverlappingSlotsInOneRequest(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, testSchedule(t), nopDispatcher())

	_, err := uc.Execute(context.Background(), createInput(
		nextSaturday(),
		Slot{"16:00", "18:00"},
		Slot{"17:00", "19:00"},
	))

	var ce domain.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want ConflictError for self-overlapping request", err)
	}

	if repo.count() != 0 {
		t.Errorf("self-conflicting request committed %d rows", repo.count())
	}
}

func TestConcurrentCreateSameSlot(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, testSchedule(t), nopDispatcher())

	sat := nextSaturday()

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), createInput(sat, Slot{"16:00", "18:00"}))
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		var ce domain.ConflictError
		switch {
		case err == nil:
			ok++
		case errors.As(err, &ce):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if ok != 1 || conflicts != 1 {
		t.Fatalf("got %d successes and %d conflicts, want exactly 1 of each", ok, conflicts)
	}

	if repo.count() != 1 {
		t.Fatalf("double booking: %d rows for the same slot", repo.count())
	}
}
