package booking

import (
	"context"
	"strings"
	"time"

	"github.com/lapangankita/field-booking/internal/audit"
	domain "github.com/lapangankita/field-booking/internal/domain/booking"
	"github.com/lapangankita/field-booking/internal/httperr"
	"github.com/lapangankita/field-booking/internal/models"
	"github.com/lapangankita/field-booking/internal/tariff"
	"github.com/lapangankita/field-booking/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type Slot struct {
	Start string // HH:MM
	End   string // HH:MM
}

type CreateBookingInput struct {
	UserID  uint
	FieldID uint

	Date  string // YYYY-MM-DD
	Slots []Slot

	PaymentType string
	TeamName    string
	Contact     string

	// Walk-in bookings taken at the counter skip the approval step.
	AsWalkIn bool
}

type CreateBookingResult struct {
	Bookings    []models.Booking `json:"bookings"`
	TotalAmount int              `json:"total_amount"`
	AmountPaid  int              `json:"amount_paid"`
	AmountDue   int              `json:"amount_due"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	schedule *tariff.Schedule
	audit    *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	schedule *tariff.Schedule,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		schedule: schedule,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute prices and books every requested slot, or nothing. Amounts
// always come from the tariff schedule; the request never carries one.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	// --------------------------------------------------
	// 1. Validation
	// --------------------------------------------------
	if len(in.Slots) == 0 {
		return nil, httperr.ErrBusiness("missing_slots")
	}

	if strings.TrimSpace(in.TeamName) == "" || strings.TrimSpace(in.Contact) == "" {
		return nil, httperr.ErrBusiness("missing_team_or_contact")
	}

	paymentType, err := domain.ParsePaymentType(in.PaymentType)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location("")
	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	// --------------------------------------------------
	// 2. Field
	// --------------------------------------------------
	field, err := uc.repo.GetFieldByID(ctx, in.FieldID)
	if err != nil {
		return nil, httperr.ErrBusiness("field_not_found")
	}

	// --------------------------------------------------
	// 3. Price each slot from the schedule
	// --------------------------------------------------
	now := timezone.Now()
	status := domain.StatusPending
	if in.AsWalkIn {
		status = domain.StatusApproved
	}

	var (
		bookings    []*models.Booking
		totalAmount int
		totalPaid   int
	)

	for _, slot := range in.Slots {
		start, end, err := slotTimes(date, slot, loc)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_time")
		}

		if !start.After(now) {
			return nil, httperr.ErrBusiness("booking_in_past")
		}

		price, err := uc.schedule.Price(date, slot.Start, slot.End)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_time")
		}
		if price == 0 {
			return nil, httperr.ErrBusiness("slot_not_in_schedule")
		}

		amountPaid := price
		if paymentType == domain.PaymentDeposit {
			amountPaid = tariff.DepositAmount(price)
		}

		bookings = append(bookings, &models.Booking{
			UserID:      in.UserID,
			FieldID:     field.ID,
			Date:        in.Date,
			StartTime:   start,
			EndTime:     end,
			Status:      string(status),
			PaymentType: string(paymentType),
			AmountPaid:  amountPaid,
			TeamName:    in.TeamName,
			Contact:     in.Contact,
		})

		totalAmount += price
		totalPaid += amountPaid
	}

	// --------------------------------------------------
	// 4. Conflict check + insert, all-or-nothing
	// --------------------------------------------------
	if err := uc.repo.CreateBookingsIfFree(ctx, bookings); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Audit
	// --------------------------------------------------
	result := &CreateBookingResult{
		TotalAmount: totalAmount,
		AmountPaid:  totalPaid,
		AmountDue:   totalAmount - totalPaid,
	}

	for _, b := range bookings {
		uc.audit.Dispatch(audit.Event{
			UserID:   &in.UserID,
			Action:   "booking_created",
			Entity:   "booking",
			EntityID: &b.ID,
			Metadata: map[string]any{
				"field_id": b.FieldID,
				"start":    b.StartTime,
				"end":      b.EndTime,
				"amount":   b.AmountPaid,
			},
		})

		result.Bookings = append(result.Bookings, *b)
	}

	return result, nil
}

func slotTimes(date time.Time, slot Slot, loc *time.Location) (time.Time, time.Time, error) {
	startMin, err := tariff.ParseClock(slot.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	endMin, err := tariff.ParseClock(slot.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return day.Add(time.Duration(startMin) * time.Minute),
		day.Add(time.Duration(endMin) * time.Minute),
		nil
}
