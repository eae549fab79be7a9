package booking

import (
	"context"

	"github.com/lapangankita/field-booking/internal/audit"
	domain "github.com/lapangankita/field-booking/internal/domain/booking"
	"github.com/lapangankita/field-booking/internal/httperr"
	"github.com/lapangankita/field-booking/internal/models"
	"github.com/lapangankita/field-booking/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancels a booking. Regular users may only cancel their own
// bookings while they are still pending; admins may cancel any active
// booking.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	actorID uint,
	bookingID uint,
	asAdmin bool,
) (*models.Booking, error) {

	var (
		b   *models.Booking
		err error
	)

	if asAdmin {
		b, err = uc.repo.GetBookingByID(ctx, bookingID)
	} else {
		b, err = uc.repo.GetBookingForUser(ctx, bookingID, actorID)
	}
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if !asAdmin && b.Status != string(domain.StatusPending) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	if err := domain.Cancel(b, timezone.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
