package booking

import (
	"context"

	"github.com/lapangankita/field-booking/internal/audit"
	domain "github.com/lapangankita/field-booking/internal/domain/booking"
	"github.com/lapangankita/field-booking/internal/httperr"
	"github.com/lapangankita/field-booking/internal/models"
)

type RejectBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRejectBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RejectBooking {
	return &RejectBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RejectBooking) Execute(
	ctx context.Context,
	adminID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.Reject(b); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "booking_rejected",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
