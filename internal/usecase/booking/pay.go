package booking

import (
	"context"

	"github.com/lapangankita/field-booking/internal/audit"
	domain "github.com/lapangankita/field-booking/internal/domain/booking"
	"github.com/lapangankita/field-booking/internal/httperr"
	"github.com/lapangankita/field-booking/internal/payment"
)

type PayBooking struct {
	repo     domain.Repository
	payments *payment.Client
	audit    *audit.Dispatcher
}

func NewPayBooking(
	repo domain.Repository,
	payments *payment.Client,
	audit *audit.Dispatcher,
) *PayBooking {
	return &PayBooking{
		repo:     repo,
		payments: payments,
		audit:    audit,
	}
}

// Execute returns a hosted-checkout link for the booking's upfront
// amount, creating it on first use.
func (uc *PayBooking) Execute(
	ctx context.Context,
	userID uint,
	bookingID uint,
) (string, error) {

	b, err := uc.repo.GetBookingForUser(ctx, bookingID, userID)
	if err != nil {
		return "", httperr.ErrBusiness("booking_not_found")
	}

	if b.Status != string(domain.StatusPending) {
		return "", httperr.ErrBusiness("invalid_state")
	}

	if b.PaymentURL != "" {
		return b.PaymentURL, nil
	}

	link, err := uc.payments.CheckoutLink(ctx, b, b.AmountPaid)
	if err != nil {
		return "", err
	}

	b.PaymentURL = link
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return "", err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "payment_link_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return link, nil
}
