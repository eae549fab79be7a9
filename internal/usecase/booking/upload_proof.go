package booking

import (
	"context"

	"github.com/lapangankita/field-booking/internal/audit"
	domain "github.com/lapangankita/field-booking/internal/domain/booking"
	"github.com/lapangankita/field-booking/internal/httperr"
	"github.com/lapangankita/field-booking/internal/models"
)

type UploadProof struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUploadProof(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UploadProof {
	return &UploadProof{
		repo:  repo,
		audit: audit,
	}
}

// Execute attaches the payment proof to the user's booking. A second
// upload fails and leaves the first proof untouched.
func (uc *UploadProof) Execute(
	ctx context.Context,
	userID uint,
	bookingID uint,
	proofURL string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.AttachProof(b, proofURL); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "payment_proof_uploaded",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
