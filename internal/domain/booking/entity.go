package booking

import (
	"time"

	"github.com/lapangankita/field-booking/internal/httperr"
	"github.com/lapangankita/field-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Approve(b *models.Booking) error {
	if err := CanApprove(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusApproved)
	return nil
}

func Reject(b *models.Booking) error {
	if err := CanReject(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusRejected)
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

// AttachProof records the payment proof URL. A booking carries at most
// one proof; a second upload is rejected.
func AttachProof(b *models.Booking, url string) error {
	if b.ProofImageURL != "" {
		return httperr.ErrBusiness("proof_already_uploaded")
	}

	b.ProofImageURL = url
	return nil
}
