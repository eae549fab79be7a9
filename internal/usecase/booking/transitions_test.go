package booking

import (
	"context"
	"testing"

	domain "github.com/lapangankita/field-booking/internal/domain/booking"
	"github.com/lapangankita/field-booking/internal/httperr"
	"github.com/lapangankita/field-booking/internal/models"
)

func seedBooking(repo *fakeRepo, userID uint, status domain.Status) *models.Booking {
	b := &models.Booking{
		UserID:  userID,
		FieldID: 1,
		Date:    "2025-01-11",
		Status:  string(status),
	}
	repo.seed(b)
	return b
}

func TestApproveBooking(t *testing.T) {
	repo := newFakeRepo()
	uc := NewApproveBooking(repo, nopDispatcher())

	b := seedBooking(repo, 7, domain.StatusPending)

	got, err := uc.Execute(context.Background(), 1, b.ID)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Status != string(domain.StatusApproved) {
		t.Errorf("status = %s, want APPROVED", got.Status)
	}

	// Approving again is not a valid transition.
	if _, err := uc.Execute(context.Background(), 1, b.ID); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("second approve: got %v, want invalid_state", err)
	}
}

func TestApproveUnknownBooking(t *testing.T) {
	uc := NewApproveBooking(newFakeRepo(), nopDispatcher())

	if _, err := uc.Execute(context.Background(), 1, 404); !httperr.IsBusiness(err, "booking_not_found") {
		t.Errorf("got %v, want booking_not_found", err)
	}
}

func TestRejectBooking(t *testing.T) {
	repo := newFakeRepo()
	uc := NewRejectBooking(repo, nopDispatcher())

	b := seedBooking(repo, 7, domain.StatusPending)

	got, err := uc.Execute(context.Background(), 1, b.ID)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Status != string(domain.StatusRejected) {
		t.Errorf("status = %s, want REJECTED", got.Status)
	}
}

func TestCompleteRequiresApproved(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCompleteBooking(repo, nopDispatcher())

	pending := seedBooking(repo, 7, domain.StatusPending)
	approved := seedBooking(repo, 7, domain.StatusApproved)

	if _, err := uc.Execute(context.Background(), 1, pending.ID); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("complete from PENDING: got %v, want invalid_state", err)
	}

	got, err := uc.Execute(context.Background(), 1, approved.ID)
	if err != nil {
		t.Fatalf("complete from APPROVED: %v", err)
	}
	if got.Status != string(domain.StatusCompleted) || got.CompletedAt == nil {
		t.Errorf("status = %s, CompletedAt = %v", got.Status, got.CompletedAt)
	}
}

func TestUserCancelsOwnPendingBooking(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCancelBooking(repo, nopDispatcher())

	b := seedBooking(repo, 7, domain.StatusPending)

	got, err := uc.Execute(context.Background(), 7, b.ID, false)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Status != string(domain.StatusCancelled) || got.CancelledAt == nil {
		t.Errorf("status = %s, CancelledAt = %v", got.Status, got.CancelledAt)
	}
}

func TestUserCannotCancelApprovedBooking(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCancelBooking(repo, nopDispatcher())

	b := seedBooking(repo, 7, domain.StatusApproved)

	if _, err := uc.Execute(context.Background(), 7, b.ID, false); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("got %v, want invalid_state", err)
	}
}

func TestAdminCancelsApprovedBooking(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCancelBooking(repo, nopDispatcher())

	b := seedBooking(repo, 7, domain.StatusApproved)

	got, err := uc.Execute(context.Background(), 1, b.ID, true)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Status != string(domain.StatusCancelled) {
		t.Errorf("status = %s, want CANCELLED", got.Status)
	}
}

func TestUserCannotCancelForeignBooking(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCancelBooking(repo, nopDispatcher())

	b := seedBooking(repo, 99, domain.StatusPending)

	// The lookup is scoped to the caller, so a foreign booking simply
	// does not exist for them.
	if _, err := uc.Execute(context.Background(), 7, b.ID, false); !httperr.IsBusiness(err, "booking_not_found") {
		t.Errorf("got %v, want booking_not_found", err)
	}
}

func TestUploadProof(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUploadProof(repo, nopDispatcher())

	b := seedBooking(repo, 7, domain.StatusPending)

	got, err := uc.Execute(context.Background(), 7, b.ID, "/uploads/proofs/a.jpg")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.ProofImageURL != "/uploads/proofs/a.jpg" {
		t.Errorf("ProofImageURL = %s", got.ProofImageURL)
	}

	_, err = uc.Execute(context.Background(), 7, b.ID, "/uploads/proofs/b.jpg")
	if !httperr.IsBusiness(err, "proof_already_uploaded") {
		t.Fatalf("second upload: got %v, want proof_already_uploaded", err)
	}

	stored, _ := repo.GetBookingByID(context.Background(), b.ID)
	if stored.ProofImageURL != "/uploads/proofs/a.jpg" {
		t.Errorf("first proof overwritten: %s", stored.ProofImageURL)
	}
}

func TestUploadProofScopedToOwner(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUploadProof(repo, nopDispatcher())

	b := seedBooking(repo, 99, domain.StatusPending)

	if _, err := uc.Execute(context.Background(), 7, b.ID, "/uploads/proofs/a.jpg"); !httperr.IsBusiness(err, "booking_not_found") {
		t.Errorf("got %v, want booking_not_found", err)
	}
}
