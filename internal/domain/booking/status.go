package booking

import "github.com/lapangankita/field-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// ActiveStatuses are the statuses that reserve a slot. Rejected and
// cancelled bookings do not block the calendar.
var ActiveStatuses = []string{string(StatusPending), string(StatusApproved)}

// ===============================
// Payment type
// ===============================

type PaymentType string

const (
	PaymentFull    PaymentType = "FULL"
	PaymentDeposit PaymentType = "DEPOSIT"
)

func ParsePaymentType(s string) (PaymentType, error) {
	switch PaymentType(s) {
	case PaymentFull, PaymentDeposit:
		return PaymentType(s), nil
	}
	return "", httperr.ErrBusiness("invalid_payment_type")
}

// ===============================
// Transition guards
// ===============================

func CanApprove(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusApproved {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusApproved {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
