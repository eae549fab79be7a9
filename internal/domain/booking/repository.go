package booking

import (
	"context"
	"time"

	"github.com/lapangankita/field-booking/internal/models"
)

type Repository interface {
	// -------- Field --------
	GetFieldByID(
		ctx context.Context,
		id uint,
	) (*models.Field, error)

	// -------- Booking (create / conflict) --------

	// CreateBookingsIfFree inserts every booking or none. The conflict
	// check and the inserts run inside one transaction with the field's
	// active bookings locked; an overlap aborts the whole batch with a
	// ConflictError.
	CreateBookingsIfFree(
		ctx context.Context,
		bookings []*models.Booking,
	) error

	ListActiveBookings(
		ctx context.Context,
		fieldID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	// -------- Booking (state change) --------
	GetBookingByID(
		ctx context.Context,
		bookingID uint,
	) (*models.Booking, error)

	GetBookingForUser(
		ctx context.Context,
		bookingID uint,
		userID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Listing --------
	ListBookingsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Booking, error)

	ListBookingsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
		status string,
	) ([]models.Booking, error)
}
