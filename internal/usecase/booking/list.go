package booking

import (
	"context"
	"time"

	domain "github.com/lapangankita/field-booking/internal/domain/booking"
	"github.com/lapangankita/field-booking/internal/models"
)

type ListMyBookings struct {
	repo domain.Repository
}

func NewListMyBookings(repo domain.Repository) *ListMyBookings {
	return &ListMyBookings{repo: repo}
}

func (uc *ListMyBookings) Execute(ctx context.Context, userID uint) ([]models.Booking, error) {
	return uc.repo.ListBookingsForUser(ctx, userID)
}

type ListBookingsByPeriod struct {
	repo domain.Repository
}

func NewListBookingsByPeriod(repo domain.Repository) *ListBookingsByPeriod {
	return &ListBookingsByPeriod{repo: repo}
}

func (uc *ListBookingsByPeriod) Execute(
	ctx context.Context,
	start time.Time,
	end time.Time,
	status string,
) ([]models.Booking, error) {
	return uc.repo.ListBookingsForPeriod(ctx, start, end, status)
}
