package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/lapangankita/field-booking/internal/domain/booking"
	"github.com/lapangankita/field-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Field
// --------------------------------------------------

func (r *BookingGormRepository) GetFieldByID(
	ctx context.Context,
	id uint,
) (*models.Field, error) {

	var field models.Field
	if err := r.db.WithContext(ctx).First(&field, id).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// CreateBookingsIfFree inserts the whole batch or nothing. Each slot's
// active bookings are read under FOR UPDATE before its insert, so two
// concurrent requests for the same window serialize on the lock; the
// exclusion constraint on (field_id, start_time, end_time) is the
// backstop if they arrive on different rows.
func (r *BookingGormRepository) CreateBookingsIfFree(
	ctx context.Context,
	bookings []*models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		for _, b := range bookings {

			var existing []models.Booking
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where(
					"field_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
					b.FieldID,
					domain.ActiveStatuses,
					b.EndTime,
					b.StartTime,
				).
				Find(&existing).Error; err != nil {
				return err
			}

			cand := domain.Interval{Start: b.StartTime, End: b.EndTime}
			if conflicts := domain.FindConflicts(existing, []domain.Interval{cand}); len(conflicts) > 0 {
				return domain.ConflictError{Conflict: conflicts[0]}
			}

			if err := tx.Create(b).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *BookingGormRepository) ListActiveBookings(
	ctx context.Context,
	fieldID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"field_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			fieldID,
			domain.ActiveStatuses,
			end,
			start,
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Field").
		First(&b, bookingID).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) GetBookingForUser(
	ctx context.Context,
	bookingID uint,
	userID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Field").
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Field").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
	status string,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Field").
		Preload("User").
		Where("start_time >= ? AND start_time < ?", start, end)

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := q.Order("start_time ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
