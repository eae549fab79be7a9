package booking

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/lapangankita/field-booking/internal/domain/booking"
	"github.com/lapangankita/field-booking/internal/models"
)

// fakeRepo is an in-memory domain.Repository. CreateBookingsIfFree
// mirrors the real repository's contract: the whole batch commits
// under one lock or none of it does.
type fakeRepo struct {
	mu       sync.Mutex
	fields   map[uint]*models.Field
	bookings []*models.Booking
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		fields: map[uint]*models.Field{
			1: {ID: 1, Name: "Lapangan A"},
		},
		nextID: 1,
	}
}

func (r *fakeRepo) GetFieldByID(_ context.Context, id uint) (*models.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.fields[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *fakeRepo) CreateBookingsIfFree(_ context.Context, bookings []*models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	committed := append([]*models.Booking{}, r.bookings...)

	for _, b := range bookings {
		cand := domain.Interval{Start: b.StartTime, End: b.EndTime}

		var active []models.Booking
		for _, ex := range committed {
			if ex.FieldID != b.FieldID {
				continue
			}
			for _, s := range domain.ActiveStatuses {
				if ex.Status == s {
					active = append(active, *ex)
				}
			}
		}

		if conflicts := domain.FindConflicts(active, []domain.Interval{cand}); len(conflicts) > 0 {
			return domain.ConflictError{Conflict: conflicts[0]}
		}

		committed = append(committed, b)
	}

	for _, b := range bookings {
		b.ID = r.nextID
		r.nextID++
	}
	r.bookings = append(r.bookings, bookings...)

	return nil
}

func (r *fakeRepo) ListActiveBookings(_ context.Context, fieldID uint, start, end time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.FieldID != fieldID {
			continue
		}
		active := false
		for _, s := range domain.ActiveStatuses {
			if b.Status == s {
				active = true
			}
		}
		if active && b.StartTime.Before(end) && b.EndTime.After(start) {
			out = append(out, *b)
		}
	}

	return out, nil
}

func (r *fakeRepo) GetBookingByID(_ context.Context, bookingID uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID == bookingID {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetBookingForUser(_ context.Context, bookingID, userID uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID == bookingID && b.UserID == userID {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ex := range r.bookings {
		if ex.ID == b.ID {
			r.bookings[i] = b
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListBookingsForUser(_ context.Context, userID uint) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBookingsForPeriod(_ context.Context, start, end time.Time, status string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.StartTime.Before(start) || !b.StartTime.Before(end) {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

func (r *fakeRepo) seed(b *models.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID
	r.nextID++
	r.bookings = append(r.bookings, b)
}

var _ domain.Repository = (*fakeRepo)(nil)
