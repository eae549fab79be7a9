package booking

import (
	"context"
	"time"

	domain "github.com/lapangankita/field-booking/internal/domain/booking"
	"github.com/lapangankita/field-booking/internal/httperr"
	"github.com/lapangankita/field-booking/internal/tariff"
	"github.com/lapangankita/field-booking/internal/timezone"
)

type QuoteInput struct {
	FieldID uint
	Date    string // YYYY-MM-DD
	Start   string // HH:MM
	End     string // HH:MM
}

type QuoteResult struct {
	DayType       tariff.DayType `json:"day_type"`
	Price         int            `json:"price"`
	DepositAmount int            `json:"deposit_amount"`
}

// Quote prices a slot without booking it. The result is a display
// hint; creation recomputes the amount server-side.
type Quote struct {
	repo     domain.Repository
	schedule *tariff.Schedule
}

func NewQuote(repo domain.Repository, schedule *tariff.Schedule) *Quote {
	return &Quote{repo: repo, schedule: schedule}
}

func (uc *Quote) Execute(ctx context.Context, in QuoteInput) (*QuoteResult, error) {
	if _, err := uc.repo.GetFieldByID(ctx, in.FieldID); err != nil {
		return nil, httperr.ErrBusiness("field_not_found")
	}

	date, err := time.ParseInLocation("2006-01-02", in.Date, timezone.Location(""))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	price, err := uc.schedule.Price(date, in.Start, in.End)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}
	if price == 0 {
		return nil, httperr.ErrBusiness("slot_not_in_schedule")
	}

	return &QuoteResult{
		DayType:       tariff.Classify(date),
		Price:         price,
		DepositAmount: tariff.DepositAmount(price),
	}, nil
}
