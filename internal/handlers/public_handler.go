package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lapangankita/field-booking/internal/cache"
	domain "github.com/lapangankita/field-booking/internal/domain/booking"
	"github.com/lapangankita/field-booking/internal/httperr"
	"github.com/lapangankita/field-booking/internal/httpresp"
	infraRepo "github.com/lapangankita/field-booking/internal/infra/repository"
	"github.com/lapangankita/field-booking/internal/models"
	"github.com/lapangankita/field-booking/internal/timezone"
	ucBooking "github.com/lapangankita/field-booking/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db      *gorm.DB
	quoteUC *ucBooking.Quote
	slots   *cache.SlotCache
}

func NewPublicHandler(
	db *gorm.DB,
	quoteUC *ucBooking.Quote,
	slots *cache.SlotCache,
) *PublicHandler {
	return &PublicHandler{
		db:      db,
		quoteUC: quoteUC,
		slots:   slots,
	}
}

////////////////////////////////////////////////////////
// FIELDS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListFields(c *gin.Context) {
	var fields []models.Field
	if err := h.db.Order("id ASC").Find(&fields).Error; err != nil {
		httperr.Internal(c, "failed_to_list_fields", "Could not list fields.")
		return
	}

	httpresp.List(c, fields)
}

func (h *PublicHandler) GetField(c *gin.Context) {
	id := c.Param("id")

	var field models.Field
	if err := h.db.First(&field, id).Error; err != nil {
		httperr.NotFound(c, "field_not_found", "Field not found.")
		return
	}

	c.JSON(http.StatusOK, field)
}

////////////////////////////////////////////////////////
// BOOKED SLOTS
////////////////////////////////////////////////////////

// BookedSlots returns the active booking windows for a field on one
// day, so the frontend can grey out taken slots. Cached per
// field+date; every booking mutation drops the key.
func (h *PublicHandler) BookedSlots(c *gin.Context) {
	fieldIDStr := c.Param("id")
	dateStr := c.Query("date")

	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	fieldID, err := strconv.ParseUint(fieldIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_field_id", "Invalid field.")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location(""))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	ctx := c.Request.Context()

	if cached, ok := h.slots.Get(ctx, uint(fieldID), dateStr); ok {
		c.JSON(http.StatusOK, gin.H{"date": dateStr, "booked": cached})
		return
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	repo := infraRepo.NewBookingGormRepository(h.db)
	bookings, err := repo.ListActiveBookings(ctx, uint(fieldID), dayStart, dayEnd)
	if err != nil {
		httperr.Internal(c, "failed_to_list_slots", "Could not list booked slots.")
		return
	}

	booked := make([]domain.Interval, 0, len(bookings))
	for _, b := range bookings {
		booked = append(booked, domain.Interval{Start: b.StartTime, End: b.EndTime})
	}

	h.slots.Set(ctx, uint(fieldID), dateStr, booked)

	c.JSON(http.StatusOK, gin.H{"date": dateStr, "booked": booked})
}

////////////////////////////////////////////////////////
// PRICE QUOTE
////////////////////////////////////////////////////////

func (h *PublicHandler) Quote(c *gin.Context) {
	fieldIDStr := c.Query("field_id")
	dateStr := c.Query("date")
	start := c.Query("start")
	end := c.Query("end")

	if fieldIDStr == "" || dateStr == "" || start == "" || end == "" {
		httperr.BadRequest(c, "missing_params", "field_id, date, start and end are required.")
		return
	}

	fieldID, err := strconv.ParseUint(fieldIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_field_id", "Invalid field.")
		return
	}

	quote, err := h.quoteUC.Execute(c.Request.Context(), ucBooking.QuoteInput{
		FieldID: uint(fieldID),
		Date:    dateStr,
		Start:   start,
		End:     end,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}
