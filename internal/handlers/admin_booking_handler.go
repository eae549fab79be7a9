package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lapangankita/field-booking/internal/cache"
	"github.com/lapangankita/field-booking/internal/httperr"
	"github.com/lapangankita/field-booking/internal/middleware"
	"github.com/lapangankita/field-booking/internal/models"
	"github.com/lapangankita/field-booking/internal/timezone"
	ucBooking "github.com/lapangankita/field-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AdminBookingHandler struct {
	createUC   *ucBooking.CreateBooking
	approveUC  *ucBooking.ApproveBooking
	rejectUC   *ucBooking.RejectBooking
	completeUC *ucBooking.CompleteBooking
	cancelUC   *ucBooking.CancelBooking
	listUC     *ucBooking.ListBookingsByPeriod

	slots *cache.SlotCache
}

func NewAdminBookingHandler(
	createUC *ucBooking.CreateBooking,
	approveUC *ucBooking.ApproveBooking,
	rejectUC *ucBooking.RejectBooking,
	completeUC *ucBooking.CompleteBooking,
	cancelUC *ucBooking.CancelBooking,
	listUC *ucBooking.ListBookingsByPeriod,
	slots *cache.SlotCache,
) *AdminBookingHandler {
	return &AdminBookingHandler{
		createUC:   createUC,
		approveUC:  approveUC,
		rejectUC:   rejectUC,
		completeUC: completeUC,
		cancelUC:   cancelUC,
		listUC:     listUC,
		slots:      slots,
	}
}

// ======================================================
// WALK-IN CREATE
// ======================================================

// CreateWalkIn books a field for a customer at the counter. The
// booking skips the approval step and is created APPROVED.
func (h *AdminBookingHandler) CreateWalkIn(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	slots := make([]ucBooking.Slot, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, ucBooking.Slot{Start: s.Start, End: s.End})
	}

	result, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:      adminID,
		FieldID:     req.FieldID,
		Date:        req.Date,
		Slots:       slots,
		PaymentType: req.PaymentType,
		TeamName:    req.TeamName,
		Contact:     req.Contact,
		AsWalkIn:    true,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.slots.Invalidate(c.Request.Context(), req.FieldID, req.Date)

	c.JSON(http.StatusCreated, result)
}

// ======================================================
// LIST
// ======================================================

func (h *AdminBookingHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location(""))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	bookings, err := h.listUC.Execute(c.Request.Context(), start, end, c.Query("status"))
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *AdminBookingHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	loc := timezone.Location("")
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	bookings, err := h.listUC.Execute(c.Request.Context(), start, end, c.Query("status"))
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    month,
		"bookings": bookings,
	})
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AdminBookingHandler) Approve(c *gin.Context) {
	h.transition(c, func(adminID, bookingID uint) (*models.Booking, error) {
		return h.approveUC.Execute(c.Request.Context(), adminID, bookingID)
	})
}

func (h *AdminBookingHandler) Reject(c *gin.Context) {
	h.transition(c, func(adminID, bookingID uint) (*models.Booking, error) {
		return h.rejectUC.Execute(c.Request.Context(), adminID, bookingID)
	})
}

func (h *AdminBookingHandler) Complete(c *gin.Context) {
	h.transition(c, func(adminID, bookingID uint) (*models.Booking, error) {
		return h.completeUC.Execute(c.Request.Context(), adminID, bookingID)
	})
}

func (h *AdminBookingHandler) Cancel(c *gin.Context) {
	h.transition(c, func(adminID, bookingID uint) (*models.Booking, error) {
		return h.cancelUC.Execute(c.Request.Context(), adminID, bookingID, true)
	})
}

func (h *AdminBookingHandler) transition(
	c *gin.Context,
	fn func(adminID, bookingID uint) (*models.Booking, error),
) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking.")
		return
	}

	b, err := fn(adminID, bookingID)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.slots.Invalidate(c.Request.Context(), b.FieldID, b.Date)

	c.JSON(http.StatusOK, b)
}
