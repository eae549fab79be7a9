package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lapangankita/field-booking/internal/cache"
	"github.com/lapangankita/field-booking/internal/httperr"
	"github.com/lapangankita/field-booking/internal/httpresp"
	"github.com/lapangankita/field-booking/internal/middleware"
	"github.com/lapangankita/field-booking/internal/storage"
	ucBooking "github.com/lapangankita/field-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC *ucBooking.CreateBooking
	cancelUC *ucBooking.CancelBooking
	proofUC  *ucBooking.UploadProof
	listUC   *ucBooking.ListMyBookings
	payUC    *ucBooking.PayBooking // nil when online payment is not configured

	storage *storage.Storage
	slots   *cache.SlotCache
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	proofUC *ucBooking.UploadProof,
	listUC *ucBooking.ListMyBookings,
	payUC *ucBooking.PayBooking,
	store *storage.Storage,
	slots *cache.SlotCache,
) *BookingHandler {
	return &BookingHandler{
		createUC: createUC,
		cancelUC: cancelUC,
		proofUC:  proofUC,
		listUC:   listUC,
		payUC:    payUC,
		storage:  store,
		slots:    slots,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SlotRequest struct {
	Start string `json:"start" binding:"required"` // HH:MM
	End   string `json:"end" binding:"required"`   // HH:MM
}

type CreateBookingRequest struct {
	FieldID     uint          `json:"field_id" binding:"required"`
	Date        string        `json:"date" binding:"required"` // YYYY-MM-DD
	Slots       []SlotRequest `json:"slots" binding:"required,min=1"`
	PaymentType string        `json:"payment_type" binding:"required"`
	TeamName    string        `json:"team_name" binding:"required"`
	Contact     string        `json:"contact" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

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
		UserID:      userID,
		FieldID:     req.FieldID,
		Date:        req.Date,
		Slots:       slots,
		PaymentType: req.PaymentType,
		TeamName:    req.TeamName,
		Contact:     req.Contact,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.slots.Invalidate(c.Request.Context(), req.FieldID, req.Date)

	c.JSON(http.StatusCreated, result)
}

// ======================================================
// LIST MINE
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookings, err := h.listUC.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking.")
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), userID, bookingID, false)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.slots.Invalidate(c.Request.Context(), b.FieldID, b.Date)

	c.JSON(http.StatusOK, b)
}

// ======================================================
// PAYMENT PROOF
// ======================================================

func (h *BookingHandler) UploadProof(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking.")
		return
	}

	file, err := c.FormFile("proof")
	if err != nil {
		httperr.BadRequest(c, "missing_proof_file", "Proof image is required.")
		return
	}

	url, err := h.storage.SaveUpload(c.Request.Context(), "proofs", file)
	if err != nil {
		httperr.Internal(c, "failed_to_store_proof", "Could not store proof image.")
		return
	}

	b, err := h.proofUC.Execute(c.Request.Context(), userID, bookingID, url)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// ONLINE PAYMENT
// ======================================================

// Pay returns a hosted-checkout link for the booking's upfront
// amount. Manual transfer with proof upload stays available either
// way.
func (h *BookingHandler) Pay(c *gin.Context) {
	if h.payUC == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "payments_disabled", "Online payment is not configured.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking.")
		return
	}

	link, err := h.payUC.Execute(c.Request.Context(), userID, bookingID)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_url": link})
}
