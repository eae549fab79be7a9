package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/lapangankita/field-booking/internal/domain/booking"
	"github.com/lapangankita/field-booking/internal/httperr"
)

// mapBookingError translates usecase errors into HTTP responses so
// every rejection carries a distinguishable reason.
func mapBookingError(c *gin.Context, err error) {

	var ce domain.ConflictError
	if errors.As(err, &ce) {
		c.JSON(http.StatusConflict, gin.H{
			"error_code":          "time_conflict",
			"message":             "The requested slot is already booked.",
			"candidate":           ce.Conflict.Candidate,
			"existing_booking_id": ce.Conflict.Existing.ID,
			"date":                ce.Conflict.Existing.Date,
		})
		return
	}

	if httperr.IsExclusionConflict(err) {
		httperr.Conflict(c, "time_conflict", "The requested slot is already booked.")
		return
	}

	if code, ok := httperr.IsAnyBusiness(err); ok {
		switch code {
		case "field_not_found", "booking_not_found":
			httperr.NotFound(c, code, "Not found.")
		case "proof_already_uploaded":
			httperr.Conflict(c, code, "Payment proof was already uploaded.")
		case "slot_not_in_schedule":
			httperr.BadRequest(c, code, "The requested time is not in the schedule.")
		default:
			httperr.BadRequest(c, code, "Invalid request.")
		}
		return
	}

	log.Printf("booking error: %v", err)
	httperr.Internal(c, "internal_error", "Something went wrong.")
}
