package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lapangankita/field-booking/internal/httperr"
	"github.com/lapangankita/field-booking/internal/httpresp"
	"github.com/lapangankita/field-booking/internal/models"
)

type UserAdminHandler struct {
	db *gorm.DB
}

func NewUserAdminHandler(db *gorm.DB) *UserAdminHandler {
	return &UserAdminHandler{db: db}
}

func (h *UserAdminHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("id ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Could not list users.")
		return
	}

	httpresp.List(c, users)
}

// Delete removes a user account. Accounts with bookings, in any
// status, cannot be deleted.
func (h *UserAdminHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	var count int64
	if err := h.db.Model(&models.Booking{}).
		Where("user_id = ?", user.ID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_check_bookings", "Could not check bookings.")
		return
	}

	if count > 0 {
		httperr.Conflict(c, "user_has_bookings", "User has bookings and cannot be deleted.")
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_user", "Could not delete user.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": user.ID})
}
