package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lapangankita/field-booking/internal/httperr"
	"github.com/lapangankita/field-booking/internal/models"
	"github.com/lapangankita/field-booking/internal/storage"
)

type FieldHandler struct {
	db      *gorm.DB
	storage *storage.Storage
}

func NewFieldHandler(db *gorm.DB, store *storage.Storage) *FieldHandler {
	return &FieldHandler{db: db, storage: store}
}

// --------- Requests ---------

type UpdateFieldRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	PricePerHour *int    `json:"price_per_hour,omitempty"`
}

// --------- Handlers ---------

// Create takes multipart form data so the field photo can be uploaded
// in the same request. The photo is re-encoded to webp before storage.
func (h *FieldHandler) Create(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		httperr.BadRequest(c, "missing_name", "Field name is required.")
		return
	}

	field := models.Field{
		Name:        name,
		Description: c.PostForm("description"),
	}

	if priceStr := c.PostForm("price_per_hour"); priceStr != "" {
		if price, ok := parseID(priceStr); ok {
			field.PricePerHour = int(price)
		}
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := h.storage.SaveFieldPhoto(c.Request.Context(), file)
		if err != nil {
			httperr.BadRequest(c, "invalid_image", "Could not process field image.")
			return
		}
		field.ImageURL = url
	}

	if err := h.db.Create(&field).Error; err != nil {
		httperr.Internal(c, "failed_to_create_field", "Could not create field.")
		return
	}

	c.JSON(http.StatusCreated, field)
}

func (h *FieldHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var field models.Field
	if err := h.db.First(&field, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "field_not_found", "Field not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_field", "Could not load field.")
		return
	}

	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	if req.Name != nil {
		field.Name = *req.Name
	}
	if req.Description != nil {
		field.Description = *req.Description
	}
	if req.PricePerHour != nil {
		field.PricePerHour = *req.PricePerHour
	}

	if err := h.db.Save(&field).Error; err != nil {
		httperr.Internal(c, "failed_to_update_field", "Could not update field.")
		return
	}

	c.JSON(http.StatusOK, field)
}

// UpdateImage replaces the field photo.
func (h *FieldHandler) UpdateImage(c *gin.Context) {
	id := c.Param("id")

	var field models.Field
	if err := h.db.First(&field, id).Error; err != nil {
		httperr.NotFound(c, "field_not_found", "Field not found.")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Image file is required.")
		return
	}

	url, err := h.storage.SaveFieldPhoto(c.Request.Context(), file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Could not process field image.")
		return
	}

	field.ImageURL = url
	if err := h.db.Save(&field).Error; err != nil {
		httperr.Internal(c, "failed_to_update_field", "Could not update field.")
		return
	}

	c.JSON(http.StatusOK, field)
}

// Delete removes a field. Fields with bookings, in any status, cannot
// be deleted.
func (h *FieldHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var field models.Field
	if err := h.db.First(&field, id).Error; err != nil {
		httperr.NotFound(c, "field_not_found", "Field not found.")
		return
	}

	var count int64
	if err := h.db.Model(&models.Booking{}).
		Where("field_id = ?", field.ID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_check_bookings", "Could not check bookings.")
		return
	}

	if count > 0 {
		httperr.Conflict(c, "field_has_bookings", "Field has bookings and cannot be deleted.")
		return
	}

	if err := h.db.Delete(&field).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_field", "Could not delete field.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": field.ID})
}
