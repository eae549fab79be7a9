package models

import "time"

type Field struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	// Legacy display value. Booking amounts come from the tariff schedule,
	// never from this column.
	PricePerHour int `json:"price_per_hour"`

	ImageURL string `gorm:"size:255" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
