package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	FieldID uint  `json:"field_id"`
	Field   Field `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"field"`

	Date      string    `gorm:"size:10" json:"date"` // YYYY-MM-DD, for listing/grouping
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	PaymentType string `gorm:"size:10;default:'FULL'" json:"payment_type"`
	AmountPaid  int    `json:"amount_paid"`

	TeamName string `gorm:"size:100" json:"team_name"`
	Contact  string `gorm:"size:50" json:"contact"`

	ProofImageURL string `gorm:"size:255" json:"proof_image_url"`
	PaymentURL    string `gorm:"size:255" json:"payment_url"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
