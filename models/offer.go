package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Offer activity statuses.
const (
	OfferActive   = "Active"
	OfferInactive = "Inactive"
)

// IsValidOfferStatus reports whether s is a legal offer activity status.
func IsValidOfferStatus(s string) bool {
	return s == OfferActive || s == OfferInactive
}

// Offer is a promotional offer managed by the admin. Same lifecycle shape as
// PortfolioItem but with no associated binary.
type Offer struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       string    `gorm:"not null" json:"price"` // free-form, e.g. "$49.00"
	Status      string    `gorm:"not null;default:'Active'" json:"status"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Offer model
func (Offer) TableName() string {
	return "offers"
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = OfferActive
	}
	return nil
}
