package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses. No other value is ever persisted.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// OrderStatuses lists every legal order status.
var OrderStatuses = []string{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// IsValidOrderStatus reports whether s is one of the legal order statuses.
func IsValidOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// Order represents a customer's service request and its fulfillment state.
// Price and DeliveryFileURL are set together when the order is delivered and
// are never cleared afterwards. Orders are hard-deleted by admin action.
type Order struct {
	ID              string     `gorm:"primaryKey" json:"id"`
	CustomerName    string     `gorm:"not null" json:"customer_name"`
	ContactNumber   string     `gorm:"not null" json:"contact_number"`
	Email           string     `gorm:"not null" json:"email"`
	Service         string     `gorm:"not null" json:"service"` // loose reference to a catalog Service title
	Details         string     `gorm:"type:text;not null" json:"details"`
	FileURL         string     `json:"file_url,omitempty"` // optional customer attachment
	Status          string     `gorm:"not null;default:'Pending';index" json:"status"`
	Price           *string    `json:"price,omitempty"` // free-form, e.g. "$99.00"
	DeliveryFileURL *string    `json:"delivery_file_url,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns an opaque id. Customers type order ids into the public
// status checker, so sequential ids would leak order volume.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	return nil
}
