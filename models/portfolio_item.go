package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Portfolio item visibility statuses.
const (
	PortfolioShow = "Show"
	PortfolioHide = "Hide"
)

// IsValidPortfolioStatus reports whether s is a legal portfolio visibility status.
func IsValidPortfolioStatus(s string) bool {
	return s == PortfolioShow || s == PortfolioHide
}

// PortfolioItem is a gallery entry managed by the admin. The associated image
// lives in object storage; deleting an item also releases its image,
// best-effort: a dangling blob beats a record pointing at nothing.
type PortfolioItem struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ImageURL    string    `gorm:"not null" json:"image_url"`
	Status      string    `gorm:"not null;default:'Show'" json:"status"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the PortfolioItem model
func (PortfolioItem) TableName() string {
	return "portfolio_items"
}

func (p *PortfolioItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = PortfolioShow
	}
	return nil
}
