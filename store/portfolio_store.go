package store

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"gorm.io/gorm"

	"github.com/ShanAhmd/HiDrawpix/models"
)

// PortfolioStore persists gallery items with the same snapshot-subscription
// contract as OrderStore. It has no coupling to orders.
type PortfolioStore struct {
	db    *gorm.DB
	hub   *Hub[[]models.PortfolioItem]
	pubMu sync.Mutex
}

// NewPortfolioStore creates a portfolio store over the given database handle.
func NewPortfolioStore(db *gorm.DB) *PortfolioStore {
	return &PortfolioStore{db: db, hub: NewHub[[]models.PortfolioItem]()}
}

// Create persists a new portfolio item and returns its assigned id.
func (s *PortfolioStore) Create(item *models.PortfolioItem) (string, error) {
	item.ID = ""
	if err := s.db.Create(item).Error; err != nil {
		return "", fmt.Errorf("failed to create portfolio item: %w", err)
	}
	s.publish()
	return item.ID, nil
}

// GetByID returns the portfolio item with the given id, or ErrNotFound.
func (s *PortfolioStore) GetByID(id string) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load portfolio item: %w", err)
	}
	return &item, nil
}

// List returns portfolio items, newest first. When publicOnly is set, hidden
// items are excluded so they never reach the public wire.
func (s *PortfolioStore) List(publicOnly bool) ([]models.PortfolioItem, error) {
	q := s.db.Order("created_at DESC")
	if publicOnly {
		q = q.Where("status = ?", models.PortfolioShow)
	}
	var items []models.PortfolioItem
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list portfolio items: %w", err)
	}
	return items, nil
}

// UpdateStatus toggles an item's visibility.
func (s *PortfolioStore) UpdateStatus(id, status string) error {
	if !models.IsValidPortfolioStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	res := s.db.Model(&models.PortfolioItem{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update portfolio item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.publish()
	return nil
}

// Delete removes the item record permanently. Releasing the associated image
// is the caller's responsibility and must happen after the record delete, not
// before (see the portfolio controller).
func (s *PortfolioStore) Delete(id string) error {
	res := s.db.Delete(&models.PortfolioItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete portfolio item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.publish()
	return nil
}

// Subscribe registers a live listener with the same semantics as
// OrderStore.Subscribe. The admin stream carries hidden items too.
func (s *PortfolioStore) Subscribe() (<-chan []models.PortfolioItem, func()) {
	ch, cancel := s.hub.Subscribe()
	s.publish()
	return ch, cancel
}

// publish serializes the reload with the fan-out, same as OrderStore.publish.
func (s *PortfolioStore) publish() {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	items, err := s.List(false)
	if err != nil {
		log.Printf("portfolio store: failed to load snapshot for subscribers: %v", err)
		return
	}
	s.hub.Publish(items)
}
