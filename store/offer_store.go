package store

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"gorm.io/gorm"

	"github.com/ShanAhmd/HiDrawpix/models"
)

// OfferStore persists promotional offers. Structurally identical to
// PortfolioStore minus the associated binary.
type OfferStore struct {
	db    *gorm.DB
	hub   *Hub[[]models.Offer]
	pubMu sync.Mutex
}

// NewOfferStore creates an offer store over the given database handle.
func NewOfferStore(db *gorm.DB) *OfferStore {
	return &OfferStore{db: db, hub: NewHub[[]models.Offer]()}
}

// Create persists a new offer and returns its assigned id.
func (s *OfferStore) Create(offer *models.Offer) (string, error) {
	offer.ID = ""
	if err := s.db.Create(offer).Error; err != nil {
		return "", fmt.Errorf("failed to create offer: %w", err)
	}
	s.publish()
	return offer.ID, nil
}

// GetByID returns the offer with the given id, or ErrNotFound.
func (s *OfferStore) GetByID(id string) (*models.Offer, error) {
	var offer models.Offer
	if err := s.db.First(&offer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}
	return &offer, nil
}

// List returns offers, newest first. When publicOnly is set, inactive offers
// are excluded.
func (s *OfferStore) List(publicOnly bool) ([]models.Offer, error) {
	q := s.db.Order("created_at DESC")
	if publicOnly {
		q = q.Where("status = ?", models.OfferActive)
	}
	var offers []models.Offer
	if err := q.Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

// UpdateStatus toggles an offer's activity.
func (s *OfferStore) UpdateStatus(id, status string) error {
	if !models.IsValidOfferStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	res := s.db.Model(&models.Offer{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update offer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.publish()
	return nil
}

// Delete removes the offer permanently.
func (s *OfferStore) Delete(id string) error {
	res := s.db.Delete(&models.Offer{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete offer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.publish()
	return nil
}

// Subscribe registers a live listener with the same semantics as
// OrderStore.Subscribe.
func (s *OfferStore) Subscribe() (<-chan []models.Offer, func()) {
	ch, cancel := s.hub.Subscribe()
	s.publish()
	return ch, cancel
}

// publish serializes the reload with the fan-out, same as OrderStore.publish.
func (s *OfferStore) publish() {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	offers, err := s.List(false)
	if err != nil {
		log.Printf("offer store: failed to load snapshot for subscribers: %v", err)
		return
	}
	s.hub.Publish(offers)
}
