package store

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/ShanAhmd/HiDrawpix/models"
)

// ErrNotFound is returned by point lookups for ids that do not exist. The
// public status checker relies on telling this apart from a real failure so
// it can render a friendly "order not found" instead of a generic error.
var ErrNotFound = errors.New("record not found")

// ErrInvalidStatus is returned when a status update carries a value outside
// the legal enum.
var ErrInvalidStatus = errors.New("invalid status")

// OrderStore persists Order records and notifies live subscribers. Every
// mutation, from any caller, republishes the full current order list
// (newest first) to every subscriber.
type OrderStore struct {
	db    *gorm.DB
	hub   *Hub[[]models.Order]
	pubMu sync.Mutex
}

// NewOrderStore creates an order store over the given database handle.
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db, hub: NewHub[[]models.Order]()}
}

// Create persists a new order with status Pending and a store-assigned
// creation timestamp, and returns the assigned id. Required-field validation
// is the caller's job; the store only guarantees the lifecycle fields.
func (s *OrderStore) Create(order *models.Order) (string, error) {
	order.ID = ""
	order.Status = models.StatusPending
	order.Price = nil
	order.DeliveryFileURL = nil
	order.CompletedAt = nil

	if err := s.db.Create(order).Error; err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	s.publish()
	return order.ID, nil
}

// GetByID returns the order with the given id, or ErrNotFound.
func (s *OrderStore) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &order, nil
}

// UpdateStatus overwrites the order's status. Only enum membership is
// validated: any legal status may move to any other, including out of
// Completed and Cancelled. The admin dashboard relies on that to undo
// mistaken changes.
func (s *OrderStore) UpdateStatus(id, status string) error {
	if !models.IsValidOrderStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	res := s.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.publish()
	return nil
}

// CompleteWithDelivery marks the order Completed and records the delivery
// artifact URL, the final price, and the completion time. It is a single
// UPDATE statement, so no subscriber ever observes a Completed order without
// its price and delivery URL, or the reverse.
func (s *OrderStore) CompleteWithDelivery(id, deliveryURL, price string) error {
	now := time.Now()
	res := s.db.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":            models.StatusCompleted,
		"delivery_file_url": deliveryURL,
		"price":             price,
		"completed_at":      now,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to complete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.publish()
	return nil
}

// Delete removes the order permanently. There is no soft-delete or undo.
func (s *OrderStore) Delete(id string) error {
	res := s.db.Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.publish()
	return nil
}

// List returns all orders, newest first.
func (s *OrderStore) List() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Subscribe registers a live listener. The subscriber receives the full
// current order list immediately and again after every mutation from any
// source. The returned cancel function stops delivery and is safe to call
// more than once.
func (s *OrderStore) Subscribe() (<-chan []models.Order, func()) {
	ch, cancel := s.hub.Subscribe()
	// Publish so the new subscriber starts from a current snapshot even if
	// no mutation has happened yet. Existing subscribers just see a
	// redundant identical snapshot.
	s.publish()
	return ch, cancel
}

// publish reloads the full order list and fans it out. Called after every
// committed mutation, never inside one, so partial writes are not observable.
// The reload and the fan-out are one critical section: without it, a writer
// could publish a pre-commit read of another writer after that writer's own
// publish, leaving subscribers on a stale snapshot.
func (s *OrderStore) publish() {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	orders, err := s.List()
	if err != nil {
		log.Printf("order store: failed to load snapshot for subscribers: %v", err)
		return
	}
	s.hub.Publish(orders)
}
