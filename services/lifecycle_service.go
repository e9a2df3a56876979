package services

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/ShanAhmd/HiDrawpix/models"
	"github.com/ShanAhmd/HiDrawpix/store"
)

// Delivery precondition errors, checked before any upload begins.
var (
	ErrMissingDeliveryFile = errors.New("a delivery file is required")
	ErrMissingPrice        = errors.New("a final price is required")
)

// DeliveryResult reports the outcome of a successful delivery. EmailSent is
// false for the "delivered, but notification failed" outcome: the artifact and
// order update landed, only the customer email did not go out.
type DeliveryResult struct {
	Order       *models.Order
	DownloadURL string
	EmailSent   bool
	EmailErr    error
}

// LifecycleService owns order status changes and the delivery side-effect.
// It is a thin seam over the store: if legal-transition validation is ever
// introduced (e.g. forbidding Completed -> Pending), it belongs here, not in
// the store or the handlers.
type LifecycleService struct {
	orders  *store.OrderStore
	uploads S3Interface
	email   EmailSender
}

// NewLifecycleService wires the lifecycle controller to its collaborators.
func NewLifecycleService(orders *store.OrderStore, uploads S3Interface, email EmailSender) *LifecycleService {
	return &LifecycleService{orders: orders, uploads: uploads, email: email}
}

// SetStatus updates an order's status. The store validates enum membership;
// any-to-any transitions are allowed on purpose.
func (l *LifecycleService) SetStatus(id, status string) error {
	return l.orders.UpdateStatus(id, status)
}

// Deliver uploads the final artifact, marks the order completed with its
// price, and notifies the customer by email. Steps run strictly in that
// order:
//
//   - an upload failure aborts before any store mutation;
//   - a store failure after a successful upload orphans the uploaded object,
//     which is accepted and logged for manual reconciliation;
//   - an email failure is best-effort and reported in the result, never as an
//     error.
func (l *LifecycleService) Deliver(order *models.Order, file *multipart.FileHeader, price string) (*DeliveryResult, error) {
	if file == nil {
		return nil, ErrMissingDeliveryFile
	}
	if strings.TrimSpace(price) == "" {
		return nil, ErrMissingPrice
	}

	downloadURL, err := l.uploads.UploadFile(file, NamespaceDeliveryFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to upload delivery file: %w", err)
	}

	if err := l.orders.CompleteWithDelivery(order.ID, downloadURL, price); err != nil {
		log.Printf("order %s: store update failed after upload; orphaned object at %s: %v", order.ID, downloadURL, err)
		return nil, fmt.Errorf("failed to complete order: %w", err)
	}

	result := &DeliveryResult{DownloadURL: downloadURL, EmailSent: true}

	if l.email == nil {
		result.EmailSent = false
		result.EmailErr = errors.New("email sender not configured")
	} else if err := l.email.SendDeliveryEmail(order, price, downloadURL); err != nil {
		log.Printf("order %s: delivered but notification email failed: %v", order.ID, err)
		result.EmailSent = false
		result.EmailErr = err
	}

	updated, err := l.orders.GetByID(order.ID)
	if err != nil {
		// The update committed; failing the whole call now would misreport a
		// successful delivery. Fall back to the stale record.
		log.Printf("order %s: failed to reload after delivery: %v", order.ID, err)
		updated = order
	}
	result.Order = updated

	return result, nil
}
