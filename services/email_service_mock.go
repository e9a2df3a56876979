package services

import (
	"sync"

	"github.com/ShanAhmd/HiDrawpix/models"
)

// SentEmail records one delivery email captured by the mock
type SentEmail struct {
	OrderID     string
	Recipient   string
	Price       string
	DownloadURL string
}

// MockEmailSender is a mock implementation of EmailSender for testing
type MockEmailSender struct {
	Sent    []SentEmail
	SendErr error // forced error for all sends
	mu      sync.Mutex
}

// NewMockEmailSender creates a new mock email sender
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

// SetAsMockForTesting sets this mock as the global email sender for testing
func (m *MockEmailSender) SetAsMockForTesting() {
	SetEmailSender(m)
}

// SendDeliveryEmail records the email instead of sending it
func (m *MockEmailSender) SendDeliveryEmail(order *models.Order, price, downloadURL string) error {
	if m.SendErr != nil {
		return m.SendErr
	}

	m.mu.Lock()
	m.Sent = append(m.Sent, SentEmail{
		OrderID:     order.ID,
		Recipient:   order.Email,
		Price:       price,
		DownloadURL: downloadURL,
	})
	m.mu.Unlock()
	return nil
}

// SentCount returns the number of captured emails
func (m *MockEmailSender) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
