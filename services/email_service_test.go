package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ShanAhmd/HiDrawpix/models"
)

func TestDeliveryEmailBody(t *testing.T) {
	order := &models.Order{
		ID:           "c2a7b6f0-0000-4000-8000-000000000000",
		CustomerName: "Jane Doe",
		Email:        "jane@example.com",
		Service:      "Website Design",
	}
	completedAt := time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)

	body := DeliveryEmailBody(order, "$250.00", "https://bucket.s3.us-east-1.amazonaws.com/delivery-files/1_final.zip", completedAt)

	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, order.ID)
	assert.Contains(t, body, "Website Design")
	assert.Contains(t, body, "$250.00")
	assert.Contains(t, body, "March 14, 2026")
	assert.Contains(t, body, `href="https://bucket.s3.us-east-1.amazonaws.com/delivery-files/1_final.zip"`)
}
