package services

import (
	"fmt"
	"net/smtp"
	"time"

	appConfig "github.com/ShanAhmd/HiDrawpix/config"
	"github.com/ShanAhmd/HiDrawpix/models"
)

// EmailSender sends the delivery notification to a customer. Failures are
// best-effort for callers: the artifact is already delivered server-side, so
// a failed email never rolls anything back.
type EmailSender interface {
	SendDeliveryEmail(order *models.Order, price, downloadURL string) error
}

// SMTPEmailSender sends mail through a plain SMTP relay.
type SMTPEmailSender struct {
	host     string
	port     string
	username string
	password string
}

var emailSenderInstance EmailSender

// InitEmailSender initializes the SMTP sender from configuration
func InitEmailSender() (EmailSender, error) {
	cfg := appConfig.GetConfig()

	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST not set")
	}
	if cfg.SMTPUser == "" {
		return nil, fmt.Errorf("SMTP_USER not set")
	}
	if cfg.SMTPPass == "" {
		return nil, fmt.Errorf("SMTP_PASS not set")
	}

	emailSenderInstance = &SMTPEmailSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPass,
	}
	return emailSenderInstance, nil
}

// GetEmailSender returns the initialized email sender instance
func GetEmailSender() EmailSender {
	return emailSenderInstance
}

// SetEmailSender sets the email sender instance (primarily for testing)
func SetEmailSender(sender EmailSender) {
	emailSenderInstance = sender
}

// SendDeliveryEmail sends the order-completed summary to the customer.
func (s *SMTPEmailSender) SendDeliveryEmail(order *models.Order, price, downloadURL string) error {
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	subject := fmt.Sprintf("Your %s order is ready!", order.Service)
	body := DeliveryEmailBody(order, price, downloadURL, time.Now())

	msg := []byte(
		"From: Hi Drawpix Team <" + s.username + ">\r\n" +
			"To: " + order.Email + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	if err := smtp.SendMail(addr, auth, s.username, []string{order.Email}, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// DeliveryEmailBody renders the templated delivery summary: order id,
// service, price, download link, and completion date.
func DeliveryEmailBody(order *models.Order, price, downloadURL string, completedAt time.Time) string {
	return fmt.Sprintf(`<p>Hi %s,</p>
<p>Great news! Your order has been completed and delivered.</p>
<ul>
  <li><strong>Order ID:</strong> %s</li>
  <li><strong>Service:</strong> %s</li>
  <li><strong>Final Price:</strong> %s</li>
  <li><strong>Completed On:</strong> %s</li>
</ul>
<p><a href="%s">Download your files</a></p>
<p>Thank you for choosing Hi Drawpix!</p>`,
		order.CustomerName,
		order.ID,
		order.Service,
		price,
		completedAt.Format("January 2, 2006"),
		downloadURL,
	)
}
