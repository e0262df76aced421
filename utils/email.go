package utils

import (
	"fmt"
	"log/slog"

	"github.com/keighl/postmark"

	"storefront/models"
)

// EmailService sends transactional mail through Postmark. With no API token
// configured (local development) it logs instead of sending.
type EmailService struct {
	client  *postmark.Client
	sender  string
	baseURL string
}

// NewEmailService builds the service; token may be empty in dev.
func NewEmailService(token, sender, baseURL string) *EmailService {
	es := &EmailService{sender: sender, baseURL: baseURL}
	if token != "" {
		es.client = postmark.NewClient(token, "")
	}
	return es
}

// SendEmail sends one email to the given recipient.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		slog.Info("email suppressed, no postmark token", "to", toEmail, "subject", subject)
		return nil
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendVerificationEmail mails the account-verification link.
func (es *EmailService) SendVerificationEmail(toEmail, token string) error {
	link := fmt.Sprintf("%s/api/auth/verify-email?token=%s", es.baseURL, token)
	html := fmt.Sprintf(
		"<strong>Please verify your email by clicking on the following link:</strong> <a href=%q>Verify Email</a>",
		link,
	)
	return es.SendEmail(toEmail, "Verify Your Email", html)
}

// SendOrderConfirmationEmail confirms a freshly placed cash-on-delivery
// order.
func (es *EmailService) SendOrderConfirmationEmail(toEmail string, order models.Order) error {
	html := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your order (ID: %s) has been placed and will be paid on delivery.<br><br>Total Amount: <strong>%.2f</strong><br>Items: <strong>%d</strong><br><br>Thank you for shopping with us!",
		order.User.Name,
		order.ID.Hex(),
		order.TotalAmount,
		len(order.Items),
	)
	return es.SendEmail(toEmail, "Order Confirmation", html)
}

// SendOrderStatusEmail notifies the user of an admin status change.
func (es *EmailService) SendOrderStatusEmail(toEmail string, order models.Order) error {
	html := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Your order (ID: %s) is now <strong>%s</strong>.<br><br>Thank you for shopping with us!",
		order.User.Name,
		order.ID.Hex(),
		order.Status,
	)
	return es.SendEmail(toEmail, "Order Update", html)
}
