// Package email provides the email client for sending transactional emails.
package email

import (
	"fmt"

	"github.com/resendlabs/resend-go"

	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
	"github.com/brightloom/storefront-go/internal/infrastructure/email/templates"
	"github.com/brightloom/storefront-go/pkg/config"
)

// Service defines the interface for sending emails, allowing for mock
// implementations in tests.
type Service interface {
	SendOrderReceipt(toEmail, name string, order *commerce.Order) error
}

// ResendClient is the concrete implementation of the email Service using the
// Resend API.
type ResendClient struct {
	client    *resend.Client
	fromEmail string
	fromName  string
}

// NewService creates a new email service client, returning the Service
// interface.
func NewService() (Service, error) {
	if config.ResendAPIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is required")
	}

	return &ResendClient{
		client:    resend.NewClient(config.ResendAPIKey),
		fromEmail: config.OrderEmailFrom,
		fromName:  config.OrderEmailName,
	}, nil
}

// SendOrderReceipt composes and sends the order confirmation email.
func (c *ResendClient) SendOrderReceipt(toEmail, name string, order *commerce.Order) error {
	items := make([]templates.ReceiptItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = templates.ReceiptItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	htmlContent := templates.GetOrderReceiptEmail(templates.ReceiptProps{
		Name:            name,
		OrderID:         order.ID,
		Items:           items,
		Subtotal:        order.Subtotal,
		Tax:             order.Tax,
		ShippingCharges: order.ShippingCharges,
		Discount:        order.Discount,
		Total:           order.Total,
	})

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Order confirmation %s", order.ID),
		Html:    htmlContent,
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send order receipt via Resend: %w", err)
	}
	return nil
}
