package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/eliezer-r/storefront-platform/internal/config"
	"github.com/eliezer-r/storefront-platform/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Sender interface {
	SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error
}

type sendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridSender(cfg config.SendGrid) Sender {
	return &sendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (s *sendGridSender) SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", to))
	personalization.Subject = fmt.Sprintf("Order confirmation %s", order.ID)
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", plainBody(order)))
	message.AddContent(mail.NewContent("text/html", htmlBody(order)))

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

func plainBody(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Thank you for your order %s.\n\n", order.ID)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "%d x %s - $%.2f\n", item.Quantity, item.ProductTitle, item.Price)
	}

	fmt.Fprintf(&b, "\nSubtotal: $%.2f\nShipping: $%.2f\nTax: $%.2f\nTotal: $%.2f\n",
		order.Total, order.Shipping, order.Tax, order.FinalTotal)

	return b.String()
}

func htmlBody(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h2>Thank you for your order</h2><p>Order %s</p><ul>", order.ID)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%d x %s - $%.2f</li>", item.Quantity, item.ProductTitle, item.Price)
	}

	fmt.Fprintf(&b, "</ul><p>Subtotal: $%.2f<br>Shipping: $%.2f<br>Tax: $%.2f<br><strong>Total: $%.2f</strong></p>",
		order.Total, order.Shipping, order.Tax, order.FinalTotal)

	return b.String()
}
