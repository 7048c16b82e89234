package sendgrid

import (
	"context"
	"fmt"
	"strings"

	"github.com/arnavkapoor/storefront-platform/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, toEmail string, order *models.Order) error
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey string, fromEmail string, fromName string) EmailService {
	return &emailService{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

// SendOrderConfirmation implements EmailService.
func (e *emailService) SendOrderConfirmation(ctx context.Context, toEmail string, order *models.Order) error {

	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail("", toEmail)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	personalization.Subject = fmt.Sprintf("Order confirmation %s", order.ID)
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", plainTextBody(order)))
	message.AddContent(mail.NewContent("text/html", htmlBody(order)))

	// send the email
	response, err := e.client.SendWithContext(ctx, message)

	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

func plainTextBody(order *models.Order) string {

	var b strings.Builder

	fmt.Fprintf(&b, "Thanks for your order!\n\nOrder %s\n\n", order.ID)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "%d x %s @ %.2f\n", item.Quantity, item.Product.Title, item.Product.Price)
	}

	fmt.Fprintf(&b, "\nTotal: %.2f\n", order.Total)

	return b.String()
}

func htmlBody(order *models.Order) string {

	var b strings.Builder

	fmt.Fprintf(&b, "<h2>Thanks for your order!</h2><p>Order <strong>%s</strong></p><ul>", order.ID)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%d x %s @ %.2f</li>", item.Quantity, item.Product.Title, item.Product.Price)
	}

	fmt.Fprintf(&b, "</ul><p>Total: <strong>%.2f</strong></p>", order.Total)

	return b.String()
}
