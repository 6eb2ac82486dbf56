// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/lumenwear/storefront-backend/internal/config"
	"github.com/lumenwear/storefront-backend/internal/models"
)

type NotificationService struct {
	config          *config.Config
	settingsService *SettingsService
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(cfg *config.Config, settingsService *SettingsService) *NotificationService {
	return &NotificationService{
		config:          cfg,
		settingsService: settingsService,
	}
}

// SendOrderConfirmation mails the customer once their payment is confirmed.
// Errors are logged and swallowed so a mail outage never blocks an order.
func (s *NotificationService) SendOrderConfirmation(order *models.Order) {
	opts := s.settingsService.MailOptions()
	if !opts.OrderConfirmation {
		return
	}

	data := map[string]interface{}{
		"CustomerName": order.CustomerName,
		"OrderID":      order.ID,
		"Items":        order.Items,
		"Subtotal":     fmt.Sprintf("%.2f", order.Subtotal),
		"ShippingCost": fmt.Sprintf("%.2f", order.ShippingCost),
		"Total":        fmt.Sprintf("%.2f", order.Total),
		"Currency":     order.Currency,
		"StoreName":    s.config.Store.Name,
		"OrderURL":     fmt.Sprintf("%s/orders/%s", s.config.Store.BaseURL, order.ID),
	}

	subject := fmt.Sprintf("Order %s confirmed", order.ID)
	body, err := s.renderTemplate(orderConfirmationTemplate.Body, data)
	if err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to render confirmation email")
		return
	}

	if err := s.sendEmail(order.CustomerEmail, subject, body); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to send confirmation email")
	}
}

// SendShippingNotification mails the customer their tracking details when the
// order moves to shipped.
func (s *NotificationService) SendShippingNotification(order *models.Order) {
	opts := s.settingsService.MailOptions()
	if !opts.ShippingNotification {
		return
	}

	data := map[string]interface{}{
		"CustomerName": order.CustomerName,
		"OrderID":      order.ID,
		"TrackingCode": order.TrackingCode,
		"Courier":      order.Courier,
		"StoreName":    s.config.Store.Name,
	}

	subject := fmt.Sprintf("Order %s is on its way", order.ID)
	body, err := s.renderTemplate(shippingNotificationTemplate.Body, data)
	if err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to render shipping email")
		return
	}

	if err := s.sendEmail(order.CustomerEmail, subject, body); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to send shipping email")
	}
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("Email skipped, SMTP not configured")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.config.Email.FromName, s.config.Email.FromEmail, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

var orderConfirmationTemplate = EmailTemplate{
	Subject: "Order confirmed",
	Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thank you for your order, {{.CustomerName}}!</h2>
	<p>Your order <strong>{{.OrderID}}</strong> has been confirmed.</p>
	<table>
		{{range .Items}}
		<tr>
			<td>{{.Title}} ({{.Size}})</td>
			<td>x{{.Quantity}}</td>
			<td>{{printf "%.2f" .UnitPrice}}</td>
		</tr>
		{{end}}
	</table>
	<p>Subtotal: {{.Subtotal}} {{.Currency}}<br>
	Shipping: {{.ShippingCost}} {{.Currency}}<br>
	<strong>Total: {{.Total}} {{.Currency}}</strong></p>
	<p><a href="{{.OrderURL}}">View your order</a></p>
	<p>Best regards,<br>{{.StoreName}}</p>
</body>
</html>`,
}

var shippingNotificationTemplate = EmailTemplate{
	Subject: "Order shipped",
	Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Good news, {{.CustomerName}}!</h2>
	<p>Your order <strong>{{.OrderID}}</strong> has shipped.</p>
	{{if .TrackingCode}}<p>Tracking: {{.TrackingCode}}{{if .Courier}} via {{.Courier}}{{end}}</p>{{end}}
	<p>Best regards,<br>{{.StoreName}}</p>
</body>
</html>`,
}
