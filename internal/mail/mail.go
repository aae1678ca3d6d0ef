package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/smartstock/inventory_shop/internal/config"
	"github.com/smartstock/inventory_shop/internal/models"
)

// Sender delivers guest-facing mail. A nil Sender disables delivery; order
// placement never fails on a mail error.
type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		host: cfg.SMTP_HOST,
		port: cfg.SMTP_PORT,
		user: cfg.SMTP_USER,
		pass: cfg.SMTP_PASS,
		from: cfg.SMTP_FROM,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := s.host + ":" + s.port
	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}

// OrderConfirmation renders the plain-text confirmation for a placed order.
func OrderConfirmation(order *models.Order) (subject, body string) {
	subject = fmt.Sprintf("Order #%d confirmed", order.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", order.GuestName)
	fmt.Fprintf(&b, "Your order #%d was placed on %s.\n\n", order.ID, order.OrderDate.Format("2006-01-02 15:04"))
	for _, it := range order.Items {
		fmt.Fprintf(&b, "  product %d x%d @ %.2f = %.2f\n", it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice())
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\nStatus: %s\n", order.TotalPrice, order.Status)
	return subject, b.String()
}
