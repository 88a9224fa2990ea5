package notify

import (
	"context"
	"fmt"

	"github.com/jhoicas/Stockify-api/internal/application/ports"
	"github.com/jhoicas/Stockify-api/pkg/config"
	"gopkg.in/gomail.v2"
)

var _ ports.Notifier = (*MailNotifier)(nil)

// sender abstrae el envío SMTP; *gomail.Dialer lo implementa.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailNotifier envía las notificaciones por correo, un mensaje por destinatario.
type MailNotifier struct {
	from   string
	dialer sender
}

// NewMailNotifier construye el notificador SMTP.
func NewMailNotifier(cfg config.SMTPConfig) *MailNotifier {
	return &MailNotifier{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (n *MailNotifier) Notify(ctx context.Context, recipients []string, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}
	msgs := make([]*gomail.Message, 0, len(recipients))
	for _, to := range recipients {
		m := gomail.NewMessage()
		m.SetHeader("From", n.from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/plain", body)
		msgs = append(msgs, m)
	}
	if err := n.dialer.DialAndSend(msgs...); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}
