package notify

import (
	"context"

	"github.com/jhoicas/Stockify-api/internal/application/ports"
	"github.com/jhoicas/Stockify-api/pkg/logger"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier deja las notificaciones en el log. Se usa cuando no hay SMTP configurado.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, recipients []string, subject, body string) error {
	n.log.Info().
		Strs("recipients", recipients).
		Str("subject", subject).
		Int("body_len", len(body)).
		Msg("notificación")
	return nil
}
