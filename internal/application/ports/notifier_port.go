package ports

import "context"

// Notifier define el puerto de salida para notificaciones a usuarios (email u otro canal).
// El envío es de mejor esfuerzo: el caller registra el error pero nunca deshace su transacción.
type Notifier interface {
	Notify(ctx context.Context, recipients []string, subject, body string) error
}
