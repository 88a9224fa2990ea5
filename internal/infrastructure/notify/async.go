package notify

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Stockify-api/internal/application/ports"
	"github.com/jhoicas/Stockify-api/internal/observability/metrics"
	"github.com/jhoicas/Stockify-api/pkg/logger"
)

var _ ports.Notifier = (*AsyncNotifier)(nil)

const sendTimeout = 30 * time.Second

type job struct {
	ctx        context.Context
	recipients []string
	subject    string
	body       string
}

// AsyncNotifier saca el envío de la petición: encola y un worker entrega con next.
// Con la cola llena la notificación se descarta y se registra.
type AsyncNotifier struct {
	next   ports.Notifier
	jobs   chan job
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewAsyncNotifier arranca el worker con una cola de size elementos.
func NewAsyncNotifier(next ports.Notifier, size int) *AsyncNotifier {
	if size <= 0 {
		size = 64
	}
	a := &AsyncNotifier{next: next, jobs: make(chan job, size)}
	a.wg.Add(1)
	go a.run()
	return a
}

// Notify nunca bloquea. El contexto del job conserva el logger de la petición pero no su cancelación.
func (a *AsyncNotifier) Notify(ctx context.Context, recipients []string, subject, body string) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		metrics.ObserveNotification(metrics.NotificationDropped)
		return nil
	}
	j := job{
		ctx:        context.WithoutCancel(ctx),
		recipients: append([]string(nil), recipients...),
		subject:    subject,
		body:       body,
	}
	select {
	case a.jobs <- j:
	default:
		metrics.ObserveNotification(metrics.NotificationDropped)
		logger.FromContext(ctx).Warn().Str("subject", subject).Msg("cola de notificaciones llena, se descarta")
	}
	return nil
}

func (a *AsyncNotifier) run() {
	defer a.wg.Done()
	for j := range a.jobs {
		ctx, cancel := context.WithTimeout(j.ctx, sendTimeout)
		err := a.next.Notify(ctx, j.recipients, j.subject, j.body)
		cancel()
		if err != nil {
			metrics.ObserveNotification(metrics.NotificationFailed)
			logger.FromContext(j.ctx).Warn().Err(err).Str("subject", j.subject).Msg("notificación no enviada")
			continue
		}
		metrics.ObserveNotification(metrics.NotificationSent)
	}
}

// Close deja de aceptar trabajos y espera a que se vacíe la cola.
func (a *AsyncNotifier) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.jobs)
	a.mu.Unlock()
	a.wg.Wait()
}
