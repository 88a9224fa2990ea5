package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockify_http_requests_total",
		Help: "Total de peticiones HTTP",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stockify_http_request_duration_seconds",
		Help:    "Duración de las peticiones HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockify_login_attempts_total",
		Help: "Intentos de login por resultado",
	}, []string{"result"})

	accessDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockify_access_denials_total",
		Help: "Accesos denegados por permiso",
	}, []string{"permission"})

	notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockify_notifications_total",
		Help: "Notificaciones por resultado (sent, failed, dropped)",
	}, []string{"result"})

	usersProvisioned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockify_users_provisioned_total",
		Help: "Usuarios creados por tipo",
	}, []string{"user_type"})
)

// Resultados de notificación.
const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationDropped = "dropped"
)

// ObserveHTTPRequest registra una petición HTTP. route es la plantilla de la ruta, no la URL real.
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveLogin cuenta un intento de login.
func ObserveLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	loginAttempts.WithLabelValues(result).Inc()
}

// ObserveDenial cuenta un acceso denegado.
func ObserveDenial(permission string) {
	accessDenials.WithLabelValues(permission).Inc()
}

// ObserveNotification cuenta una notificación con su resultado.
func ObserveNotification(result string) {
	notifications.WithLabelValues(result).Inc()
}

// ObserveProvisioned cuenta un alta de usuario.
func ObserveProvisioned(userType string) {
	usersProvisioned.WithLabelValues(userType).Inc()
}
