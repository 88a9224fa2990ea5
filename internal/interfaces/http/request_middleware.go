package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Stockify-api/internal/observability/metrics"
	"github.com/jhoicas/Stockify-api/pkg/logger"
)

// RequestLogger adjunta a cada petición un logger con request_id, método y ruta, y al terminar
// registra la petición y sus métricas. Va después de requestid.New().
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID, _ := c.Locals("requestid").(string)
		zl := log.With().
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Logger()
		c.SetUserContext(logger.WithContext(c.UserContext(), zl))

		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler escriba la respuesta antes de leer el status
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		metrics.ObserveHTTPRequest(c.Method(), c.Route().Path, strconv.Itoa(status), elapsed)
		zl.Info().Int("status", status).Dur("elapsed", elapsed).Msg("request")
		return nil
	}
}
