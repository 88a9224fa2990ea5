package http

import (
	"errors"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/pkg/logger"
)

// Códigos de error del cuerpo de respuesta.
const (
	CodeInvalidBody      = "INVALID_BODY"
	CodeValidation       = "VALIDATION"
	CodeDuplicate        = "DUPLICATE"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternal         = "INTERNAL"
)

// forbiddenBody único cuerpo de denegación: token ausente, inválido, revocado o tipo sin permiso.
var forbiddenBody = dto.ErrorResponse{Code: CodeForbidden, Message: "acceso denegado"}

// writeError traduce un error de la capa de aplicación a su respuesta HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	if status >= fiber.StatusInternalServerError {
		logger.FromContext(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("error de servidor")
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	}
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	field := domain.FieldOf(err)
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, forbiddenBody
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeUnauthorized, Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrDuplicateEmail), errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeDuplicate, Message: messageOf(err), Field: field}
	case domain.IsValidation(err):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: messageOf(err), Field: field}
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: CodeStoreUnavailable, Message: "servicio no disponible, reintente"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: "error interno"}
	}
}

// messageOf mensaje del error sin el prefijo del campo, que ya va en Field.
func messageOf(err error) string {
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		return fe.Err.Error()
	}
	return err.Error()
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(forbiddenBody)
}
