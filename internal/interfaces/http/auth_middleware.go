package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Stockify-api/internal/domain/rbac"
	"github.com/jhoicas/Stockify-api/internal/observability/metrics"
	"github.com/jhoicas/Stockify-api/pkg/logger"
)

// LocalPrincipal clave de Fiber Locals para el principal autenticado.
const LocalPrincipal = "principal"

// Authenticator valida un token y devuelve el principal. *auth.AuthUseCase lo implementa.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (rbac.Principal, error)
}

// AuthMiddleware valida el Bearer Token y deja el principal en c.Locals. Cualquier fallo
// responde el mismo 403 que una falta de permiso.
func AuthMiddleware(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return forbidden(c)
		}
		principal, err := authn.Authenticate(c.UserContext(), token)
		if err != nil || !principal.Authenticated {
			logger.FromContext(c.UserContext()).Debug().Err(err).Msg("token rechazado")
			return forbidden(c)
		}
		c.Locals(LocalPrincipal, principal)
		ctx := logger.FromContext(c.UserContext()).With().
			Str("user_id", principal.UserID).
			Str("user_type", string(principal.Type)).
			Logger().WithContext(c.UserContext())
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// RequirePermission deniega con 403 si el principal no tiene la capacidad.
func RequirePermission(capability rbac.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if !rbac.Authorize(p, capability) {
			metrics.ObserveDenial(string(capability))
			logger.FromContext(c.UserContext()).Warn().
				Str("capability", string(capability)).
				Str("user_type", string(p.Type)).
				Msg("acceso denegado")
			return forbidden(c)
		}
		return c.Next()
	}
}

// GetPrincipal devuelve el principal de la petición; Anonymous si no pasó por AuthMiddleware.
func GetPrincipal(c *fiber.Ctx) rbac.Principal {
	p, ok := c.Locals(LocalPrincipal).(rbac.Principal)
	if !ok {
		return rbac.Anonymous
	}
	return p
}

// bearerToken extrae el token de "Authorization: Bearer <token>"; "" si falta o está mal formado.
func bearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
