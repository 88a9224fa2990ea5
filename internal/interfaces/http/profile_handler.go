package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/application/identity"
)

// ProfileHandler perfil propio, contraseña y reinicio.
type ProfileHandler struct {
	svc *identity.ProfileService
}

func NewProfileHandler(svc *identity.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// GetMe godoc
// @Summary      Perfil del usuario autenticado
// @Tags         profile
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *ProfileHandler) GetMe(c *fiber.Ctx) error {
	out, err := h.svc.GetOwnProfile(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PatchMe godoc
// @Summary      Modificar el propio perfil
// @Description  Solo los campos editables para el tipo de usuario; email y user_type se rechazan.
// @Tags         profile
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "campos a modificar"
// @Success      200   {object}  dto.ProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/me [patch]
func (h *ProfileHandler) PatchMe(c *fiber.Ctx) error {
	var patch dto.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.UpdateOwnProfile(c.UserContext(), GetPrincipal(c), patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar la propia contraseña
// @Tags         profile
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "contraseña actual y nueva"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/me/password [post]
func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.svc.ChangePassword(c.UserContext(), GetPrincipal(c), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "contraseña modificada"})
}

// RequestPasswordReset godoc
// @Summary      Pedir reinicio de contraseña
// @Description  La respuesta es la misma exista o no la cuenta.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PasswordResetRequest  true  "email"
// @Success      202   {object}  dto.MessageResponse
// @Router       /api/auth/password-reset [post]
func (h *ProfileHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var in dto.PasswordResetRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.svc.RequestPasswordReset(c.UserContext(), in.Email); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.MessageResponse{
		Message: "si la cuenta existe, un administrador revisará la solicitud",
	})
}

// ConfirmPasswordReset godoc
// @Summary      Fijar contraseña de un usuario (super admin)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID del usuario"
// @Param        body  body  dto.ConfirmPasswordResetRequest  true  "contraseña nueva"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/password-reset [post]
func (h *ProfileHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var in dto.ConfirmPasswordResetRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.svc.ConfirmPasswordReset(c.UserContext(), GetPrincipal(c), c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "contraseña reiniciada"})
}
