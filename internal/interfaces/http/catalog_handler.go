package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Stockify-api/internal/application/catalog"
	"github.com/jhoicas/Stockify-api/internal/application/dto"
)

// CatalogHandler gamas, familias y embalajes.
type CatalogHandler struct {
	uc *catalog.HierarchyUseCase
}

func NewCatalogHandler(uc *catalog.HierarchyUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ─── Gamas ────────────────────────────────────────────────────────────────────

// CreateRange godoc
// @Summary      Crear gama
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RangeRequest  true  "nombre y descripción"
// @Success      201   {object}  dto.RangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ranges [post]
func (h *CatalogHandler) CreateRange(c *fiber.Ctx) error {
	var in dto.RangeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateRange(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRanges godoc
// @Summary      Listar gamas con sus familias
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RangeResponse
// @Router       /api/ranges [get]
func (h *CatalogHandler) ListRanges(c *fiber.Ctx) error {
	out, err := h.uc.ListRanges(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetRange godoc
// @Summary      Obtener gama
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la gama"
// @Success      200  {object}  dto.RangeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ranges/{id} [get]
func (h *CatalogHandler) GetRange(c *fiber.Ctx) error {
	out, err := h.uc.GetRange(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateRange godoc
// @Summary      Actualizar gama
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID de la gama"
// @Param        body  body  dto.RangeRequest  true  "nombre y descripción"
// @Success      200   {object}  dto.RangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ranges/{id} [put]
func (h *CatalogHandler) UpdateRange(c *fiber.Ctx) error {
	var in dto.RangeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateRange(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteRange godoc
// @Summary      Eliminar gama (y en cascada sus familias y productos)
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID de la gama"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ranges/{id} [delete]
func (h *CatalogHandler) DeleteRange(c *fiber.Ctx) error {
	if err := h.uc.DeleteRange(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ─── Familias ─────────────────────────────────────────────────────────────────

// CreateFamily godoc
// @Summary      Crear familia
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FamilyRequest  true  "nombre y gama"
// @Success      201   {object}  dto.FamilyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/families [post]
func (h *CatalogHandler) CreateFamily(c *fiber.Ctx) error {
	var in dto.FamilyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateFamily(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListFamilies godoc
// @Summary      Listar familias
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        range_id  query  string  false  "filtrar por gama"
// @Success      200       {array}  dto.FamilyResponse
// @Router       /api/families [get]
func (h *CatalogHandler) ListFamilies(c *fiber.Ctx) error {
	out, err := h.uc.ListFamilies(c.UserContext(), GetPrincipal(c), c.Query("range_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetFamily godoc
// @Summary      Obtener familia
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la familia"
// @Success      200  {object}  dto.FamilyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/families/{id} [get]
func (h *CatalogHandler) GetFamily(c *fiber.Ctx) error {
	out, err := h.uc.GetFamily(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateFamily godoc
// @Summary      Actualizar familia
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la familia"
// @Param        body  body  dto.FamilyRequest  true  "nombre y gama"
// @Success      200   {object}  dto.FamilyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/families/{id} [put]
func (h *CatalogHandler) UpdateFamily(c *fiber.Ctx) error {
	var in dto.FamilyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateFamily(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteFamily godoc
// @Summary      Eliminar familia
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID de la familia"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/families/{id} [delete]
func (h *CatalogHandler) DeleteFamily(c *fiber.Ctx) error {
	if err := h.uc.DeleteFamily(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ─── Embalajes ────────────────────────────────────────────────────────────────

// CreatePackaging godoc
// @Summary      Crear embalaje
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PackagingRequest  true  "nombre, código, capacidad y unidad"
// @Success      201   {object}  dto.PackagingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/packagings [post]
func (h *CatalogHandler) CreatePackaging(c *fiber.Ctx) error {
	var in dto.PackagingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreatePackaging(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPackagings godoc
// @Summary      Listar embalajes
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PackagingResponse
// @Router       /api/packagings [get]
func (h *CatalogHandler) ListPackagings(c *fiber.Ctx) error {
	out, err := h.uc.ListPackagings(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetPackaging godoc
// @Summary      Obtener embalaje
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del embalaje"
// @Success      200  {object}  dto.PackagingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packagings/{id} [get]
func (h *CatalogHandler) GetPackaging(c *fiber.Ctx) error {
	out, err := h.uc.GetPackaging(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdatePackaging godoc
// @Summary      Actualizar embalaje
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del embalaje"
// @Param        body  body  dto.PackagingRequest  true  "nombre, código, capacidad y unidad"
// @Success      200   {object}  dto.PackagingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/packagings/{id} [put]
func (h *CatalogHandler) UpdatePackaging(c *fiber.Ctx) error {
	var in dto.PackagingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdatePackaging(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeletePackaging godoc
// @Summary      Eliminar embalaje
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID del embalaje"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packagings/{id} [delete]
func (h *CatalogHandler) DeletePackaging(c *fiber.Ctx) error {
	if err := h.uc.DeletePackaging(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
