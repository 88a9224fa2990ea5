package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Stockify-api/internal/application/catalog"
	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// ProductHandler productos, referencias y ficha técnica.
type ProductHandler struct {
	uc         *catalog.ProductUseCase
	references *catalog.ReferenceService
	sheets     *catalog.SheetUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.ProductUseCase, references *catalog.ReferenceService, sheets *catalog.SheetUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, references: references, sheets: sheets}
}

// Create godoc
// @Summary      Crear producto
// @Description  La referencia debe coincidir con la derivada de gama, familia y embalaje.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        range_id   query  string  false  "filtrar por gama"
// @Param        family_id  query  string  false  "filtrar por familia"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200        {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{RangeID: c.Query("range_id"), FamilyID: c.Query("family_id")}
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c), filter, pageOf(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListExpired godoc
// @Summary      Alertas de caducidad
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        before  query  string  false  "fecha de referencia YYYY-MM-DD (hoy por defecto)"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/products/expired [get]
func (h *ProductHandler) ListExpired(c *fiber.Ctx) error {
	var ref dto.Date
	if s := c.Query("before"); s != "" {
		d, err := dto.ParseDate(s)
		if err != nil {
			return writeError(c, domain.FieldErr("before", domain.ErrInvalidInput))
		}
		ref = d
	}
	out, err := h.uc.ListExpired(c.UserContext(), GetPrincipal(c), ref.Time, pageOf(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos completos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PreviewReference godoc
// @Summary      Referencia derivada de gama, familia y embalaje
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        range_id      query  string  true  "ID de la gama"
// @Param        family_id     query  string  true  "ID de la familia"
// @Param        packaging_id  query  string  true  "ID del embalaje"
// @Success      200           {object}  dto.ReferencePreviewResponse
// @Failure      400           {object}  dto.ErrorResponse
// @Router       /api/products/reference [get]
func (h *ProductHandler) PreviewReference(c *fiber.Ctx) error {
	ref, err := h.references.DeriveReference(c.UserContext(), GetPrincipal(c),
		c.Query("range_id"), c.Query("family_id"), c.Query("packaging_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ReferencePreviewResponse{Reference: ref})
}

// ValidateReference godoc
// @Summary      Comprobar una referencia propuesta
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReferenceValidationRequest  true  "jerarquía y referencia"
// @Success      200   {object}  dto.ReferenceValidationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/reference/validate [post]
func (h *ProductHandler) ValidateReference(c *fiber.Ctx) error {
	var in dto.ReferenceValidationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ok, err := h.references.ValidateReference(c.UserContext(), GetPrincipal(c), in.RangeID, in.FamilyID, in.PackagingID, in.Reference)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ReferenceValidationResponse{Valid: ok})
}

// DownloadSheet godoc
// @Summary      Ficha técnica del producto en PDF
// @Tags         products
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/sheet [get]
func (h *ProductHandler) DownloadSheet(c *fiber.Ctx) error {
	pdf, filename, err := h.sheets.DownloadProductSheet(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}
