package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/rbac"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// SheetUseCase genera la ficha técnica (PDF) de un producto.
type SheetUseCase struct {
	products   repository.ProductRepository
	ranges     repository.RangeRepository
	families   repository.FamilyRepository
	packagings repository.PackagingRepository
	generator  SheetGenerator
}

// NewSheetUseCase construye el caso de uso inyectando todas sus dependencias.
func NewSheetUseCase(
	products repository.ProductRepository,
	ranges repository.RangeRepository,
	families repository.FamilyRepository,
	packagings repository.PackagingRepository,
	generator SheetGenerator,
) *SheetUseCase {
	return &SheetUseCase{
		products:   products,
		ranges:     ranges,
		families:   families,
		packagings: packagings,
		generator:  generator,
	}
}

// DownloadProductSheet carga el producto con su jerarquía y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el producto no existe.
//   - domain.ErrForbidden        sin catalog.view.
func (uc *SheetUseCase) DownloadProductSheet(ctx context.Context, p rbac.Principal, productID string) (pdfBytes []byte, filename string, err error) {
	if !rbac.Authorize(p, rbac.ViewCatalog) {
		return nil, "", domain.ErrForbidden
	}

	// ── 1. Cargar producto ────────────────────────────────────────────────────
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, "", fmt.Errorf("ficha: obtener producto: %w", err)
	}
	if product == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Cargar jerarquía (borrado en cascada: si existe el producto, existe su jerarquía) ──
	r, err := uc.ranges.GetByID(ctx, product.RangeID)
	if err != nil {
		return nil, "", fmt.Errorf("ficha: obtener gama: %w", err)
	}
	f, err := uc.families.GetByID(ctx, product.FamilyID)
	if err != nil {
		return nil, "", fmt.Errorf("ficha: obtener familia: %w", err)
	}
	pk, err := uc.packagings.GetByID(ctx, product.PackagingID)
	if err != nil {
		return nil, "", fmt.Errorf("ficha: obtener embalaje: %w", err)
	}
	if r == nil || f == nil || pk == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateProductSheet(ctx, ProductSheet{Product: product, Range: r, Family: f, Packaging: pk})
	if err != nil {
		return nil, "", fmt.Errorf("ficha: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("fiche_%s.pdf", product.Reference), nil
}
