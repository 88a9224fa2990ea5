package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/rbac"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
	"github.com/jhoicas/Stockify-api/pkg/logger"
)

// ProductUseCase casos de uso de productos. Toda escritura re-deriva la referencia dentro de la
// misma transacción serializable.
type ProductUseCase struct {
	products repository.ProductRepository
	tx       CatalogTxRunner
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso. products se usa para lecturas fuera de transacción.
func NewProductUseCase(products repository.ProductRepository, tx CatalogTxRunner) *ProductUseCase {
	return &ProductUseCase{products: products, tx: tx, now: time.Now}
}

// Create crea un producto si la referencia enviada coincide con la derivada.
func (uc *ProductUseCase) Create(ctx context.Context, p rbac.Principal, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if !rbac.Authorize(p, rbac.ManageProducts) {
		return nil, domain.ErrForbidden
	}
	product, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	product.ID = uuid.New().String()

	err = uc.tx.RunCatalog(ctx, func(
		ranges repository.RangeRepository,
		families repository.FamilyRepository,
		packagings repository.PackagingRepository,
		products repository.ProductRepository,
	) error {
		h, err := loadHierarchy(ctx, ranges, families, packagings, product.RangeID, product.FamilyID, product.PackagingID)
		if err != nil {
			return err
		}
		if err := h.validate(product.Reference); err != nil {
			return err
		}
		return products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info().Str("product_id", product.ID).Str("reference", product.Reference).Msg("producto creado")
	return uc.toResponse(product), nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, p rbac.Principal, id string) (*dto.ProductResponse, error) {
	if !rbac.Authorize(p, rbac.ViewCatalog) {
		return nil, domain.ErrForbidden
	}
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(product), nil
}

// Update reemplaza un producto. La referencia se valida contra la jerarquía nueva.
func (uc *ProductUseCase) Update(ctx context.Context, p rbac.Principal, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if !rbac.Authorize(p, rbac.ManageProducts) {
		return nil, domain.ErrForbidden
	}
	product, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	product.ID = id

	err = uc.tx.RunCatalog(ctx, func(
		ranges repository.RangeRepository,
		families repository.FamilyRepository,
		packagings repository.PackagingRepository,
		products repository.ProductRepository,
	) error {
		existing, err := products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		h, err := loadHierarchy(ctx, ranges, families, packagings, product.RangeID, product.FamilyID, product.PackagingID)
		if err != nil {
			return err
		}
		if err := h.validate(product.Reference); err != nil {
			return err
		}
		product.CreatedAt = existing.CreatedAt
		return products.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(product), nil
}

// List lista productos con filtros opcionales por gama y familia.
func (uc *ProductUseCase) List(ctx context.Context, p rbac.Principal, filter repository.ProductFilter, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if !rbac.Authorize(p, rbac.ViewCatalog) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.products.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toList(list, page), nil
}

// ListExpired alertas de caducidad: productos vencidos antes de ref (cero = hoy).
func (uc *ProductUseCase) ListExpired(ctx context.Context, p rbac.Principal, ref time.Time, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if !rbac.Authorize(p, rbac.ViewExpiryAlerts) {
		return nil, domain.ErrForbidden
	}
	if ref.IsZero() {
		ref = uc.now()
	}
	page.DefaultPage()
	list, err := uc.products.ListExpiredBefore(ctx, dto.NewDate(ref).Time, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toList(list, page), nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, p rbac.Principal, id string) error {
	if !rbac.Authorize(p, rbac.ManageProducts) {
		return domain.ErrForbidden
	}
	existing, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.products.Delete(ctx, id)
}

// productFromRequest valida los campos propios del producto (la referencia se valida aparte).
func productFromRequest(in dto.ProductRequest) (*entity.Product, error) {
	name := normalizeName(in.Name)
	if name == "" {
		return nil, domain.FieldErr("name", domain.ErrMissingRequiredField)
	}
	ref := strings.TrimSpace(in.Reference)
	if ref == "" {
		return nil, domain.FieldErr("reference", domain.ErrMissingRequiredField)
	}
	for _, f := range [][2]string{{"range_id", in.RangeID}, {"family_id", in.FamilyID}, {"packaging_id", in.PackagingID}} {
		if _, err := uuid.Parse(f[1]); err != nil {
			return nil, domain.FieldErr(f[0], fmt.Errorf("%w: uuid inválido", domain.ErrInvalidInput))
		}
	}
	if in.Quantity < 0 {
		return nil, domain.FieldErr("quantity", fmt.Errorf("%w: no puede ser negativa", domain.ErrInvalidInput))
	}
	if in.PackagingWeight.IsNegative() {
		return nil, domain.FieldErr("packaging_weight", fmt.Errorf("%w: no puede ser negativo", domain.ErrInvalidInput))
	}
	if in.ManufactureDate.IsZero() {
		return nil, domain.FieldErr("manufacture_date", domain.ErrMissingRequiredField)
	}
	if in.ExpirationDate.IsZero() {
		return nil, domain.FieldErr("expiration_date", domain.ErrMissingRequiredField)
	}
	if in.ExpirationDate.Before(in.ManufactureDate.Time) {
		return nil, domain.FieldErr("expiration_date", fmt.Errorf("%w: anterior a la fecha de fabricación", domain.ErrInvalidInput))
	}
	colors := make([]string, 0, len(in.Colors))
	for _, c := range in.Colors {
		if c = strings.TrimSpace(c); c != "" {
			colors = append(colors, c)
		}
	}
	return &entity.Product{
		Reference:       ref,
		Name:            name,
		Description:     strings.TrimSpace(in.Description),
		RangeID:         in.RangeID,
		FamilyID:        in.FamilyID,
		PackagingID:     in.PackagingID,
		Quantity:        in.Quantity,
		PackagingWeight: in.PackagingWeight,
		Colors:          colors,
		ManufactureDate: dto.NewDate(in.ManufactureDate.Time).Time,
		ExpirationDate:  dto.NewDate(in.ExpirationDate.Time).Time,
	}, nil
}

func (uc *ProductUseCase) toResponse(p *entity.Product) *dto.ProductResponse {
	colors := p.Colors
	if colors == nil {
		colors = []string{}
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		Reference:       p.Reference,
		Name:            p.Name,
		Description:     p.Description,
		RangeID:         p.RangeID,
		FamilyID:        p.FamilyID,
		PackagingID:     p.PackagingID,
		Quantity:        p.Quantity,
		PackagingWeight: p.PackagingWeight,
		Colors:          colors,
		ManufactureDate: dto.NewDate(p.ManufactureDate),
		ExpirationDate:  dto.NewDate(p.ExpirationDate),
		Expired:         p.IsExpired(uc.now()),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (uc *ProductUseCase) toList(list []*entity.Product, page dto.PageRequest) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *uc.toResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}
}
