package catalog

import (
	"context"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn en una transacción SERIALIZABLE con los repos del catálogo atados a
// ella. La derivación de la referencia y la escritura del producto ven la misma jerarquía.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		ranges repository.RangeRepository,
		families repository.FamilyRepository,
		packagings repository.PackagingRepository,
		products repository.ProductRepository,
	) error) error
}

// ProductSheet datos de la ficha técnica de un producto.
type ProductSheet struct {
	Product   *entity.Product
	Range     *entity.Range
	Family    *entity.Family
	Packaging *entity.Packaging
}

// SheetGenerator genera el PDF de la ficha técnica.
type SheetGenerator interface {
	GenerateProductSheet(ctx context.Context, sheet ProductSheet) ([]byte, error)
}
