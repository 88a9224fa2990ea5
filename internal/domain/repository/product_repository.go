package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// ProductFilter filtros opcionales del listado de productos.
type ProductFilter struct {
	RangeID  string
	FamilyID string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	// ListExpiredBefore productos con fecha de expiración anterior a ref.
	ListExpiredBefore(ctx context.Context, ref time.Time, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
