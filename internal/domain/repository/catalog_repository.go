package repository

import (
	"context"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// RangeRepository puerto de persistencia para gamas. Borrar una gama borra en cascada sus
// familias y productos.
type RangeRepository interface {
	Create(ctx context.Context, r *entity.Range) error
	GetByID(ctx context.Context, id string) (*entity.Range, error)
	List(ctx context.Context) ([]*entity.Range, error)
	Update(ctx context.Context, r *entity.Range) error
	Delete(ctx context.Context, id string) error
}

// FamilyRepository puerto de persistencia para familias.
type FamilyRepository interface {
	Create(ctx context.Context, f *entity.Family) error
	GetByID(ctx context.Context, id string) (*entity.Family, error)
	// ListByRange devuelve las familias de la gama ordenadas por nombre.
	ListByRange(ctx context.Context, rangeID string) ([]*entity.Family, error)
	List(ctx context.Context) ([]*entity.Family, error)
	Update(ctx context.Context, f *entity.Family) error
	Delete(ctx context.Context, id string) error
}

// PackagingRepository puerto de persistencia para embalajes.
type PackagingRepository interface {
	Create(ctx context.Context, p *entity.Packaging) error
	GetByID(ctx context.Context, id string) (*entity.Packaging, error)
	List(ctx context.Context) ([]*entity.Packaging, error)
	Update(ctx context.Context, p *entity.Packaging) error
	Delete(ctx context.Context, id string) error
}
