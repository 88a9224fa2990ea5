package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, reference, name, description, range_id, family_id, packaging_id, quantity,
	packaging_weight, colors, manufacture_date, expiration_date, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, reference, name, description, range_id, family_id, packaging_id, quantity,
			packaging_weight, colors, manufacture_date, expiration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query, productArgs(product)...).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return mapCatalogErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, storeErr("get product", err)
	}
	return p, nil
}

// Update reemplaza todos los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET reference = $2, name = $3, description = $4, range_id = $5, family_id = $6,
			packaging_id = $7, quantity = $8, packaging_weight = $9, colors = $10, manufacture_date = $11,
			expiration_date = $12
		WHERE id = $1
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query, productArgs(product)...).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return domain.ErrNotFound
		}
		return mapCatalogErr("update product", err)
	}
	return nil
}

// List lista productos por referencia con filtros opcionales por gama y familia.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, "list products", productListQuery(filter, limit, offset))
}

// ListExpiredBefore productos con expiration_date < ref, los más antiguos primero.
func (r *ProductRepo) ListExpiredBefore(ctx context.Context, ref time.Time, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, "list expired products", expiredListQuery(ref, limit, offset))
}

func productListQuery(filter repository.ProductFilter, limit, offset int) sq.SelectBuilder {
	b := psql.Select(productColumns).From("products")
	if filter.RangeID != "" {
		b = b.Where(sq.Eq{"range_id": filter.RangeID})
	}
	if filter.FamilyID != "" {
		b = b.Where(sq.Eq{"family_id": filter.FamilyID})
	}
	return b.OrderBy("reference", "id").Limit(uint64(limit)).Offset(uint64(offset))
}

func expiredListQuery(ref time.Time, limit, offset int) sq.SelectBuilder {
	return psql.Select(productColumns).From("products").
		Where(sq.Lt{"expiration_date": ref}).
		OrderBy("expiration_date", "reference").
		Limit(uint64(limit)).Offset(uint64(offset))
}

// Delete elimina un producto.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "products", id)
}

func (r *ProductRepo) list(ctx context.Context, op string, b sq.SelectBuilder) ([]*entity.Product, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, storeErr(op, err)
	}
	return list, nil
}

func productArgs(p *entity.Product) []any {
	colors := p.Colors
	if colors == nil {
		colors = []string{}
	}
	return []any{
		p.ID, p.Reference, p.Name, p.Description, p.RangeID, p.FamilyID, p.PackagingID, p.Quantity,
		p.PackagingWeight, colors, p.ManufactureDate, p.ExpirationDate,
	}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Reference, &p.Name, &p.Description, &p.RangeID, &p.FamilyID, &p.PackagingID, &p.Quantity,
		&p.PackagingWeight, &p.Colors, &p.ManufactureDate, &p.ExpirationDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
