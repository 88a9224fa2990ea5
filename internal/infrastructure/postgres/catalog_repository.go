package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

var (
	_ repository.RangeRepository     = (*RangeRepo)(nil)
	_ repository.FamilyRepository    = (*FamilyRepo)(nil)
	_ repository.PackagingRepository = (*PackagingRepo)(nil)
)

// ─── Gamas ────────────────────────────────────────────────────────────────────

// RangeRepo gamas sobre PostgreSQL (usable con pool o tx).
type RangeRepo struct {
	q Querier
}

// NewRangeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRangeRepository(q Querier) *RangeRepo {
	return &RangeRepo{q: q}
}

func (r *RangeRepo) Create(ctx context.Context, rg *entity.Range) error {
	query := `INSERT INTO ranges (id, name, description) VALUES ($1, $2, $3) RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query, rg.ID, rg.Name, rg.Description).Scan(&rg.CreatedAt, &rg.UpdatedAt)
	if err != nil {
		return mapCatalogErr("insert range", err)
	}
	return nil
}

func (r *RangeRepo) GetByID(ctx context.Context, id string) (*entity.Range, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM ranges WHERE id = $1`
	var rg entity.Range
	err := r.q.QueryRow(ctx, query, id).Scan(&rg.ID, &rg.Name, &rg.Description, &rg.CreatedAt, &rg.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, storeErr("get range", err)
	}
	return &rg, nil
}

// List devuelve las gamas por nombre.
func (r *RangeRepo) List(ctx context.Context) ([]*entity.Range, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM ranges ORDER BY name`)
	if err != nil {
		return nil, storeErr("list ranges", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Range, error) {
		var rg entity.Range
		err := row.Scan(&rg.ID, &rg.Name, &rg.Description, &rg.CreatedAt, &rg.UpdatedAt)
		return &rg, err
	})
	if err != nil {
		return nil, storeErr("list ranges", err)
	}
	return list, nil
}

func (r *RangeRepo) Update(ctx context.Context, rg *entity.Range) error {
	query := `UPDATE ranges SET name = $2, description = $3 WHERE id = $1 RETURNING updated_at`
	err := r.q.QueryRow(ctx, query, rg.ID, rg.Name, rg.Description).Scan(&rg.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return domain.ErrNotFound
		}
		return mapCatalogErr("update range", err)
	}
	return nil
}

// Delete borra la gama; familias y productos caen en cascada.
func (r *RangeRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "ranges", id)
}

// ─── Familias ─────────────────────────────────────────────────────────────────

// FamilyRepo familias sobre PostgreSQL (usable con pool o tx).
type FamilyRepo struct {
	q Querier
}

// NewFamilyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFamilyRepository(q Querier) *FamilyRepo {
	return &FamilyRepo{q: q}
}

const familyColumns = `id, name, range_id, created_at, updated_at`

func (r *FamilyRepo) Create(ctx context.Context, f *entity.Family) error {
	query := `INSERT INTO families (id, name, range_id) VALUES ($1, $2, $3) RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query, f.ID, f.Name, f.RangeID).Scan(&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return mapCatalogErr("insert family", err)
	}
	return nil
}

func (r *FamilyRepo) GetByID(ctx context.Context, id string) (*entity.Family, error) {
	f, err := scanFamily(r.q.QueryRow(ctx, `SELECT `+familyColumns+` FROM families WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, storeErr("get family", err)
	}
	return f, nil
}

// ListByRange familias de la gama por nombre. La colación final la aplica el dominio.
func (r *FamilyRepo) ListByRange(ctx context.Context, rangeID string) ([]*entity.Family, error) {
	return r.list(ctx, `SELECT `+familyColumns+` FROM families WHERE range_id = $1 ORDER BY name, id`, rangeID)
}

func (r *FamilyRepo) List(ctx context.Context) ([]*entity.Family, error) {
	return r.list(ctx, `SELECT `+familyColumns+` FROM families ORDER BY range_id, name, id`)
}

func (r *FamilyRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Family, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list families", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Family, error) {
		return scanFamily(row)
	})
	if err != nil {
		return nil, storeErr("list families", err)
	}
	return list, nil
}

func (r *FamilyRepo) Update(ctx context.Context, f *entity.Family) error {
	query := `UPDATE families SET name = $2, range_id = $3 WHERE id = $1 RETURNING updated_at`
	err := r.q.QueryRow(ctx, query, f.ID, f.Name, f.RangeID).Scan(&f.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return domain.ErrNotFound
		}
		return mapCatalogErr("update family", err)
	}
	return nil
}

// Delete borra la familia; sus productos caen en cascada.
func (r *FamilyRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "families", id)
}

func scanFamily(row pgx.Row) (*entity.Family, error) {
	var f entity.Family
	if err := row.Scan(&f.ID, &f.Name, &f.RangeID, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// ─── Embalajes ────────────────────────────────────────────────────────────────

// PackagingRepo embalajes sobre PostgreSQL (usable con pool o tx).
type PackagingRepo struct {
	q Querier
}

// NewPackagingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPackagingRepository(q Querier) *PackagingRepo {
	return &PackagingRepo{q: q}
}

const packagingColumns = `id, name, code, capacity, unit, created_at, updated_at`

func (r *PackagingRepo) Create(ctx context.Context, p *entity.Packaging) error {
	query := `INSERT INTO packagings (id, name, code, capacity, unit) VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query, p.ID, p.Name, p.Code, p.Capacity, p.Unit).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapCatalogErr("insert packaging", err)
	}
	return nil
}

func (r *PackagingRepo) GetByID(ctx context.Context, id string) (*entity.Packaging, error) {
	p, err := scanPackaging(r.q.QueryRow(ctx, `SELECT `+packagingColumns+` FROM packagings WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, storeErr("get packaging", err)
	}
	return p, nil
}

func (r *PackagingRepo) List(ctx context.Context) ([]*entity.Packaging, error) {
	rows, err := r.q.Query(ctx, `SELECT `+packagingColumns+` FROM packagings ORDER BY name, code`)
	if err != nil {
		return nil, storeErr("list packagings", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Packaging, error) {
		return scanPackaging(row)
	})
	if err != nil {
		return nil, storeErr("list packagings", err)
	}
	return list, nil
}

func (r *PackagingRepo) Update(ctx context.Context, p *entity.Packaging) error {
	query := `UPDATE packagings SET name = $2, code = $3, capacity = $4, unit = $5 WHERE id = $1 RETURNING updated_at`
	err := r.q.QueryRow(ctx, query, p.ID, p.Name, p.Code, p.Capacity, p.Unit).Scan(&p.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return domain.ErrNotFound
		}
		return mapCatalogErr("update packaging", err)
	}
	return nil
}

// Delete borra el embalaje; sus productos caen en cascada.
func (r *PackagingRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "packagings", id)
}

func scanPackaging(row pgx.Row) (*entity.Packaging, error) {
	var p entity.Packaging
	if err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Capacity, &p.Unit, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// ─── helpers ──────────────────────────────────────────────────────────────────

// deleteByID table es siempre una constante interna, nunca entrada del cliente.
func deleteByID(ctx context.Context, q Querier, table, id string) error {
	tag, err := q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return storeErr("delete "+table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// catalogUniqueFields constraint único → campo de la petición.
var catalogUniqueFields = map[string]string{
	"ranges_name_key":        "name",
	"packagings_code_key":    "code",
	"products_reference_key": "reference",
}

func mapCatalogErr(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		field := catalogUniqueFields[constraintOf(err)]
		if field == "" {
			field = "name"
		}
		return domain.FieldErr(field, domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: la jerarquía referenciada ya no existe", domain.ErrInvalidInput)
	}
	return storeErr(op, err)
}
