package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Stockify-api/internal/application/catalog"
	"github.com/jhoicas/Stockify-api/internal/application/identity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
	"github.com/jhoicas/Stockify-api/pkg/logger"
)

var (
	_ identity.IdentityTxRunner = (*TxRunner)(nil)
	_ catalog.CatalogTxRunner   = (*TxRunner)(nil)
)

// serializableAttempts intentos de una transacción del catálogo ante conflictos de serialización.
const serializableAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunIdentity registro base y perfil de extensión en la misma transacción (READ COMMITTED).
func (r *TxRunner) RunIdentity(ctx context.Context, fn func(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
) error) error {
	return r.run(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewProfileRepository(tx))
	})
}

// RunCatalog lectura de jerarquía y escritura de producto en una transacción SERIALIZABLE.
// Un conflicto de serialización reintenta fn entera; fn debe ser idempotente.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	ranges repository.RangeRepository,
	families repository.FamilyRepository,
	packagings repository.PackagingRepository,
	products repository.ProductRepository,
) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	var err error
	for attempt := 1; attempt <= serializableAttempts; attempt++ {
		err = r.run(ctx, opts, func(tx pgx.Tx) error {
			return fn(NewRangeRepository(tx), NewFamilyRepository(tx), NewPackagingRepository(tx), NewProductRepository(tx))
		})
		if !isSerializationFailure(err) || ctx.Err() != nil {
			return err
		}
		logger.FromContext(ctx).Warn().Int("attempt", attempt).Msg("conflicto de serialización en catálogo, reintentando")
	}
	return err
}

// run inicia la transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, fn func(pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return storeErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit transaction", err)
	}
	return nil
}
