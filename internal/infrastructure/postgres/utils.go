package postgres

import (
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Stockify-api/internal/domain"
)

// psql builder de squirrel con placeholders $n de PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func pgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	pgErr := pgError(err)
	return pgErr != nil && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	pgErr := pgError(err)
	return pgErr != nil && pgErr.Code == pgerrcode.ForeignKeyViolation
}

// isSerializationFailure 40001/40P01: la transacción serializable puede reintentarse entera.
func isSerializationFailure(err error) bool {
	pgErr := pgError(err)
	return pgErr != nil && (pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected)
}

// isInvalidText 22P02: el id recibido no es un uuid válido.
func isInvalidText(err error) bool {
	pgErr := pgError(err)
	return pgErr != nil && pgErr.Code == pgerrcode.InvalidTextRepresentation
}

// noRows sin fila o id malformado: para el caller ambos son "no existe".
func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidText(err)
}

// constraintOf nombre del constraint violado, o "".
func constraintOf(err error) string {
	if pgErr := pgError(err); pgErr != nil {
		return pgErr.ConstraintName
	}
	return ""
}

// storeErr envuelve un fallo del driver como ErrStoreUnavailable conservando el error original.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
