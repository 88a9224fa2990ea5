package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingQuerier devuelve err en todas las operaciones, como haría el driver.
type failingQuerier struct {
	err error
}

func (f failingQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, f.err
}

func (f failingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, f.err
}

func (f failingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{f.err}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

var invalidUUID = &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation, Message: `invalid input syntax for type uuid: "abc"`}

// ────────────────────────────────────────────────────────────────────────────
// Id malformado = no existe
// ────────────────────────────────────────────────────────────────────────────

func TestGetByID_IdMalformadoNoEsFalloDelAlmacen(t *testing.T) {
	ctx := context.Background()
	q := failingQuerier{err: invalidUUID}

	p, err := NewProductRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, p)

	u, err := NewUserRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, u)

	rg, err := NewRangeRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, rg)

	f, err := NewFamilyRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, f)

	pk, err := NewPackagingRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, pk)

	prof, err := NewProfileRepository(q).GetByUserID(ctx, "abc", entity.UserTypeClientPointVente)
	require.NoError(t, err)
	assert.Nil(t, prof)
}

func TestEscrituras_IdMalformadoEsNotFound(t *testing.T) {
	ctx := context.Background()
	q := failingQuerier{err: invalidUUID}

	assert.ErrorIs(t, NewUserRepository(q).Delete(ctx, "abc"), domain.ErrUserNotFound)
	assert.ErrorIs(t, NewUserRepository(q).UpdatePassword(ctx, "abc", "hash"), domain.ErrUserNotFound)
	assert.ErrorIs(t, NewUserRepository(q).Update(ctx, &entity.User{ID: "abc"}), domain.ErrUserNotFound)
	assert.ErrorIs(t, NewProductRepository(q).Delete(ctx, "abc"), domain.ErrNotFound)
	assert.ErrorIs(t, NewProductRepository(q).Update(ctx, &entity.Product{ID: "abc"}), domain.ErrNotFound)
	assert.ErrorIs(t, NewRangeRepository(q).Update(ctx, &entity.Range{ID: "abc"}), domain.ErrNotFound)
}

func TestGetByID_FalloRealSigueSiendoStoreUnavailable(t *testing.T) {
	q := failingQuerier{err: errors.New("connection refused")}

	_, err := NewProductRepository(q).GetByID(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	err = NewUserRepository(q).Delete(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, domain.ErrUserNotFound)
}
