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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, user_type, first_name, last_name, phone_number, description,
	is_active, is_staff, is_superuser, is_sso_authenticated, last_password_reset_request, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario; created_at/updated_at los fija la base.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, user_type, first_name, last_name, phone_number, description,
			is_active, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, string(user.Type), user.FirstName, user.LastName,
		user.PhoneNumber, user.Description, user.IsActive, user.IsStaff, user.IsSuperuser,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.FieldErr("email", domain.ErrDuplicateEmail)
		}
		return storeErr("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email normalizado.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = $1`, entity.NormalizeEmail(email))
}

// ExistsByEmail informa si el email normalizado ya está registrado.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, entity.NormalizeEmail(email)).Scan(&exists)
	if err != nil {
		return false, storeErr("exists user by email", err)
	}
	return exists, nil
}

// Update modifica campos base y flags. Email, user_type y contraseña no se tocan aquí.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET first_name = $2, last_name = $3, phone_number = $4, description = $5,
			is_active = $6, is_staff = $7, is_superuser = $8
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		user.ID, user.FirstName, user.LastName, user.PhoneNumber, user.Description,
		user.IsActive, user.IsStaff, user.IsSuperuser,
	).Scan(&user.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return domain.ErrUserNotFound
		}
		return storeErr("update user", err)
	}
	return nil
}

// UpdatePassword reemplaza el hash de contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.execOne(ctx, "update password", `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
}

// SetPasswordResetRequest fija o limpia (nil) la marca de reinicio pendiente.
func (r *UserRepo) SetPasswordResetRequest(ctx context.Context, id string, at *time.Time) error {
	return r.execOne(ctx, "set password reset request", `UPDATE users SET last_password_reset_request = $2 WHERE id = $1`, id, at)
}

// MarkSSOAuthenticated marca al usuario como autenticado por SSO.
func (r *UserRepo) MarkSSOAuthenticated(ctx context.Context, id string) error {
	return r.execOne(ctx, "mark sso", `UPDATE users SET is_sso_authenticated = TRUE WHERE id = $1`, id)
}

// ListByType lista usuarios de un tipo (vacío = todos) por fecha de alta descendente.
func (r *UserRepo) ListByType(ctx context.Context, userType entity.UserType, limit, offset int) ([]*entity.User, error) {
	query, args, err := userListQuery(userType, limit, offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users: %w", err)
	}
	return r.list(ctx, "list users", query, args...)
}

func userListQuery(userType entity.UserType, limit, offset int) sq.SelectBuilder {
	b := psql.Select(userColumns).From("users")
	if userType != "" {
		b = b.Where(sq.Eq{"user_type": string(userType)})
	}
	return b.OrderBy("created_at DESC", "id").Limit(uint64(limit)).Offset(uint64(offset))
}

// ListAdministrators usuarios activos que reciben avisos de reinicio de contraseña.
func (r *UserRepo) ListAdministrators(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE is_active AND (is_superuser OR user_type = $1)
		ORDER BY email`
	return r.list(ctx, "list administrators", query, string(entity.UserTypeSuperAdmin))
}

// Delete borra el usuario; el perfil cae en cascada.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, "delete user", `DELETE FROM users WHERE id = $1`, id)
}

func (r *UserRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return u, nil
}

func (r *UserRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return list, nil
}

// execOne ejecuta un UPDATE/DELETE por id; sin filas afectadas devuelve ErrUserNotFound.
func (r *UserRepo) execOne(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrUserNotFound
		}
		return storeErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u        entity.User
		userType string
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &userType, &u.FirstName, &u.LastName, &u.PhoneNumber, &u.Description,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.IsSSOAuthenticated, &u.LastPasswordResetRequest,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Type = entity.UserType(userType)
	return &u, nil
}
