package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para el registro base de User (DIP).
// Los métodos Get* devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail busca por email normalizado.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Update modifica campos base y flags; nunca email ni user_type.
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SetPasswordResetRequest fija (o limpia con nil) la marca de reinicio pendiente.
	SetPasswordResetRequest(ctx context.Context, id string, at *time.Time) error
	MarkSSOAuthenticated(ctx context.Context, id string) error
	// ListByType filtra por tipo; tipo vacío lista todos.
	ListByType(ctx context.Context, userType entity.UserType, limit, offset int) ([]*entity.User, error)
	// ListAdministrators usuarios activos superusuario o super_admin.
	ListAdministrators(ctx context.Context) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}

// ProfileRepository persiste los perfiles de extensión (tablas hijas por user_id).
type ProfileRepository interface {
	// Create inserta el perfil según su Kind.
	Create(ctx context.Context, userID string, profile entity.Profile) error
	// GetByUserID carga el perfil esperado para userType; nil si no tiene.
	GetByUserID(ctx context.Context, userID string, userType entity.UserType) (entity.Profile, error)
	Update(ctx context.Context, userID string, profile entity.Profile) error
}
