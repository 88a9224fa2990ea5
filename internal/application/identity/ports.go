package identity

import (
	"context"

	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// IdentityTxRunner ejecuta fn dentro de una transacción con repos de usuario y perfil atados a ella.
// Si fn devuelve error se hace rollback de todo.
type IdentityTxRunner interface {
	RunIdentity(ctx context.Context, fn func(
		users repository.UserRepository,
		profiles repository.ProfileRepository,
	) error) error
}
