package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/application/identity"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/rbac"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
	"github.com/jhoicas/Stockify-api/pkg/logger"
)

// UserUseCase administración de usuarios (listados por tipo, edición y baja).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista usuarios filtrados por tipo (vacío = todos). Requiere users.manage.
func (uc *UserUseCase) List(ctx context.Context, p rbac.Principal, userType string, page dto.PageRequest) (*dto.UserListResponse, error) {
	if !rbac.Authorize(p, rbac.ManageUsers) {
		return nil, domain.ErrForbidden
	}
	t := entity.UserType(strings.TrimSpace(userType))
	if t != "" && !t.Valid() {
		return nil, domain.FieldErr("user_type", domain.ErrInvalidUserType)
	}
	page.DefaultPage()
	users, err := uc.repo.ListByType(ctx, t, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *identity.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetByID obtiene un usuario. Permitido a users.manage, al director y al propio usuario.
func (uc *UserUseCase) GetByID(ctx context.Context, p rbac.Principal, id string) (*dto.UserResponse, error) {
	if !rbac.Authorize(p, rbac.ManageUsers) && !rbac.AuthorizeObject(p, rbac.OwnerOrDirector, id) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return identity.ToUserResponse(user), nil
}

// Update modifica campos base. El propio usuario puede editar sus datos pero no sus flags;
// is_active e is_staff quedan para RH y superusuarios.
func (uc *UserUseCase) Update(ctx context.Context, p rbac.Principal, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !rbac.AuthorizeObject(p, rbac.UpdateUsers, id) {
		return nil, domain.ErrForbidden
	}
	privileged := rbac.Authorize(p, rbac.UpdateUsers)
	if !privileged && in.IsActive != nil {
		return nil, domain.FieldErr("is_active", domain.ErrFieldNotEditable)
	}
	if !privileged && in.IsStaff != nil {
		return nil, domain.FieldErr("is_staff", domain.ErrFieldNotEditable)
	}

	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Description != nil {
		user.Description = *in.Description
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.IsStaff != nil {
		user.IsStaff = *in.IsStaff
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return identity.ToUserResponse(user), nil
}

// Delete elimina un usuario y, en cascada, su perfil. Requiere users.delete.
func (uc *UserUseCase) Delete(ctx context.Context, p rbac.Principal, id string) error {
	if !rbac.Authorize(p, rbac.DeleteUsers) {
		return domain.ErrForbidden
	}
	// Nadie se da de baja a sí mismo.
	if id == p.UserID {
		return domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info().Str("user_id", id).Str("deleted_by", p.UserID).Msg("usuario eliminado")
	return nil
}
