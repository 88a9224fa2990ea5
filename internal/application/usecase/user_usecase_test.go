package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/application/usecase"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/rbac"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo implementa lo que usa UserUseCase; el resto del puerto entra en pánico.
type fakeUserRepo struct {
	repository.UserRepository
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ListByType(_ context.Context, t entity.UserType, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if t == "" || u.Type == t {
			out = append(out, u)
		}
	}
	return out, nil
}

func user(id string, t entity.UserType) *entity.User {
	return &entity.User{ID: id, Email: id + "@stockify.test", Type: t, IsActive: true}
}

func principal(u *entity.User) rbac.Principal { return rbac.PrincipalOf(u) }

func ptr[T any](v T) *T { return &v }

var (
	rh       = user("rh-1", entity.UserTypeRH)
	dir      = user("dir-1", entity.UserTypeDirector)
	cpt      = user("cpt-1", entity.UserTypeComptable)
	reseller = user("rev-1", entity.UserTypeClientRevendeur)
)

// ────────────────────────────────────────────────────────────────────────────
// List
// ────────────────────────────────────────────────────────────────────────────

func TestUserList_PorTipo(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo(rh, dir, cpt, reseller))

	out, err := uc.List(context.Background(), principal(rh), "client_revendeur", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "rev-1", out.Items[0].ID)

	out, err = uc.List(context.Background(), principal(dir), "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 4)
}

func TestUserList_TipoInvalidoYProhibido(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo(rh))

	_, err := uc.List(context.Background(), principal(rh), "cliente", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidUserType)
	assert.Equal(t, "user_type", domain.FieldOf(err))

	_, err = uc.List(context.Background(), principal(cpt), "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ────────────────────────────────────────────────────────────────────────────
// GetByID
// ────────────────────────────────────────────────────────────────────────────

func TestUserGetByID_DuenoODirector(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo(rh, dir, cpt, reseller))

	_, err := uc.GetByID(context.Background(), principal(reseller), "rev-1")
	assert.NoError(t, err)
	_, err = uc.GetByID(context.Background(), principal(dir), "rev-1")
	assert.NoError(t, err)
	_, err = uc.GetByID(context.Background(), principal(cpt), "rev-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.GetByID(context.Background(), principal(rh), "nadie")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ────────────────────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────────────────────

func TestUserUpdate_RHPuedeDesactivar(t *testing.T) {
	repo := newFakeUserRepo(rh, cpt)
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Update(context.Background(), principal(rh), "cpt-1", dto.UpdateUserRequest{IsActive: ptr(false), FirstName: ptr(" Anne ")})
	require.NoError(t, err)
	assert.False(t, out.IsActive)
	assert.Equal(t, "Anne", repo.users["cpt-1"].FirstName)
}

func TestUserUpdate_PropioUsuarioSinFlags(t *testing.T) {
	repo := newFakeUserRepo(cpt)
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Update(context.Background(), principal(cpt), "cpt-1", dto.UpdateUserRequest{PhoneNumber: ptr("0600000000")})
	require.NoError(t, err)
	assert.Equal(t, "0600000000", repo.users["cpt-1"].PhoneNumber)

	_, err = uc.Update(context.Background(), principal(cpt), "cpt-1", dto.UpdateUserRequest{IsStaff: ptr(true)})
	assert.ErrorIs(t, err, domain.ErrFieldNotEditable)
	assert.Equal(t, "is_staff", domain.FieldOf(err))

	_, err = uc.Update(context.Background(), principal(cpt), "rev-1", dto.UpdateUserRequest{FirstName: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ────────────────────────────────────────────────────────────────────────────
// Delete
// ────────────────────────────────────────────────────────────────────────────

func TestUserDelete(t *testing.T) {
	repo := newFakeUserRepo(rh, dir, cpt)
	uc := usecase.NewUserUseCase(repo)

	assert.ErrorIs(t, uc.Delete(context.Background(), principal(dir), "cpt-1"), domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(context.Background(), principal(rh), "rh-1"), domain.ErrForbidden)
	require.NoError(t, uc.Delete(context.Background(), principal(rh), "cpt-1"))
	assert.NotContains(t, repo.users, "cpt-1")
	assert.ErrorIs(t, uc.Delete(context.Background(), principal(rh), "cpt-1"), domain.ErrUserNotFound)
}
