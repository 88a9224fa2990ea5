package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/application/identity"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/rbac"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var (
	superuser = rbac.Principal{UserID: "admin-1", Type: entity.UserTypeSuperAdmin, IsSuperuser: true, Authenticated: true}
	rhUser    = rbac.Principal{UserID: "rh-1", Type: entity.UserTypeRH, Authenticated: true}
	director  = rbac.Principal{UserID: "dir-1", Type: entity.UserTypeDirector, Authenticated: true}
)

func newProvisioning(store *memStore) *identity.ProvisioningService {
	return identity.NewProvisioningService(store.Users(), store, identity.WithBcryptCost(bcrypt.MinCost))
}

func industrialPayload() dto.RegisterUserRequest {
	return dto.RegisterUserRequest{
		Email:                  "Compras@Acme.example",
		Password:               "s3cret-pass",
		PasswordConfirmation:   "s3cret-pass",
		UserType:               dto.RegisterProfessionalClient,
		ProfessionalClientType: "industrial",
		FirstName:              "Ana",
		LastName:               "Martín",
		CompanyName:            "Acme SA",
		CompanyAddress:         "1 rue de la Paix",
		TaxID:                  "FR123",
		SectorActivity:         "Construcción",
		DeliveryAddresses: []dto.DeliveryAddress{
			{Label: "Almacén", Street: "2 av. Foch", City: "Lyon", PostalCode: "69000", Country: "FR"},
		},
	}
}

func resellerPayload() dto.RegisterUserRequest {
	est := decimal.NewFromInt(1500)
	return dto.RegisterUserRequest{
		Email:                  "ventas@reventa.example",
		Password:               "s3cret-pass",
		PasswordConfirmation:   "s3cret-pass",
		UserType:               dto.RegisterProfessionalClient,
		ProfessionalClientType: "reseller_client",
		CompanyName:            "Reventa SARL",
		CompanyAddress:         "3 bd Voltaire",
		TaxID:                  "FR456",
		ResaleArea:             "Île-de-France",
		MonthlyEstimate:        &est,
	}
}

func assertField(t *testing.T, err error, target error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, target), "se esperaba %v, llegó %v", target, err)
	assert.Equal(t, field, domain.FieldOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos felices
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_ClienteIndustrial_CreaUsuarioYPerfil(t *testing.T) {
	store := newMemStore()
	out, err := newProvisioning(store).Register(context.Background(), superuser, industrialPayload())
	require.NoError(t, err)

	assert.Equal(t, "client_industriel", out.UserType)
	assert.Equal(t, "compras@acme.example", out.Email, "el email se normaliza")
	assert.True(t, out.IsActive)

	require.Len(t, store.users, 1)
	require.Len(t, store.profiles, 1)
	prof, ok := store.profiles[out.ID].(*entity.IndustrialProfile)
	require.True(t, ok)
	assert.Equal(t, entity.ClientCategoryIndustrial, prof.ClientCategory, "la categoría se deriva, no se envía")
	assert.Equal(t, "Construcción", prof.SectorActivity)
	assert.Len(t, prof.DeliveryAddresses, 1)

	stored := store.users[out.ID]
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestRegister_ClienteRevendedor_AliasAceptado(t *testing.T) {
	store := newMemStore()
	out, err := newProvisioning(store).Register(context.Background(), rhUser, resellerPayload())
	require.NoError(t, err)

	assert.Equal(t, "client_revendeur", out.UserType)
	prof, ok := store.profiles[out.ID].(*entity.ResellerProfile)
	require.True(t, ok)
	assert.Equal(t, entity.ClientCategoryReseller, prof.ClientCategory)
	assert.True(t, prof.MonthlyEstimate.Equal(decimal.NewFromInt(1500)))
}

func TestRegister_ClienteIndividual_PuntoDeVenta(t *testing.T) {
	store := newMemStore()
	out, err := newProvisioning(store).Register(context.Background(), superuser, dto.RegisterUserRequest{
		Email:                "tienda@example.com",
		Password:             "12345678",
		PasswordConfirmation: "12345678",
		UserType:             dto.RegisterIndividualClient,
		StoreCode:            "PV-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "client_point_vente", out.UserType)
	prof, ok := store.profiles[out.ID].(*entity.RetailPointProfile)
	require.True(t, ok)
	assert.Equal(t, "PV-01", prof.StoreCode)
}

func TestRegister_Empleado_SinPerfil(t *testing.T) {
	store := newMemStore()
	out, err := newProvisioning(store).Register(context.Background(), superuser, dto.RegisterUserRequest{
		Email:                "operario@example.com",
		Password:             "12345678",
		PasswordConfirmation: "12345678",
		UserType:             dto.RegisterEmployee,
	})
	require.NoError(t, err)
	assert.Equal(t, "terminal_user", out.UserType)
	assert.Empty(t, store.profiles)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_EmailDuplicado_SinImportarMayusculas(t *testing.T) {
	store := newMemStore()
	svc := newProvisioning(store)
	_, err := svc.Register(context.Background(), superuser, industrialPayload())
	require.NoError(t, err)

	again := industrialPayload()
	again.Email = "  COMPRAS@acme.EXAMPLE "
	_, err = svc.Register(context.Background(), superuser, again)
	assertField(t, err, domain.ErrDuplicateEmail, "email")
	assert.Len(t, store.users, 1)
}

func TestRegister_PasswordNoCoincide(t *testing.T) {
	in := industrialPayload()
	in.PasswordConfirmation = "otra-cosa"
	_, err := newProvisioning(newMemStore()).Register(context.Background(), superuser, in)
	assertField(t, err, domain.ErrPasswordMismatch, "password")
}

func TestRegister_CamposRequeridosIndustrial(t *testing.T) {
	cases := map[string]func(*dto.RegisterUserRequest){
		"company_name":    func(r *dto.RegisterUserRequest) { r.CompanyName = "" },
		"company_address": func(r *dto.RegisterUserRequest) { r.CompanyAddress = "  " },
		"tax_id":          func(r *dto.RegisterUserRequest) { r.TaxID = "" },
		"sector_activity": func(r *dto.RegisterUserRequest) { r.SectorActivity = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			store := newMemStore()
			in := industrialPayload()
			mutate(&in)
			_, err := newProvisioning(store).Register(context.Background(), superuser, in)
			assertField(t, err, domain.ErrMissingRequiredField, field)
			assert.Empty(t, store.users)
		})
	}
}

func TestRegister_CamposRequeridosRevendedor(t *testing.T) {
	cases := map[string]func(*dto.RegisterUserRequest){
		"resale_area":      func(r *dto.RegisterUserRequest) { r.ResaleArea = "" },
		"monthly_estimate": func(r *dto.RegisterUserRequest) { r.MonthlyEstimate = nil },
		"tax_id":           func(r *dto.RegisterUserRequest) { r.TaxID = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			in := resellerPayload()
			mutate(&in)
			_, err := newProvisioning(newMemStore()).Register(context.Background(), superuser, in)
			assertField(t, err, domain.ErrMissingRequiredField, field)
		})
	}
}

func TestRegister_EstimacionNegativa(t *testing.T) {
	in := resellerPayload()
	neg := decimal.NewFromInt(-1)
	in.MonthlyEstimate = &neg
	_, err := newProvisioning(newMemStore()).Register(context.Background(), superuser, in)
	assertField(t, err, domain.ErrInvalidInput, "monthly_estimate")
}

func TestRegister_DiscriminanteProfesional(t *testing.T) {
	in := industrialPayload()
	in.ProfessionalClientType = ""
	_, err := newProvisioning(newMemStore()).Register(context.Background(), superuser, in)
	assertField(t, err, domain.ErrMissingRequiredField, "professional_client_type")

	in.ProfessionalClientType = "mayorista"
	_, err = newProvisioning(newMemStore()).Register(context.Background(), superuser, in)
	assertField(t, err, domain.ErrInvalidUserType, "professional_client_type")
}

func TestRegister_TipoDesconocido(t *testing.T) {
	in := industrialPayload()
	in.UserType = "director"
	_, err := newProvisioning(newMemStore()).Register(context.Background(), superuser, in)
	assertField(t, err, domain.ErrInvalidUserType, "user_type")
}

func TestRegister_PasswordCorta(t *testing.T) {
	in := industrialPayload()
	in.Password, in.PasswordConfirmation = "corta", "corta"
	_, err := newProvisioning(newMemStore()).Register(context.Background(), superuser, in)
	assertField(t, err, domain.ErrInvalidInput, "password")
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización y atomicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_SoloRHOSuperusuario(t *testing.T) {
	for _, p := range []rbac.Principal{director, rbac.Anonymous} {
		store := newMemStore()
		_, err := newProvisioning(store).Register(context.Background(), p, industrialPayload())
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, store.users)
	}
}

func TestRegister_FalloPerfil_NoDejaUsuarioHuerfano(t *testing.T) {
	store := newMemStore()
	store.failProfileCreate = domain.ErrStoreUnavailable
	_, err := newProvisioning(store).Register(context.Background(), superuser, industrialPayload())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Empty(t, store.users, "la transacción debe deshacer el usuario base")
	assert.Empty(t, store.profiles)
}

// ──────────────────────────────────────────────────────────────────────────────
// Superusuario de arranque
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSuperuser_CreaAdministrador(t *testing.T) {
	store := newMemStore()
	out, err := newProvisioning(store).CreateSuperuser(context.Background(), " Admin@Stockify.fr ", "s3cret-pass", "s3cret-pass")
	require.NoError(t, err)

	assert.Equal(t, "admin@stockify.fr", out.Email)
	assert.Equal(t, string(entity.UserTypeSuperAdmin), out.UserType)
	assert.True(t, out.IsStaff)
	assert.True(t, out.IsSuperuser)
	assert.True(t, out.IsActive)
	assert.Empty(t, store.profiles)
}

func TestCreateSuperuser_EmailDuplicado(t *testing.T) {
	store := newMemStore()
	svc := newProvisioning(store)
	_, err := svc.CreateSuperuser(context.Background(), "admin@stockify.fr", "s3cret-pass", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.CreateSuperuser(context.Background(), "ADMIN@stockify.fr", "otra-pass-1", "otra-pass-1")
	assertField(t, err, domain.ErrDuplicateEmail, "email")
}

func TestCreateSuperuser_PasswordNoCoincide(t *testing.T) {
	_, err := newProvisioning(newMemStore()).CreateSuperuser(context.Background(), "admin@stockify.fr", "s3cret-pass", "otra")
	assertField(t, err, domain.ErrPasswordMismatch, "password")
}
