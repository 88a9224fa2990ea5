package entity_test

import (
	"testing"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ────────────────────────────────────────────────────────────────────────────
// Perfil y tipo de usuario
// ────────────────────────────────────────────────────────────────────────────

func TestNewUser_PerfilDebeCorresponderAlTipo(t *testing.T) {
	tests := []struct {
		name     string
		userType entity.UserType
		profile  entity.Profile
		wantErr  bool
	}{
		{"director sin perfil", entity.UserTypeDirector, nil, false},
		{"director con perfil de punto de venta", entity.UserTypeDirector, &entity.RetailPointProfile{Location: "Lyon"}, true},
		{"comptable con perfil industrial", entity.UserTypeComptable, &entity.IndustrialProfile{}, true},
		{"industriel con su perfil", entity.UserTypeClientIndustriel, &entity.IndustrialProfile{SectorActivity: "BTP"}, false},
		{"industriel con perfil revendedor", entity.UserTypeClientIndustriel, &entity.ResellerProfile{}, true},
		{"industriel sin perfil", entity.UserTypeClientIndustriel, nil, true},
		{"revendeur con su perfil", entity.UserTypeClientRevendeur, &entity.ResellerProfile{ResaleArea: "Sud"}, false},
		{"revendeur sin perfil", entity.UserTypeClientRevendeur, nil, true},
		{"point_vente con su perfil", entity.UserTypeClientPointVente, &entity.RetailPointProfile{}, false},
		{"point_vente sin perfil", entity.UserTypeClientPointVente, nil, false},
		{"point_vente con perfil industrial", entity.UserTypeClientPointVente, &entity.IndustrialProfile{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := entity.NewUser(entity.NewUserParams{
				ID: "u-1", Email: "a@b.fr", PasswordHash: "hash", Type: tt.userType, Profile: tt.profile,
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrProfileMismatch)
				assert.True(t, domain.IsValidation(err))
				assert.Equal(t, "profile", domain.FieldOf(err))
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.userType, u.Type)
			assert.True(t, u.IsActive)
		})
	}
}

func TestNewUser_DerivaLaCategoriaDelCliente(t *testing.T) {
	ind := &entity.IndustrialProfile{}
	ind.ClientCategory = entity.ClientCategoryReseller
	_, err := entity.NewUser(entity.NewUserParams{Email: "i@b.fr", Type: entity.UserTypeClientIndustriel, Profile: ind})
	require.NoError(t, err)
	assert.Equal(t, entity.ClientCategoryIndustrial, ind.ClientCategory)

	res := &entity.ResellerProfile{MonthlyEstimate: decimal.NewFromInt(1200)}
	_, err = entity.NewUser(entity.NewUserParams{Email: "r@b.fr", Type: entity.UserTypeClientRevendeur, Profile: res})
	require.NoError(t, err)
	assert.Equal(t, entity.ClientCategoryReseller, res.ClientCategory)
}

func TestNewUser_TipoInvalidoYEmailVacio(t *testing.T) {
	_, err := entity.NewUser(entity.NewUserParams{Email: "a@b.fr", Type: "employee"})
	assert.ErrorIs(t, err, domain.ErrInvalidUserType)
	assert.Equal(t, "user_type", domain.FieldOf(err))

	_, err = entity.NewUser(entity.NewUserParams{Email: "   ", Type: entity.UserTypeRH})
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
	assert.Equal(t, "email", domain.FieldOf(err))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jean.dupont@exemple.fr", entity.NormalizeEmail("  Jean.Dupont@Exemple.FR "))
}

func TestExpectedProfileKind(t *testing.T) {
	assert.Equal(t, entity.ProfileIndustrial, entity.ExpectedProfileKind(entity.UserTypeClientIndustriel))
	assert.Equal(t, entity.ProfileReseller, entity.ExpectedProfileKind(entity.UserTypeClientRevendeur))
	assert.Equal(t, entity.ProfileRetailPoint, entity.ExpectedProfileKind(entity.UserTypeClientPointVente))
	for _, st := range []entity.UserType{entity.UserTypeSuperAdmin, entity.UserTypeDirector, entity.UserTypeComptable, entity.UserTypeRH, entity.UserTypeTerminalUser} {
		assert.Equal(t, entity.ProfileNone, entity.ExpectedProfileKind(st), st)
	}
}
