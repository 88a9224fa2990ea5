package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/rbac"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
	"github.com/jhoicas/Stockify-api/pkg/logger"
)

// ProvisioningService alta de usuarios tipados (registro base + perfil de extensión).
type ProvisioningService struct {
	users repository.UserRepository
	tx    IdentityTxRunner
	opts  options
}

// NewProvisioningService construye el servicio. users se usa para lecturas fuera de la transacción.
func NewProvisioningService(users repository.UserRepository, tx IdentityTxRunner, opts ...Option) *ProvisioningService {
	return &ProvisioningService{users: users, tx: tx, opts: buildOptions(opts)}
}

// Register valida el payload, resuelve el tipo concreto y crea usuario y perfil en una sola
// transacción. Devuelve el usuario base; el perfil se consulta aparte.
//
// Errores (todos con campo asociado vía domain.FieldOf):
//   - domain.ErrForbidden          el principal no puede crear usuarios.
//   - domain.ErrDuplicateEmail     email ya registrado (comparación normalizada).
//   - domain.ErrPasswordMismatch   password != password_confirmation.
//   - domain.ErrMissingRequiredField
//   - domain.ErrInvalidUserType
func (s *ProvisioningService) Register(ctx context.Context, principal rbac.Principal, in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if !rbac.Authorize(principal, rbac.CreateUsers) {
		return nil, domain.ErrForbidden
	}

	email := entity.NormalizeEmail(in.Email)
	if email == "" {
		return nil, domain.FieldErr("email", domain.ErrMissingRequiredField)
	}
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.FieldErr("email", domain.ErrDuplicateEmail)
	}
	if err := validateNewPassword("password", in.Password, in.PasswordConfirmation); err != nil {
		return nil, err
	}
	if err := checkHashable("password", in.Password); err != nil {
		return nil, err
	}

	userType, profile, err := resolve(in)
	if err != nil {
		return nil, err
	}

	hash, err := s.opts.hash(in.Password)
	if err != nil {
		return nil, err
	}
	user, err := entity.NewUser(entity.NewUserParams{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Type:         userType,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		Profile:      profile,
	})
	if err != nil {
		return nil, err
	}

	err = s.tx.RunIdentity(ctx, func(users repository.UserRepository, profiles repository.ProfileRepository) error {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		if user.Profile == nil {
			return nil
		}
		return profiles.Create(ctx, user.ID, user.Profile)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("user_id", user.ID).
		Str("user_type", string(user.Type)).
		Str("created_by", principal.UserID).
		Msg("usuario registrado")
	return ToUserResponse(user), nil
}

// resolve traduce el selector grueso al tipo concreto y construye el perfil correspondiente.
func resolve(in dto.RegisterUserRequest) (entity.UserType, entity.Profile, error) {
	switch strings.TrimSpace(in.UserType) {
	case dto.RegisterProfessionalClient:
		return resolveProfessional(in)
	case dto.RegisterIndividualClient:
		return entity.UserTypeClientPointVente, &entity.RetailPointProfile{
			Location:         strings.TrimSpace(in.Location),
			StoreManagerName: strings.TrimSpace(in.StoreManagerName),
			StoreCode:        strings.TrimSpace(in.StoreCode),
			AssignedRegion:   strings.TrimSpace(in.AssignedRegion),
			OpeningHours:     strings.TrimSpace(in.OpeningHours),
		}, nil
	case dto.RegisterEmployee:
		return entity.UserTypeTerminalUser, nil, nil
	case "":
		return "", nil, domain.FieldErr("user_type", domain.ErrMissingRequiredField)
	default:
		return "", nil, domain.FieldErr("user_type", domain.ErrInvalidUserType)
	}
}

// professionalAliases admite los valores históricos del formulario.
var professionalAliases = map[string]string{
	dto.ProfessionalIndustrial: dto.ProfessionalIndustrial,
	"industrial_client":        dto.ProfessionalIndustrial,
	dto.ProfessionalReseller:   dto.ProfessionalReseller,
	"reseller_client":          dto.ProfessionalReseller,
}

func resolveProfessional(in dto.RegisterUserRequest) (entity.UserType, entity.Profile, error) {
	raw := strings.TrimSpace(in.ProfessionalClientType)
	if raw == "" {
		return "", nil, domain.FieldErr("professional_client_type", domain.ErrMissingRequiredField)
	}
	kind, ok := professionalAliases[raw]
	if !ok {
		return "", nil, domain.FieldErr("professional_client_type", domain.ErrInvalidUserType)
	}

	base := entity.EnterpriseProfile{
		CompanyName:       strings.TrimSpace(in.CompanyName),
		CompanyAddress:    strings.TrimSpace(in.CompanyAddress),
		TaxID:             strings.TrimSpace(in.TaxID),
		ContactPerson:     strings.TrimSpace(in.ContactPerson),
		DeliveryAddresses: fromAddressDTOs(in.DeliveryAddresses),
		PaymentTerms:      strings.TrimSpace(in.PaymentTerms),
	}

	if kind == dto.ProfessionalIndustrial {
		p := &entity.IndustrialProfile{
			EnterpriseProfile: base,
			SectorActivity:    strings.TrimSpace(in.SectorActivity),
			IsPriorityClient:  in.IsPriorityClient,
			ContractReference: strings.TrimSpace(in.ContractReference),
		}
		if err := validateIndustrial(p); err != nil {
			return "", nil, err
		}
		return entity.UserTypeClientIndustriel, p, nil
	}

	if in.MonthlyEstimate == nil {
		// el orden de comprobación sigue el orden de los campos requeridos
		if err := requireFields(enterpriseRequired(&base), [2]string{"resale_area", strings.TrimSpace(in.ResaleArea)}); err != nil {
			return "", nil, err
		}
		return "", nil, domain.FieldErr("monthly_estimate", domain.ErrMissingRequiredField)
	}
	p := &entity.ResellerProfile{
		EnterpriseProfile:  base,
		ResaleArea:         strings.TrimSpace(in.ResaleArea),
		MonthlyEstimate:    *in.MonthlyEstimate,
		HasResaleAgreement: in.HasResaleAgreement,
	}
	if err := validateReseller(p); err != nil {
		return "", nil, err
	}
	return entity.UserTypeClientRevendeur, p, nil
}

func enterpriseRequired(e *entity.EnterpriseProfile) [][2]string {
	return [][2]string{
		{"company_name", e.CompanyName},
		{"company_address", e.CompanyAddress},
		{"tax_id", e.TaxID},
	}
}

func validateIndustrial(p *entity.IndustrialProfile) error {
	return requireFields(enterpriseRequired(&p.EnterpriseProfile), [2]string{"sector_activity", p.SectorActivity})
}

func validateReseller(p *entity.ResellerProfile) error {
	if err := requireFields(enterpriseRequired(&p.EnterpriseProfile), [2]string{"resale_area", p.ResaleArea}); err != nil {
		return err
	}
	if p.MonthlyEstimate.IsNegative() {
		return domain.FieldErr("monthly_estimate", fmt.Errorf("%w: no puede ser negativo", domain.ErrInvalidInput))
	}
	return nil
}

// requireFields devuelve MissingRequiredField del primer par (campo, valor) vacío.
func requireFields(fields [][2]string, extra ...[2]string) error {
	for _, f := range append(fields, extra...) {
		if strings.TrimSpace(f[1]) == "" {
			return domain.FieldErr(f[0], domain.ErrMissingRequiredField)
		}
	}
	return nil
}

// CreateSuperuser alta del primer administrador (super_admin, is_staff, is_superuser). No pasa
// por permisos: solo la invoca el comando de arranque, nunca la API.
func (s *ProvisioningService) CreateSuperuser(ctx context.Context, email, password, confirmation string) (*dto.UserResponse, error) {
	email = entity.NormalizeEmail(email)
	if email == "" {
		return nil, domain.FieldErr("email", domain.ErrMissingRequiredField)
	}
	if err := validateNewPassword("password", password, confirmation); err != nil {
		return nil, err
	}
	if err := checkHashable("password", password); err != nil {
		return nil, err
	}
	hash, err := s.opts.hash(password)
	if err != nil {
		return nil, err
	}
	user, err := entity.NewUser(entity.NewUserParams{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Type:         entity.UserTypeSuperAdmin,
		IsStaff:      true,
		IsSuperuser:  true,
	})
	if err != nil {
		return nil, err
	}
	err = s.tx.RunIdentity(ctx, func(users repository.UserRepository, _ repository.ProfileRepository) error {
		return users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info().Str("user_id", user.ID).Msg("superusuario creado")
	return ToUserResponse(user), nil
}
