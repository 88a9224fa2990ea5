package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/application/ports"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/rbac"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
	"github.com/jhoicas/Stockify-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Textos de las notificaciones del flujo de reinicio.
const (
	resetRequestedSubject = "Solicitud de reinicio de contraseña"
	resetRequestedBody    = "El usuario %s ha solicitado reiniciar su contraseña. Revise el panel de administración."
	resetConfirmedSubject = "Contraseña modificada"
	resetConfirmedBody    = "Su contraseña ha sido modificada por un administrador."
)

// ProfileService fachada del usuario autenticado: perfil propio, contraseña y reinicio.
type ProfileService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	tx       IdentityTxRunner
	notifier ports.Notifier
	opts     options
}

// NewProfileService construye la fachada. notifier se invoca después de confirmar la transacción.
func NewProfileService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	tx IdentityTxRunner,
	notifier ports.Notifier,
	opts ...Option,
) *ProfileService {
	return &ProfileService{users: users, profiles: profiles, tx: tx, notifier: notifier, opts: buildOptions(opts)}
}

// GetOwnProfile devuelve el usuario autenticado con su perfil de extensión.
func (s *ProfileService) GetOwnProfile(ctx context.Context, principal rbac.Principal) (*dto.ProfileResponse, error) {
	u, err := s.currentUser(ctx, principal)
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.GetByUserID(ctx, u.ID, u.Type)
	if err != nil {
		return nil, err
	}
	return ToProfileResponse(u, p), nil
}

// UpdateOwnProfile aplica patch restringido a la lista permitida del tipo de usuario.
// email y user_type (y cualquier campo fuera de la lista) se rechazan con ErrFieldNotEditable.
func (s *ProfileService) UpdateOwnProfile(ctx context.Context, principal rbac.Principal, patch dto.ProfilePatch) (*dto.ProfileResponse, error) {
	u, err := s.currentUser(ctx, principal)
	if err != nil {
		return nil, err
	}
	allowed := editableFields(u.Type)
	keys := make([]string, 0, len(patch))
	for k := range patch {
		if !allowed[k] {
			return nil, domain.FieldErr(k, domain.ErrFieldNotEditable)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	prof, err := s.profiles.GetByUserID(ctx, u.ID, u.Type)
	if err != nil {
		return nil, err
	}
	createProfile := false
	if prof == nil && entity.ExpectedProfileKind(u.Type) == entity.ProfileRetailPoint && touchesProfile(keys) {
		prof = &entity.RetailPointProfile{}
		createProfile = true
	}

	profileTouched := false
	for _, k := range keys {
		if err := applyField(k, patch[k], u, prof); err != nil {
			return nil, err
		}
		if !baseFields[k] {
			profileTouched = true
		}
	}
	if err := validateProfile(prof); err != nil {
		return nil, err
	}

	err = s.tx.RunIdentity(ctx, func(users repository.UserRepository, profiles repository.ProfileRepository) error {
		if err := users.Update(ctx, u); err != nil {
			return err
		}
		switch {
		case createProfile:
			return profiles.Create(ctx, u.ID, prof)
		case profileTouched:
			return profiles.Update(ctx, u.ID, prof)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToProfileResponse(u, prof), nil
}

// ChangePassword verifica la contraseña actual y fija la nueva. Si old no coincide devuelve
// ErrWrongPassword y la credencial queda intacta.
func (s *ProfileService) ChangePassword(ctx context.Context, principal rbac.Principal, in dto.ChangePasswordRequest) error {
	u, err := s.currentUser(ctx, principal)
	if err != nil {
		return err
	}
	if !checkPassword(u.PasswordHash, in.OldPassword) {
		return domain.FieldErr("old_password", domain.ErrWrongPassword)
	}
	if err := validateNewPassword("new_password", in.NewPassword, in.NewPasswordConfirmation); err != nil {
		return err
	}
	if err := checkHashable("new_password", in.NewPassword); err != nil {
		return err
	}
	hash, err := s.opts.hash(in.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, u.ID, hash)
}

// RequestPasswordReset marca la solicitud y avisa a los administradores. La respuesta al caller
// no depende de que el email exista: solo un fallo al buscar el usuario se propaga.
func (s *ProfileService) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)
	u, err := s.users.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if u == nil || !u.IsActive {
		log.Debug().Msg("reinicio solicitado para una cuenta inexistente o inactiva")
		return nil
	}
	now := s.opts.now().UTC()
	if err := s.users.SetPasswordResetRequest(ctx, u.ID, &now); err != nil {
		log.Error().Err(err).Str("user_id", u.ID).Msg("no se pudo marcar la solicitud de reinicio")
		return nil
	}
	admins, err := s.users.ListAdministrators(ctx)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo listar administradores")
		return nil
	}
	recipients := make([]string, 0, len(admins))
	for _, a := range admins {
		recipients = append(recipients, a.Email)
	}
	s.notify(ctx, recipients, resetRequestedSubject, fmt.Sprintf(resetRequestedBody, u.Email))
	return nil
}

// ConfirmPasswordReset fija la contraseña de target (solo superusuarios), limpia la marca de
// reinicio pendiente y avisa al usuario.
func (s *ProfileService) ConfirmPasswordReset(ctx context.Context, admin rbac.Principal, targetID string, in dto.ConfirmPasswordResetRequest) error {
	if !rbac.Authorize(admin, rbac.ConfirmPasswordReset) {
		return domain.ErrForbidden
	}
	if err := validateNewPassword("password", in.Password, in.PasswordConfirmation); err != nil {
		return err
	}
	if err := checkHashable("password", in.Password); err != nil {
		return err
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrUserNotFound
	}
	hash, err := s.opts.hash(in.Password)
	if err != nil {
		return err
	}
	err = s.tx.RunIdentity(ctx, func(users repository.UserRepository, _ repository.ProfileRepository) error {
		if err := users.UpdatePassword(ctx, target.ID, hash); err != nil {
			return err
		}
		return users.SetPasswordResetRequest(ctx, target.ID, nil)
	})
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info().
		Str("user_id", target.ID).
		Str("admin_id", admin.UserID).
		Msg("contraseña reiniciada por administrador")
	s.notify(ctx, []string{target.Email}, resetConfirmedSubject, resetConfirmedBody)
	return nil
}

func (s *ProfileService) currentUser(ctx context.Context, principal rbac.Principal) (*entity.User, error) {
	if !principal.Authenticated || principal.UserID == "" {
		return nil, domain.ErrForbidden
	}
	u, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, domain.ErrForbidden
	}
	return u, nil
}

func (s *ProfileService) notify(ctx context.Context, recipients []string, subject, body string) {
	if s.notifier == nil || len(recipients) == 0 {
		return
	}
	if err := s.notifier.Notify(ctx, recipients, subject, body); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("subject", subject).Msg("notificación no enviada")
	}
}

// ─── Lista permitida de autoedición ────────────────────────────────────────────

var baseFields = map[string]bool{
	"first_name": true, "last_name": true, "phone_number": true, "description": true,
}

var (
	enterpriseFields  = []string{"company_name", "company_address", "contact_person", "delivery_addresses", "payment_terms"}
	industrialFields  = []string{"sector_activity", "contract_reference"}
	resellerFields    = []string{"resale_area", "monthly_estimate"}
	retailPointFields = []string{"location", "store_manager_name", "opening_hours"}
)

// editableFields campos que el propio usuario puede modificar según su tipo. tax_id, store_code,
// assigned_region y los indicadores comerciales los gestiona la administración.
func editableFields(t entity.UserType) map[string]bool {
	out := make(map[string]bool, len(baseFields)+8)
	for k := range baseFields {
		out[k] = true
	}
	var extra []string
	switch entity.ExpectedProfileKind(t) {
	case entity.ProfileIndustrial:
		extra = append(append(extra, enterpriseFields...), industrialFields...)
	case entity.ProfileReseller:
		extra = append(append(extra, enterpriseFields...), resellerFields...)
	case entity.ProfileRetailPoint:
		extra = retailPointFields
	}
	for _, k := range extra {
		out[k] = true
	}
	return out
}

func touchesProfile(keys []string) bool {
	for _, k := range keys {
		if !baseFields[k] {
			return true
		}
	}
	return false
}

// applyField decodifica raw en el campo k. La lista permitida ya garantizó que k existe para el perfil.
func applyField(k string, raw json.RawMessage, u *entity.User, prof entity.Profile) error {
	switch k {
	case "first_name":
		return decodeString(k, raw, &u.FirstName)
	case "last_name":
		return decodeString(k, raw, &u.LastName)
	case "phone_number":
		return decodeString(k, raw, &u.PhoneNumber)
	case "description":
		return decodeString(k, raw, &u.Description)
	}

	switch p := prof.(type) {
	case *entity.IndustrialProfile:
		switch k {
		case "sector_activity":
			return decodeString(k, raw, &p.SectorActivity)
		case "contract_reference":
			return decodeString(k, raw, &p.ContractReference)
		}
		return applyEnterprise(k, raw, &p.EnterpriseProfile)
	case *entity.ResellerProfile:
		switch k {
		case "resale_area":
			return decodeString(k, raw, &p.ResaleArea)
		case "monthly_estimate":
			var d decimal.Decimal
			if err := json.Unmarshal(raw, &d); err != nil {
				return domain.FieldErr(k, domain.ErrInvalidInput)
			}
			p.MonthlyEstimate = d
			return nil
		}
		return applyEnterprise(k, raw, &p.EnterpriseProfile)
	case *entity.RetailPointProfile:
		switch k {
		case "location":
			return decodeString(k, raw, &p.Location)
		case "store_manager_name":
			return decodeString(k, raw, &p.StoreManagerName)
		case "opening_hours":
			return decodeString(k, raw, &p.OpeningHours)
		}
	}
	return domain.FieldErr(k, domain.ErrFieldNotEditable)
}

func applyEnterprise(k string, raw json.RawMessage, e *entity.EnterpriseProfile) error {
	switch k {
	case "company_name":
		return decodeString(k, raw, &e.CompanyName)
	case "company_address":
		return decodeString(k, raw, &e.CompanyAddress)
	case "contact_person":
		return decodeString(k, raw, &e.ContactPerson)
	case "payment_terms":
		return decodeString(k, raw, &e.PaymentTerms)
	case "delivery_addresses":
		var list []dto.DeliveryAddress
		if err := json.Unmarshal(raw, &list); err != nil {
			return domain.FieldErr(k, domain.ErrInvalidInput)
		}
		e.DeliveryAddresses = fromAddressDTOs(list)
		return nil
	}
	return domain.FieldErr(k, domain.ErrFieldNotEditable)
}

func decodeString(k string, raw json.RawMessage, dst *string) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.FieldErr(k, domain.ErrInvalidInput)
	}
	*dst = strings.TrimSpace(s)
	return nil
}

// validateProfile los campos obligatorios del alta siguen siéndolo tras la edición.
func validateProfile(p entity.Profile) error {
	switch v := p.(type) {
	case *entity.IndustrialProfile:
		return validateIndustrial(v)
	case *entity.ResellerProfile:
		return validateReseller(v)
	}
	return nil
}
