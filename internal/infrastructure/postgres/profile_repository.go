package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo perfiles de extensión: enterprise_profiles (industrial y revendedor) y retail_point_profiles.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// enterpriseRow columnas de enterprise_profiles; la variante se decide por kind.
type enterpriseRow struct {
	entity.EnterpriseProfile
	kind               entity.ProfileKind
	sectorActivity     string
	isPriorityClient   bool
	contractReference  string
	resaleArea         string
	monthlyEstimate    decimal.Decimal
	hasResaleAgreement bool
}

func toEnterpriseRow(p entity.Profile) (*enterpriseRow, bool) {
	switch v := p.(type) {
	case *entity.IndustrialProfile:
		return &enterpriseRow{
			EnterpriseProfile: v.EnterpriseProfile, kind: entity.ProfileIndustrial,
			sectorActivity: v.SectorActivity, isPriorityClient: v.IsPriorityClient, contractReference: v.ContractReference,
		}, true
	case *entity.ResellerProfile:
		return &enterpriseRow{
			EnterpriseProfile: v.EnterpriseProfile, kind: entity.ProfileReseller,
			resaleArea: v.ResaleArea, monthlyEstimate: v.MonthlyEstimate, hasResaleAgreement: v.HasResaleAgreement,
		}, true
	}
	return nil, false
}

func (e *enterpriseRow) args(userID string) []any {
	addrs := e.DeliveryAddresses
	if addrs == nil {
		addrs = []entity.DeliveryAddress{}
	}
	return []any{
		userID, string(e.kind), e.CompanyName, e.CompanyAddress, e.TaxID, e.ContactPerson, addrs,
		e.PaymentTerms, string(e.ClientCategory), e.sectorActivity, e.isPriorityClient, e.contractReference,
		e.resaleArea, e.monthlyEstimate, e.hasResaleAgreement,
	}
}

// Create inserta el perfil en la tabla que corresponde a su Kind.
func (r *ProfileRepo) Create(ctx context.Context, userID string, profile entity.Profile) error {
	if e, ok := toEnterpriseRow(profile); ok {
		query := `
			INSERT INTO enterprise_profiles (user_id, kind, company_name, company_address, tax_id, contact_person,
				delivery_addresses, payment_terms, client_category, sector_activity, is_priority_client,
				contract_reference, resale_area, monthly_estimate, has_resale_agreement)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
		if _, err := r.q.Exec(ctx, query, e.args(userID)...); err != nil {
			return mapProfileErr("insert enterprise profile", err)
		}
		return nil
	}
	rp, ok := profile.(*entity.RetailPointProfile)
	if !ok {
		return domain.FieldErr("profile", fmt.Errorf("%w: perfil no soportado", domain.ErrProfileMismatch))
	}
	query := `
		INSERT INTO retail_point_profiles (user_id, location, store_manager_name, store_code, assigned_region, opening_hours)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`
	if _, err := r.q.Exec(ctx, query, userID, rp.Location, rp.StoreManagerName, rp.StoreCode, rp.AssignedRegion, rp.OpeningHours); err != nil {
		return mapProfileErr("insert retail profile", err)
	}
	return nil
}

// GetByUserID carga el perfil esperado para userType; (nil, nil) si no tiene.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string, userType entity.UserType) (entity.Profile, error) {
	switch kind := entity.ExpectedProfileKind(userType); kind {
	case entity.ProfileIndustrial, entity.ProfileReseller:
		return r.getEnterprise(ctx, userID, kind)
	case entity.ProfileRetailPoint:
		return r.getRetail(ctx, userID)
	default:
		return nil, nil
	}
}

func (r *ProfileRepo) getEnterprise(ctx context.Context, userID string, kind entity.ProfileKind) (entity.Profile, error) {
	query := `
		SELECT company_name, company_address, tax_id, contact_person, delivery_addresses, payment_terms,
			client_category, sector_activity, is_priority_client, contract_reference, resale_area,
			monthly_estimate, has_resale_agreement
		FROM enterprise_profiles WHERE user_id = $1 AND kind = $2`
	var (
		ep       entity.EnterpriseProfile
		category string
		ind      entity.IndustrialProfile
		res      entity.ResellerProfile
	)
	err := r.q.QueryRow(ctx, query, userID, string(kind)).Scan(
		&ep.CompanyName, &ep.CompanyAddress, &ep.TaxID, &ep.ContactPerson, &ep.DeliveryAddresses, &ep.PaymentTerms,
		&category, &ind.SectorActivity, &ind.IsPriorityClient, &ind.ContractReference, &res.ResaleArea,
		&res.MonthlyEstimate, &res.HasResaleAgreement,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, storeErr("get enterprise profile", err)
	}
	ep.ClientCategory = entity.ClientCategory(category)
	if kind == entity.ProfileIndustrial {
		ind.EnterpriseProfile = ep
		return &ind, nil
	}
	res.EnterpriseProfile = ep
	return &res, nil
}

func (r *ProfileRepo) getRetail(ctx context.Context, userID string) (entity.Profile, error) {
	query := `
		SELECT location, store_manager_name, COALESCE(store_code, ''), assigned_region, opening_hours
		FROM retail_point_profiles WHERE user_id = $1`
	var rp entity.RetailPointProfile
	err := r.q.QueryRow(ctx, query, userID).Scan(&rp.Location, &rp.StoreManagerName, &rp.StoreCode, &rp.AssignedRegion, &rp.OpeningHours)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, storeErr("get retail profile", err)
	}
	return &rp, nil
}

// Update reescribe el perfil existente. kind y client_category no cambian.
func (r *ProfileRepo) Update(ctx context.Context, userID string, profile entity.Profile) error {
	var (
		tag pgconn.CommandTag
		err error
	)
	if e, ok := toEnterpriseRow(profile); ok {
		query := `
			UPDATE enterprise_profiles SET company_name = $3, company_address = $4, tax_id = $5, contact_person = $6,
				delivery_addresses = $7, payment_terms = $8, sector_activity = $10, is_priority_client = $11,
				contract_reference = $12, resale_area = $13, monthly_estimate = $14, has_resale_agreement = $15
			WHERE user_id = $1 AND kind = $2 AND client_category = $9`
		tag, err = r.q.Exec(ctx, query, e.args(userID)...)
	} else if rp, ok := profile.(*entity.RetailPointProfile); ok {
		query := `
			UPDATE retail_point_profiles SET location = $2, store_manager_name = $3, store_code = NULLIF($4, ''),
				assigned_region = $5, opening_hours = $6
			WHERE user_id = $1`
		tag, err = r.q.Exec(ctx, query, userID, rp.Location, rp.StoreManagerName, rp.StoreCode, rp.AssignedRegion, rp.OpeningHours)
	} else {
		return domain.FieldErr("profile", fmt.Errorf("%w: perfil no soportado", domain.ErrProfileMismatch))
	}
	if err != nil {
		return mapProfileErr("update profile", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapProfileErr(op string, err error) error {
	switch {
	case isUniqueViolation(err) && constraintOf(err) == "retail_point_profiles_store_code_key":
		return domain.FieldErr("store_code", domain.ErrDuplicate)
	case isUniqueViolation(err):
		return domain.FieldErr("profile", fmt.Errorf("%w: el usuario ya tiene perfil", domain.ErrDuplicate))
	case isForeignKeyViolation(err):
		return domain.ErrUserNotFound
	}
	return storeErr(op, err)
}
