package identity

import (
	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// ToUserResponse convierte la entidad en su DTO de salida (sin credenciales).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                      u.ID,
		Email:                   u.Email,
		UserType:                string(u.Type),
		FirstName:               u.FirstName,
		LastName:                u.LastName,
		PhoneNumber:             u.PhoneNumber,
		Description:             u.Description,
		IsActive:                u.IsActive,
		IsStaff:                 u.IsStaff,
		IsSuperuser:             u.IsSuperuser,
		IsSSOAuthenticated:      u.IsSSOAuthenticated,
		HasPendingPasswordReset: u.HasPendingPasswordReset(),
		CreatedAt:               u.CreatedAt,
		UpdatedAt:               u.UpdatedAt,
	}
}

// ToProfileResponse usuario + perfil de extensión.
func ToProfileResponse(u *entity.User, p entity.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		User:    *ToUserResponse(u),
		Profile: toExtensionResponse(p),
	}
}

func toExtensionResponse(p entity.Profile) *dto.ExtensionProfileResponse {
	switch v := p.(type) {
	case *entity.IndustrialProfile:
		out := enterpriseResponse(entity.ProfileIndustrial, v.EnterpriseProfile)
		out.SectorActivity = v.SectorActivity
		out.IsPriorityClient = boolPtr(v.IsPriorityClient)
		out.ContractReference = v.ContractReference
		return out
	case *entity.ResellerProfile:
		out := enterpriseResponse(entity.ProfileReseller, v.EnterpriseProfile)
		est := v.MonthlyEstimate
		out.ResaleArea = v.ResaleArea
		out.MonthlyEstimate = &est
		out.HasResaleAgreement = boolPtr(v.HasResaleAgreement)
		return out
	case *entity.RetailPointProfile:
		return &dto.ExtensionProfileResponse{
			Kind:             string(entity.ProfileRetailPoint),
			Location:         v.Location,
			StoreManagerName: v.StoreManagerName,
			StoreCode:        v.StoreCode,
			AssignedRegion:   v.AssignedRegion,
			OpeningHours:     v.OpeningHours,
		}
	default:
		return nil
	}
}

func enterpriseResponse(kind entity.ProfileKind, e entity.EnterpriseProfile) *dto.ExtensionProfileResponse {
	return &dto.ExtensionProfileResponse{
		Kind:              string(kind),
		CompanyName:       e.CompanyName,
		CompanyAddress:    e.CompanyAddress,
		TaxID:             e.TaxID,
		ContactPerson:     e.ContactPerson,
		DeliveryAddresses: toAddressDTOs(e.DeliveryAddresses),
		PaymentTerms:      e.PaymentTerms,
		ClientCategory:    string(e.ClientCategory),
	}
}

func toAddressDTOs(in []entity.DeliveryAddress) []dto.DeliveryAddress {
	if len(in) == 0 {
		return nil
	}
	out := make([]dto.DeliveryAddress, len(in))
	for i, a := range in {
		out[i] = dto.DeliveryAddress(a)
	}
	return out
}

func fromAddressDTOs(in []dto.DeliveryAddress) []entity.DeliveryAddress {
	if len(in) == 0 {
		return nil
	}
	out := make([]entity.DeliveryAddress, len(in))
	for i, a := range in {
		out[i] = entity.DeliveryAddress(a)
	}
	return out
}

func boolPtr(b bool) *bool { return &b }
