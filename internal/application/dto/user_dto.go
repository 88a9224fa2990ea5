package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Selectores gruesos del registro.
const (
	RegisterProfessionalClient = "professional_client"
	RegisterIndividualClient   = "individual_client"
	RegisterEmployee           = "employee"

	ProfessionalIndustrial = "industrial"
	ProfessionalReseller   = "reseller"
)

// DeliveryAddress dirección de entrega de un cliente empresa.
type DeliveryAddress struct {
	Label      string `json:"label"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// RegisterUserRequest entrada del alta de usuarios. Contiene el superconjunto de campos de
// extensión; solo se usan los del tipo resuelto.
type RegisterUserRequest struct {
	Email                  string `json:"email" validate:"required,email"`
	Password               string `json:"password" validate:"required,min=8"`
	PasswordConfirmation   string `json:"password_confirmation" validate:"required"`
	UserType               string `json:"user_type" validate:"required,oneof=professional_client individual_client employee"`
	ProfessionalClientType string `json:"professional_client_type,omitempty"`
	FirstName              string `json:"first_name"`
	LastName               string `json:"last_name"`
	PhoneNumber            string `json:"phone_number"`

	// Cliente empresa (industrial / revendedor)
	CompanyName       string            `json:"company_name,omitempty"`
	CompanyAddress    string            `json:"company_address,omitempty"`
	TaxID             string            `json:"tax_id,omitempty"`
	ContactPerson     string            `json:"contact_person,omitempty"`
	DeliveryAddresses []DeliveryAddress `json:"delivery_addresses,omitempty"`
	PaymentTerms      string            `json:"payment_terms,omitempty"`

	// Industrial
	SectorActivity    string `json:"sector_activity,omitempty"`
	IsPriorityClient  bool   `json:"is_priority_client,omitempty"`
	ContractReference string `json:"contract_reference,omitempty"`

	// Revendedor
	ResaleArea         string           `json:"resale_area,omitempty"`
	MonthlyEstimate    *decimal.Decimal `json:"monthly_estimate,omitempty"`
	HasResaleAgreement bool             `json:"has_resale_agreement,omitempty"`

	// Punto de venta
	Location         string `json:"location,omitempty"`
	StoreManagerName string `json:"store_manager_name,omitempty"`
	StoreCode        string `json:"store_code,omitempty"`
	AssignedRegion   string `json:"assigned_region,omitempty"`
	OpeningHours     string `json:"opening_hours,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID                      string    `json:"id"`
	Email                   string    `json:"email"`
	UserType                string    `json:"user_type"`
	FirstName               string    `json:"first_name"`
	LastName                string    `json:"last_name"`
	PhoneNumber             string    `json:"phone_number"`
	Description             string    `json:"description"`
	IsActive                bool      `json:"is_active"`
	IsStaff                 bool      `json:"is_staff"`
	IsSuperuser             bool      `json:"is_superuser"`
	IsSSOAuthenticated      bool      `json:"is_sso_authenticated"`
	HasPendingPasswordReset bool      `json:"has_pending_password_reset"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// ExtensionProfileResponse perfil de extensión; solo se rellenan los campos de su Kind.
type ExtensionProfileResponse struct {
	Kind string `json:"kind"`

	CompanyName       string            `json:"company_name,omitempty"`
	CompanyAddress    string            `json:"company_address,omitempty"`
	TaxID             string            `json:"tax_id,omitempty"`
	ContactPerson     string            `json:"contact_person,omitempty"`
	DeliveryAddresses []DeliveryAddress `json:"delivery_addresses,omitempty"`
	PaymentTerms      string            `json:"payment_terms,omitempty"`
	ClientCategory    string            `json:"client_category,omitempty"`

	SectorActivity    string `json:"sector_activity,omitempty"`
	IsPriorityClient  *bool  `json:"is_priority_client,omitempty"`
	ContractReference string `json:"contract_reference,omitempty"`

	ResaleArea         string           `json:"resale_area,omitempty"`
	MonthlyEstimate    *decimal.Decimal `json:"monthly_estimate,omitempty"`
	HasResaleAgreement *bool            `json:"has_resale_agreement,omitempty"`

	Location         string `json:"location,omitempty"`
	StoreManagerName string `json:"store_manager_name,omitempty"`
	StoreCode        string `json:"store_code,omitempty"`
	AssignedRegion   string `json:"assigned_region,omitempty"`
	OpeningHours     string `json:"opening_hours,omitempty"`
}

// ProfileResponse usuario autenticado con su perfil de extensión (si tiene).
type ProfileResponse struct {
	User    UserResponse              `json:"user"`
	Profile *ExtensionProfileResponse `json:"profile,omitempty"`
}

// ProfilePatch actualización parcial del propio perfil: nombre de campo JSON → valor.
// Solo se aceptan los campos de la lista permitida del tipo de usuario.
type ProfilePatch map[string]json.RawMessage

// ChangePasswordRequest cambio de contraseña del propio usuario.
type ChangePasswordRequest struct {
	OldPassword             string `json:"old_password" validate:"required"`
	NewPassword             string `json:"new_password" validate:"required,min=8"`
	NewPasswordConfirmation string `json:"new_password_confirmation" validate:"required"`
}

// PasswordResetRequest solicitud de reinicio de contraseña (sin autenticar).
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ConfirmPasswordResetRequest contraseña nueva fijada por un administrador.
type ConfirmPasswordResetRequest struct {
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UpdateUserRequest actualización administrativa de un usuario. Campos nil no se tocan.
type UpdateUserRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsStaff     *bool   `json:"is_staff,omitempty"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
