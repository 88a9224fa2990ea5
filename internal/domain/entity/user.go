package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// UserType discrimina los ocho tipos de usuario. Se fija al construir y no cambia.
type UserType string

const (
	UserTypeSuperAdmin       UserType = "super_admin"
	UserTypeDirector         UserType = "director"
	UserTypeComptable        UserType = "comptable"
	UserTypeRH               UserType = "rh"
	UserTypeTerminalUser     UserType = "terminal_user"
	UserTypeClientIndustriel UserType = "client_industriel"
	UserTypeClientPointVente UserType = "client_point_vente"
	UserTypeClientRevendeur  UserType = "client_revendeur"
)

// UserTypes lista cerrada de tipos válidos.
var UserTypes = []UserType{
	UserTypeSuperAdmin, UserTypeDirector, UserTypeComptable, UserTypeRH, UserTypeTerminalUser,
	UserTypeClientIndustriel, UserTypeClientPointVente, UserTypeClientRevendeur,
}

// Valid informa si t pertenece a la enumeración.
func (t UserType) Valid() bool {
	for _, v := range UserTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ClientCategory categoría de un cliente empresa; se deriva del tipo, nunca la envía el cliente.
type ClientCategory string

const (
	ClientCategoryIndustrial ClientCategory = "industriel"
	ClientCategoryReseller   ClientCategory = "revendeur"
)

// ProfileKind identifica la variante de perfil de extensión.
type ProfileKind string

const (
	ProfileNone        ProfileKind = ""
	ProfileIndustrial  ProfileKind = "industrial"
	ProfileReseller    ProfileKind = "reseller"
	ProfileRetailPoint ProfileKind = "retail_point"
)

// ExpectedProfileKind devuelve el único tipo de perfil admitido para t.
func ExpectedProfileKind(t UserType) ProfileKind {
	switch t {
	case UserTypeClientIndustriel:
		return ProfileIndustrial
	case UserTypeClientRevendeur:
		return ProfileReseller
	case UserTypeClientPointVente:
		return ProfileRetailPoint
	default:
		return ProfileNone
	}
}

// Profile perfil de extensión 1:1 con User. Implementado por *IndustrialProfile,
// *ResellerProfile y *RetailPointProfile.
type Profile interface {
	Kind() ProfileKind
}

// DeliveryAddress dirección de entrega de un cliente empresa (lista ordenada).
type DeliveryAddress struct {
	Label      string `json:"label"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// EnterpriseProfile campos comunes de clientes industriales y revendedores.
type EnterpriseProfile struct {
	CompanyName       string
	CompanyAddress    string
	TaxID             string
	ContactPerson     string
	DeliveryAddresses []DeliveryAddress
	PaymentTerms      string
	ClientCategory    ClientCategory
}

// IndustrialProfile perfil de client_industriel.
type IndustrialProfile struct {
	EnterpriseProfile
	SectorActivity    string
	IsPriorityClient  bool
	ContractReference string
}

func (*IndustrialProfile) Kind() ProfileKind { return ProfileIndustrial }

// ResellerProfile perfil de client_revendeur.
type ResellerProfile struct {
	EnterpriseProfile
	ResaleArea         string
	MonthlyEstimate    decimal.Decimal
	HasResaleAgreement bool
}

func (*ResellerProfile) Kind() ProfileKind { return ProfileReseller }

// RetailPointProfile perfil de client_point_vente. StoreCode es único cuando no está vacío.
type RetailPointProfile struct {
	Location         string
	StoreManagerName string
	StoreCode        string
	AssignedRegion   string
	OpeningHours     string
}

func (*RetailPointProfile) Kind() ProfileKind { return ProfileRetailPoint }

// User raíz de identidad: registro base + perfil de extensión opcional según Type.
type User struct {
	ID                       string
	Email                    string
	PasswordHash             string // bcrypt, nunca en claro
	Type                     UserType
	FirstName                string
	LastName                 string
	PhoneNumber              string
	Description              string
	IsActive                 bool
	IsStaff                  bool
	IsSuperuser              bool
	IsSSOAuthenticated       bool
	LastPasswordResetRequest *time.Time
	Profile                  Profile // nil para tipos de personal
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// NewUserParams datos para construir un User válido.
type NewUserParams struct {
	ID           string
	Email        string
	PasswordHash string
	Type         UserType
	FirstName    string
	LastName     string
	PhoneNumber  string
	IsStaff      bool
	IsSuperuser  bool
	Profile      Profile
}

// NewUser construye un usuario activo verificando que el perfil corresponda al tipo.
// Los clientes empresa exigen su perfil; los tipos de personal no admiten ninguno.
func NewUser(p NewUserParams) (*User, error) {
	if !p.Type.Valid() {
		return nil, domain.FieldErr("user_type", domain.ErrInvalidUserType)
	}
	email := NormalizeEmail(p.Email)
	if email == "" {
		return nil, domain.FieldErr("email", domain.ErrMissingRequiredField)
	}
	if err := checkProfile(p.Type, p.Profile); err != nil {
		return nil, err
	}
	if ep, ok := p.Profile.(*IndustrialProfile); ok {
		ep.ClientCategory = ClientCategoryIndustrial
	}
	if ep, ok := p.Profile.(*ResellerProfile); ok {
		ep.ClientCategory = ClientCategoryReseller
	}
	return &User{
		ID:           p.ID,
		Email:        email,
		PasswordHash: p.PasswordHash,
		Type:         p.Type,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PhoneNumber:  p.PhoneNumber,
		IsActive:     true,
		IsStaff:      p.IsStaff,
		IsSuperuser:  p.IsSuperuser,
		Profile:      p.Profile,
	}, nil
}

func checkProfile(t UserType, p Profile) error {
	want := ExpectedProfileKind(t)
	got := ProfileNone
	if p != nil {
		got = p.Kind()
	}
	switch {
	case got == want:
		return nil
	case got == ProfileNone && (want == ProfileIndustrial || want == ProfileReseller):
		return domain.FieldErr("profile", fmt.Errorf("%w: %s requiere perfil %s", domain.ErrProfileMismatch, t, want))
	case got == ProfileNone && want == ProfileRetailPoint:
		return nil
	default:
		return domain.FieldErr("profile", fmt.Errorf("%w: %s no admite perfil %s", domain.ErrProfileMismatch, t, got))
	}
}

// IsDirector informa si el usuario es director.
func (u *User) IsDirector() bool { return u.Type == UserTypeDirector }

// IsProfessionalClient informa si es cliente industrial o revendedor.
func (u *User) IsProfessionalClient() bool {
	return u.Type == UserTypeClientIndustriel || u.Type == UserTypeClientRevendeur
}

// HasPendingPasswordReset informa si hay una solicitud de reinicio pendiente.
func (u *User) HasPendingPasswordReset() bool { return u.LastPasswordResetRequest != nil }

// NormalizeEmail recorta espacios y aplica case folding Unicode al email completo.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}
