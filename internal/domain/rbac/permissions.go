// Package rbac centraliza las decisiones de autorización por tipo de usuario.
// Todas las comprobaciones son fail-closed: sin autenticación o con capacidad desconocida se deniega.
package rbac

import "github.com/jhoicas/Stockify-api/internal/domain/entity"

// Capability recurso y acción sobre los que se decide.
type Capability string

const (
	ManageProducts         Capability = "products.manage"
	ViewCatalog            Capability = "catalog.view"
	ViewOrders             Capability = "orders.view"
	ManageOrders           Capability = "orders.manage"
	ViewInvoices           Capability = "invoices.view"
	ManageInvoices         Capability = "invoices.manage"
	ManageFinancialReports Capability = "reports.financial.manage"
	ManageUsers            Capability = "users.manage"
	CreateUsers            Capability = "users.create"
	UpdateUsers            Capability = "users.update"
	DeleteUsers            Capability = "users.delete"
	ConfirmPasswordReset   Capability = "users.password_reset.confirm"
	ManageTerminal         Capability = "terminal.manage"
	ViewExpiryAlerts       Capability = "alerts.expiry.view"
	ManageExpiryAlerts     Capability = "alerts.expiry.manage"
	OwnerOrDirector        Capability = "object.owner_or_director"
)

// Principal identidad autenticada de la petición.
type Principal struct {
	UserID        string
	Type          entity.UserType
	IsSuperuser   bool
	Authenticated bool
}

// Anonymous principal sin autenticar.
var Anonymous = Principal{}

// PrincipalOf construye el principal de un usuario ya autenticado.
func PrincipalOf(u *entity.User) Principal {
	if u == nil {
		return Anonymous
	}
	return Principal{UserID: u.ID, Type: u.Type, IsSuperuser: u.IsSuperuser, Authenticated: true}
}

// rule disyunción de pertenencias: cualquier autenticado, alguno de los tipos o el dueño del objeto.
type rule struct {
	anyAuthenticated bool
	types            []entity.UserType
	owner            bool
}

var rules = map[Capability]rule{
	ManageProducts:         {types: []entity.UserType{entity.UserTypeDirector, entity.UserTypeClientIndustriel}},
	ViewCatalog:            {anyAuthenticated: true},
	ViewOrders:             {anyAuthenticated: true},
	ManageOrders:           {types: []entity.UserType{entity.UserTypeDirector, entity.UserTypeClientIndustriel}},
	ViewInvoices:           {anyAuthenticated: true},
	ManageInvoices:         {types: []entity.UserType{entity.UserTypeDirector, entity.UserTypeComptable}},
	ManageFinancialReports: {types: []entity.UserType{entity.UserTypeComptable, entity.UserTypeDirector}},
	ManageUsers:            {types: []entity.UserType{entity.UserTypeRH, entity.UserTypeDirector}},
	CreateUsers:            {types: []entity.UserType{entity.UserTypeRH}},
	UpdateUsers:            {types: []entity.UserType{entity.UserTypeRH}, owner: true},
	DeleteUsers:            {types: []entity.UserType{entity.UserTypeRH}},
	ConfirmPasswordReset:   {types: []entity.UserType{entity.UserTypeSuperAdmin}},
	ManageTerminal:         {types: []entity.UserType{entity.UserTypeTerminalUser, entity.UserTypeDirector}},
	ViewExpiryAlerts:       {anyAuthenticated: true},
	ManageExpiryAlerts:     {types: []entity.UserType{entity.UserTypeDirector}},
	OwnerOrDirector:        {types: []entity.UserType{entity.UserTypeDirector}, owner: true},
}

// Capabilities lista todas las capacidades conocidas.
func Capabilities() []Capability {
	out := make([]Capability, 0, len(rules))
	for c := range rules {
		out = append(out, c)
	}
	return out
}

// Known informa si c está en la tabla.
func Known(c Capability) bool {
	_, ok := rules[c]
	return ok
}

// Authorize decide sin objeto. Las reglas de dueño solo conceden por tipo.
func Authorize(p Principal, c Capability) bool {
	return AuthorizeObject(p, c, "")
}

// AuthorizeObject decide con la identidad dueña del objeto. ownerID vacío nunca coincide.
func AuthorizeObject(p Principal, c Capability, ownerID string) bool {
	if !p.Authenticated {
		return false
	}
	r, ok := rules[c]
	if !ok {
		return false
	}
	if p.IsSuperuser {
		return true
	}
	if r.anyAuthenticated {
		return true
	}
	for _, t := range r.types {
		if p.Type == t {
			return true
		}
	}
	return r.owner && ownerID != "" && ownerID == p.UserID
}
