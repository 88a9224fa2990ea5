package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrStoreUnavailable = errors.New("almacenamiento no disponible")

	// Validación de identidad y aprovisionamiento.
	ErrDuplicateEmail       = errors.New("el email ya está registrado")
	ErrPasswordMismatch     = errors.New("las contraseñas no coinciden")
	ErrMissingRequiredField = errors.New("campo requerido")
	ErrInvalidUserType      = errors.New("tipo de usuario inválido")
	ErrProfileMismatch      = errors.New("el perfil no corresponde al tipo de usuario")
	ErrWrongPassword        = errors.New("contraseña actual incorrecta")
	ErrFieldNotEditable     = errors.New("campo no editable")

	// Catálogo.
	ErrFamilleNotInGamme = errors.New("la familia no pertenece a la gama seleccionada")
	ErrReferenceMismatch = errors.New("la referencia no coincide con la generada")
)

// FieldError asocia un error de validación a un campo de la petición.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// FieldErr construye un *FieldError.
func FieldErr(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

// FieldOf devuelve el campo de un error de validación, o "" si no tiene.
func FieldOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}

// IsValidation informa si err es un error de validación recuperable por el cliente.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidInput, ErrDuplicate, ErrDuplicateEmail, ErrPasswordMismatch,
		ErrMissingRequiredField, ErrInvalidUserType, ErrProfileMismatch,
		ErrWrongPassword, ErrFieldNotEditable, ErrFamilleNotInGamme, ErrReferenceMismatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
