package identity

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength longitud mínima de contraseña (en runas).
const MinPasswordLength = 8

type options struct {
	bcryptCost int
	now        func() time.Time
}

// Option configura los servicios de identidad.
type Option func(*options)

// WithBcryptCost fija el coste de bcrypt (los tests usan bcrypt.MinCost).
func WithBcryptCost(cost int) Option {
	return func(o *options) { o.bcryptCost = cost }
}

// WithClock sustituye time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{bcryptCost: bcrypt.DefaultCost, now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func (o options) hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), o.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// checkPassword compara en tiempo constante; cualquier error equivale a "no coincide".
func checkPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// validateNewPassword confirmación igual y longitud mínima. field es el campo que se reporta.
func validateNewPassword(field, password, confirmation string) error {
	if password == "" {
		return domain.FieldErr(field, domain.ErrMissingRequiredField)
	}
	if password != confirmation {
		return domain.FieldErr(field, domain.ErrPasswordMismatch)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return domain.FieldErr(field, fmt.Errorf("%w: mínimo %d caracteres", domain.ErrInvalidInput, MinPasswordLength))
	}
	return nil
}

var errBcryptTooLong = errors.New("password demasiado largo")

// checkHashable bcrypt rechaza entradas de más de 72 bytes.
func checkHashable(field, password string) error {
	if len(password) > 72 {
		return domain.FieldErr(field, fmt.Errorf("%w: %v", domain.ErrInvalidInput, errBcryptTooLong))
	}
	return nil
}
