package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// UserType y Superuser permiten al middleware RBAC decidir sin consultar la DB.
// RegisteredClaims.ID (jti) identifica el token para su revocación.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	UserType  string `json:"user_type"`
	Superuser bool   `json:"superuser,omitempty"`
}

// Generate genera un token JWT firmado HS256 y devuelve también sus claims.
func Generate(secret, userID, userType string, superuser bool, issuer string, expMinutes int) (string, *Claims, error) {
	if secret == "" {
		return "", nil, fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		UserType:  userType,
		Superuser: superuser,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Parse valida firma y expiración y devuelve los claims.
func Parse(secret, tokenString string) (*Claims, error) {
	return parse(secret, tokenString)
}

// ParseUnverifiedExpiry valida la firma pero acepta tokens expirados (logout de un token vencido).
func ParseUnverifiedExpiry(secret, tokenString string) (*Claims, error) {
	claims, err := parse(secret, tokenString, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func parse(secret, tokenString string, opts ...jwt.ParserOption) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("claims inválidos")
	}
	return claims, nil
}

// Remaining tiempo de vida restante del token (0 si ya expiró o no tiene exp).
func (c *Claims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	d := c.ExpiresAt.Time.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
