package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/application/identity"
	"github.com/jhoicas/Stockify-api/internal/application/ports"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/rbac"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
	"github.com/jhoicas/Stockify-api/pkg/jwt"
	"github.com/jhoicas/Stockify-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// dummyHash se compara cuando el email no existe, para que el tiempo de respuesta no delate la cuenta.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("stockify-dummy-password"), bcrypt.DefaultCost)

// AuthUseCase servicio de sesión: emite, valida e invalida tokens.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	revocations ports.TokenRevocationStore
	jwtCfg      JWTConfig
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, revocations ports.TokenRevocationStore, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, revocations: revocations, jwtCfg: jwtCfg, now: time.Now}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente, password incorrecto y cuenta inactiva devuelven el mismo ErrUnauthorized.
// El login de un director marca is_sso_authenticated.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, entity.NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}

	token, claims, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, string(user.Type), user.IsSuperuser, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	if user.IsDirector() {
		if err := uc.userRepo.MarkSSOAuthenticated(ctx, user.ID); err != nil {
			return nil, err
		}
		user.IsSSOAuthenticated = true
	}

	logger.FromContext(ctx).Info().Str("user_id", user.ID).Str("user_type", string(user.Type)).Msg("login")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      *identity.ToUserResponse(user),
	}, nil
}

// Logout invalida el token hasta su expiración. Siempre termina bien para el cliente: un token
// ilegible o vencido ya no sirve, y un fallo del almacén solo se registra.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	claims, err := jwt.ParseUnverifiedExpiry(uc.jwtCfg.Secret, token)
	if err != nil || claims.ID == "" {
		return nil
	}
	ttl := claims.Remaining(uc.now())
	if ttl <= 0 {
		return nil
	}
	if err := uc.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("user_id", claims.UserID).Msg("no se pudo revocar el token")
	}
	return nil
}

// Authenticate valida el token y devuelve el principal de la petición. Se vuelve a leer el
// usuario para que una baja o desactivación corte el acceso sin esperar a la expiración.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (rbac.Principal, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return rbac.Anonymous, domain.ErrUnauthorized
	}
	if claims.ID != "" {
		revoked, err := uc.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return rbac.Anonymous, errors.Join(domain.ErrUnauthorized, err)
		}
		if revoked {
			return rbac.Anonymous, domain.ErrUnauthorized
		}
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return rbac.Anonymous, errors.Join(domain.ErrUnauthorized, err)
	}
	if user == nil || !user.IsActive {
		return rbac.Anonymous, domain.ErrUnauthorized
	}
	return rbac.PrincipalOf(user), nil
}
