// Package auth autentica al operador del directorio. No hay registro de
// usuarios: las credenciales del administrador vienen de la configuración y
// el login deja un descriptor de sesión en la caché local para que el resto
// de la aplicación pueda atribuir acciones.
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Directorio-api/internal/application/dto"
	"github.com/jhoicas/Directorio-api/internal/domain"
	"github.com/jhoicas/Directorio-api/internal/domain/entity"
	"github.com/jhoicas/Directorio-api/internal/infrastructure/localcache"
	"github.com/jhoicas/Directorio-api/pkg/config"
	"github.com/jhoicas/Directorio-api/pkg/jwt"
)

// RoleAdmin único rol de operador de esta aplicación.
const RoleAdmin = "admin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase caso de uso de autenticación: login contra el admin configurado.
type UseCase struct {
	admin  config.AdminConfig
	cache  *localcache.Store
	jwtCfg JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(admin config.AdminConfig, cache *localcache.Store, jwtCfg JWTConfig) *UseCase {
	return &UseCase{admin: admin, cache: cache, jwtCfg: jwtCfg}
}

// Login verifica email/password contra el administrador configurado, genera
// el JWT y persiste el descriptor de sesión. El mismo error opaco cubre email
// desconocido y contraseña incorrecta.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.admin.Email == "" || uc.admin.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Email != uc.admin.Email {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	sess := entity.Session{
		ID:          uc.admin.Email,
		DisplayName: uc.admin.Name,
		Email:       uc.admin.Email,
		Role:        RoleAdmin,
	}
	if err := uc.cache.SaveSession(ctx, sess); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, sess.ID, sess.DisplayName, sess.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		Session: dto.SessionResponse{
			ID:          sess.ID,
			DisplayName: sess.DisplayName,
			Email:       sess.Email,
			Role:        sess.Role,
		},
	}, nil
}
