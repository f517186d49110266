// Package auth contiene los casos de uso de autenticación: login, perfil y
// cambio de contraseña. La gestión de usuarios (solo admin) vive en
// application/usecase.
package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"github.com/ecogestion/raee-api/internal/application/dto"
	"github.com/ecogestion/raee-api/internal/domain"
	"github.com/ecogestion/raee-api/internal/domain/entity"
	"github.com/ecogestion/raee-api/internal/domain/permission"
	"github.com/ecogestion/raee-api/internal/domain/repository"
	"github.com/ecogestion/raee-api/pkg/jwt"
)

// JWTConfig configuración para la generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica credenciales, estampa lastLogin y genera el JWT.
// La contraseña se recorta: espacios accidentales alrededor no invalidan.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(strings.ToLower(in.Username))
	if username == "" || strings.TrimSpace(in.Password) == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(in.Password))); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	now := time.Now()
	user.LastLogin = &now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *ToUserResponse(user)}, nil
}

// Me devuelve el perfil del usuario autenticado con sus permisos.
func (uc *UseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// ChangePassword verifica la contraseña actual y persiste la nueva (bcrypt).
func (uc *UseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if len(strings.TrimSpace(in.NewPassword)) < 4 {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(in.CurrentPassword))); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(in.NewPassword)), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

// ToUserResponse mapea la entidad a su representación pública, sin el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	actions := permission.ActionsFor(u.Role)
	perms := make([]string, 0, len(actions))
	for _, a := range actions {
		perms = append(perms, string(a))
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		Permissions: perms,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
	}
}
