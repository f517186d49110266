// Package usecase contiene la gestión de usuarios (solo admin).
package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"github.com/ecogestion/raee-api/internal/application/auth"
	"github.com/ecogestion/raee-api/internal/application/dto"
	"github.com/ecogestion/raee-api/internal/domain"
	"github.com/ecogestion/raee-api/internal/domain/entity"
	"github.com/ecogestion/raee-api/internal/domain/permission"
	"github.com/ecogestion/raee-api/internal/domain/repository"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// UserUseCase operaciones de gestión de usuarios, gobernadas por ManageUsers.
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// EnsureAdmin garantiza que exista al menos un admin activo. Si la base ya
// tiene uno no hace nada; si no, crea el admin inicial con las credenciales
// configuradas. Sin este usuario nadie puede iniciar sesión ni registrar a los
// demás, y las alertas automáticas no tendrían autor. Devuelve true si lo creó.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, username, password, fullName string) (bool, error) {
	admin, err := uc.userRepo.FindFirstAdmin(ctx)
	if err != nil {
		return false, err
	}
	if admin != nil {
		return false, nil
	}

	username = strings.TrimSpace(strings.ToLower(username))
	if !usernameRe.MatchString(username) || len(strings.TrimSpace(password)) < 4 {
		return false, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(password)), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(fullName),
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Carrera entre réplicas arrancando a la vez: el otro ya lo creó
		if errors.Is(err, domain.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Register crea un usuario nuevo. Username duplicado devuelve ErrDuplicate.
func (uc *UserUseCase) Register(ctx context.Context, in dto.RegisterUserRequest, actorID, actorRole string) (*dto.UserResponse, error) {
	if !permission.Allows(actorRole, permission.ManageUsers) {
		return nil, domain.ErrForbidden
	}
	username := strings.TrimSpace(strings.ToLower(in.Username))
	if !usernameRe.MatchString(username) || len(strings.TrimSpace(in.Password)) < 4 || strings.TrimSpace(in.FullName) == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.ValidUserRole(role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(in.Password)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Email:        strings.TrimSpace(strings.ToLower(in.Email)),
		Role:         role,
		IsActive:     true,
		CreatedBy:    actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List todos los usuarios del sistema.
func (uc *UserUseCase) List(ctx context.Context, actorRole string) ([]dto.UserResponse, error) {
	if !permission.Allows(actorRole, permission.ManageUsers) {
		return nil, domain.ErrForbidden
	}
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *auth.ToUserResponse(&users[i]))
	}
	return out, nil
}

// Deactivate desactiva un usuario. Un admin no puede desactivarse a sí mismo.
func (uc *UserUseCase) Deactivate(ctx context.Context, targetID, actorID, actorRole string) (*dto.UserResponse, error) {
	if !permission.Allows(actorRole, permission.ManageUsers) {
		return nil, domain.ErrForbidden
	}
	if targetID == actorID {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.IsActive = false
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}
