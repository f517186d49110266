package repository

import (
	"context"

	"github.com/ecogestion/raee-api/internal/domain/entity"
)

// UserRepository persistencia de usuarios.
type UserRepository interface {
	// Create persiste el usuario. Username duplicado devuelve domain.ErrDuplicate.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	// Update persiste fullName, email, role, isActive, lastLogin y passwordHash.
	Update(ctx context.Context, user *entity.User) error
	// FindFirstAdmin devuelve un admin activo (autor de las alertas automáticas), nil si no hay.
	FindFirstAdmin(ctx context.Context) (*entity.User, error)
}
