package entity

import "time"

// Roles válidos para User. El rol "user" corresponde al operador de báscula.
const (
	RoleGuest = "guest"
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserRoles lista cerrada de roles.
var UserRoles = []string{RoleGuest, RoleUser, RoleAdmin}

// ValidUserRole indica si el rol pertenece al enum.
func ValidUserRole(r string) bool {
	for _, v := range UserRoles {
		if v == r {
			return true
		}
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	FullName     string
	Email        string
	Role         string // guest, user, admin
	IsActive     bool
	LastLogin    *time.Time
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
