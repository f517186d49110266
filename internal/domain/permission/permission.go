// Package permission define la tabla cerrada rol × acción del sistema.
// Sustituye las comparaciones de strings dispersas: el motor de transición de
// estados y la gestión de usuarios consultan esta tabla una sola vez.
package permission

import "github.com/ecogestion/raee-api/internal/domain/entity"

// Action acción gobernada por la tabla de permisos.
type Action string

const (
	ViewDashboard Action = "view_dashboard"
	CreateEntry   Action = "create_entry"
	ViewReports   Action = "view_reports"
	ManageEntries Action = "manage_entries" // cambios de estado, resolución de alertas
	ManageUsers   Action = "manage_users"
	SystemConfig  Action = "system_config"
)

var table = map[string]map[Action]bool{
	entity.RoleGuest: {
		ViewDashboard: true,
	},
	entity.RoleUser: {
		ViewDashboard: true,
		CreateEntry:   true,
		ViewReports:   true,
		ManageEntries: true,
	},
	entity.RoleAdmin: {
		ViewDashboard: true,
		CreateEntry:   true,
		ViewReports:   true,
		ManageEntries: true,
		ManageUsers:   true,
		SystemConfig:  true,
	},
}

// Allows indica si el rol puede ejecutar la acción. Roles desconocidos no
// tienen permisos.
func Allows(role string, action Action) bool {
	return table[role][action]
}

// ActionsFor devuelve las acciones permitidas para un rol (para /auth/me).
func ActionsFor(role string) []Action {
	perms := table[role]
	if len(perms) == 0 {
		return nil
	}
	// Orden estable para respuestas deterministas
	ordered := []Action{ViewDashboard, CreateEntry, ViewReports, ManageEntries, ManageUsers, SystemConfig}
	var out []Action
	for _, a := range ordered {
		if perms[a] {
			out = append(out, a)
		}
	}
	return out
}
