package entity

import "time"

// Role rol de un usuario del sistema.
type Role string

// Roles válidos para User.
const (
	RoleSuperAdmin   Role = "SUPER_ADMIN"
	RoleAdmin        Role = "ADMIN"
	RoleDirector     Role = "DIRECTOR"
	RoleWarehouseman Role = "WAREHOUSEMAN"
	RoleAgronomist   Role = "AGRONOMIST"
	RoleBrigadier    Role = "BRIGADIER"
	RoleFarmer       Role = "FARMER"
	RoleMonitor      Role = "MONITOR"
)

// Valid indica si el rol es conocido.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleDirector, RoleWarehouseman,
		RoleAgronomist, RoleBrigadier, RoleFarmer, RoleMonitor:
		return true
	}
	return false
}

// AdminRoles roles que reciben las notificaciones del almacén.
var AdminRoles = []Role{RoleAdmin, RoleSuperAdmin}

// User credencial de acceso. Los perfiles Farmer y Brigadier la referencian.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt, nunca plano después de persistir
	FullName     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
