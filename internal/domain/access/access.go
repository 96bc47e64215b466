// Package access decide qué actor puede ejecutar cada operación pública.
// Cada operación declara un Permission (conjunto de roles); SUPER_ADMIN pasa todas las verificaciones.
package access

import (
	"fmt"

	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
)

// Actor identidad ya autenticada que invoca una operación.
// BrigadierID y FarmerID son los perfiles vinculados al usuario, si existen.
type Actor struct {
	UserID      string
	Role        entity.Role
	BrigadierID string
	FarmerID    string
}

// Authenticated indica si el actor trae identidad.
func (a Actor) Authenticated() bool {
	return a.UserID != "" && a.Role.Valid()
}

// Permission conjunto de roles admitidos para una operación.
type Permission struct {
	Name  string
	Roles []entity.Role
}

func perm(name string, roles ...entity.Role) Permission {
	return Permission{Name: name, Roles: roles}
}

// Permisos por operación.
var (
	RecordTransaction      = perm("record_transaction", entity.RoleAdmin, entity.RoleWarehouseman)
	BrigadierTransaction   = perm("brigadier_transaction", entity.RoleBrigadier)
	ViewLedger             = perm("view_ledger", entity.RoleAdmin, entity.RoleWarehouseman, entity.RoleDirector, entity.RoleMonitor, entity.RoleAgronomist)
	ReconcileStock         = perm("reconcile_stock", entity.RoleAdmin)
	ManageCatalog          = perm("manage_catalog", entity.RoleAdmin, entity.RoleWarehouseman)
	ViewCatalog            = perm("view_catalog", entity.RoleAdmin, entity.RoleWarehouseman, entity.RoleDirector, entity.RoleMonitor, entity.RoleAgronomist, entity.RoleBrigadier)
	ViewBrigadierInventory = perm("view_brigadier_inventory", entity.RoleAdmin, entity.RoleWarehouseman, entity.RoleDirector, entity.RoleAgronomist, entity.RoleMonitor, entity.RoleBrigadier)
	ManageDirectory        = perm("manage_directory", entity.RoleAdmin)
	ViewDirectory          = perm("view_directory", entity.RoleAdmin, entity.RoleDirector, entity.RoleMonitor, entity.RoleWarehouseman, entity.RoleAgronomist)
	ViewFarmer             = perm("view_farmer", entity.RoleAdmin, entity.RoleDirector, entity.RoleMonitor, entity.RoleFarmer)
	ViewBrigadier          = perm("view_brigadier", entity.RoleAdmin, entity.RoleDirector, entity.RoleMonitor, entity.RoleWarehouseman, entity.RoleAgronomist, entity.RoleBrigadier)
	ManageUsers            = perm("manage_users", entity.RoleAdmin)
	ManageWorkStages       = perm("manage_work_stages", entity.RoleAdmin, entity.RoleAgronomist)
	AssignWorkPlan         = perm("assign_work_plan", entity.RoleAdmin, entity.RoleAgronomist)
	UpdateFieldActivity    = perm("update_field_activity", entity.RoleAdmin, entity.RoleAgronomist, entity.RoleBrigadier)
	ViewFieldActivities    = perm("view_field_activities", entity.RoleAdmin, entity.RoleAgronomist, entity.RoleDirector, entity.RoleMonitor, entity.RoleBrigadier)
	ResetFieldActivities   = perm("reset_field_activities", entity.RoleAdmin)
	ViewMonitoring         = perm("view_monitoring", entity.RoleAdmin, entity.RoleDirector, entity.RoleMonitor)
)

// Allows indica si el rol está en el conjunto. SUPER_ADMIN siempre.
func (p Permission) Allows(role entity.Role) bool {
	if role == entity.RoleSuperAdmin {
		return true
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Require valida que el actor esté autenticado y tenga uno de los roles del permiso.
func Require(a Actor, p Permission) error {
	if !a.Authenticated() {
		return domain.ErrUnauthorized
	}
	if !p.Allows(a.Role) {
		return fmt.Errorf("%w: %s requiere otro rol", domain.ErrForbidden, p.Name)
	}
	return nil
}

// RequireBrigadier como Require, pero un actor con rol BRIGADIER solo puede operar sobre su propio perfil.
func RequireBrigadier(a Actor, p Permission, brigadierID string) error {
	if err := Require(a, p); err != nil {
		return err
	}
	if a.Role == entity.RoleBrigadier && (a.BrigadierID == "" || a.BrigadierID != brigadierID) {
		return fmt.Errorf("%w: el brigadier solo puede operar sobre su propia reserva", domain.ErrForbidden)
	}
	return nil
}

// RequireFarmer como Require; un actor FARMER solo ve su propia ficha.
func RequireFarmer(a Actor, p Permission, farmerID string) error {
	if err := Require(a, p); err != nil {
		return err
	}
	if a.Role == entity.RoleFarmer && (a.FarmerID == "" || a.FarmerID != farmerID) {
		return fmt.Errorf("%w: el fermer solo puede consultar su propia ficha", domain.ErrForbidden)
	}
	return nil
}
