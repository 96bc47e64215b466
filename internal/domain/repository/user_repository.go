package repository

import (
	"context"

	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	ListByRoles(ctx context.Context, roles ...entity.Role) ([]*entity.User, error)
	// List todos los usuarios, los más recientes primero.
	List(ctx context.Context) ([]*entity.User, error)
	// Update guarda username, nombre, rol y hash. ErrNotFound si no existe.
	Update(ctx context.Context, user *entity.User) error
	// Delete ErrConflict si un perfil o asiento aún lo referencia.
	Delete(ctx context.Context, id string) error
}
