package repository

import (
	"context"

	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
)

// NotificationRepository buzón de avisos por usuario.
type NotificationRepository interface {
	// CreateForRoles inserta una copia de n para cada usuario con alguno de los roles.
	CreateForRoles(ctx context.Context, roles []entity.Role, n *entity.Notification) (int64, error)
}
