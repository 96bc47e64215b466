package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/navbahor-erp/internal/application/ports"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
)

var (
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
	_ ports.AdminNotifier               = (*NotificationRepo)(nil)
)

// NotificationRepo buzón de avisos; también es el destino por defecto de los avisos a administradores.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el repositorio sobre el pool.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// CreateForRoles una fila por usuario con alguno de los roles, en una sola sentencia.
func (r *NotificationRepo) CreateForRoles(ctx context.Context, roles []entity.Role, n *entity.Notification) (int64, error) {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	query := `
		INSERT INTO notifications (id, user_id, title, message, type, link, is_read, created_at)
		SELECT gen_random_uuid(), u.id, $2, $3, $4, $5, false, $6
		FROM users u WHERE u.role = ANY($1)`
	tag, err := r.q.Exec(ctx, query, names, n.Title, n.Message, n.Type, n.Link, createdAt)
	if err != nil {
		return 0, fmt.Errorf("insert notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

// NotifyAdmins deja el aviso en el buzón de cada administrador.
func (r *NotificationRepo) NotifyAdmins(ctx context.Context, ev ports.AdminEvent) error {
	_, err := r.CreateForRoles(ctx, entity.AdminRoles, &entity.Notification{
		Title:   ev.Title,
		Message: ev.Message,
		Type:    ev.Type,
		Link:    ev.Link,
	})
	return err
}
