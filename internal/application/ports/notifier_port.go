package ports

import (
	"context"

	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
)

// Tipos de aviso.
const (
	NotificationInfo    = "INFO"
	NotificationSuccess = "SUCCESS"
	NotificationWarning = "WARNING"
)

// AdminEvent aviso para todos los usuarios con rol de administración.
type AdminEvent struct {
	Title   string
	Message string
	Type    string
	Link    string
	// Datos del lote que originó el aviso; los sumideros de eventos los publican tal cual.
	BatchID   string
	WaybillID string
	TxType    entity.TransactionType
	Items     int
}

// AdminNotifier sumidero de avisos a administradores (buzón en BD, tópico Kafka).
type AdminNotifier interface {
	NotifyAdmins(ctx context.Context, ev AdminEvent) error
}
