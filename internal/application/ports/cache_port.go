package ports

import (
	"context"
	"time"
)

// Claves de las vistas dependientes del libro de inventario.
const (
	CacheKeyProducts   = "view:warehouse:products"
	CacheKeyMonitoring = "view:dashboard:monitoring"
)

// CacheKeyBrigadierInventory vista de la reserva de un brigadier.
func CacheKeyBrigadierInventory(brigadierID string) string {
	return "view:brigadier:" + brigadierID + ":inventory"
}

// ViewCache caché de vistas de lectura (listado del almacén, tablero del brigadier, tablero general).
// El orquestador invalida las claves afectadas después de cada commit.
type ViewCache interface {
	// Get decodifica el valor en dest; false si la clave no está.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}
