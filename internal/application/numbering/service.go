// Package numbering emite los números de las notas de despacho (NX-{año}-{secuencia}).
package numbering

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/navbahor-erp/internal/domain/ledger"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
)

// Service calcula el siguiente número dentro de la transacción del llamador.
type Service struct {
	now func() time.Time
}

// NewService construye el servicio con el reloj del sistema.
func NewService() *Service {
	return &Service{now: time.Now}
}

// NewServiceWithClock permite fijar el reloj (tests, reprocesos).
func NewServiceWithClock(now func() time.Time) *Service {
	return &Service{now: now}
}

// Next toma el bloqueo de numeración, lee la última nota y devuelve la siguiente.
// repo debe estar atado a la misma transacción que insertará la nota.
func (s *Service) Next(ctx context.Context, repo repository.WaybillRepository) (string, error) {
	if err := repo.LockNumbering(ctx); err != nil {
		return "", fmt.Errorf("bloquear numeración: %w", err)
	}
	last, err := repo.Last(ctx)
	if err != nil {
		return "", fmt.Errorf("leer última nota: %w", err)
	}
	lastNumber := ""
	if last != nil {
		lastNumber = last.Number
	}
	return ledger.NextWaybillNumber(lastNumber, s.now().Year())
}
