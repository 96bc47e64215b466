// Package fieldwork máquina de estados de las actividades de campo por (contorno, etapa).
package fieldwork

import (
	"fmt"
	"time"

	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
)

var known = map[entity.ActivityStatus]bool{
	entity.ActivityPending:    true,
	entity.ActivityInProgress: true,
	entity.ActivityCompleted:  true,
	entity.ActivityCancelled:  true,
}

// ValidStatus indica si el estado es conocido.
func ValidStatus(s entity.ActivityStatus) bool {
	return known[s]
}

// CanTransition el avance normal es PENDING -> IN_PROGRESS -> COMPLETED, pero el estado es
// lo que el brigadier reporta: se puede corregir hacia atrás, reabrir una actividad
// COMPLETED o CANCELLED y cancelar desde cualquier estado. Solo se rechaza un estado
// de origen desconocido.
func CanTransition(from, to entity.ActivityStatus) bool {
	return known[from] && known[to]
}

// Apply valida la transición y fija la fecha de cierre: solo COMPLETED la conserva.
// Una actividad que aún no existe puede crearse en cualquier estado.
func Apply(a *entity.FieldActivity, exists bool, to entity.ActivityStatus, now time.Time) error {
	if !ValidStatus(to) {
		return fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, to)
	}
	if exists && !CanTransition(a.Status, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, a.Status, to)
	}
	if to == entity.ActivityCompleted {
		if !exists || a.Status != entity.ActivityCompleted || a.CompletionDate == nil {
			t := now
			a.CompletionDate = &t
		}
	} else {
		a.CompletionDate = nil
	}
	a.Status = to
	return nil
}
