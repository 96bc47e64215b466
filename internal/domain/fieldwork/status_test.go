package fieldwork_test

import (
	"testing"
	"time"

	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/fieldwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	P, I, C, X := entity.ActivityPending, entity.ActivityInProgress, entity.ActivityCompleted, entity.ActivityCancelled
	all := []entity.ActivityStatus{P, I, C, X}
	for _, from := range all {
		for _, to := range all {
			assert.True(t, fieldwork.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, fieldwork.CanTransition("DONE", P))
	assert.False(t, fieldwork.CanTransition(P, "DONE"))
}

func TestApply_Reopen(t *testing.T) {
	now := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)
	later := now.Add(24 * time.Hour)

	a := &entity.FieldActivity{Status: entity.ActivityInProgress}
	require.NoError(t, fieldwork.Apply(a, true, entity.ActivityCompleted, now))

	// marcar COMPLETED por error y corregirlo
	require.NoError(t, fieldwork.Apply(a, true, entity.ActivityInProgress, later))
	assert.Nil(t, a.CompletionDate)
	require.NoError(t, fieldwork.Apply(a, true, entity.ActivityPending, later))
	assert.Equal(t, entity.ActivityPending, a.Status)

	// una actividad cancelada vuelve al plan
	require.NoError(t, fieldwork.Apply(a, true, entity.ActivityCancelled, later))
	require.NoError(t, fieldwork.Apply(a, true, entity.ActivityPending, later))
	require.NoError(t, fieldwork.Apply(a, true, entity.ActivityCompleted, later))
	require.NotNil(t, a.CompletionDate)
	assert.Equal(t, later, *a.CompletionDate)
}

func TestApply_CompletionDate(t *testing.T) {
	now := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)
	a := &entity.FieldActivity{Status: entity.ActivityInProgress}

	require.NoError(t, fieldwork.Apply(a, true, entity.ActivityCompleted, now))
	require.NotNil(t, a.CompletionDate)
	assert.Equal(t, now, *a.CompletionDate)

	// Volver a guardar COMPLETED conserva la fecha original.
	require.NoError(t, fieldwork.Apply(a, true, entity.ActivityCompleted, now.Add(time.Hour)))
	assert.Equal(t, now, *a.CompletionDate)

	require.NoError(t, fieldwork.Apply(a, true, entity.ActivityCancelled, now))
	assert.Nil(t, a.CompletionDate)
	assert.Equal(t, entity.ActivityCancelled, a.Status)
}

func TestApply_Errors(t *testing.T) {
	stale := &entity.FieldActivity{Status: "DONE"}
	err := fieldwork.Apply(stale, true, entity.ActivityPending, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrConflict)

	a := &entity.FieldActivity{Status: entity.ActivityCompleted}
	err = fieldwork.Apply(a, true, "DONE", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Una actividad nueva puede nacer en cualquier estado.
	fresh := &entity.FieldActivity{}
	require.NoError(t, fieldwork.Apply(fresh, false, entity.ActivityInProgress, time.Now()))
	assert.Nil(t, fresh.CompletionDate)
}
