package entity

import "time"

// ActivityStatus estado de una actividad de campo.
type ActivityStatus string

// Estados de FieldActivity.
const (
	ActivityPending    ActivityStatus = "PENDING"
	ActivityInProgress ActivityStatus = "IN_PROGRESS"
	ActivityCompleted  ActivityStatus = "COMPLETED"
	ActivityCancelled  ActivityStatus = "CANCELLED"
)

// FieldActivity estado de una etapa en un contorno. Única por (ContourID, WorkStageID).
type FieldActivity struct {
	ID             string
	ContourID      string
	WorkStageID    string
	BrigadierID    *string
	Status         ActivityStatus
	Comment        string
	CompletionDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FieldActivityDetail actividad con contorno y etapa resueltos.
type FieldActivityDetail struct {
	FieldActivity
	ContourNumber string
	ContourName   string
	StageName     string
	StageOrder    int
	BrigadierName *string
}
