package dto

import "time"

// CreateWorkStageRequest alta de etapa agrotécnica.
type CreateWorkStageRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Order       int    `json:"order" validate:"min=0"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// WorkStageResponse salida de una etapa.
type WorkStageResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Order       int    `json:"order"`
	Description string `json:"description"`
}

// AssignWorkPlanRequest plan de etapas para un contorno.
type AssignWorkPlanRequest struct {
	ContourID   string   `json:"contour_id" validate:"required,uuid"`
	StageIDs    []string `json:"stage_ids" validate:"required,min=1,dive,uuid"`
	BrigadierID string   `json:"brigadier_id" validate:"required,uuid"`
}

// AssignWorkPlanResponse cantidad de etapas asignadas.
type AssignWorkPlanResponse struct {
	Assigned int `json:"assigned"`
}

// UpdateActivityRequest cambio de estado de (contorno, etapa).
type UpdateActivityRequest struct {
	ContourID   string `json:"contour_id" validate:"required,uuid"`
	WorkStageID string `json:"work_stage_id" validate:"required,uuid"`
	BrigadierID string `json:"brigadier_id" validate:"omitempty,uuid"`
	Status      string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	Comment     string `json:"comment" validate:"omitempty,max=1000"`
}

// FieldActivityResponse actividad con nombres de contorno, etapa y brigadier.
type FieldActivityResponse struct {
	ID             string     `json:"id"`
	ContourID      string     `json:"contour_id"`
	ContourNumber  string     `json:"contour_number,omitempty"`
	ContourName    string     `json:"contour_name,omitempty"`
	WorkStageID    string     `json:"work_stage_id"`
	StageName      string     `json:"stage_name,omitempty"`
	StageOrder     int        `json:"stage_order"`
	BrigadierID    *string    `json:"brigadier_id,omitempty"`
	BrigadierName  *string    `json:"brigadier_name,omitempty"`
	Status         string     `json:"status"`
	Comment        string     `json:"comment"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
