package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/navbahor-erp/internal/application/brigade"
	"github.com/jhoicas/navbahor-erp/internal/application/dto"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
)

// FieldHandler etapas agrotécnicas y actividades de campo.
type FieldHandler struct {
	svc *brigade.Service
}

// NewFieldHandler construye el handler.
func NewFieldHandler(svc *brigade.Service) *FieldHandler {
	return &FieldHandler{svc: svc}
}

// ListStages godoc
// @Summary      Etapas agrotécnicas en orden
// @Tags         field
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WorkStageResponse
// @Router       /api/field/stages [get]
func (h *FieldHandler) ListStages(c *fiber.Ctx) error {
	list, err := h.svc.ListWorkStages(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.WorkStageResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.FromWorkStage(s))
	}
	return c.JSON(out)
}

// CreateStage godoc
// @Summary      Alta de etapa
// @Tags         field
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkStageRequest  true  "Etapa"
// @Success      201   {object}  dto.WorkStageResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/field/stages [post]
func (h *FieldHandler) CreateStage(c *fiber.Ctx) error {
	var in dto.CreateWorkStageRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	s, err := h.svc.CreateWorkStage(c.UserContext(), GetActor(c), in.Name, in.Order, in.Description)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromWorkStage(s))
}

// DeleteStage godoc
// @Summary      Borrar etapa y sus actividades
// @Tags         field
// @Security     Bearer
// @Param        id  path  string  true  "ID de la etapa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/field/stages/{id} [delete]
func (h *FieldHandler) DeleteStage(c *fiber.Ctx) error {
	if err := h.svc.DeleteWorkStage(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignPlan godoc
// @Summary      Asignar etapas de un contorno a un brigadier
// @Tags         field
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignWorkPlanRequest  true  "Plan"
// @Success      200   {object}  dto.AssignWorkPlanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/field/plan [post]
func (h *FieldHandler) AssignPlan(c *fiber.Ctx) error {
	var in dto.AssignWorkPlanRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	n, err := h.svc.AssignWorkPlan(c.UserContext(), GetActor(c), in.ContourID, in.StageIDs, in.BrigadierID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AssignWorkPlanResponse{Assigned: n})
}

// UpdateActivity godoc
// @Summary      Cambiar el estado de una actividad
// @Description  Solo hacia adelante; CANCELLED es final. COMPLETED fija la fecha de cierre.
// @Tags         field
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateActivityRequest  true  "Estado"
// @Success      200   {object}  dto.FieldActivityResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/field/activities [put]
func (h *FieldHandler) UpdateActivity(c *fiber.Ctx) error {
	var in dto.UpdateActivityRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	actor := GetActor(c)
	a, err := h.svc.UpdateActivity(c.UserContext(), actor, brigade.UpdateActivityInput{
		ContourID:   in.ContourID,
		WorkStageID: in.WorkStageID,
		BrigadierID: ownBrigadier(actor.BrigadierID, in.BrigadierID),
		Status:      entity.ActivityStatus(in.Status),
		Comment:     in.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromActivity(&entity.FieldActivityDetail{FieldActivity: *a}))
}

// ListActivities godoc
// @Summary      Actividades de campo
// @Tags         field
// @Security     Bearer
// @Produce      json
// @Param        brigadier_id  query  string  false  "Filtrar por brigadier"
// @Success      200  {array}  dto.FieldActivityResponse
// @Router       /api/field/activities [get]
func (h *FieldHandler) ListActivities(c *fiber.Ctx) error {
	list, err := h.svc.ListActivities(c.UserContext(), GetActor(c), c.Query("brigadier_id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.FieldActivityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.FromActivity(a))
	}
	return c.JSON(out)
}

// ResetActivities godoc
// @Summary      Borrar todas las actividades (nueva campaña)
// @Tags         field
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DeletedResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/field/activities [delete]
func (h *FieldHandler) ResetActivities(c *fiber.Ctx) error {
	n, err := h.svc.ResetActivities(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{Deleted: n})
}
