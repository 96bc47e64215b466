package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/navbahor-erp/internal/application/dto"
	"github.com/jhoicas/navbahor-erp/internal/application/warehouse"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
)

// BrigadierHandler reserva personal del brigadier.
type BrigadierHandler struct {
	svc *warehouse.Service
}

// NewBrigadierHandler construye el handler.
func NewBrigadierHandler(svc *warehouse.Service) *BrigadierHandler {
	return &BrigadierHandler{svc: svc}
}

// CreateTransaction godoc
// @Summary      Recibir del almacén o consumir en campo
// @Description  IN/TRANSFER mueven stock del almacén a la reserva; OUT/CONSUMPTION lo consumen en un contorno.
// @Tags         brigadier
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BrigadierTransactionRequest  true  "Lote"
// @Success      201   {object}  dto.TransactionResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/brigadier/transactions [post]
func (h *BrigadierHandler) CreateTransaction(c *fiber.Ctx) error {
	var in dto.BrigadierTransactionRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	actor := GetActor(c)
	res, err := h.svc.CreateBrigadierTransaction(c.UserContext(), actor, warehouse.BrigadierInput{
		Type:        entity.TransactionType(in.Type),
		BrigadierID: ownBrigadier(actor.BrigadierID, in.BrigadierID),
		ContourID:   in.ContourID,
		Items:       lineItems(in.Items),
		Description: in.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resultResponse(res))
}

// Inventory godoc
// @Summary      Saldos de la reserva del brigadier
// @Tags         brigadier
// @Security     Bearer
// @Produce      json
// @Param        brigadier_id  query  string  false  "Brigadier (por defecto el del token)"
// @Success      200  {array}  dto.BrigadierStockResponse
// @Router       /api/brigadier/inventory [get]
func (h *BrigadierHandler) Inventory(c *fiber.Ctx) error {
	actor := GetActor(c)
	items, err := h.svc.GetBrigadierInventory(c.UserContext(), actor, ownBrigadier(actor.BrigadierID, c.Query("brigadier_id")))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.BrigadierStockResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.BrigadierStockResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductUnit: string(it.ProductUnit),
			Amount:      it.Amount,
			UpdatedAt:   it.UpdatedAt,
		})
	}
	return c.JSON(out)
}

// ownBrigadier usa el brigadier del token cuando la petición no trae uno.
func ownBrigadier(fromToken, requested string) string {
	if requested == "" {
		return fromToken
	}
	return requested
}
