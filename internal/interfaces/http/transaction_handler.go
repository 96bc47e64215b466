package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/navbahor-erp/internal/application/dto"
	"github.com/jhoicas/navbahor-erp/internal/application/warehouse"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/ledger"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
)

// TransactionHandler libro de inventario: registro de lotes, consultas y documentos.
type TransactionHandler struct {
	svc      *warehouse.Service
	renderer WaybillRenderer
}

// WaybillRenderer imprime la nota de despacho de un lote.
type WaybillRenderer interface {
	RenderWaybill(ctx context.Context, doc *warehouse.Document) ([]byte, error)
}

// NewTransactionHandler construye el handler. renderer puede ser nil (sin PDF).
func NewTransactionHandler(svc *warehouse.Service, renderer WaybillRenderer) *TransactionHandler {
	return &TransactionHandler{svc: svc, renderer: renderer}
}

// Record godoc
// @Summary      Registrar entrada o salida del almacén
// @Description  OUT admite un único destinatario: farmer_id, brigadier_id (pasa a TRANSFER) o new_farmer.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordTransactionRequest  true  "Lote"
// @Success      201   {object}  dto.TransactionResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordTransactionRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	recipient, err := ledger.ResolveRecipient(in.RecipientFields())
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.svc.RecordTransaction(c.UserContext(), GetActor(c), warehouse.RecordInput{
		Type:        entity.TransactionType(in.Type),
		Items:       lineItems(in.Items),
		Recipient:   recipient,
		Description: in.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resultResponse(res))
}

// List godoc
// @Summary      Últimos asientos del libro
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Producto"
// @Param        farmer_id     query  string  false  "Fermer"
// @Param        brigadier_id  query  string  false  "Brigadier"
// @Param        batch_id      query  string  false  "Lote"
// @Param        type          query  string  false  "Tipo"
// @Param        limit         query  int     false  "Límite"  default(50)
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var q dto.LimitQuery
	if err := c.QueryParser(&q); err != nil {
		return writeError(c, errInvalidBody)
	}
	list, err := h.svc.ListTransactions(c.UserContext(), GetActor(c), repository.TransactionFilter{
		ProductID:   c.Query("product_id"),
		FarmerID:    c.Query("farmer_id"),
		BrigadierID: c.Query("brigadier_id"),
		BatchID:     c.Query("batch_id"),
		Type:        entity.TransactionType(c.Query("type")),
		Limit:       q.Limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromTransactions(list))
}

// Document godoc
// @Summary      Datos de la nota de despacho o del poder de un asiento
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del asiento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/document [get]
func (h *TransactionHandler) Document(c *fiber.Ctx) error {
	doc, err := h.svc.GetTransactionDocument(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DocumentResponse{
		Transaction: dto.FromTransaction(doc.Transaction),
		Waybill:     dto.FromWaybill(doc.Waybill),
		Items:       dto.FromTransactions(doc.Items),
	})
}

// WaybillPDF godoc
// @Summary      Nota de despacho imprimible (PDF)
// @Tags         transactions
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del asiento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/waybill.pdf [get]
func (h *TransactionHandler) WaybillPDF(c *fiber.Ctx) error {
	if h.renderer == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "PDF no disponible"})
	}
	doc, err := h.svc.GetTransactionDocument(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.renderer.RenderWaybill(c.UserContext(), doc)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+doc.Waybill.Number+`.pdf"`)
	return c.Send(out)
}

func lineItems(in []dto.LineItemRequest) []warehouse.LineItem {
	out := make([]warehouse.LineItem, len(in))
	for i, it := range in {
		out[i] = warehouse.LineItem{ProductID: it.ProductID, Amount: it.Amount, BatchNumber: it.BatchNumber}
	}
	return out
}

func resultResponse(r *warehouse.Result) dto.TransactionResultResponse {
	return dto.TransactionResultResponse{
		TransactionID:  r.TransactionID,
		TransactionIDs: r.TransactionIDs,
		WaybillID:      r.WaybillID,
		WaybillNumber:  r.WaybillNumber,
		BatchID:        r.BatchID,
		Type:           string(r.Type),
	}
}
